package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voicemanip/core"
)

func TestParsePresses(t *testing.T) {
	got, err := parsePresses("next, Next,decrease,,previous,increase")
	require.NoError(t, err)
	assert.Equal(t, []core.Button{
		core.ButtonNext, core.ButtonNext, core.ButtonDecrease, core.ButtonPrevious, core.ButtonIncrease,
	}, got)

	got, err = parsePresses("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = parsePresses("next,reset")
	assert.Error(t, err)
}
