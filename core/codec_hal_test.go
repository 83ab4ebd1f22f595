package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCodecSequence(t *testing.T) {
	codec := &recordingCodec{}
	require.NoError(t, InitCodec(codec))

	want := []codecWriteRecord{
		{RegReset, 0},
		{0x0, 0x17},
		{0x1, 0x17},
		{0x2, 0x79},
		{0x3, 0x79},
		{0x4, 0x15},
		{0x5, 0x06},
		{0x6, 0x00},
	}
	assert.Equal(t, want, codec.writes)
}

func TestInitCodecStopsOnError(t *testing.T) {
	codec := &recordingCodec{err: errors.New("nak")}
	assert.Error(t, InitCodec(codec))
	assert.Empty(t, codec.writes)
}

func TestVolumeRegisterRoundTrip(t *testing.T) {
	for v := int32(MinVolume); v <= MaxVolume; v += VolumeStep {
		reg := VolumeRegisterValue(v)
		assert.Equal(t, uint16(0x180), reg&0x180, "flags set for %d", v)
		assert.Equal(t, v, VolumeFromRegister(reg))
	}
}
