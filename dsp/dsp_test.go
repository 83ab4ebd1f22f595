package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voicemanip/core"
)

func TestQueuePort(t *testing.T) {
	q := NewQueuePort(2)
	assert.Equal(t, 2, q.AvailableForWrite())

	q.Write(1)
	q.Write(2)
	q.Write(3) // lost
	assert.Equal(t, 0, q.AvailableForWrite())
	assert.Equal(t, 2, q.AvailableForRead())

	assert.Equal(t, core.Sample(1), q.Read())
	assert.Equal(t, core.Sample(2), q.Read())
	assert.Equal(t, core.Sample(0), q.Read(), "empty FIFO reads zero")
}

func TestShifterPassesAudioAtPeakCarrier(t *testing.T) {
	s := NewShifter(4)
	ports := s.Ports()
	assert.Zero(t, ports.Out.AvailableForRead())

	ports.Audio.Write(1000)
	ports.Sine.Write(0)
	assert.Zero(t, ports.Out.AvailableForRead(), "needs all three inputs")
	ports.Cosine.Write(core.CarrierAmplitude)

	require.Equal(t, 1, ports.Out.AvailableForRead())
	assert.InDelta(t, 1000, float64(ports.Out.Read()), 1)

	ports.Audio.Write(1000)
	ports.Sine.Write(core.CarrierAmplitude)
	ports.Cosine.Write(0)
	assert.Equal(t, core.Sample(0), ports.Out.Read())
}

func TestEchoReduction(t *testing.T) {
	reduction := int32(core.EchoReductionOn)
	e := NewEcho(4, func() int32 { return reduction })
	ports := e.Ports()

	ports.Current.Write(100)
	ports.Delayed.Write(400)
	assert.Equal(t, core.Sample(500), ports.Out.Read())

	reduction = core.EchoReductionOff
	ports.Current.Write(100)
	ports.Delayed.Write(400)
	assert.Equal(t, core.Sample(200), ports.Out.Read())
}
