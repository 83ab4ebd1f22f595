package sim

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"time"

	vecmath "github.com/cwbudde/algo-vecmath"

	"voicemanip/core"
	"voicemanip/dsp"
)

const (
	// CodecQueueDepth is the depth of each codec FIFO
	CodecQueueDepth = 1024

	// headphone gain register: 0x79 is 0 dB, one step per dB
	headphoneZeroDB = 0x79
	headphoneMute   = 0x2f
	headphoneMask   = 0x7f

	fullScale = 32768.0
)

// ErrBadRegister is returned for a register address the codec does not have
var ErrBadRegister = errors.New("codec register out of range")

// Sink receives blocks of output audio in the range -1..1
type Sink interface {
	Write(samples []float32)
}

// ToneConfig describes the simulated microphone signal
type ToneConfig struct {
	SampleRate int
	Hz         float64
	Amplitude  float64
}

// Codec is the audio codec: a register file on the control port, a
// microphone FIFO fed by a tone generator, and two speaker FIFOs.
type Codec struct {
	mu   sync.Mutex
	regs [core.RegReset + 1]uint16

	in       *dsp.QueuePort
	outLeft  *dsp.QueuePort
	outRight *dsp.QueuePort

	tone  ToneConfig
	phase float64

	words   []core.Sample
	right   []core.Sample
	block   []float64
	peak    atomic.Uint64 // float64 bits
	written atomic.Uint64
}

// NewCodec creates a codec in its reset state
func NewCodec(tone ToneConfig) *Codec {
	return &Codec{
		in:       dsp.NewQueuePort(CodecQueueDepth),
		outLeft:  dsp.NewQueuePort(CodecQueueDepth),
		outRight: dsp.NewQueuePort(CodecQueueDepth),
		tone:     tone,
		words:    make([]core.Sample, CodecQueueDepth),
		right:    make([]core.Sample, CodecQueueDepth),
		block:    make([]float64, CodecQueueDepth),
	}
}

// Ports returns the coprocessor view used by the pipeline
func (c *Codec) Ports() core.AudioCodec {
	return core.AudioCodec{
		In:       c.in,
		OutLeft:  c.outLeft,
		OutRight: c.outRight,
	}
}

// WriteRegister implements core.CodecConfig
func (c *Codec) WriteRegister(addr uint8, value uint16) error {
	if int(addr) >= len(c.regs) {
		return ErrBadRegister
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if addr == core.RegReset {
		c.regs = [core.RegReset + 1]uint16{}
		return nil
	}
	c.regs[addr] = value & 0x1ff
	return nil
}

// Register returns the last value written to addr
func (c *Codec) Register(addr uint8) uint16 {
	if int(addr) >= len(c.regs) {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.regs[addr]
}

// Gain returns the linear headphone gain set in the left headphone register
func (c *Codec) Gain() float64 {
	level := int(c.Register(core.RegLeftHeadphone) & headphoneMask)
	if level <= headphoneMute {
		return 0
	}
	return math.Pow(10, float64(level-headphoneZeroDB)/20)
}

// Volume returns the volume level programmed into the headphone register
func (c *Codec) Volume() int32 {
	return core.VolumeFromRegister(c.Register(core.RegLeftHeadphone))
}

// Peak returns the absolute peak of the most recent output block
func (c *Codec) Peak() float64 {
	return math.Float64frombits(c.peak.Load())
}

// Written returns how many output words have been collected
func (c *Codec) Written() uint64 {
	return c.written.Load()
}

// Tick pushes n microphone words into the input FIFO
func (c *Codec) Tick(n int) {
	step := 0.0
	if c.tone.SampleRate > 0 {
		step = 2 * math.Pi * c.tone.Hz / float64(c.tone.SampleRate)
	}
	for i := 0; i < n; i++ {
		c.in.Write(core.Sample(math.Round(c.tone.Amplitude * (fullScale - 1) * math.Sin(c.phase))))
		c.phase += step
		if c.phase >= 2*math.Pi {
			c.phase -= 2 * math.Pi
		}
	}
}

// Collect drains the speaker FIFOs, applies the headphone gain and hands
// the left channel to sink. The right channel carries the same words.
func (c *Codec) Collect(sink Sink) int {
	n := c.outLeft.Drain(c.words)
	c.outRight.Drain(c.right)
	if n == 0 {
		return 0
	}

	block := c.block[:n]
	for i, w := range c.words[:n] {
		block[i] = float64(w)
	}
	vecmath.ScaleBlockInPlace(block, c.Gain()/fullScale)
	c.peak.Store(math.Float64bits(vecmath.MaxAbs(block)))
	c.written.Add(uint64(n))

	if sink != nil {
		out := make([]float32, n)
		for i, v := range block {
			out[i] = float32(max(-1, min(1, v)))
		}
		sink.Write(out)
	}
	return n
}

// Run clocks the codec in real time until ctx is done: every period one
// period's worth of microphone words goes in and the speaker FIFOs are
// drained into sink
func (c *Codec) Run(ctx context.Context, period time.Duration, sink Sink) {
	words := c.tone.SampleRate * int(period) / int(time.Second)
	if words < 1 {
		words = 1
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Tick(words)
			c.Collect(sink)
		}
	}
}
