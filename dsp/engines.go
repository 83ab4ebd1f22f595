// Package dsp holds software renditions of the frequency shift and echo
// coprocessors, for boards without the hardware cores.
package dsp

import (
	"voicemanip/core"
)

// carrierScale normalizes a carrier word to unity
const carrierScale = core.CarrierAmplitude + 1

// Shifter is the frequency shift core in software: it modulates the audio
// word with the cosine carrier. With no shift the cosine phase stays on the
// table peak and the audio passes through.
type Shifter struct {
	audio  *QueuePort
	sine   *QueuePort
	cosine *QueuePort
}

// NewShifter creates the engine with input queues of the given depth
func NewShifter(depth int) *Shifter {
	return &Shifter{
		audio:  NewQueuePort(depth),
		sine:   NewQueuePort(depth),
		cosine: NewQueuePort(depth),
	}
}

// Ports returns the coprocessor view used by the pipeline
func (s *Shifter) Ports() core.PitchShifter {
	return core.PitchShifter{
		Audio:  s.audio,
		Sine:   s.sine,
		Cosine: s.cosine,
		Out:    &outputPort{ready: s.ready, next: s.next},
	}
}

func (s *Shifter) ready() int {
	return min(s.audio.AvailableForRead(), s.sine.AvailableForRead(), s.cosine.AvailableForRead())
}

func (s *Shifter) next() core.Sample {
	audio := int64(s.audio.Read())
	s.sine.Read()
	cosine := int64(s.cosine.Read())
	return core.Sample(audio * cosine / carrierScale)
}

// Echo is the echo core in software: current plus the delayed word, the
// delayed word cut to a quarter when echo reduction is off
type Echo struct {
	current   *QueuePort
	delayed   *QueuePort
	reduction func() int32
}

// NewEcho creates the engine. reduction reports the echo reduction setting;
// nil means always on.
func NewEcho(depth int, reduction func() int32) *Echo {
	if reduction == nil {
		reduction = func() int32 { return core.EchoReductionOn }
	}
	return &Echo{
		current:   NewQueuePort(depth),
		delayed:   NewQueuePort(depth),
		reduction: reduction,
	}
}

// Ports returns the coprocessor view used by the pipeline
func (e *Echo) Ports() core.EchoGenerator {
	return core.EchoGenerator{
		Current: e.current,
		Delayed: e.delayed,
		Out:     &outputPort{ready: e.ready, next: e.next},
	}
}

func (e *Echo) ready() int {
	return min(e.current.AvailableForRead(), e.delayed.AvailableForRead())
}

func (e *Echo) next() core.Sample {
	current := e.current.Read()
	delayed := e.delayed.Read()
	if e.reduction() == core.EchoReductionOff {
		delayed /= 4
	}
	return current + delayed
}

// outputPort computes each output word when it is read, so the result is
// available as soon as the inputs are
type outputPort struct {
	ready func() int
	next  func() core.Sample
}

func (o *outputPort) AvailableForWrite() int { return 0 }
func (o *outputPort) AvailableForRead() int  { return o.ready() }
func (o *outputPort) Write(core.Sample)      {}

func (o *outputPort) Read() core.Sample {
	if o.ready() == 0 {
		return 0
	}
	return o.next()
}
