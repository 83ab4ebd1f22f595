//go:build headless

package speaker

import "sync/atomic"

// Speaker discards output, counting what it was given
type Speaker struct {
	samples atomic.Uint64
}

// NewSpeaker returns a silent speaker
func NewSpeaker(sampleRate int) (*Speaker, error) {
	return &Speaker{}, nil
}

func (s *Speaker) Write(samples []float32) {
	s.samples.Add(uint64(len(samples)))
}

// Samples returns how many samples have been written
func (s *Speaker) Samples() uint64 {
	return s.samples.Load()
}

func (s *Speaker) Close() error {
	return nil
}
