//go:build !headless

// Package speaker plays the simulated codec output on the host.
package speaker

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"

	"voicemanip/queue"
)

// Speaker plays output blocks on the host sound device
type Speaker struct {
	ctx    *oto.Context
	player *oto.Player

	mu      sync.Mutex
	pending *queue.Ring[float32]
}

// NewSpeaker opens the sound device for mono float output
func NewSpeaker(sampleRate int) (*Speaker, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	s := &Speaker{
		ctx:     ctx,
		pending: queue.NewRing[float32](sampleRate), // one second
	}
	s.player = ctx.NewPlayer(s)
	s.player.Play()
	return s, nil
}

// Write queues samples for playback, dropping what does not fit
func (s *Speaker) Write(samples []float32) {
	s.mu.Lock()
	s.pending.Write(samples)
	s.mu.Unlock()
}

// Read feeds the player; gaps are filled with silence
func (s *Speaker) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(p) / 4
	for i := 0; i < n; i++ {
		v, _ := s.pending.Pop()
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(v))
	}
	return n * 4, nil
}

// Close stops playback
func (s *Speaker) Close() error {
	if s.player != nil {
		return s.player.Close()
	}
	return nil
}
