//go:build headless

package speaker

import "testing"

func TestHeadlessSpeakerCounts(t *testing.T) {
	s, err := NewSpeaker(8000)
	if err != nil {
		t.Fatalf("NewSpeaker: %v", err)
	}
	defer s.Close()

	s.Write(make([]float32, 10))
	s.Write(make([]float32, 5))
	if s.Samples() != 15 {
		t.Errorf("Expected 15 samples, got %d", s.Samples())
	}
}
