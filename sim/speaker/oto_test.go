//go:build !headless

package speaker

import (
	"encoding/binary"
	"math"
	"testing"

	"voicemanip/queue"
)

func TestSpeakerReadEncodesFloats(t *testing.T) {
	// Exercise the player side without opening a device
	s := &Speaker{pending: queue.NewRing[float32](8)}
	s.Write([]float32{0.5, -0.25})

	p := make([]byte, 12)
	n, err := s.Read(p)
	if err != nil || n != 12 {
		t.Fatalf("Read = %d, %v", n, err)
	}

	want := []float32{0.5, -0.25, 0}
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(p[i*4:]))
		if got != w {
			t.Errorf("sample %d = %g, want %g", i, got, w)
		}
	}
}
