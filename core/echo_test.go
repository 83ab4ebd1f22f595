package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEchoReadCursor(t *testing.T) {
	var e EchoBuffer
	delays := []int32{MinEchoDelay, 895, 1695, 2495, 3295, MaxEchoDelay}

	for i := 0; i < 3*EchoBufferCapacity+17; i++ {
		e.Store(Sample(i))
		if i%97 != 0 {
			continue
		}
		for _, d := range delays {
			want := (e.WriteCursor() + d) % EchoBufferCapacity
			assert.Equal(t, want, e.ReadCursor(d), "after %d stores, delay %d", i+1, d)
		}
	}
}

func TestEchoWriteCursorWraps(t *testing.T) {
	var e EchoBuffer
	for i := 0; i < EchoBufferCapacity-1; i++ {
		e.Store(1)
	}
	assert.Equal(t, int32(EchoBufferCapacity-1), e.WriteCursor())
	e.Store(1)
	assert.Equal(t, int32(0), e.WriteCursor())
}

func TestEchoDelayedLag(t *testing.T) {
	for _, d := range []int32{MinEchoDelay, 1695, MaxEchoDelay - 1, MaxEchoDelay} {
		var e EchoBuffer
		lag := EchoBufferCapacity - 1 - int(d)

		for n := 0; n < 2*EchoBufferCapacity; n++ {
			e.Store(Sample(n + 1))
			want := Sample(0)
			if n-lag >= 0 {
				want = Sample(n - lag + 1)
			}
			if got := e.Delayed(d); got != want {
				t.Fatalf("delay %d after store %d: got %d, want %d", d, n, got, want)
			}
		}
	}
}
