package core

// EchoBufferCapacity is the length of the echo history in samples
const EchoBufferCapacity = 4096

// EchoBuffer is the circular delay line feeding the echo generator.
// It is owned by the pipeline task alone.
type EchoBuffer struct {
	buf   [EchoBufferCapacity]Sample
	write int32
}

// Store writes s at the write cursor and advances the cursor
func (e *EchoBuffer) Store(s Sample) {
	e.buf[e.write] = s
	e.write++
	if e.write >= EchoBufferCapacity {
		e.write = 0
	}
}

// WriteCursor is where the next Store lands
func (e *EchoBuffer) WriteCursor() int32 {
	return e.write
}

// ReadCursor is the write cursor offset by delay, wrapped into the buffer
func (e *EchoBuffer) ReadCursor(delay int32) int32 {
	r := (e.write + delay) % EchoBufferCapacity
	if r < 0 {
		r += EchoBufferCapacity
	}
	return r
}

// Delayed returns the history sample at ReadCursor(delay).
// With delay d the sample is the one stored EchoBufferCapacity-1-d
// iterations before the most recent Store, or zero if the history is
// not that deep yet.
func (e *EchoBuffer) Delayed(delay int32) Sample {
	return e.buf[e.ReadCursor(delay)]
}
