// Package queue provides the bounded FIFO used for simulated hardware
// queues and for buffering byte streams.
package queue

// Ring is a circular FIFO with a fixed capacity.
// It is not safe for concurrent use; callers that share one add their own lock.
type Ring[T any] struct {
	buf   []T
	read  int
	write int
	size  int
}

// NewRing creates a ring holding up to capacity elements
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	// One slot stays empty to tell full from empty
	return &Ring[T]{
		buf:  make([]T, capacity+1),
		size: capacity + 1,
	}
}

// Cap returns the number of elements the ring can hold
func (r *Ring[T]) Cap() int {
	return r.size - 1
}

// Push appends one element, reporting false when the ring is full
func (r *Ring[T]) Push(v T) bool {
	nextWrite := (r.write + 1) % r.size
	if nextWrite == r.read {
		return false
	}
	r.buf[r.write] = v
	r.write = nextWrite
	return true
}

// Pop removes the oldest element, reporting false when the ring is empty
func (r *Ring[T]) Pop() (T, bool) {
	var zero T
	if r.read == r.write {
		return zero, false
	}
	v := r.buf[r.read]
	r.buf[r.read] = zero
	r.read = (r.read + 1) % r.size
	return v, true
}

// Write appends as much of data as fits and returns how much was taken
func (r *Ring[T]) Write(data []T) int {
	written := 0
	for _, v := range data {
		if !r.Push(v) {
			break
		}
		written++
	}
	return written
}

// Read pops up to len(data) elements into data
func (r *Ring[T]) Read(data []T) int {
	read := 0
	for i := range data {
		v, ok := r.Pop()
		if !ok {
			break
		}
		data[i] = v
		read++
	}
	return read
}

// Available returns the number of elements waiting to be read
func (r *Ring[T]) Available() int {
	if r.write >= r.read {
		return r.write - r.read
	}
	return r.size - r.read + r.write
}

// Free returns the number of elements that can still be written
func (r *Ring[T]) Free() int {
	return r.Cap() - r.Available()
}

// Data returns the queued elements, oldest first, without consuming them.
// A wrapped ring is copied into a fresh slice.
func (r *Ring[T]) Data() []T {
	if r.read <= r.write {
		return r.buf[r.read:r.write]
	}
	result := make([]T, r.Available())
	firstLen := r.size - r.read
	copy(result, r.buf[r.read:])
	copy(result[firstLen:], r.buf[:r.write])
	return result
}

// IsEmpty returns true if the ring holds nothing
func (r *Ring[T]) IsEmpty() bool {
	return r.read == r.write
}

// IsFull returns true if a Push would fail
func (r *Ring[T]) IsFull() bool {
	return (r.write+1)%r.size == r.read
}

// Reset empties the ring
func (r *Ring[T]) Reset() {
	r.read = 0
	r.write = 0
}
