package dsp

import (
	"sync"

	"voicemanip/core"
	"voicemanip/queue"
)

// QueuePort is a bounded hardware FIFO. Writes to a full queue are lost,
// reads from an empty one return zero, as on the real part.
type QueuePort struct {
	mu   sync.Mutex
	ring *queue.Ring[core.Sample]
}

// NewQueuePort creates a FIFO holding depth words
func NewQueuePort(depth int) *QueuePort {
	return &QueuePort{ring: queue.NewRing[core.Sample](depth)}
}

func (q *QueuePort) AvailableForWrite() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.ring.Free()
}

func (q *QueuePort) AvailableForRead() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.ring.Available()
}

func (q *QueuePort) Write(s core.Sample) {
	q.mu.Lock()
	q.ring.Push(s)
	q.mu.Unlock()
}

func (q *QueuePort) Read() core.Sample {
	q.mu.Lock()
	defer q.mu.Unlock()
	s, _ := q.ring.Pop()
	return s
}

// Drain pops everything queued into dst and returns how many were taken
func (q *QueuePort) Drain(dst []core.Sample) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.ring.Read(dst)
}

// Fill pushes as many of src as fit
func (q *QueuePort) Fill(src []core.Sample) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.ring.Write(src)
}
