package core

// Signal is a one-slot binary semaphore.
// Post never blocks; posts made while a signal is already pending coalesce.
type Signal struct {
	ch chan struct{}
}

// NewSignal creates a signal, optionally already pending
func NewSignal(pending bool) *Signal {
	s := &Signal{ch: make(chan struct{}, 1)}
	if pending {
		s.ch <- struct{}{}
	}
	return s
}

// Post marks the signal pending. Safe from interrupt handlers.
func (s *Signal) Post() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// Wait blocks until the signal is pending and consumes it
func (s *Signal) Wait() {
	<-s.ch
}

// C exposes the signal for use in a select. Receiving consumes it.
func (s *Signal) C() <-chan struct{} {
	return s.ch
}

// Pending reports whether a post is waiting to be consumed
func (s *Signal) Pending() bool {
	return len(s.ch) > 0
}
