package core

import (
	"testing"
	"time"
)

func TestSignalCoalesces(t *testing.T) {
	s := NewSignal(false)
	if s.Pending() {
		t.Fatal("New signal should not be pending")
	}

	s.Post()
	s.Post()
	s.Post()
	if !s.Pending() {
		t.Fatal("Expected pending after Post")
	}

	s.Wait()
	if s.Pending() {
		t.Error("Posts should coalesce into one pending redraw")
	}
}

func TestSignalStartsPending(t *testing.T) {
	s := NewSignal(true)
	select {
	case <-s.C():
	default:
		t.Fatal("Expected initial post to be consumable")
	}
}

func TestSignalWakesWaiter(t *testing.T) {
	s := NewSignal(false)
	woke := make(chan struct{})
	go func() {
		s.Wait()
		close(woke)
	}()

	s.Post()
	select {
	case <-woke:
	case <-time.After(time.Second):
		t.Fatal("Waiter not woken by Post")
	}
}
