package queue

import "testing"

func TestRing(t *testing.T) {
	ring := NewRing[byte](10)

	if !ring.IsEmpty() {
		t.Error("New ring should be empty")
	}
	if ring.Cap() != 10 {
		t.Errorf("Expected capacity 10, got %d", ring.Cap())
	}

	written := ring.Write([]byte{1, 2, 3, 4, 5})
	if written != 5 {
		t.Errorf("Expected to write 5, wrote %d", written)
	}
	if ring.Available() != 5 {
		t.Errorf("Expected 5 available, got %d", ring.Available())
	}
	if ring.Free() != 5 {
		t.Errorf("Expected 5 free, got %d", ring.Free())
	}

	readBuf := make([]byte, 3)
	read := ring.Read(readBuf)
	if read != 3 {
		t.Errorf("Expected to read 3, read %d", read)
	}
	if readBuf[0] != 1 || readBuf[1] != 2 || readBuf[2] != 3 {
		t.Errorf("Data mismatch: got %v", readBuf)
	}
	if ring.Available() != 2 {
		t.Errorf("Expected 2 available after read, got %d", ring.Available())
	}
}

func TestRingFull(t *testing.T) {
	ring := NewRing[int32](4)

	if n := ring.Write([]int32{1, 2, 3, 4, 5, 6}); n != 4 {
		t.Errorf("Expected to write exactly capacity, wrote %d", n)
	}
	if !ring.IsFull() {
		t.Error("Ring should be full")
	}
	if ring.Push(7) {
		t.Error("Push into a full ring should fail")
	}

	v, ok := ring.Pop()
	if !ok || v != 1 {
		t.Errorf("Expected 1, got %d (ok=%v)", v, ok)
	}
	if !ring.Push(7) {
		t.Error("Push after Pop should succeed")
	}
}

func TestRingWrapAround(t *testing.T) {
	ring := NewRing[byte](4)

	ring.Write([]byte{1, 2, 3, 4})
	ring.Read(make([]byte, 2))

	if written := ring.Write([]byte{5, 6}); written != 2 {
		t.Errorf("Expected to write 2, wrote %d", written)
	}

	data := ring.Data()
	if len(data) != 4 || data[0] != 3 || data[1] != 4 || data[2] != 5 || data[3] != 6 {
		t.Errorf("Wrap-around data mismatch: got %v", data)
	}
	if ring.Available() != 4 {
		t.Error("Data must not consume")
	}

	for i := 0; i < 3; i++ {
		ring.Pop()
	}
	v, ok := ring.Pop()
	if !ok || v != 6 {
		t.Errorf("Expected 6 after three pops, got %d", v)
	}
	if _, ok := ring.Pop(); ok {
		t.Error("Pop from an empty ring should fail")
	}
}

func TestRingReset(t *testing.T) {
	ring := NewRing[string](3)
	ring.Push("a")
	ring.Push("b")
	ring.Reset()

	if !ring.IsEmpty() || ring.Available() != 0 {
		t.Error("Reset ring should be empty")
	}
}
