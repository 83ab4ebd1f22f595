package core

import (
	"strings"
	"testing"
)

func TestEventRingKeepsNewest(t *testing.T) {
	ClearEvents()
	defer ClearEvents()

	for i := 0; i < EventRingSize+5; i++ {
		RecordEvent(EvtVolume, int32(i), 0)
	}

	events := Events()
	if len(events) != EventRingSize {
		t.Fatalf("Expected %d events, got %d", EventRingSize, len(events))
	}
	if events[0].Value1 != 5 {
		t.Errorf("Expected oldest surviving event 5, got %d", events[0].Value1)
	}
	for i := 1; i < len(events); i++ {
		if events[i].Seq <= events[i-1].Seq {
			t.Errorf("Events out of order at %d", i)
		}
	}
}

func TestDumpEvents(t *testing.T) {
	ClearEvents()
	defer ClearEvents()

	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })
	defer SetDebugWriter(func(string) {})

	RecordEvent(EvtShift, 0, -1)
	DumpEvents()

	if len(lines) != 3 {
		t.Fatalf("Expected header, one event and footer, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "SHIFT") || !strings.Contains(lines[1], "v2=-1") {
		t.Errorf("Unexpected event line %q", lines[1])
	}
}

func TestItoa(t *testing.T) {
	tests := map[int]string{0: "0", 7: "7", -6: "-6", 4095: "4095"}
	for n, want := range tests {
		if got := Itoa(n); got != want {
			t.Errorf("Itoa(%d) = %q, want %q", n, got, want)
		}
	}

	if got := PadRight("On", 4); got != "On  " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadRight("Frequency Shift:!", 16); got != "Frequency Shift:" {
		t.Errorf("PadRight truncation = %q", got)
	}
}
