package core

import "sync/atomic"

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// Event captures a control event for post-mortem analysis
type Event struct {
	Type   uint8  // Event type code
	Seq    uint32 // Sequence number, monotonically increasing
	Value1 int32  // Context-dependent value
	Value2 int32  // Context-dependent value
}

// Event type codes
const (
	EvtButton        = 1 // Button edge dispatched (v1=button)
	EvtSlot          = 2 // Active slot changed (v1=old, v2=new)
	EvtVolume        = 3 // Volume changed (v1=old, v2=new)
	EvtEchoDelay     = 4 // Echo delay changed (v1=old, v2=new)
	EvtEchoReduction = 5 // Echo reduction changed (v1=old, v2=new)
	EvtShift         = 6 // Shift level changed (v1=old, v2=new)
	EvtCodecFail     = 7 // Codec register write failed (v1=register, v2=value)
	EvtModeChange    = 8 // Routing mode changed (v1=new mode)
)

const (
	EventRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether synchronous debug output is active
	debugEnabled bool = false

	// Event capture ring buffer (non-blocking, for post-mortem)
	eventRing     [EventRingSize]Event
	eventRingHead uint8
	eventSeq      atomic.Uint32

	// Async debug output channel
	debugChan chan string
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, slog, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// InitAsyncDebug starts the async debug output goroutine
// Call this from main() after SetDebugWriter
func InitAsyncDebug() {
	debugChan = make(chan string, 16) // Buffer 16 messages
	go debugOutputWorker(debugChan)
}

// debugOutputWorker runs in background, drains debug channel
func debugOutputWorker(ch <-chan string) {
	for msg := range ch {
		if debugPrintln != nil {
			debugPrintln(msg)
		}
	}
}

// DebugPrintln writes a debug message using the platform-specific writer
// Blocks if debug is enabled (use DebugAsync from handlers)
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// DebugAsync queues a debug message for async output (non-blocking)
// Returns immediately even if channel is full (drops message)
func DebugAsync(msg string) {
	if debugChan != nil {
		select {
		case debugChan <- msg:
		default:
			// Channel full, drop message (non-blocking)
		}
	}
}

// RecordEvent captures an event in the ring buffer.
// Safe from interrupt handlers and tasks alike.
func RecordEvent(eventType uint8, value1, value2 int32) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	idx := eventRingHead
	eventRing[idx] = Event{
		Type:   eventType,
		Seq:    eventSeq.Add(1),
		Value1: value1,
		Value2: value2,
	}
	eventRingHead = (idx + 1) % EventRingSize
}

// Events returns the recorded events, oldest first
func Events() []Event {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	out := make([]Event, 0, EventRingSize)
	start := eventRingHead
	for i := uint8(0); i < EventRingSize; i++ {
		evt := eventRing[(start+i)%EventRingSize]
		if evt.Type == 0 {
			continue // Empty slot
		}
		out = append(out, evt)
	}
	return out
}

// EventName returns the mnemonic for an event type
func EventName(eventType uint8) string {
	switch eventType {
	case EvtButton:
		return "BUTTON"
	case EvtSlot:
		return "SLOT"
	case EvtVolume:
		return "VOLUME"
	case EvtEchoDelay:
		return "ECHO_DELAY"
	case EvtEchoReduction:
		return "ECHO_REDUCTION"
	case EvtShift:
		return "SHIFT"
	case EvtCodecFail:
		return "CODEC_FAIL!"
	case EvtModeChange:
		return "MODE"
	default:
		return "UNKNOWN"
	}
}

// DumpEvents outputs the event ring (call on shutdown/error)
func DumpEvents() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[EVENTS] === Event Ring Dump ===")
	for _, evt := range Events() {
		debugPrintln("[EVENTS] " + EventName(evt.Type) +
			" seq=" + utoa(evt.Seq) +
			" v1=" + itoa(int(evt.Value1)) +
			" v2=" + itoa(int(evt.Value2)))
	}
	debugPrintln("[EVENTS] === End Dump ===")
}

// ClearEvents clears the event ring
func ClearEvents() {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	for i := range eventRing {
		eventRing[i] = Event{}
	}
	eventRingHead = 0
}
