// Package link talks to the wireless serial module that carries call audio
// in link mode: a one-shot configuration handshake, then a pass-through of
// everything the module reports.
package link

import (
	"context"
	"errors"
	"io"
	"time"

	"voicemanip/core"
	"voicemanip/queue"
)

// MaxLineLength bounds one reported line; longer lines are split
const MaxLineLength = 128

// Config holds the module identity and the pass-through poll interval
type Config struct {
	Name string
	PIN  string
	Poll time.Duration
}

// DefaultConfig returns the stock module settings
func DefaultConfig() Config {
	return Config{
		Name: "VOICE_MANIP",
		PIN:  "0492",
		Poll: 100 * time.Millisecond,
	}
}

// Commands returns the hands-free configuration sequence for the module
func Commands(cfg Config) []string {
	return []string{
		"SET CONTROL ECHO 4",
		"SET BT NAME " + cfg.Name,
		"SET CONTROL AUTOCALL",
		"SET CONTROL CD 4 0",
		"SET BT PAGEMODE 4 2000 1",
		"SET BT CLASS ff0408",
		"SET BT ROLE 0 f 7d00",
		"SET BT AUTH * " + cfg.PIN,
		"SET PROFILE SPP",
		"SET PROFILE HFP ON",
	}
}

// Configure sends the configuration sequence, one command per line
func Configure(w io.Writer, cfg Config) error {
	for _, cmd := range Commands(cfg) {
		if _, err := io.WriteString(w, cmd+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// LineSink receives each complete line reported by the module
type LineSink func(line string)

// Task configures the module then relays its output to a sink
type Task struct {
	rw   io.ReadWriter
	cfg  Config
	sink LineSink

	line *queue.Ring[byte]
}

// NewTask creates a link task over rw. A nil sink sends lines to the debug log.
func NewTask(rw io.ReadWriter, cfg Config, sink LineSink) *Task {
	if sink == nil {
		sink = func(line string) { core.DebugPrintln("[LINK] " + line) }
	}
	if cfg.Poll <= 0 {
		cfg.Poll = DefaultConfig().Poll
	}
	return &Task{
		rw:   rw,
		cfg:  cfg,
		sink: sink,
		line: queue.NewRing[byte](MaxLineLength),
	}
}

// Run sends the handshake and then polls the module until ctx is done
func (t *Task) Run(ctx context.Context) error {
	if err := Configure(t.rw, t.cfg); err != nil {
		return err
	}
	return t.PassThrough(ctx)
}

// PassThrough reads until the stream runs dry, emits complete lines, sleeps
// for the poll interval and repeats
func (t *Task) PassThrough(ctx context.Context) error {
	chunk := make([]byte, 64)
	ticker := time.NewTicker(t.cfg.Poll)
	defer ticker.Stop()

	for {
		if err := t.drain(chunk); err != nil {
			t.flush()
			return err
		}

		select {
		case <-ctx.Done():
			t.flush()
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// drain consumes everything currently readable
func (t *Task) drain(chunk []byte) error {
	for {
		n, err := t.rw.Read(chunk)
		for _, b := range chunk[:n] {
			t.feed(b)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if n == 0 {
			return nil
		}
	}
}

func (t *Task) feed(b byte) {
	switch b {
	case '\r':
		return
	case '\n':
		t.flush()
		return
	}
	if t.line.IsFull() {
		t.flush()
	}
	t.line.Push(b)
}

// flush emits the pending partial line, if any
func (t *Task) flush() {
	if t.line.IsEmpty() {
		return
	}
	t.sink(string(t.line.Data()))
	t.line.Reset()
}
