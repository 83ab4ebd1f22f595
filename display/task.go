package display

import (
	"context"
	"sync/atomic"
	"time"

	"voicemanip/core"
)

// SnapshotSource is the read-only view of the configuration record
type SnapshotSource interface {
	Snapshot() core.Snapshot
}

// Config holds the display task settings
type Config struct {
	Banner     [2]string
	BannerHold time.Duration
}

// DefaultConfig returns the stock banner and hold time
func DefaultConfig() Config {
	return Config{
		Banner:     [2]string{"Voice", "Manipulator"},
		BannerHold: 2 * time.Second,
	}
}

// Task redraws the screen each time the redraw signal is posted
type Task struct {
	screen Screen
	params SnapshotSource
	redraw *core.Signal
	cfg    Config

	frames atomic.Uint32
}

// NewTask creates a display task. The redraw signal should start pending so
// the first parameter is drawn right after the banner.
func NewTask(screen Screen, params SnapshotSource, redraw *core.Signal, cfg Config) *Task {
	return &Task{
		screen: screen,
		params: params,
		redraw: redraw,
		cfg:    cfg,
	}
}

// Frames returns how many parameter frames have been drawn
func (t *Task) Frames() uint32 {
	return t.frames.Load()
}

// Run shows the banner, then redraws on every signal until ctx is done
func (t *Task) Run(ctx context.Context) error {
	if err := t.screen.Show(t.cfg.Banner[0], t.cfg.Banner[1]); err != nil {
		core.DebugPrintln("[DISPLAY] banner: " + err.Error())
	}

	if t.cfg.BannerHold > 0 {
		hold := time.NewTimer(t.cfg.BannerHold)
		select {
		case <-ctx.Done():
			hold.Stop()
			return ctx.Err()
		case <-hold.C:
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.redraw.C():
		}
		t.Draw()
	}
}

// Draw renders the current snapshot once
func (t *Task) Draw() {
	top, bottom := Render(t.params.Snapshot())
	if err := t.screen.Show(top, bottom); err != nil {
		core.DebugPrintln("[DISPLAY] show: " + err.Error())
		return
	}
	t.frames.Add(1)
}
