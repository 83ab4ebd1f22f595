package panel

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voicemanip/core"
)

type fakeDevice struct {
	presses []core.Button
	mode    core.Mode
	peak    float64
}

func (f *fakeDevice) Press(b core.Button) bool {
	f.presses = append(f.presses, b)
	return true
}
func (f *fakeDevice) SetMode(m core.Mode)       { f.mode = m }
func (f *fakeDevice) Mode() core.Mode           { return f.mode }
func (f *fakeDevice) Peak() float64             { return f.peak }
func (f *fakeDevice) Stats() core.StatsSnapshot { return core.StatsSnapshot{Samples: 42} }

func newTestPanel(t *testing.T) (*Panel, tcell.SimulationScreen, *fakeDevice) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	dev := &fakeDevice{peak: 0.5}
	return New(screen, dev, nil), screen, dev
}

// row returns the text on screen row y
func row(screen tcell.SimulationScreen, y int) string {
	cells, width, _ := screen.GetContents()
	var sb strings.Builder
	for x := 0; x < width; x++ {
		c := cells[y*width+x]
		if len(c.Runes) > 0 {
			sb.WriteRune(c.Runes[0])
		} else {
			sb.WriteRune(' ')
		}
	}
	return sb.String()
}

func TestShowDrawsDisplay(t *testing.T) {
	p, screen, _ := newTestPanel(t)

	require.NoError(t, p.Show("Frequency Shift:", "-2"))

	assert.Contains(t, row(screen, lcdY), "Frequency Shift:")
	assert.Contains(t, row(screen, lcdY+1), "-2")
	assert.Contains(t, row(screen, lcdY), "Mode: local")
	assert.Contains(t, row(screen, lcdY+1), "Samples: 42")
	assert.Contains(t, row(screen, meterY), MeterBar(0.5, meterLen))

	top, bottom := p.Lines()
	assert.Equal(t, "Frequency Shift:", top)
	assert.Equal(t, "-2", bottom)
}

func TestHandleKeyMapsButtons(t *testing.T) {
	p, _, dev := newTestPanel(t)

	keys := []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone),
	}
	for _, k := range keys {
		assert.True(t, p.HandleKey(k))
	}

	assert.Equal(t, []core.Button{
		core.ButtonIncrease, core.ButtonDecrease, core.ButtonNext, core.ButtonPrevious,
		core.ButtonIncrease, core.ButtonNext,
	}, dev.presses)
}

func TestHandleKeyModeAndQuit(t *testing.T) {
	p, _, dev := newTestPanel(t)

	p.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone))
	assert.Equal(t, core.ModeLink, dev.mode)
	p.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone))
	assert.Equal(t, core.ModeLocal, dev.mode)

	assert.False(t, p.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, p.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestRunQuitsOnKey(t *testing.T) {
	p, screen, dev := newTestPanel(t)

	done := make(chan error, 1)
	go func() { done <- p.Run(context.Background()) }()

	screen.InjectKey(tcell.KeyUp, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("panel did not quit")
	}
	assert.Equal(t, []core.Button{core.ButtonIncrease}, dev.presses)
}

func TestRunStopsOnCancel(t *testing.T) {
	p, _, _ := newTestPanel(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("panel did not stop")
	}
}

func TestMeterBar(t *testing.T) {
	assert.Equal(t, "[....]", MeterBar(0, 4))
	assert.Equal(t, "[##..]", MeterBar(0.5, 4))
	assert.Equal(t, "[####]", MeterBar(3, 4))
}

func TestLogBufferHandler(t *testing.T) {
	buf := NewLogBuffer(2)
	logger := slog.New(NewLogBufferHandler(buf, slog.LevelInfo)).With("task", "link")

	logger.Debug("hidden")
	logger.Info("first")
	logger.Info("second", "n", 2)
	logger.Warn("third")

	recent := buf.GetRecent(0)
	require.Len(t, recent, 2)
	assert.Equal(t, "third task=link", recent[0].Message)
	assert.Equal(t, "second task=link n=2", recent[1].Message)
	assert.Contains(t, FormatLogEntry(recent[0]), "[WRN]")
}
