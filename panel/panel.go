// Package panel is the terminal front panel of the simulator: the 16x2
// character display, the four buttons, the routing switch and an output
// level meter.
package panel

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"voicemanip/core"
	"voicemanip/display"
)

const (
	lcdX      = 2
	lcdY      = 1
	meterX    = 2
	meterY    = lcdY + 5
	meterLen  = 32
	helpY     = meterY + 3
	logY      = helpY + 2
	logLines  = 8
	refreshHz = 10
)

// Device is the hardware the panel operates
type Device interface {
	Press(b core.Button) bool
	SetMode(m core.Mode)
	Mode() core.Mode
	Peak() float64
	Stats() core.StatsSnapshot
}

// Panel draws the front panel and turns keys into button edges.
// It implements display.Screen.
type Panel struct {
	screen tcell.Screen
	dev    Device
	logs   *LogBuffer

	mu    sync.Mutex
	lines [2]string
}

var _ display.Screen = (*Panel)(nil)

var (
	styleDefault = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleLCD     = tcell.StyleDefault.Background(tcell.ColorDarkGreen).Foreground(tcell.ColorBlack)
	styleMeter   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// New creates a panel on an initialized screen. logs may be nil.
func New(screen tcell.Screen, dev Device, logs *LogBuffer) *Panel {
	screen.SetStyle(styleDefault)
	screen.Clear()
	return &Panel{
		screen: screen,
		dev:    dev,
		logs:   logs,
	}
}

// Show implements display.Screen
func (p *Panel) Show(top, bottom string) error {
	p.mu.Lock()
	p.lines = [2]string{top, bottom}
	p.mu.Unlock()
	p.Draw()
	return nil
}

// Lines returns what the character display shows
func (p *Panel) Lines() (top, bottom string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lines[0], p.lines[1]
}

// Run handles keys and refreshes the meter until ctx is done or the user quits
func (p *Panel) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		ticker := time.NewTicker(time.Second / refreshHz)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				p.screen.PostEvent(tcell.NewEventInterrupt(nil))
				return
			case <-ticker.C:
				p.screen.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}()

	p.Draw()
	for {
		ev := p.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			if !p.HandleKey(ev) {
				return nil
			}
		case *tcell.EventResize:
			p.screen.Sync()
		}
		p.Draw()
	}
}

// HandleKey applies one key press. It returns false when the user quits.
func (p *Panel) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		p.press(core.ButtonIncrease)
	case tcell.KeyDown:
		p.press(core.ButtonDecrease)
	case tcell.KeyRight, tcell.KeyTab:
		p.press(core.ButtonNext)
	case tcell.KeyLeft, tcell.KeyBacktab:
		p.press(core.ButtonPrevious)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case '+', '=':
			p.press(core.ButtonIncrease)
		case '-':
			p.press(core.ButtonDecrease)
		case 'n':
			p.press(core.ButtonNext)
		case 'p':
			p.press(core.ButtonPrevious)
		case 'm':
			next := core.ModeLink
			if p.dev.Mode() == core.ModeLink {
				next = core.ModeLocal
			}
			p.dev.SetMode(next)
			slog.Info("Routing switch", "mode", next.String())
		}
	}
	return true
}

func (p *Panel) press(b core.Button) {
	slog.Debug("Button press", "button", b.String())
	p.dev.Press(b)
}

// Draw repaints the whole panel
func (p *Panel) Draw() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.screen.Clear()

	// Character display with a one-cell bezel
	for y := 0; y < 4; y++ {
		for x := 0; x < display.Width+2; x++ {
			p.screen.SetContent(lcdX-1+x, lcdY-1+y, ' ', nil, styleLCD)
		}
	}
	p.drawText(lcdX, lcdY, core.PadRight(p.lines[0], display.Width), styleLCD)
	p.drawText(lcdX, lcdY+1, core.PadRight(p.lines[1], display.Width), styleLCD)

	mode := p.dev.Mode()
	p.drawText(lcdX+display.Width+3, lcdY, "Mode: "+mode.String(), styleDefault)

	stats := p.dev.Stats()
	p.drawText(lcdX+display.Width+3, lcdY+1, fmt.Sprintf("Samples: %d", stats.Samples), styleDim)
	if mode == core.ModeLink {
		p.drawText(lcdX+display.Width+3, lcdY+2, fmt.Sprintf("Link holds: %d drops: %d", stats.LinkHolds, stats.LinkDrops), styleDim)
	}

	p.drawText(meterX, meterY, "Out "+MeterBar(p.dev.Peak(), meterLen), styleMeter)

	p.drawText(2, helpY, "up/down: change  left/right: select  m: mode  q: quit", styleDim)

	if p.logs != nil {
		for i, entry := range p.logs.GetRecent(logLines) {
			p.drawText(2, logY+i, FormatLogEntry(entry), styleDim)
		}
	}

	p.screen.Show()
}

func (p *Panel) drawText(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		p.screen.SetContent(x+i, y, r, nil, style)
	}
}

// MeterBar renders a level in 0..1 as a bar of width cells
func MeterBar(level float64, width int) string {
	filled := int(level*float64(width) + 0.5)
	filled = max(0, min(width, filled))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
