package sim

import (
	"errors"
	"sync"

	"voicemanip/core"
)

// ErrPinNotInput is returned when arming an edge on an unconfigured pin
var ErrPinNotInput = errors.New("pin not configured as input")

// GPIO is a virtual GPIO bank. Press fires a pin's edge handler the way the
// edge interrupt would; SetLevel moves a level input such as the mode switch.
type GPIO struct {
	mu       sync.Mutex
	inputs   map[core.GPIOPin]bool
	levels   map[core.GPIOPin]bool
	handlers map[core.GPIOPin]core.EdgeHandler
}

// NewGPIO creates an empty bank
func NewGPIO() *GPIO {
	return &GPIO{
		inputs:   make(map[core.GPIOPin]bool),
		levels:   make(map[core.GPIOPin]bool),
		handlers: make(map[core.GPIOPin]core.EdgeHandler),
	}
}

func (g *GPIO) ConfigureInputPullUp(pin core.GPIOPin) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inputs[pin] = true
	g.levels[pin] = true
	return nil
}

func (g *GPIO) ConfigureInputPullDown(pin core.GPIOPin) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inputs[pin] = true
	g.levels[pin] = false
	return nil
}

func (g *GPIO) SetEdgeHandler(pin core.GPIOPin, h core.EdgeHandler) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.inputs[pin] {
		return ErrPinNotInput
	}
	g.handlers[pin] = h
	return nil
}

func (g *GPIO) ReadPin(pin core.GPIOPin) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.levels[pin]
}

// SetLevel drives a level input
func (g *GPIO) SetLevel(pin core.GPIOPin, high bool) {
	g.mu.Lock()
	g.levels[pin] = high
	g.mu.Unlock()
}

// Press delivers one edge on pin. Edges run one at a time, like interrupts
// of equal priority. It reports whether a handler was armed.
func (g *GPIO) Press(pin core.GPIOPin) bool {
	g.mu.Lock()
	h := g.handlers[pin]
	g.mu.Unlock()
	if h == nil {
		return false
	}
	pressMu.Lock()
	defer pressMu.Unlock()
	h()
	return true
}

// pressMu serializes edge handlers across the bank
var pressMu sync.Mutex
