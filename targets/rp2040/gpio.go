//go:build rp2040

package main

import (
	"machine"
	"runtime"
	"sync/atomic"
	"time"

	"voicemanip/core"
)

// debounce is the minimum spacing between two accepted edges on one pin
const debounce = 30 * time.Millisecond

// RPGPIODriver implements the GPIODriver interface for RP2040.
//
// Edge interrupts only latch a pending bit; the handlers run later from
// DispatchEdges, outside interrupt context, so they may talk to the codec.
type RPGPIODriver struct {
	// Track configured pins to prevent conflicts
	configuredPins map[core.GPIOPin]machine.Pin

	handlers  [32]core.EdgeHandler
	lastEdge  [32]int64
	pending   atomic.Uint32 // bit per pin with an undispatched edge
	dropEdges atomic.Uint32 // edges merged into one already pending
}

// NewRPGPIODriver creates a new RP2040 GPIO driver
func NewRPGPIODriver() *RPGPIODriver {
	return &RPGPIODriver{
		configuredPins: make(map[core.GPIOPin]machine.Pin),
	}
}

func (d *RPGPIODriver) ConfigureInputPullUp(pin core.GPIOPin) error {
	return d.configureInput(pin, machine.PinInputPullup)
}

func (d *RPGPIODriver) ConfigureInputPullDown(pin core.GPIOPin) error {
	return d.configureInput(pin, machine.PinInputPulldown)
}

func (d *RPGPIODriver) configureInput(pin core.GPIOPin, mode machine.PinMode) error {
	if pin >= 30 {
		return machine.ErrInvalidInputPin
	}
	if _, exists := d.configuredPins[pin]; exists {
		// Already configured, this is OK
		return nil
	}

	machinePin := d.pinNumberToMachinePin(pin)
	machinePin.Configure(machine.PinConfig{Mode: mode})
	d.configuredPins[pin] = machinePin
	return nil
}

// SetEdgeHandler arms the falling edge of a pulled-up button
func (d *RPGPIODriver) SetEdgeHandler(pin core.GPIOPin, h core.EdgeHandler) error {
	machinePin, exists := d.configuredPins[pin]
	if !exists {
		return machine.ErrInvalidInputPin
	}
	d.handlers[pin] = h

	bit := uint32(1) << pin
	return machinePin.SetInterrupt(machine.PinFalling, func(machine.Pin) {
		now := time.Now().UnixNano()
		if now-d.lastEdge[pin] < int64(debounce) {
			return
		}
		d.lastEdge[pin] = now
		for {
			old := d.pending.Load()
			if old&bit != 0 {
				d.dropEdges.Add(1)
				return
			}
			if d.pending.CompareAndSwap(old, old|bit) {
				return
			}
		}
	})
}

func (d *RPGPIODriver) ReadPin(pin core.GPIOPin) bool {
	machinePin, exists := d.configuredPins[pin]
	if !exists {
		// Pin not configured
		return false
	}
	return machinePin.Get()
}

// DispatchEdges runs the handlers of latched edges, lowest pin first,
// until stop is closed
func (d *RPGPIODriver) DispatchEdges(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}

		mask := d.pending.Swap(0)
		for pin := core.GPIOPin(0); mask != 0; pin++ {
			if mask&1 != 0 && d.handlers[pin] != nil {
				d.handlers[pin]()
			}
			mask >>= 1
		}
		runtime.Gosched()
	}
}

// pinNumberToMachinePin converts a pin to a machine.Pin.
// For RP2040, pins map directly to GPIO numbers.
func (d *RPGPIODriver) pinNumberToMachinePin(pin core.GPIOPin) machine.Pin {
	return machine.Pin(pin)
}
