// Configuration record shared between the button handlers and the audio/display tasks
package core

import "sync/atomic"

// Slot selects which parameter the increase/decrease buttons act on
type Slot int32

const (
	SlotVolume        Slot = 1
	SlotEchoDelay     Slot = 2
	SlotEchoReduction Slot = 3
	SlotFreqShift     Slot = 4

	NumSlots = 4
)

// Parameter limits and defaults
const (
	MinVolume     = 91
	MaxVolume     = 127
	VolumeStep    = 3
	DefaultVolume = 109

	// Smaller echo delay values mean a longer audible delay
	MinEchoDelay     = 95
	MaxEchoDelay     = 4095
	EchoDelayStep    = 800
	DefaultEchoDelay = MaxEchoDelay

	EchoReductionOff     = 0
	EchoReductionOn      = 1
	DefaultEchoReduction = EchoReductionOn
)

// Params is the configuration record.
//
// Every field has exactly one writer: the handle returned for it by NewParams.
// Everyone else goes through the read accessors. Each field is a single
// atomic word so a reader never observes a torn value; no ordering is
// promised between different fields.
type Params struct {
	slot          atomic.Int32
	volume        atomic.Int32
	echoDelay     atomic.Int32
	echoReduction atomic.Int32
	shift         atomic.Int32 // ShiftLevel; primary and secondary steps derive from it
}

// Writers holds the only mutation handles for a Params record.
// Hand each one to the handler that owns the field and to nobody else.
type Writers struct {
	Slot          SlotWriter
	Volume        VolumeWriter
	EchoDelay     EchoDelayWriter
	EchoReduction EchoReductionWriter
	Shift         ShiftWriter
}

// NewParams creates a record initialized to the documented defaults.
// Call it before any interrupt source is armed.
func NewParams() (*Params, Writers) {
	p := &Params{}
	p.slot.Store(int32(SlotVolume))
	p.volume.Store(DefaultVolume)
	p.echoDelay.Store(DefaultEchoDelay)
	p.echoReduction.Store(DefaultEchoReduction)
	p.shift.Store(int32(ShiftLevelNone))

	return p, Writers{
		Slot:          SlotWriter{p: p},
		Volume:        VolumeWriter{p: p},
		EchoDelay:     EchoDelayWriter{p: p},
		EchoReduction: EchoReductionWriter{p: p},
		Shift:         ShiftWriter{p: p},
	}
}

func (p *Params) Slot() Slot             { return Slot(p.slot.Load()) }
func (p *Params) Volume() int32          { return p.volume.Load() }
func (p *Params) EchoDelay() int32       { return p.echoDelay.Load() }
func (p *Params) EchoReduction() int32   { return p.echoReduction.Load() }
func (p *Params) ShiftLevel() ShiftLevel { return ShiftLevel(p.shift.Load()) }

// ShiftSteps returns the phase accumulator steps (shift_primary, shift_secondary)
func (p *Params) ShiftSteps() (primary, secondary int32) {
	return p.ShiftLevel().Steps()
}

// Snapshot is a copy of the record taken field by field
type Snapshot struct {
	Slot           Slot
	Volume         int32
	EchoDelay      int32
	EchoReduction  int32
	ShiftLevel     ShiftLevel
	ShiftPrimary   int32
	ShiftSecondary int32
}

// Snapshot reads every field once. Fields may come from different
// handler invocations; no cross-field consistency is implied.
func (p *Params) Snapshot() Snapshot {
	level := p.ShiftLevel()
	primary, secondary := level.Steps()
	return Snapshot{
		Slot:           p.Slot(),
		Volume:         p.Volume(),
		EchoDelay:      p.EchoDelay(),
		EchoReduction:  p.EchoReduction(),
		ShiftLevel:     level,
		ShiftPrimary:   primary,
		ShiftSecondary: secondary,
	}
}

// SlotWriter owns active_slot
type SlotWriter struct{ p *Params }

func (w SlotWriter) Set(s Slot) { w.p.slot.Store(int32(s)) }

// VolumeWriter owns volume_level
type VolumeWriter struct{ p *Params }

func (w VolumeWriter) Set(v int32) { w.p.volume.Store(v) }

// EchoDelayWriter owns echo_delay
type EchoDelayWriter struct{ p *Params }

func (w EchoDelayWriter) Set(d int32) { w.p.echoDelay.Store(d) }

// EchoReductionWriter owns echo_reduction
type EchoReductionWriter struct{ p *Params }

func (w EchoReductionWriter) Set(r int32) { w.p.echoReduction.Store(r) }

// ShiftWriter owns the frequency shift pair
type ShiftWriter struct{ p *Params }

func (w ShiftWriter) Set(l ShiftLevel) { w.p.shift.Store(int32(l)) }
