package core

// Button identifies one of the four front-panel push buttons
type Button uint8

const (
	ButtonIncrease Button = iota
	ButtonDecrease
	ButtonNext
	ButtonPrevious

	NumButtons = 4
)

func (b Button) String() string {
	switch b {
	case ButtonIncrease:
		return "increase"
	case ButtonDecrease:
		return "decrease"
	case ButtonNext:
		return "next"
	case ButtonPrevious:
		return "previous"
	default:
		return "unknown"
	}
}

// ParseButton maps a button name back to its Button
func ParseButton(name string) (Button, bool) {
	for b := Button(0); b < NumButtons; b++ {
		if b.String() == name {
			return b, true
		}
	}
	return 0, false
}

// Controls is the parameter state machine driven by the button edges.
//
// It holds the writer handles of the configuration record, so it is the
// only component able to change a parameter. Each handler runs to
// completion without blocking and finishes by posting the redraw signal.
type Controls struct {
	params *Params
	w      Writers
	codec  CodecConfig
	redraw *Signal

	// echoReductionFallthrough makes the echo reduction handlers also take
	// one frequency shift step, as the stock firmware did
	echoReductionFallthrough bool

	handlers [NumButtons]func()
}

// NewControls takes ownership of the writer handles w.
// codec may be nil when no codec control port is present.
func NewControls(p *Params, w Writers, codec CodecConfig, redraw *Signal) *Controls {
	c := &Controls{
		params: p,
		w:      w,
		codec:  codec,
		redraw: redraw,
	}
	c.handlers = [NumButtons]func(){
		ButtonIncrease: c.Increase,
		ButtonDecrease: c.Decrease,
		ButtonNext:     c.Next,
		ButtonPrevious: c.Previous,
	}
	return c
}

// SetEchoReductionFallthrough enables the coupled echo reduction/frequency shift behavior
func (c *Controls) SetEchoReductionFallthrough(enabled bool) {
	c.echoReductionFallthrough = enabled
}

// Dispatch runs the handler for button b
func (c *Controls) Dispatch(b Button) {
	if b >= NumButtons {
		return
	}
	RecordEvent(EvtButton, int32(b), 0)
	c.handlers[b]()
}

// Bind configures each button pin as a pulled-up input and routes its edge
// interrupt to the matching handler. pins is indexed by Button.
func (c *Controls) Bind(gpio GPIODriver, pins [NumButtons]GPIOPin) error {
	for i, pin := range pins {
		b := Button(i)
		if err := gpio.ConfigureInputPullUp(pin); err != nil {
			return err
		}
		if err := gpio.SetEdgeHandler(pin, func() { c.Dispatch(b) }); err != nil {
			return err
		}
	}
	return nil
}

// Next selects the following parameter slot, wrapping from the last to the first
func (c *Controls) Next() {
	old := c.params.Slot()
	next := old + 1
	if next > NumSlots {
		next = SlotVolume
	}
	c.w.Slot.Set(next)
	RecordEvent(EvtSlot, int32(old), int32(next))
	c.redraw.Post()
}

// Previous selects the preceding parameter slot, wrapping from the first to the last
func (c *Controls) Previous() {
	old := c.params.Slot()
	prev := old - 1
	if prev < SlotVolume {
		prev = NumSlots
	}
	c.w.Slot.Set(prev)
	RecordEvent(EvtSlot, int32(old), int32(prev))
	c.redraw.Post()
}

// Increase raises the parameter in the active slot by one step
func (c *Controls) Increase() {
	switch c.params.Slot() {
	case SlotVolume:
		c.stepVolume(VolumeStep)
	case SlotEchoDelay:
		// A longer delay is a smaller stored value
		c.stepEchoDelay(-EchoDelayStep)
	case SlotEchoReduction:
		c.setEchoReduction(EchoReductionOn)
		if c.echoReductionFallthrough {
			c.stepShift(ShiftLevel.Up)
		}
	case SlotFreqShift:
		c.stepShift(ShiftLevel.Up)
	}
	c.redraw.Post()
}

// Decrease lowers the parameter in the active slot by one step
func (c *Controls) Decrease() {
	switch c.params.Slot() {
	case SlotVolume:
		c.stepVolume(-VolumeStep)
	case SlotEchoDelay:
		c.stepEchoDelay(EchoDelayStep)
	case SlotEchoReduction:
		c.setEchoReduction(EchoReductionOff)
		if c.echoReductionFallthrough {
			c.stepShift(ShiftLevel.Down)
		}
	case SlotFreqShift:
		c.stepShift(ShiftLevel.Down)
	}
	c.redraw.Post()
}

func (c *Controls) stepVolume(delta int32) {
	old := c.params.Volume()
	v := clampStep(old, delta, MinVolume, MaxVolume)
	if v == old {
		return
	}
	c.w.Volume.Set(v)
	RecordEvent(EvtVolume, old, v)

	if c.codec == nil {
		return
	}
	value := VolumeRegisterValue(v)
	if err := c.codec.WriteRegister(RegLeftHeadphone, value); err != nil {
		RecordEvent(EvtCodecFail, int32(RegLeftHeadphone), int32(value))
		DebugAsync("[CTRL] codec volume write failed: " + err.Error())
	}
}

func (c *Controls) stepEchoDelay(delta int32) {
	old := c.params.EchoDelay()
	d := clampStep(old, delta, MinEchoDelay, MaxEchoDelay)
	if d == old {
		return
	}
	c.w.EchoDelay.Set(d)
	RecordEvent(EvtEchoDelay, old, d)
}

func (c *Controls) setEchoReduction(r int32) {
	old := c.params.EchoReduction()
	if old == r {
		return
	}
	c.w.EchoReduction.Set(r)
	RecordEvent(EvtEchoReduction, old, r)
}

func (c *Controls) stepShift(step func(ShiftLevel) ShiftLevel) {
	old := c.params.ShiftLevel()
	l := step(old)
	if l == old {
		return
	}
	c.w.Shift.Set(l)
	RecordEvent(EvtShift, int32(old), int32(l))
}

// clampStep moves v by delta only while v is strictly inside [lo, hi] in the
// direction of travel, then pins the result to the range
func clampStep(v, delta, lo, hi int32) int32 {
	switch {
	case delta > 0 && v < hi:
		v += delta
		if v > hi {
			v = hi
		}
	case delta < 0 && v > lo:
		v += delta
		if v < lo {
			v = lo
		}
	}
	return v
}
