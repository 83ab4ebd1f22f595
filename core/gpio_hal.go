package core

// GPIOPin identifies a hardware GPIO pin number
type GPIOPin uint32

// EdgeHandler runs in interrupt context when a watched input sees its edge.
// It must return quickly and must not block.
type EdgeHandler func()

// GPIODriver is the abstract GPIO interface that core code uses.
// Platform-specific implementations handle actual hardware control.
type GPIODriver interface {
	// ConfigureInputPullUp configures a pin as a digital input with pull-up resistor
	ConfigureInputPullUp(pin GPIOPin) error

	// ConfigureInputPullDown configures a pin as a digital input with pull-down resistor
	ConfigureInputPullDown(pin GPIOPin) error

	// SetEdgeHandler arms the pin's edge interrupt and routes it to h.
	// The driver acknowledges the edge before calling h.
	SetEdgeHandler(pin GPIOPin, h EdgeHandler) error

	// ReadPin reads the current pin level
	ReadPin(pin GPIOPin) bool
}

// Global singleton used by core code.
var gpioDriver GPIODriver

// SetGPIODriver is called by target-specific code to register its driver.
func SetGPIODriver(d GPIODriver) {
	gpioDriver = d
}

// MustGPIO returns the configured driver or panics if missing.
func MustGPIO() GPIODriver {
	if gpioDriver == nil {
		panic("GPIO driver not configured")
	}
	return gpioDriver
}

// Mode is the output routing selected by the hardware switch
type Mode uint8

const (
	ModeLocal Mode = iota // microphone to speakers
	ModeLink              // microphone to the link, link to speakers
)

func (m Mode) String() string {
	if m == ModeLink {
		return "link"
	}
	return "local"
}

// ModeSwitch reports the current position of the routing switch
type ModeSwitch interface {
	Mode() Mode
}

// PinModeSwitch reads the routing switch from a GPIO level: high is local
type PinModeSwitch struct {
	gpio GPIODriver
	Pin  GPIOPin
}

// NewPinModeSwitch configures pin as a pulled-up input on gpio.
// The switch keeps reading that driver.
func NewPinModeSwitch(gpio GPIODriver, pin GPIOPin) (*PinModeSwitch, error) {
	if err := gpio.ConfigureInputPullUp(pin); err != nil {
		return nil, err
	}
	return &PinModeSwitch{gpio: gpio, Pin: pin}, nil
}

func (s *PinModeSwitch) Mode() Mode {
	if s.gpio.ReadPin(s.Pin) {
		return ModeLocal
	}
	return ModeLink
}
