// Package config holds the board and simulator configuration
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"voicemanip/core"
	"voicemanip/display"
	"voicemanip/link"
)

// ErrInvalidPin reports a pin name that is not of the form "gpioN"
var ErrInvalidPin = errors.New("invalid pin name")

// ErrDuplicatePin reports two inputs wired to the same pin
var ErrDuplicatePin = errors.New("pin assigned twice")

// ErrInvalidMode reports a routing mode other than "local" or "link"
var ErrInvalidMode = errors.New("invalid routing mode")

// PinConfig names the GPIO pins of the front panel
type PinConfig struct {
	Increase   string // Button 0
	Decrease   string // Button 1
	Next       string // Button 2
	Previous   string // Button 3
	ModeSwitch string // High selects local monitoring
}

// LinkConfig describes the wireless link module
type LinkConfig struct {
	Name   string // Advertised device name
	PIN    string // Pairing PIN
	Device string // Serial device on the host (empty = simulated)
	Baud   int    // UART baud rate
	PollMS int    // Pass-through poll interval
}

// DisplayConfig describes the character display
type DisplayConfig struct {
	BannerTop    string
	BannerBottom string
	BannerHoldMS int
}

// AudioConfig describes the audio path
type AudioConfig struct {
	SampleRate    int     // Codec sample rate (Hz)
	ToneHz        float64 // Simulated microphone tone
	ToneAmplitude float64 // Peak of the simulated tone, 0.0-1.0
	QueueDepth    int     // Depth of each simulated coprocessor queue
	Speaker       bool    // Play the output on the host sound device
}

// Config is the complete device configuration
type Config struct {
	Pins    PinConfig
	Link    LinkConfig
	Display DisplayConfig
	Audio   AudioConfig

	// Mode is the initial routing switch position: "local" or "link"
	Mode string

	// EchoReductionFallthrough couples the echo reduction buttons to the
	// frequency shift ladder like the stock firmware
	EchoReductionFallthrough bool
}

// LoadConfig parses a JSON configuration and fills in defaults
func LoadConfig(jsonData []byte) (*Config, error) {
	var config Config

	err := json.Unmarshal(jsonData, &config)
	if err != nil {
		return nil, err
	}

	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadFile reads and parses a JSON configuration file
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := LoadConfig(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// applyDefaults fills in missing configuration values
func applyDefaults(config *Config) {
	def := DefaultConfig()

	if config.Pins.Increase == "" {
		config.Pins.Increase = def.Pins.Increase
	}
	if config.Pins.Decrease == "" {
		config.Pins.Decrease = def.Pins.Decrease
	}
	if config.Pins.Next == "" {
		config.Pins.Next = def.Pins.Next
	}
	if config.Pins.Previous == "" {
		config.Pins.Previous = def.Pins.Previous
	}
	if config.Pins.ModeSwitch == "" {
		config.Pins.ModeSwitch = def.Pins.ModeSwitch
	}

	if config.Link.Name == "" {
		config.Link.Name = def.Link.Name
	}
	if config.Link.PIN == "" {
		config.Link.PIN = def.Link.PIN
	}
	if config.Link.Baud == 0 {
		config.Link.Baud = def.Link.Baud
	}
	if config.Link.PollMS == 0 {
		config.Link.PollMS = def.Link.PollMS
	}

	if config.Display.BannerTop == "" && config.Display.BannerBottom == "" {
		config.Display.BannerTop = def.Display.BannerTop
		config.Display.BannerBottom = def.Display.BannerBottom
	}
	if config.Display.BannerHoldMS == 0 {
		config.Display.BannerHoldMS = def.Display.BannerHoldMS
	}

	if config.Audio.SampleRate == 0 {
		config.Audio.SampleRate = def.Audio.SampleRate
	}
	if config.Audio.ToneHz == 0 {
		config.Audio.ToneHz = def.Audio.ToneHz
	}
	if config.Audio.ToneAmplitude == 0 {
		config.Audio.ToneAmplitude = def.Audio.ToneAmplitude
	}
	if config.Audio.QueueDepth == 0 {
		config.Audio.QueueDepth = def.Audio.QueueDepth
	}

	if config.Mode == "" {
		config.Mode = def.Mode
	}
}

// DefaultConfig returns the stock board configuration
func DefaultConfig() *Config {
	return &Config{
		Pins: PinConfig{
			Increase:   "gpio2",
			Decrease:   "gpio3",
			Next:       "gpio4",
			Previous:   "gpio5",
			ModeSwitch: "gpio6",
		},
		Link: LinkConfig{
			Name:   "VOICE_MANIP",
			PIN:    "0492",
			Baud:   115200,
			PollMS: 100,
		},
		Display: DisplayConfig{
			BannerTop:    "Voice",
			BannerBottom: "Manipulator",
			BannerHoldMS: 2000,
		},
		Audio: AudioConfig{
			SampleRate:    8000,
			ToneHz:        440,
			ToneAmplitude: 0.5,
			QueueDepth:    16,
		},
		Mode: "local",
	}
}

// Validate checks pin names and assignments and the routing mode
func (c *Config) Validate() error {
	buttons, err := c.ButtonPins()
	if err != nil {
		return err
	}
	modePin, err := ParsePin(c.Pins.ModeSwitch)
	if err != nil {
		return err
	}
	used := make(map[core.GPIOPin]string, core.NumButtons+1)
	for i, pin := range buttons {
		if other, ok := used[pin]; ok {
			return fmt.Errorf("%w: gpio%d is %s and %s", ErrDuplicatePin, pin, other, core.Button(i))
		}
		used[pin] = core.Button(i).String()
	}
	if other, ok := used[modePin]; ok {
		return fmt.Errorf("%w: gpio%d is %s and the mode switch", ErrDuplicatePin, modePin, other)
	}
	if _, err := ParseMode(c.Mode); err != nil {
		return err
	}
	if c.Audio.ToneAmplitude < 0 || c.Audio.ToneAmplitude > 1 {
		return fmt.Errorf("tone amplitude %g out of range 0-1", c.Audio.ToneAmplitude)
	}
	return nil
}

// ButtonPins returns the button pins indexed by core.Button
func (c *Config) ButtonPins() ([core.NumButtons]core.GPIOPin, error) {
	var pins [core.NumButtons]core.GPIOPin
	names := [core.NumButtons]string{
		core.ButtonIncrease: c.Pins.Increase,
		core.ButtonDecrease: c.Pins.Decrease,
		core.ButtonNext:     c.Pins.Next,
		core.ButtonPrevious: c.Pins.Previous,
	}
	for i, name := range names {
		pin, err := ParsePin(name)
		if err != nil {
			return pins, err
		}
		pins[i] = pin
	}
	return pins, nil
}

// ModeSwitchPin returns the routing switch pin
func (c *Config) ModeSwitchPin() (core.GPIOPin, error) {
	return ParsePin(c.Pins.ModeSwitch)
}

// LinkTask returns the link task settings
func (c *Config) LinkTask() link.Config {
	return link.Config{
		Name: c.Link.Name,
		PIN:  c.Link.PIN,
		Poll: time.Duration(c.Link.PollMS) * time.Millisecond,
	}
}

// DisplayTask returns the display task settings
func (c *Config) DisplayTask() display.Config {
	return display.Config{
		Banner:     [2]string{c.Display.BannerTop, c.Display.BannerBottom},
		BannerHold: time.Duration(c.Display.BannerHoldMS) * time.Millisecond,
	}
}

// ParsePin converts a pin name such as "gpio4" to its number
func ParsePin(name string) (core.GPIOPin, error) {
	digits, ok := strings.CutPrefix(strings.ToLower(name), "gpio")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPin, name)
	}
	n, err := strconv.ParseUint(digits, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPin, name)
	}
	return core.GPIOPin(n), nil
}

// ParseMode converts "local" or "link" to a routing mode
func ParseMode(s string) (core.Mode, error) {
	switch strings.ToLower(s) {
	case "local":
		return core.ModeLocal, nil
	case "link":
		return core.ModeLink, nil
	}
	return core.ModeLocal, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}
