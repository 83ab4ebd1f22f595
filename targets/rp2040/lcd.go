//go:build rp2040

package main

import (
	"machine"

	"tinygo.org/x/drivers/hd44780"

	"voicemanip/core"
	"voicemanip/display"
)

// LCD is the 16x2 character display, wired in 4-bit mode with RW grounded
type LCD struct {
	dev  hd44780.Device
	line [2 * display.Width]byte
}

// NewLCD configures the display on data pins D4..D7
func NewLCD(data [4]machine.Pin, e, rs machine.Pin) (*LCD, error) {
	dev, err := hd44780.NewGPIO4Bit(data[:], e, rs, machine.NoPin)
	if err != nil {
		return nil, err
	}
	if err := dev.Configure(hd44780.Config{Width: display.Width, Height: 2}); err != nil {
		return nil, err
	}
	return &LCD{dev: dev}, nil
}

// Show replaces both lines
func (l *LCD) Show(top, bottom string) error {
	copy(l.line[:display.Width], core.PadRight(top, display.Width))
	copy(l.line[display.Width:], core.PadRight(bottom, display.Width))
	l.dev.SetCursor(0, 0)
	if _, err := l.dev.Write(l.line[:]); err != nil {
		return err
	}
	return l.dev.Display()
}
