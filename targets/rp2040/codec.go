//go:build rp2040

package main

import (
	"machine"
)

// wm8731Address is the codec's I2C address with CSB tied low
const wm8731Address = 0x1a

// WM8731 is the codec control port on an I2C bus. Registers are write-only:
// each write is 7 address bits and 9 data bits.
type WM8731 struct {
	bus *machine.I2C
	buf [2]byte
}

// NewWM8731 configures bus and returns the codec on it
func NewWM8731(bus *machine.I2C, sda, scl machine.Pin) (*WM8731, error) {
	err := bus.Configure(machine.I2CConfig{
		Frequency: 100_000,
		SDA:       sda,
		SCL:       scl,
	})
	if err != nil {
		return nil, err
	}
	return &WM8731{bus: bus}, nil
}

func (c *WM8731) WriteRegister(addr uint8, value uint16) error {
	c.buf[0] = addr<<1 | uint8(value>>8)&1
	c.buf[1] = uint8(value)
	return c.bus.Tx(wm8731Address, c.buf[:], nil)
}
