//go:build rp2040

package pio

// Serial audio ports on the PIO blocks.
//
// The codec and the link module are both clock masters: they drive the bit
// clock and the frame (left/right) clock, and the RP2040 shifts one 16-bit
// word per frame half. Each direction and channel gets its own state
// machine, so every FIFO the pipeline sees maps onto one hardware FIFO.
//
// Transmit program (one word per frame half, MSB first):
//
//	pull block
//	wait <half> gpio frame
//	set x, 15
//	bit: wait 0 gpio bclk
//	out pins, 1
//	wait 1 gpio bclk
//	jmp x--, bit
//
// Receive program:
//
//	wait <half> gpio frame
//	set x, 15
//	bit: wait 1 gpio bclk
//	in pins, 1
//	wait 0 gpio bclk
//	jmp x--, bit
//	push block

import (
	"errors"
	"machine"

	"voicemanip/core"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

// FIFODepth is the depth of one state machine FIFO, in words
const FIFODepth = 4

const wordBits = 16

// ErrNoStateMachine is returned when every state machine of the block is taken
var ErrNoStateMachine = errors.New("no free PIO state machine")

// Half selects which frame clock level a state machine works in
type Half bool

const (
	LeftHalf  Half = false // frame clock low
	RightHalf Half = true  // frame clock high
)

// BusPins are the pins of one serial audio bus
type BusPins struct {
	BitClock   machine.Pin
	FrameClock machine.Pin
	DataOut    machine.Pin // RP2040 to device
	DataIn     machine.Pin // device to RP2040
}

// SerialAudioBus is one codec-style bus on a PIO block
type SerialAudioBus struct {
	pio  *rp2pio.PIO
	pins BusPins
}

// NewSerialAudioBus binds a bus to PIO block pioNum (0 or 1)
func NewSerialAudioBus(pioNum uint8, pins BusPins) *SerialAudioBus {
	hw := rp2pio.PIO0
	if pioNum != 0 {
		hw = rp2pio.PIO1
	}
	return &SerialAudioBus{pio: hw, pins: pins}
}

// Jump targets are relative to the program start; AddProgram relocates them
func buildTxProgram(pins BusPins, half Half) []uint16 {
	const bit = 3
	return []uint16{
		rp2pio.EncodePull(false, true),
		rp2pio.EncodeWaitGPIO(bool(half), uint8(pins.FrameClock)),
		rp2pio.EncodeSet(rp2pio.SrcDestX, wordBits-1),
		rp2pio.EncodeWaitGPIO(false, uint8(pins.BitClock)),
		rp2pio.EncodeOut(rp2pio.SrcDestPins, 1),
		rp2pio.EncodeWaitGPIO(true, uint8(pins.BitClock)),
		rp2pio.EncodeJmp(bit, rp2pio.JmpXNZeroDec),
	}
}

func buildRxProgram(pins BusPins, half Half) []uint16 {
	const bit = 2
	return []uint16{
		rp2pio.EncodeWaitGPIO(bool(half), uint8(pins.FrameClock)),
		rp2pio.EncodeSet(rp2pio.SrcDestX, wordBits-1),
		rp2pio.EncodeWaitGPIO(true, uint8(pins.BitClock)),
		rp2pio.EncodeIn(rp2pio.SrcDestPins, 1),
		rp2pio.EncodeWaitGPIO(false, uint8(pins.BitClock)),
		rp2pio.EncodeJmp(bit, rp2pio.JmpXNZeroDec),
		rp2pio.EncodePush(false, true),
	}
}

// OpenTx starts a transmit state machine for one channel
func (b *SerialAudioBus) OpenTx(half Half) (*TxPort, error) {
	sm, err := b.pio.ClaimStateMachine()
	if err != nil {
		return nil, ErrNoStateMachine
	}
	program := buildTxProgram(b.pins, half)
	offset, err := b.pio.AddProgram(program, -1)
	if err != nil {
		sm.Unclaim()
		return nil, err
	}

	b.pins.DataOut.Configure(machine.PinConfig{Mode: b.pio.PinMode()})

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetOutPins(b.pins.DataOut, 1)
	// MSB first: shift left, explicit pull, 16-bit words in the top half
	cfg.SetOutShift(false, false, wordBits)
	cfg.SetWrap(offset, offset+uint8(len(program))-1)
	cfg.SetClkDivIntFrac(1, 0)

	sm.Init(offset, cfg)
	sm.SetPindirsConsecutive(b.pins.DataOut, 1, true)
	sm.SetEnabled(true)
	return &TxPort{sm: sm}, nil
}

// OpenRx starts a receive state machine for one channel
func (b *SerialAudioBus) OpenRx(half Half) (*RxPort, error) {
	sm, err := b.pio.ClaimStateMachine()
	if err != nil {
		return nil, ErrNoStateMachine
	}
	program := buildRxProgram(b.pins, half)
	offset, err := b.pio.AddProgram(program, -1)
	if err != nil {
		sm.Unclaim()
		return nil, err
	}

	b.pins.DataIn.Configure(machine.PinConfig{Mode: b.pio.PinMode()})

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetInPins(b.pins.DataIn)
	cfg.SetInShift(false, false, wordBits)
	cfg.SetWrap(offset, offset+uint8(len(program))-1)
	cfg.SetClkDivIntFrac(1, 0)

	sm.Init(offset, cfg)
	sm.SetPindirsConsecutive(b.pins.DataIn, 1, false)
	sm.SetEnabled(true)
	return &RxPort{sm: sm}, nil
}

// TxPort is a core.Port over a transmit state machine's FIFO
type TxPort struct {
	sm rp2pio.StateMachine
}

func (p *TxPort) AvailableForWrite() int {
	return FIFODepth - int(p.sm.TxFIFOLevel())
}

func (p *TxPort) AvailableForRead() int { return 0 }

func (p *TxPort) Write(s core.Sample) {
	if p.sm.IsTxFIFOFull() {
		return
	}
	// Left-aligned so the first out shifts the MSB
	p.sm.TxPut(uint32(uint16(s)) << 16)
}

func (p *TxPort) Read() core.Sample { return 0 }

// RxPort is a core.Port over a receive state machine's FIFO
type RxPort struct {
	sm rp2pio.StateMachine
}

func (p *RxPort) AvailableForWrite() int { return 0 }

func (p *RxPort) AvailableForRead() int {
	return int(p.sm.RxFIFOLevel())
}

func (p *RxPort) Write(core.Sample) {}

func (p *RxPort) Read() core.Sample {
	if p.sm.IsRxFIFOEmpty() {
		return 0
	}
	// Shifted left 16 times: the word sits in the low half
	return core.Sample(int16(p.sm.RxGet()))
}

// OpenCodec starts the three codec channels the pipeline uses
func (b *SerialAudioBus) OpenCodec() (core.AudioCodec, error) {
	in, err := b.OpenRx(LeftHalf)
	if err != nil {
		return core.AudioCodec{}, err
	}
	left, err := b.OpenTx(LeftHalf)
	if err != nil {
		return core.AudioCodec{}, err
	}
	right, err := b.OpenTx(RightHalf)
	if err != nil {
		return core.AudioCodec{}, err
	}
	return core.AudioCodec{In: in, OutLeft: left, OutRight: right}, nil
}

// OpenLink starts the link module's mono PCM channel pair
func (b *SerialAudioBus) OpenLink() (core.LinkCodec, error) {
	tx, err := b.OpenTx(LeftHalf)
	if err != nil {
		return core.LinkCodec{}, err
	}
	rx, err := b.OpenRx(LeftHalf)
	if err != nil {
		return core.LinkCodec{}, err
	}
	return core.LinkCodec{Tx: tx, Rx: rx}, nil
}
