//go:build rp2040

package main

import (
	"context"
	"machine"
	"runtime"
	"time"

	"voicemanip/config"
	"voicemanip/core"
	"voicemanip/display"
	"voicemanip/dsp"
	"voicemanip/link"
	"voicemanip/targets/pio"
)

// Board wiring not covered by config.Config
var (
	codecSDA = machine.GPIO14
	codecSCL = machine.GPIO15

	codecBus = pio.BusPins{
		BitClock:   machine.GPIO16,
		FrameClock: machine.GPIO17,
		DataOut:    machine.GPIO18,
		DataIn:     machine.GPIO19,
	}
	linkBus = pio.BusPins{
		BitClock:   machine.GPIO20,
		FrameClock: machine.GPIO21,
		DataOut:    machine.GPIO22,
		DataIn:     machine.GPIO26,
	}

	lcdData = [4]machine.Pin{machine.GPIO10, machine.GPIO11, machine.GPIO12, machine.GPIO13}
	lcdE    = machine.GPIO27
	lcdRS   = machine.GPIO28

	linkTX = machine.GPIO0
	linkRX = machine.GPIO1
)

// Codec digital interface: master, I2S, 16 bit; 8 kHz from a 12.288 MHz crystal
const (
	codecDigitalFormat   = 0x42
	codecSamplingControl = 0x0c
)

func main() {
	// Disable watchdog on boot to clear any previous state
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0}); err != nil {
		return
	}

	InitDebugUART()

	cfg := config.DefaultConfig()

	gpio := NewRPGPIODriver()
	core.SetGPIODriver(gpio)

	params, writers := core.NewParams()
	redraw := core.NewSignal(true)

	codec, err := NewWM8731(machine.I2C1, codecSDA, codecSCL)
	if err == nil {
		err = initCodec(codec)
	}
	var codecCtl core.CodecConfig
	if err != nil {
		core.RecordEvent(core.EvtCodecFail, 0, 0)
		core.DebugPrintln("[BOOT] codec control unavailable: " + err.Error())
	} else {
		codecCtl = codec
	}

	controls := core.NewControls(params, writers, codecCtl, redraw)
	controls.SetEchoReductionFallthrough(cfg.EchoReductionFallthrough)

	buttons, _ := cfg.ButtonPins()
	if err := controls.Bind(core.MustGPIO(), buttons); err != nil {
		core.DebugPrintln("[BOOT] button setup failed: " + err.Error())
	}
	modePin, _ := cfg.ModeSwitchPin()
	mode, err := core.NewPinModeSwitch(gpio, modePin)
	if err != nil {
		core.DebugPrintln("[BOOT] mode switch setup failed: " + err.Error())
		idleForever()
	}

	ctx := context.Background()

	go gpio.DispatchEdges(ctx.Done())

	if lcd, err := NewLCD(lcdData, lcdE, lcdRS); err != nil {
		core.DebugPrintln("[BOOT] display unavailable: " + err.Error())
	} else {
		task := display.NewTask(lcd, params, redraw, cfg.DisplayTask())
		go task.Run(ctx)
	}

	if uart, err := openLinkUART(cfg.Link.Baud); err != nil {
		core.DebugPrintln("[BOOT] link module UART unavailable: " + err.Error())
	} else {
		task := link.NewTask(uart, cfg.LinkTask(), func(line string) {
			core.DebugAsync("[LINK] " + line)
		})
		go func() {
			if err := task.Run(ctx); err != nil {
				core.DebugAsync("[LINK] stopped: " + err.Error())
			}
		}()
	}

	audio, err := pio.NewSerialAudioBus(0, codecBus).OpenCodec()
	if err != nil {
		core.DebugPrintln("[BOOT] codec audio unavailable: " + err.Error())
		idleForever()
	}
	linkPCM, err := pio.NewSerialAudioBus(1, linkBus).OpenLink()
	if err != nil {
		core.DebugPrintln("[BOOT] link audio unavailable: " + err.Error())
		idleForever()
	}

	shifter := dsp.NewShifter(pio.FIFODepth)
	echo := dsp.NewEcho(pio.FIFODepth, params.EchoReduction)

	pipeline := core.NewPipeline(params, mode, core.PipelinePorts{
		Shifter: shifter.Ports(),
		Echo:    echo.Ports(),
		Audio:   audio,
		Link:    linkPCM,
	})
	// The scheduler is cooperative: yield while the codec has nothing for us
	pipeline.SetIdle(runtime.Gosched)

	core.DebugPrintln("[BOOT] running, mode " + mode.Mode().String())
	pipeline.Run(ctx)
}

func initCodec(c *WM8731) error {
	if err := core.InitCodec(c); err != nil {
		return err
	}
	if err := c.WriteRegister(core.RegDigitalFormat, codecDigitalFormat); err != nil {
		return err
	}
	if err := c.WriteRegister(core.RegSamplingControl, codecSamplingControl); err != nil {
		return err
	}
	return c.WriteRegister(core.RegActive, 1)
}

func openLinkUART(baud int) (*machine.UART, error) {
	uart := machine.UART0
	err := uart.Configure(machine.UARTConfig{
		BaudRate: uint32(baud),
		TX:       linkTX,
		RX:       linkRX,
	})
	if err != nil {
		return nil, err
	}
	return uart, nil
}

func idleForever() {
	for {
		time.Sleep(time.Second)
	}
}
