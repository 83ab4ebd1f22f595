//go:build rp2040

package main

import (
	"machine"

	"voicemanip/core"
)

var debugUART *machine.UART

// InitDebugUART routes core debug output to UART1 on GPIO8 (TX) and GPIO9 (RX).
// Baud rate: 115200
func InitDebugUART() {
	debugUART = machine.UART1

	err := debugUART.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GPIO8,
		RX:       machine.GPIO9,
	})
	if err != nil {
		core.SetDebugEnabled(false)
		return
	}

	core.SetDebugWriter(func(s string) {
		debugUART.Write([]byte(s))
		debugUART.Write([]byte("\r\n"))
	})
	core.SetDebugEnabled(true)
	core.InitAsyncDebug()

	core.DebugPrintln("=== Voice Manipulator Debug UART ===")
	core.DebugPrintln("Baud: 115200, TX=GPIO8, RX=GPIO9")
}
