package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "voicemanip-sim"
	app.Description = "Runs the voice manipulator controller against simulated hardware"
	app.Usage = "voicemanip-sim [options]"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "Path to a JSON board configuration",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run without the terminal panel",
		},
		cli.IntFlag{
			Name:  "samples",
			Usage: "Number of pipeline iterations to run in headless mode (required for headless)",
			Value: 0,
		},
		cli.StringFlag{
			Name:  "press",
			Usage: "Comma separated buttons to press before a headless run (increase,decrease,next,previous)",
		},
		cli.StringFlag{
			Name:  "mode",
			Usage: "Initial routing switch position: local or link",
		},
		cli.BoolFlag{
			Name:  "speaker",
			Usage: "Play the output on the host sound device",
		},
		cli.BoolFlag{
			Name:  "fallthrough",
			Usage: "Echo reduction buttons also step the frequency shift",
		},
		cli.StringFlag{
			Name:  "link-device",
			Usage: "Serial device of a real link module (e.g. /dev/ttyUSB0)",
		},
		cli.IntFlag{
			Name:  "link-baud",
			Usage: "Baud rate of the link module",
		},
		cli.StringFlag{
			Name:  "log",
			Usage: "Also write logs to this file",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging",
		},
	}
	app.Action = runSimulator

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running simulator", "error", err)
		os.Exit(1)
	}
}
