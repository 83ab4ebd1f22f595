package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli"

	"voicemanip/config"
	"voicemanip/core"
	"voicemanip/display"
	"voicemanip/host/serial"
	"voicemanip/panel"
	"voicemanip/sim"
	"voicemanip/sim/speaker"
)

func runSimulator(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	if c.Bool("headless") {
		return runHeadless(c, cfg)
	}
	return runInteractive(c, cfg)
}

// loadConfig reads the config file, if any, and applies flag overrides
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if mode := c.String("mode"); mode != "" {
		cfg.Mode = mode
	}
	if c.Bool("speaker") {
		cfg.Audio.Speaker = true
	}
	if c.Bool("fallthrough") {
		cfg.EchoReductionFallthrough = true
	}
	if dev := c.String("link-device"); dev != "" {
		cfg.Link.Device = dev
	}
	if baud := c.Int("link-baud"); baud > 0 {
		cfg.Link.Baud = baud
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parsePresses turns "next,next,decrease" into buttons
func parsePresses(list string) ([]core.Button, error) {
	var buttons []core.Button
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		b, ok := core.ParseButton(name)
		if !ok {
			return nil, fmt.Errorf("unknown button %q", name)
		}
		buttons = append(buttons, b)
	}
	return buttons, nil
}

// setupLogging installs the default logger and routes core debug output to it.
// The returned function closes the log file, if one was opened.
func setupLogging(c *cli.Context, handler slog.Handler) (func(), error) {
	level := slog.LevelInfo
	if c.Bool("debug") {
		level = slog.LevelDebug
	}

	closeFn := func() {}
	if path := c.String("log"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		closeFn = func() { f.Close() }
		if handler == nil {
			handler = slog.NewTextHandler(io.MultiWriter(os.Stderr, f), &slog.HandlerOptions{Level: level})
		} else {
			handler = teeHandler{handler, slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})}
		}
	}
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))

	core.SetDebugWriter(func(s string) { slog.Debug(s) })
	core.SetDebugEnabled(c.Bool("debug"))
	core.InitAsyncDebug()
	return closeFn, nil
}

func runHeadless(c *cli.Context, cfg *config.Config) error {
	samples := c.Int("samples")
	if samples <= 0 {
		return errors.New("headless mode requires --samples option with a positive value")
	}
	presses, err := parsePresses(c.String("press"))
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(c, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	board, err := sim.NewBoard(cfg)
	if err != nil {
		return err
	}

	for _, b := range presses {
		board.Press(b)
	}

	var sink sim.Sink
	if cfg.Audio.Speaker {
		spk, err := speaker.NewSpeaker(cfg.Audio.SampleRate)
		if err != nil {
			slog.Error("Speaker unavailable", "error", err)
		} else {
			defer spk.Close()
			sink = spk
		}
	}

	slog.Info("Running headless mode", "samples", samples, "presses", len(presses), "mode", board.Mode().String())
	collected := board.RunSamples(samples, sink)

	snap := board.Params.Snapshot()
	top, bottom := display.Render(snap)
	stats := board.Stats()
	slog.Info("Final configuration",
		"slot", snap.Slot,
		"volume", snap.Volume,
		"codec_volume", board.Codec.Volume(),
		"echo_delay", snap.EchoDelay,
		"echo_reduction", snap.EchoReduction,
		"shift_primary", snap.ShiftPrimary,
		"shift_secondary", snap.ShiftSecondary,
		"display", top+" "+bottom)
	slog.Info("Headless execution completed",
		"samples", stats.Samples,
		"output_words", collected,
		"peak", board.Peak(),
		"link_holds", stats.LinkHolds,
		"link_drops", stats.LinkDrops,
		"mode_changes", stats.ModeChanges)

	core.DumpEvents()
	return nil
}

func runInteractive(c *cli.Context, cfg *config.Config) error {
	logs := panel.NewLogBuffer(100)
	level := slog.LevelInfo
	if c.Bool("debug") {
		level = slog.LevelDebug
	}
	closeLog, err := setupLogging(c, panel.NewLogBufferHandler(logs, level))
	if err != nil {
		return err
	}
	defer closeLog()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}
	defer screen.Fini()

	board, err := sim.NewBoard(cfg)
	if err != nil {
		return err
	}
	front := panel.New(screen, board, logs)

	opts := sim.RunOptions{Screen: front}
	if cfg.Audio.Speaker {
		spk, err := speaker.NewSpeaker(cfg.Audio.SampleRate)
		if err != nil {
			slog.Error("Speaker unavailable", "error", err)
		} else {
			defer spk.Close()
			opts.Sink = spk
		}
	}

	if cfg.Link.Device != "" {
		serialCfg := serial.DefaultConfig(cfg.Link.Device)
		serialCfg.Baud = cfg.Link.Baud
		port, err := serial.Open(serialCfg)
		if err != nil {
			// The rest of the device keeps running without the link module
			slog.Error("Link module unavailable", "device", cfg.Link.Device, "error", err)
		} else {
			defer port.Close()
			opts.LinkPort = port
			opts.LinkSink = func(line string) { slog.Info("Link module", "line", line) }
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	done := make(chan struct{})
	go func() {
		board.Run(ctx, opts)
		close(done)
	}()

	slog.Info("Simulator started", "mode", board.Mode().String())
	err = front.Run(ctx)
	cancel()
	<-done

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// teeHandler sends every record to two handlers
type teeHandler struct {
	a, b slog.Handler
}

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return t.a.Enabled(ctx, level) || t.b.Enabled(ctx, level)
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	if t.a.Enabled(ctx, r.Level) {
		if err := t.a.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	if t.b.Enabled(ctx, r.Level) {
		return t.b.Handle(ctx, r)
	}
	return nil
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return teeHandler{t.a.WithAttrs(attrs), t.b.WithAttrs(attrs)}
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	return teeHandler{t.a.WithGroup(name), t.b.WithGroup(name)}
}
