package sim

import (
	"context"
	"io"
	"runtime"
	"sync"
	"time"

	"voicemanip/config"
	"voicemanip/core"
	"voicemanip/display"
	"voicemanip/dsp"
	"voicemanip/link"
)

// ClockPeriod is how often the real-time codec clock delivers input
const ClockPeriod = 10 * time.Millisecond

// collectEvery is how many pipeline iterations RunSamples lets pass between
// speaker FIFO drains
const collectEvery = 32

// Board is the complete simulated device: front panel, codec, DSP engines
// and link, wired to the controller the way the firmware wires them
type Board struct {
	GPIO    *GPIO
	Codec   *Codec
	Shifter *dsp.Shifter
	Echo    *dsp.Echo
	Link    *LinkLoopback

	Params   *core.Params
	Controls *core.Controls
	Redraw   *core.Signal
	Pipeline *core.Pipeline

	cfg     *config.Config
	buttons [core.NumButtons]core.GPIOPin
	modePin core.GPIOPin
}

// RunOptions selects the collaborators started by Run
type RunOptions struct {
	Screen   display.Screen // nil: no display task
	Sink     Sink           // nil: output is discarded
	LinkPort io.ReadWriter  // nil: no link module task
	LinkSink link.LineSink
}

// NewBoard builds a board from cfg and registers its GPIO bank as the
// global driver
func NewBoard(cfg *config.Config) (*Board, error) {
	buttons, err := cfg.ButtonPins()
	if err != nil {
		return nil, err
	}
	modePin, err := cfg.ModeSwitchPin()
	if err != nil {
		return nil, err
	}
	mode, err := config.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	b := &Board{
		GPIO: NewGPIO(),
		Codec: NewCodec(ToneConfig{
			SampleRate: cfg.Audio.SampleRate,
			Hz:         cfg.Audio.ToneHz,
			Amplitude:  cfg.Audio.ToneAmplitude,
		}),
		Shifter: dsp.NewShifter(cfg.Audio.QueueDepth),
		Link:    NewLinkLoopback(),
		Redraw:  core.NewSignal(true),
		cfg:     cfg,
		buttons: buttons,
		modePin: modePin,
	}
	core.SetGPIODriver(b.GPIO)

	params, writers := core.NewParams()
	b.Params = params
	b.Echo = dsp.NewEcho(cfg.Audio.QueueDepth, params.EchoReduction)

	if err := core.InitCodec(b.Codec); err != nil {
		return nil, err
	}

	b.Controls = core.NewControls(params, writers, b.Codec, b.Redraw)
	b.Controls.SetEchoReductionFallthrough(cfg.EchoReductionFallthrough)
	if err := b.Controls.Bind(b.GPIO, buttons); err != nil {
		return nil, err
	}

	modeSwitch, err := core.NewPinModeSwitch(b.GPIO, modePin)
	if err != nil {
		return nil, err
	}
	b.SetMode(mode)

	b.Pipeline = core.NewPipeline(params, modeSwitch, core.PipelinePorts{
		Shifter: b.Shifter.Ports(),
		Echo:    b.Echo.Ports(),
		Audio:   b.Codec.Ports(),
		Link:    b.Link.Ports(),
	})
	b.Pipeline.SetIdle(func() {
		b.Link.Pump()
		runtime.Gosched()
	})
	return b, nil
}

// Press delivers one edge on the button's pin
func (b *Board) Press(btn core.Button) bool {
	if btn >= core.NumButtons {
		return false
	}
	return b.GPIO.Press(b.buttons[btn])
}

// SetMode moves the routing switch
func (b *Board) SetMode(m core.Mode) {
	b.GPIO.SetLevel(b.modePin, m == core.ModeLocal)
}

// Mode reads the routing switch
func (b *Board) Mode() core.Mode {
	if b.GPIO.ReadPin(b.modePin) {
		return core.ModeLocal
	}
	return core.ModeLink
}

// RunSamples drives n pipeline iterations without a clock: each one gets a
// fresh input burst. It returns the number of output words collected.
func (b *Board) RunSamples(n int, sink Sink) int {
	collected := 0
	for i := 0; i < n; i++ {
		b.Codec.Tick(core.BurstLength)
		b.Pipeline.Step()
		b.Link.Pump()
		if (i+1)%collectEvery == 0 {
			collected += b.Codec.Collect(sink)
		}
	}
	return collected + b.Codec.Collect(sink)
}

// Run clocks the board in real time until ctx is done
func (b *Board) Run(ctx context.Context, opts RunOptions) {
	var wg sync.WaitGroup
	start := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	start(func() { b.Pipeline.Run(ctx) })
	start(func() { b.Codec.Run(ctx, ClockPeriod, opts.Sink) })

	if opts.Screen != nil {
		task := display.NewTask(opts.Screen, b.Params, b.Redraw, b.cfg.DisplayTask())
		start(func() { task.Run(ctx) })
	}

	if opts.LinkPort != nil {
		task := link.NewTask(opts.LinkPort, b.cfg.LinkTask(), opts.LinkSink)
		start(func() {
			if err := task.Run(ctx); err != nil && ctx.Err() == nil {
				core.DebugPrintln("[LINK] stopped: " + err.Error())
			}
		})
	}

	wg.Wait()
}

// Peak returns the absolute peak of the latest speaker block
func (b *Board) Peak() float64 {
	return b.Codec.Peak()
}

// Stats returns the pipeline counters
func (b *Board) Stats() core.StatsSnapshot {
	return b.Pipeline.Stats()
}
