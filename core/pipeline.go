package core

import (
	"context"
	"sync/atomic"
)

const (
	// InputReadyLevel is the codec input fill level that starts an iteration
	InputReadyLevel = 3

	// BurstLength is the number of words moved per codec FIFO access
	BurstLength = 4

	// LinkBias converts between signed samples and the link's unsigned PCM words
	LinkBias Sample = 0x7fff
)

// PipelineParams is the read-only view of the configuration record the
// pipeline consumes every sample
type PipelineParams interface {
	EchoDelay() int32
	ShiftSteps() (primary, secondary int32)
}

// PipelinePorts groups every coprocessor the pipeline talks to
type PipelinePorts struct {
	Shifter PitchShifter
	Echo    EchoGenerator
	Audio   AudioCodec
	Link    LinkCodec
}

// PipelineStats counts what the routing loop did. Only the pipeline task
// writes them; any task may read.
type PipelineStats struct {
	Samples     atomic.Uint64 // iterations completed
	LinkHolds   atomic.Uint64 // link-mode iterations that replayed the previous output
	LinkDrops   atomic.Uint64 // outbound link samples dropped on a full queue
	ModeChanges atomic.Uint64 // routing switch transitions seen
}

// StatsSnapshot is a plain copy of PipelineStats
type StatsSnapshot struct {
	Samples     uint64
	LinkHolds   uint64
	LinkDrops   uint64
	ModeChanges uint64
}

// Pipeline is the audio routing loop: codec in, frequency shift, echo,
// then out to the speakers or the link depending on the mode switch.
//
// The phase accumulators and the echo history are owned by the pipeline
// and touched by nothing else.
type Pipeline struct {
	params PipelineParams
	mode   ModeSwitch
	ports  PipelinePorts
	table  *PhaseTable

	sinIndex PhaseIndex
	cosIndex PhaseIndex
	history  EchoBuffer

	audioBuf [BurstLength]Sample
	outBuf   [BurstLength]Sample

	lastMode Mode
	idle     func()
	stats    PipelineStats
}

// NewPipeline wires the loop to its ports. The carrier table is built here,
// once, before the loop starts.
func NewPipeline(params PipelineParams, mode ModeSwitch, ports PipelinePorts) *Pipeline {
	return &Pipeline{
		params:   params,
		mode:     mode,
		ports:    ports,
		table:    NewSineTable(),
		sinIndex: 0,
		cosIndex: CosineOffset,
		lastMode: mode.Mode(),
	}
}

// SetIdle installs a hook run on every poll that finds no input.
// Leave it unset on hardware so the loop spins.
func (p *Pipeline) SetIdle(fn func()) {
	p.idle = fn
}

// Stats returns the current counters
func (p *Pipeline) Stats() StatsSnapshot {
	return StatsSnapshot{
		Samples:     p.stats.Samples.Load(),
		LinkHolds:   p.stats.LinkHolds.Load(),
		LinkDrops:   p.stats.LinkDrops.Load(),
		ModeChanges: p.stats.ModeChanges.Load(),
	}
}

// PhaseIndices returns the sine and cosine accumulator positions
func (p *Pipeline) PhaseIndices() (sin, cos PhaseIndex) {
	return p.sinIndex, p.cosIndex
}

// Run polls for input and routes samples until ctx is cancelled.
// The wait for input is a spin, never a blocking wait.
func (p *Pipeline) Run(ctx context.Context) {
	done := ctx.Done()
	for {
		select {
		case <-done:
			return
		default:
		}

		if !p.Step() && p.idle != nil {
			p.idle()
		}
	}
}

// Step runs one iteration if the codec has a sample ready.
// It returns false, touching nothing, when input is not ready yet.
func (p *Pipeline) Step() bool {
	audio := p.ports.Audio
	if audio.In.AvailableForRead() < InputReadyLevel {
		return false
	}
	readBurst(audio.In, p.audioBuf[:])
	in := p.audioBuf[0]

	// Frequency shift: sample plus both carrier phases in
	shifter := p.ports.Shifter
	shifter.Audio.Write(in)
	shifter.Sine.Write(p.table.At(p.sinIndex))
	shifter.Cosine.Write(p.table.At(p.cosIndex))

	primary, secondary := p.params.ShiftSteps()
	p.sinIndex = p.sinIndex.Advance(primary)
	p.cosIndex = p.cosIndex.Advance(secondary)

	// Fixed latency: the shifted sample is ready as soon as the inputs are in
	shifted := shifter.Out.Read()

	p.history.Store(shifted)
	delayed := p.history.Delayed(p.params.EchoDelay())

	echo := p.ports.Echo
	echo.Current.Write(shifted)
	echo.Delayed.Write(delayed)
	echoed := echo.Out.Read()

	mode := p.mode.Mode()
	if mode != p.lastMode {
		p.lastMode = mode
		p.stats.ModeChanges.Add(1)
		RecordEvent(EvtModeChange, int32(mode), 0)
	}

	if mode == ModeLocal {
		fill(p.audioBuf[:], echoed)
		p.writeOutput(p.audioBuf[:])
	} else {
		p.routeLink(echoed)
		p.writeOutput(p.outBuf[:])
	}

	p.stats.Samples.Add(1)
	return true
}

// routeLink sends the local sample out over the link and picks up the far
// end's sample if one arrived. Without one, outBuf keeps its last value.
func (p *Pipeline) routeLink(echoed Sample) {
	link := p.ports.Link
	if link.Tx.AvailableForWrite() > 0 {
		link.Tx.Write(echoed + LinkBias)
	} else {
		p.stats.LinkDrops.Add(1)
	}

	if link.Rx.AvailableForRead() > 0 {
		fill(p.outBuf[:], link.Rx.Read()+LinkBias)
	} else {
		p.stats.LinkHolds.Add(1)
	}
}

// writeOutput sends the same burst to the right and left channels
func (p *Pipeline) writeOutput(buf []Sample) {
	writeBurst(p.ports.Audio.OutRight, buf)
	writeBurst(p.ports.Audio.OutLeft, buf)
}

func fill(buf []Sample, s Sample) {
	for i := range buf {
		buf[i] = s
	}
}
