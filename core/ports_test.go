package core

// fifoPort is a bounded in-memory queue standing in for a coprocessor FIFO
type fifoPort struct {
	buf      []Sample
	capacity int
}

func newFIFOPort(capacity int) *fifoPort {
	return &fifoPort{capacity: capacity}
}

func (f *fifoPort) AvailableForWrite() int { return f.capacity - len(f.buf) }
func (f *fifoPort) AvailableForRead() int  { return len(f.buf) }

func (f *fifoPort) Write(s Sample) {
	if len(f.buf) < f.capacity {
		f.buf = append(f.buf, s)
	}
}

func (f *fifoPort) Read() Sample {
	if len(f.buf) == 0 {
		return 0
	}
	s := f.buf[0]
	f.buf = f.buf[1:]
	return s
}

func (f *fifoPort) push(samples ...Sample) {
	for _, s := range samples {
		f.Write(s)
	}
}

func (f *fifoPort) drain() []Sample {
	out := f.buf
	f.buf = nil
	return out
}

// computePort is an output port whose next word is produced on demand
type computePort struct {
	fn func() Sample
}

func (c computePort) AvailableForWrite() int { return 0 }
func (c computePort) AvailableForRead() int  { return 1 }
func (c computePort) Write(Sample)           {}
func (c computePort) Read() Sample           { return c.fn() }

type fixedMode struct{ m Mode }

func (f *fixedMode) Mode() Mode { return f.m }

type stubParams struct {
	delay              int32
	primary, secondary int32
}

func (s *stubParams) EchoDelay() int32           { return s.delay }
func (s *stubParams) ShiftSteps() (int32, int32) { return s.primary, s.secondary }

// testRig wires a pipeline to queues with an identity shifter and an
// echo engine that sums current and delayed
type testRig struct {
	pipe *Pipeline
	mode *fixedMode

	audioIn, outLeft, outRight *fifoPort
	shiftAudio, sine, cosine   *fifoPort
	echoCurrent, echoDelayed   *fifoPort
	linkTx, linkRx             *fifoPort

	sineSeen, cosineSeen []Sample
}

func newTestRig(params PipelineParams, mode Mode) *testRig {
	r := &testRig{
		mode:        &fixedMode{m: mode},
		audioIn:     newFIFOPort(128),
		outLeft:     newFIFOPort(1024),
		outRight:    newFIFOPort(1024),
		shiftAudio:  newFIFOPort(4),
		sine:        newFIFOPort(4),
		cosine:      newFIFOPort(4),
		echoCurrent: newFIFOPort(4),
		echoDelayed: newFIFOPort(4),
		linkTx:      newFIFOPort(16),
		linkRx:      newFIFOPort(16),
	}
	shifted := computePort{fn: func() Sample {
		r.sineSeen = append(r.sineSeen, r.sine.Read())
		r.cosineSeen = append(r.cosineSeen, r.cosine.Read())
		return r.shiftAudio.Read()
	}}
	echoed := computePort{fn: func() Sample {
		return r.echoCurrent.Read() + r.echoDelayed.Read()
	}}
	r.pipe = NewPipeline(params, r.mode, PipelinePorts{
		Shifter: PitchShifter{Audio: r.shiftAudio, Sine: r.sine, Cosine: r.cosine, Out: shifted},
		Echo:    EchoGenerator{Current: r.echoCurrent, Delayed: r.echoDelayed, Out: echoed},
		Audio:   AudioCodec{In: r.audioIn, OutLeft: r.outLeft, OutRight: r.outRight},
		Link:    LinkCodec{Tx: r.linkTx, Rx: r.linkRx},
	})
	return r
}

// feed queues one full input burst whose first word is s
func (r *testRig) feed(s Sample) {
	r.audioIn.push(s, 0, 0, 0)
}
