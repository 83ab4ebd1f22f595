package core

// Sample is one audio word as carried by the coprocessor queues
type Sample int32

// Port is a queue-based handle to one input or output of a hardware DSP block.
// Availability queries never block. Write and Read assume availability
// has been confirmed or is guaranteed by the block's latency contract.
type Port interface {
	AvailableForWrite() int
	AvailableForRead() int
	Write(s Sample)
	Read() Sample
}

// PitchShifter is the frequency shift coprocessor: the current sample plus
// two carrier samples in, the shifted sample out.
type PitchShifter struct {
	Audio  Port
	Sine   Port
	Cosine Port
	Out    Port
}

// EchoGenerator mixes the current sample with a delayed one
type EchoGenerator struct {
	Current Port
	Delayed Port
	Out     Port
}

// AudioCodec is the local microphone/speaker codec
type AudioCodec struct {
	In       Port // left input channel
	OutLeft  Port
	OutRight Port
}

// LinkCodec is the PCM interface toward the wireless link
type LinkCodec struct {
	Tx Port
	Rx Port
}

// readBurst pops up to len(buf) samples, never more than are available
func readBurst(p Port, buf []Sample) int {
	n := p.AvailableForRead()
	if n > len(buf) {
		n = len(buf)
	}
	for i := 0; i < n; i++ {
		buf[i] = p.Read()
	}
	return n
}

// writeBurst pushes as much of buf as the port has room for
func writeBurst(p Port, buf []Sample) int {
	n := p.AvailableForWrite()
	if n > len(buf) {
		n = len(buf)
	}
	for i := 0; i < n; i++ {
		p.Write(buf[i])
	}
	return n
}
