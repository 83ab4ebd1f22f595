package sim

import (
	"voicemanip/core"
	"voicemanip/dsp"
)

// LinkDepth is the depth of each link codec FIFO
const LinkDepth = 16

// LinkLoopback is the link codec with a far end that returns every word it
// hears, like a phone on a call echoing the voice back
type LinkLoopback struct {
	tx *dsp.QueuePort
	rx *dsp.QueuePort

	muted bool
	buf   []core.Sample
}

// NewLinkLoopback creates a connected link
func NewLinkLoopback() *LinkLoopback {
	return &LinkLoopback{
		tx:  dsp.NewQueuePort(LinkDepth),
		rx:  dsp.NewQueuePort(LinkDepth),
		buf: make([]core.Sample, LinkDepth),
	}
}

// Ports returns the coprocessor view used by the pipeline
func (l *LinkLoopback) Ports() core.LinkCodec {
	return core.LinkCodec{Tx: l.tx, Rx: l.rx}
}

// SetMuted stops the far end from answering; words it receives are discarded
func (l *LinkLoopback) SetMuted(muted bool) {
	l.muted = muted
}

// Pump moves everything the pipeline sent back toward it. The far end
// answers in the pipeline's convention: it removes the outbound bias and
// pre-compensates the bias the pipeline adds on receive.
func (l *LinkLoopback) Pump() int {
	n := l.tx.Drain(l.buf)
	if l.muted {
		return 0
	}
	for i := range l.buf[:n] {
		l.buf[i] -= 2 * core.LinkBias
	}
	return l.rx.Fill(l.buf[:n])
}
