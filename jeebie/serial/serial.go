// Package serial implements the Game Boy's serial port (SB/SC) as a
// byte sink: every completed transfer hands its byte to a Sink instead
// of exchanging bits with a real second device, since the core never
// emulates a link cable peer.
package serial

import "github.com/dmgcore/jeebie/jeebie/addr"

// Sink receives bytes written out over the serial port. Implementations
// might log them, buffer them for test assertions, or discard them.
type Sink interface {
	Write(b byte)
}

// DiscardSink implements Sink by dropping every byte. Used when no
// serial observer is configured.
type DiscardSink struct{}

// Write discards b.
func (DiscardSink) Write(b byte) {}

// Port owns the SB/SC registers. A transfer is considered complete the
// instant SC is written with the start bit and internal-clock bit both
// set (0x81): no interrupt is raised (out of scope for this core), and
// SC is cleared back to 0 immediately since there is no
// real shift-clock delay to model without a peer.
type Port struct {
	sink Sink
	sb   uint8
	sc   uint8
}

// New creates a Port that forwards completed transfers to sink. A nil
// sink is replaced with DiscardSink.
func New(sink Sink) *Port {
	if sink == nil {
		sink = DiscardSink{}
	}
	return &Port{sink: sink}
}

// Read returns the current value of SB or SC.
func (p *Port) Read(address uint16) uint8 {
	switch address {
	case addr.SB:
		return p.sb
	case addr.SC:
		return p.sc | 0x7E
	default:
		return 0xFF
	}
}

// Write updates SB or SC. Writing SC with the transfer-start and
// internal-clock bits set (0x81) immediately emits SB to the sink and
// clears SC to 0, modeling transfer completion with no peer
// attached.
func (p *Port) Write(address uint16, value uint8) {
	switch address {
	case addr.SB:
		p.sb = value
	case addr.SC:
		p.sc = value
		if value == 0x81 {
			p.sink.Write(p.sb)
			p.sc = 0
		}
	}
}
