package serial

import (
	"testing"

	"github.com/dmgcore/jeebie/jeebie/addr"
	"github.com/stretchr/testify/assert"
)

type recordingSink struct {
	bytes []byte
}

func (r *recordingSink) Write(b byte) {
	r.bytes = append(r.bytes, b)
}

func TestTransferCompletesOn0x81(t *testing.T) {
	sink := &recordingSink{}
	p := New(sink)

	p.Write(addr.SB, 'H')
	p.Write(addr.SC, 0x81)

	assert.Equal(t, []byte{'H'}, sink.bytes)
	assert.Equal(t, uint8(0), p.Read(addr.SC)&0x80, "start bit clears once the transfer completes")
}

func TestWriteWithoutStartBitDoesNotTransfer(t *testing.T) {
	sink := &recordingSink{}
	p := New(sink)

	p.Write(addr.SB, 'X')
	p.Write(addr.SC, 0x01)

	assert.Empty(t, sink.bytes)
}

func TestNilSinkDoesNotPanic(t *testing.T) {
	p := New(nil)
	p.Write(addr.SB, 'Z')
	assert.NotPanics(t, func() {
		p.Write(addr.SC, 0x81)
	})
}

func TestMultipleTransfers(t *testing.T) {
	sink := &recordingSink{}
	p := New(sink)

	for _, c := range []byte("OK") {
		p.Write(addr.SB, c)
		p.Write(addr.SC, 0x81)
	}

	assert.Equal(t, []byte("OK"), sink.bytes)
}
