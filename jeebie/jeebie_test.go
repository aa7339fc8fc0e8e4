package jeebie

import (
	"testing"

	"github.com/dmgcore/jeebie/jeebie/joypad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	bytes []byte
}

func (s *recordingSink) Write(b byte) {
	s.bytes = append(s.bytes, b)
}

func TestNewStartsAtPostBootPC(t *testing.T) {
	e := New()
	assert.Equal(t, uint16(0x0100), e.CPU().Registers.PC.get())
}

func TestStepExecutesOneInstruction(t *testing.T) {
	e := New()
	e.Bus().WriteByte(0x0100, 0x00) // NOP
	require.NoError(t, e.Step())
	assert.Equal(t, uint16(0x0101), e.CPU().Registers.PC.get())
}

func TestRunUntilFrameConsumesExactlyOneFrameBudget(t *testing.T) {
	e := New()
	for i := uint16(0); i < 0x1000; i++ {
		e.Bus().WriteByte(0x0100+i, 0x00) // NOP forever
	}
	before := e.Bus().TotalCycles()
	require.NoError(t, e.RunUntilFrame())
	assert.GreaterOrEqual(t, e.Bus().TotalCycles()-before, uint64(cyclesPerFrame))
}

func TestSerialSinkReceivesTransferredBytes(t *testing.T) {
	sink := &recordingSink{}
	e := New(WithSerialSink(sink))
	e.Bus().WriteByte(0xFF01, 0x42) // SB
	e.Bus().WriteByte(0xFF02, 0x81) // SC: start + internal clock
	require.Equal(t, []byte{0x42}, sink.bytes)
}

func TestPressKeyForwardsToJoypad(t *testing.T) {
	e := New()
	e.Bus().WriteByte(0xFF00, 0x10) // select buttons (bit4=1 deselects dpad, bit5=0 selects buttons)
	e.PressKey(joypad.A)
	assert.Equal(t, uint8(0), e.Bus().ReadByte(0xFF00)&0x01, "A (bit 0) reads low while pressed")

	e.ReleaseKey(joypad.A)
	assert.Equal(t, uint8(1), e.Bus().ReadByte(0xFF00)&0x01, "A (bit 0) reads high once released")
}

func TestFrameBufferHasGameBoyDimensions(t *testing.T) {
	e := New()
	fb := e.FrameBuffer()
	assert.Len(t, fb.Pixels(), 160*144)
}
