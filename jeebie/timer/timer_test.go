package timer

import (
	"testing"

	"github.com/dmgcore/jeebie/jeebie/addr"
	"github.com/dmgcore/jeebie/jeebie/interrupt"
	"github.com/stretchr/testify/assert"
)

func newTimer() (*Timer, *interrupt.Controller) {
	ic := interrupt.New()
	ic.WriteIE(0xFF)
	return New(ic), ic
}

func TestDIVIncrementsEvery256TCycles(t *testing.T) {
	tm, _ := newTimer()

	tm.Tick(255)
	assert.Equal(t, uint8(0), tm.Read(addr.DIV))

	tm.Tick(1)
	assert.Equal(t, uint8(1), tm.Read(addr.DIV))
}

func TestWriteDIVResetsCounter(t *testing.T) {
	tm, _ := newTimer()
	tm.Tick(300)
	assert.NotEqual(t, uint8(0), tm.Read(addr.DIV))

	tm.Write(addr.DIV, 0x99)
	assert.Equal(t, uint8(0), tm.Read(addr.DIV))
}

func TestTIMAIncrementsAtSelectedFrequency(t *testing.T) {
	tm, _ := newTimer()
	tm.Write(addr.TAC, 0x05) // enabled, clock select 01 -> bit 3 (every 16 t-cycles)

	tm.Tick(16)
	assert.Equal(t, uint8(1), tm.Read(addr.TIMA))

	tm.Tick(16)
	assert.Equal(t, uint8(2), tm.Read(addr.TIMA))
}

func TestTIMADisabledNeverIncrements(t *testing.T) {
	tm, _ := newTimer()
	tm.Write(addr.TAC, 0x01) // clock select set but enable bit clear

	tm.Tick(1000)
	assert.Equal(t, uint8(0), tm.Read(addr.TIMA))
}

func TestTIMAOverflowDelaysReloadByOneMCycle(t *testing.T) {
	tm, ic := newTimer()
	tm.Write(addr.TAC, 0x05)
	tm.Write(addr.TMA, 0x42)
	tm.Write(addr.TIMA, 0xFF)

	// advance exactly to the falling edge that overflows TIMA
	tm.Tick(16)
	assert.Equal(t, uint8(0x00), tm.Read(addr.TIMA), "TIMA reads 0 during the overflow delay window")
	assert.False(t, ic.HasAny(), "interrupt not requested yet during the delay")

	tm.Tick(4)
	assert.Equal(t, uint8(0x42), tm.Read(addr.TIMA), "TIMA reloads from TMA after the delay")
	assert.True(t, ic.HasAny())

	i, ok := ic.Pending()
	assert.True(t, ok)
	assert.Equal(t, addr.TimerInterrupt, i)
}

func TestTACWriteMasksUnusedBits(t *testing.T) {
	tm, _ := newTimer()
	tm.Write(addr.TAC, 0xFF)
	assert.Equal(t, uint8(0x07|0xF8), tm.Read(addr.TAC))
}
