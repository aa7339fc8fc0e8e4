package video

import (
	"testing"

	"github.com/dmgcore/jeebie/jeebie/addr"
	"github.com/dmgcore/jeebie/jeebie/interrupt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPPU() (*PPU, *interrupt.Controller) {
	ic := interrupt.New()
	ic.WriteIE(0xFF)
	p := New(ic)
	p.WriteByte(addr.LCDC, 0x91) // LCD on, BG on, tile data 1, BG map 0
	return p, ic
}

func TestModeProgressionWithinScanline(t *testing.T) {
	p, _ := newPPU()

	assert.Equal(t, ModeOAMScan, p.mode)

	p.Tick(oamScanCycles)
	assert.Equal(t, ModeDrawing, p.mode)

	p.Tick(drawingCycles)
	assert.Equal(t, ModeHBlank, p.mode)

	p.Tick(hblankCycles)
	assert.Equal(t, ModeOAMScan, p.mode)
	assert.Equal(t, uint8(1), p.ly)
}

func TestVBlankEntryRequestsInterrupt(t *testing.T) {
	p, ic := newPPU()

	for line := 0; line < 144; line++ {
		p.Tick(scanlineCycles)
	}

	assert.Equal(t, ModeVBlank, p.mode)
	assert.Equal(t, uint8(144), p.ly)

	i, ok := ic.Pending()
	require.True(t, ok)
	assert.Equal(t, addr.VBlankInterrupt, i)
}

func TestFullFrameWrapsLYToZero(t *testing.T) {
	p, _ := newPPU()

	for line := 0; line < 154; line++ {
		p.Tick(scanlineCycles)
	}

	assert.Equal(t, uint8(0), p.ly)
	assert.Equal(t, ModeOAMScan, p.mode)
}

func TestLYCMatchRequestsSTATInterrupt(t *testing.T) {
	p, ic := newPPU()
	p.WriteByte(addr.LYC, 1)
	p.WriteByte(addr.STAT, 0x40) // enable LYC interrupt

	p.Tick(scanlineCycles) // LY -> 1, matches LYC

	i, ok := ic.Pending()
	require.True(t, ok)
	assert.Equal(t, addr.LCDSTATInterrupt, i)
}

func TestDisablingLCDResetsLineState(t *testing.T) {
	p, _ := newPPU()
	p.Tick(scanlineCycles * 5)
	assert.NotEqual(t, uint8(0), p.ly)

	p.WriteByte(addr.LCDC, 0x00) // disable LCD
	assert.Equal(t, uint8(0), p.ly)
	assert.Equal(t, ModeHBlank, p.mode)
}

func TestBackgroundTileRendersExpectedColors(t *testing.T) {
	p, _ := newPPU()

	// tile 0 at map (0,0): solid color index 3 (low=high=0xFF)
	p.WriteByte(0x8000, 0xFF)
	p.WriteByte(0x8001, 0xFF)
	p.WriteByte(addr.BGP, 0b11100100) // identity mapping

	p.Tick(oamScanCycles) // enter Drawing, render the line

	assert.Equal(t, uint8(3), p.framebuffer.At(0, 0))
}

func TestVRAMReadWriteRoundTrip(t *testing.T) {
	p, _ := newPPU()
	p.WriteByte(addr.VRAMStart+0x10, 0xAB)
	assert.Equal(t, uint8(0xAB), p.ReadByte(addr.VRAMStart+0x10))
}

func TestOAMReadWriteRoundTrip(t *testing.T) {
	p, _ := newPPU()
	p.WriteByte(addr.OAMStart+4, 0x55)
	assert.Equal(t, uint8(0x55), p.ReadByte(addr.OAMStart+4))
}

func TestSTATReadOnlyBitsNotOverwritable(t *testing.T) {
	p, _ := newPPU()
	p.Tick(oamScanCycles) // mode becomes Drawing (bits 1-0 = 3)

	p.WriteByte(addr.STAT, 0x00) // attempt to clear mode bits
	assert.Equal(t, uint8(ModeDrawing), p.ReadByte(addr.STAT)&0x03, "mode bits are not CPU-writable")
}

// TestLowerPriorityPixelShowsThroughHigherPriorityTransparency covers
// the case where the higher-priority (lower X) sprite is transparent
// at a column that a lower-priority overlapping sprite draws opaquely:
// the lower-priority sprite's pixel must win, not the background.
func TestLowerPriorityPixelShowsThroughHigherPriorityTransparency(t *testing.T) {
	p, _ := newPPU()
	p.WriteByte(addr.LCDC, 0x82) // LCD on, sprites on, background off
	p.WriteByte(addr.OBP0, 0b11100100)

	// Tile 0 stays all-zero (transparent everywhere) for sprite A.
	// Tile 1 has a single opaque pixel at local column 1 for sprite B.
	p.WriteByte(addr.TileData0+16, 0x40) // low plane, bit6 -> column 1
	p.WriteByte(addr.TileData0+17, 0x00)

	// Sprite A: screen X=0, higher priority, transparent tile.
	p.WriteByte(addr.OAMStart+0, 16) // Y -> screen Y=0
	p.WriteByte(addr.OAMStart+1, 8)  // X -> screen X=0
	p.WriteByte(addr.OAMStart+2, 0)  // tile 0
	p.WriteByte(addr.OAMStart+3, 0)

	// Sprite B: screen X=2, lower priority, opaque at its column 1 ->
	// screen column 3, overlapping sprite A's columns 0-7.
	p.WriteByte(addr.OAMStart+4, 16) // Y -> screen Y=0
	p.WriteByte(addr.OAMStart+5, 10) // X -> screen X=2
	p.WriteByte(addr.OAMStart+6, 1)  // tile 1
	p.WriteByte(addr.OAMStart+7, 0)

	p.Tick(oamScanCycles) // enter Drawing, render the line

	want := ApplyPalette(1, DecodePalette(p.obp0))
	assert.Equal(t, want, p.framebuffer.At(3, 0))
}
