package video

import "github.com/dmgcore/jeebie/jeebie/bit"

// LCDC (LCD Control) register bit positions - 0xFF40
const (
	lcdcDisplayEnable       uint8 = 7
	lcdcWindowTileMapSelect uint8 = 6
	lcdcWindowEnable        uint8 = 5
	lcdcBgWindowTileData    uint8 = 4
	lcdcBgTileMapSelect     uint8 = 3
	lcdcSpriteSize          uint8 = 2
	lcdcSpriteEnable        uint8 = 1
	lcdcBgEnable            uint8 = 0
)

// STAT (LCD Status) register bit positions - 0xFF41
const (
	statLycIrq   uint8 = 6
	statOamIrq   uint8 = 5
	statVblankIrq uint8 = 4
	statHblankIrq uint8 = 3
	statLycFlag  uint8 = 2
)

// LCDEnabled reports LCDC bit 7.
func (p *PPU) LCDEnabled() bool { return bit.IsSet(lcdcDisplayEnable, p.lcdc) }

// WindowTileMapSelectsMap1 reports LCDC bit 6.
func (p *PPU) WindowTileMapSelectsMap1() bool { return bit.IsSet(lcdcWindowTileMapSelect, p.lcdc) }

// WindowEnabled reports LCDC bit 5.
func (p *PPU) WindowEnabled() bool { return bit.IsSet(lcdcWindowEnable, p.lcdc) }

// BgWindowUsesSignedTileData reports LCDC bit 4 being clear (0x8800 addressing).
func (p *PPU) BgWindowUsesSignedTileData() bool { return !bit.IsSet(lcdcBgWindowTileData, p.lcdc) }

// BgTileMapSelectsMap1 reports LCDC bit 3.
func (p *PPU) BgTileMapSelectsMap1() bool { return bit.IsSet(lcdcBgTileMapSelect, p.lcdc) }

// SpriteHeight returns 16 if LCDC bit 2 is set (8x16 sprites), else 8.
func (p *PPU) SpriteHeight() int {
	if bit.IsSet(lcdcSpriteSize, p.lcdc) {
		return 16
	}
	return 8
}

// SpritesEnabled reports LCDC bit 1.
func (p *PPU) SpritesEnabled() bool { return bit.IsSet(lcdcSpriteEnable, p.lcdc) }

// BackgroundEnabled reports LCDC bit 0.
func (p *PPU) BackgroundEnabled() bool { return bit.IsSet(lcdcBgEnable, p.lcdc) }

// setSTATMode rewrites STAT bits 1-0 to reflect the current mode.
func (p *PPU) setSTATMode(mode Mode) {
	p.stat = p.stat&0xFC | uint8(mode)
}

// statInterruptSourceEnabled reports whether the STAT interrupt-enable bit
// for the given mode transition is set.
func (p *PPU) statInterruptSourceEnabled(mode Mode) bool {
	switch mode {
	case ModeHBlank:
		return bit.IsSet(statHblankIrq, p.stat)
	case ModeVBlank:
		return bit.IsSet(statVblankIrq, p.stat)
	case ModeOAMScan:
		return bit.IsSet(statOamIrq, p.stat)
	default:
		return false
	}
}

// compareLYToLYC updates STAT's LYC=LY flag and reports whether the
// LYC STAT interrupt should fire as a result.
func (p *PPU) compareLYToLYC() bool {
	if p.ly == p.lyc {
		p.stat = bit.Set(statLycFlag, p.stat)
		return bit.IsSet(statLycIrq, p.stat)
	}
	p.stat = bit.Reset(statLycFlag, p.stat)
	return false
}
