package video

import "github.com/dmgcore/jeebie/jeebie/addr"

// tileDataBase returns the VRAM base address and addressing mode
// (signed vs unsigned tile numbers) selected by LCDC bit 4.
func (p *PPU) tileDataBase() (base uint16, signed bool) {
	if p.BgWindowUsesSignedTileData() {
		return addr.TileData2, true
	}
	return addr.TileData0, false
}

func tileRowAddress(base uint16, signed bool, tileNumber uint8, rowInTile int) uint16 {
	if signed {
		offset := int(int8(tileNumber)) * 16
		return uint16(int(base) + offset + rowInTile*2)
	}
	return base + uint16(tileNumber)*16 + uint16(rowInTile*2)
}

// renderBackgroundLine fills the current scanline's pixels with the
// background layer (or, when the background is disabled, with color 0
// of BGP, matching DMG behavior where bit 0 of LCDC disables priority
// rather than the layer itself on CGB but simply blanks it on DMG).
func (p *PPU) renderBackgroundLine() {
	line := int(p.ly)
	palette := DecodePalette(p.bgp)

	if !p.BackgroundEnabled() {
		for x := 0; x < Width; x++ {
			p.bgColorIndex[x] = 0
			p.framebuffer.Set(x, line, ApplyPalette(0, palette))
		}
		return
	}

	tileMapBase := addr.TileMap0
	if p.BgTileMapSelectsMap1() {
		tileMapBase = addr.TileMap1
	}
	dataBase, signed := p.tileDataBase()

	scrolledY := (line + int(p.scy)) & 0xFF
	tileRow := scrolledY / 8
	rowInTile := scrolledY % 8

	for x := 0; x < Width; x++ {
		scrolledX := (x + int(p.scx)) & 0xFF
		tileCol := scrolledX / 8
		colInTile := scrolledX % 8

		mapAddr := tileMapBase + uint16(tileRow*32+tileCol)
		tileNumber := p.ReadVRAM(mapAddr)

		rowAddr := tileRowAddress(dataBase, signed, tileNumber, rowInTile)
		row := FetchTileRow(p, rowAddr)
		colorIndex := row.GetPixel(colInTile)

		p.bgColorIndex[x] = colorIndex
		p.framebuffer.Set(x, line, ApplyPalette(colorIndex, palette))
	}
}
