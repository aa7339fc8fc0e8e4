package video

import "github.com/dmgcore/jeebie/jeebie/addr"

// renderWindowLine overlays the window layer on the current scanline if
// it is enabled and visible, advancing the internal window line counter
// only on lines where the window actually draws (it is independent of
// LY since the window can start partway down the screen).
func (p *PPU) renderWindowLine() {
	if !p.WindowEnabled() {
		return
	}

	line := int(p.ly)
	wx := int(p.wx) - 7
	wy := int(p.wy)

	if wy > line {
		return
	}
	if wx >= Width {
		return
	}

	tileMapBase := addr.TileMap0
	if p.WindowTileMapSelectsMap1() {
		tileMapBase = addr.TileMap1
	}
	dataBase, signed := p.tileDataBase()

	tileRow := p.windowLine / 8
	rowInTile := p.windowLine % 8
	palette := DecodePalette(p.bgp)

	for screenX := maxInt(wx, 0); screenX < Width; screenX++ {
		windowX := screenX - wx
		tileCol := windowX / 8
		colInTile := windowX % 8

		mapAddr := tileMapBase + uint16(tileRow*32+tileCol)
		tileNumber := p.ReadVRAM(mapAddr)

		rowAddr := tileRowAddress(dataBase, signed, tileNumber, rowInTile)
		row := FetchTileRow(p, rowAddr)
		colorIndex := row.GetPixel(colInTile)

		p.bgColorIndex[screenX] = colorIndex
		p.framebuffer.Set(screenX, line, ApplyPalette(colorIndex, palette))
	}

	p.windowLine++
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
