package video

import "github.com/dmgcore/jeebie/jeebie/addr"

// renderSpriteLine overlays sprites onto the current scanline, applying
// DMG sprite-to-sprite priority (lower X wins, OAM index breaks ties)
// and background priority (a sprite behind the background only shows
// through background color index 0). Sprites draw lowest-priority
// first so a higher-priority sprite's transparent pixels let a lower-
// priority sprite underneath show through instead of hiding it.
func (p *PPU) renderSpriteLine() {
	if !p.SpritesEnabled() {
		return
	}

	line := int(p.ly)
	sprites := p.scanOAMForLine(line)
	if len(sprites) == 0 {
		return
	}
	drawOrder := sortSpritesForDraw(sprites)

	height := p.SpriteHeight()

	for _, s := range drawOrder {
		palette := DecodePalette(p.obp0)
		if s.PaletteOBP1 {
			palette = DecodePalette(p.obp1)
		}

		rowInSprite := line - s.Y
		if s.FlipY {
			rowInSprite = height - 1 - rowInSprite
		}

		tileNumber := s.TileIndex
		offset := 0
		if height == 16 {
			tileNumber &^= 0x01
			if rowInSprite >= 8 {
				offset = 8
				rowInSprite -= 8
			}
		}

		rowAddr := addr.TileData0 + uint16(tileNumber)*16 + uint16((rowInSprite+offset)*2)
		row := FetchTileRow(p, rowAddr)

		for px := 0; px < 8; px++ {
			screenX := s.X + px
			if screenX < 0 || screenX >= Width {
				continue
			}

			colorIndex := row.GetPixel(px)
			if s.FlipX {
				colorIndex = row.GetPixelFlipped(px)
			}
			if colorIndex == 0 {
				continue // transparent
			}

			if s.BehindBG && p.bgColorIndex[screenX] != 0 {
				continue
			}

			p.framebuffer.Set(screenX, line, ApplyPalette(colorIndex, palette))
		}
	}
}

// renderScanline composes background, window, and sprite layers for the
// current LY into the framebuffer, in hardware draw order.
func (p *PPU) renderScanline() {
	p.renderBackgroundLine()
	p.renderWindowLine()
	p.renderSpriteLine()
}
