package video

import "sort"

// Sprite represents a single parsed Object Attribute Memory entry.
type Sprite struct {
	Y         int   // screen-space Y, hardware's +16 offset already removed
	X         int   // screen-space X, hardware's +8 offset already removed
	TileIndex uint8
	OAMIndex  int

	PaletteOBP1 bool
	FlipX       bool
	FlipY       bool
	BehindBG    bool
}

func parseSprite(index int, raw [4]uint8) Sprite {
	flags := raw[3]
	return Sprite{
		Y:           int(raw[0]) - 16,
		X:           int(raw[1]) - 8,
		TileIndex:   raw[2],
		OAMIndex:    index,
		PaletteOBP1: flags&(1<<4) != 0,
		FlipX:       flags&(1<<5) != 0,
		FlipY:       flags&(1<<6) != 0,
		BehindBG:    flags&(1<<7) != 0,
	}
}

// scanOAMForLine returns up to 10 sprites overlapping the given scanline,
// in OAM-index order, matching the hardware's sequential 0xFE00-0xFE9F
// scan and its per-scanline sprite limit.
func (p *PPU) scanOAMForLine(line int) []Sprite {
	height := p.SpriteHeight()
	var found []Sprite

	for i := 0; i < 40; i++ {
		base := i * 4
		var raw [4]uint8
		copy(raw[:], p.oam[base:base+4])

		y := int(raw[0]) - 16
		if y > line || y+height <= line {
			continue
		}

		found = append(found, parseSprite(i, raw))
		if len(found) >= 10 {
			break
		}
	}

	return found
}

// sortSpritesForDraw orders sprites lowest-priority-first so that
// renderSpriteLine can draw them in sequence and let higher-priority
// sprites overwrite lower-priority ones: DMG priority is lower X wins,
// OAM index breaks ties among equal X. Drawing lowest-priority first
// means a higher-priority sprite's transparent pixel still lets a
// lower-priority sprite's opaque pixel underneath show through, instead
// of blocking it out the way a per-column fixed "owner" would.
func sortSpritesForDraw(sprites []Sprite) []Sprite {
	sorted := make([]Sprite, len(sprites))
	copy(sorted, sprites)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X > sorted[j].X
		}
		return sorted[i].OAMIndex > sorted[j].OAMIndex
	})

	return sorted
}
