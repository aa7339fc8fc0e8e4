package video

import "github.com/dmgcore/jeebie/jeebie/bit"

// TileRow represents one row of a tile pattern (8 pixels).
//
// Game Boy tiles are 8x8 pixels, with 2 bits per pixel allowing 4 colors.
// Each tile row uses 2 bytes in a bit-plane format:
//
//	Byte 1 (Low):  Bit plane 0 - provides bit 0 of each pixel's color
//	Byte 2 (High): Bit plane 1 - provides bit 1 of each pixel's color
//
// Bit 7 represents the leftmost pixel, bit 0 the rightmost.
type TileRow struct {
	Low  uint8
	High uint8
}

// GetPixel extracts a pixel color (0-3) from the tile row. pixelX is
// 0-7, where 0 is the leftmost pixel.
func (t TileRow) GetPixel(pixelX int) uint8 {
	bitIndex := uint8(7 - pixelX)
	return t.colorAt(bitIndex)
}

// GetPixelFlipped extracts a pixel color with horizontal flip, used for
// sprites with the X-flip attribute set.
func (t TileRow) GetPixelFlipped(pixelX int) uint8 {
	return t.colorAt(uint8(pixelX))
}

func (t TileRow) colorAt(bitIndex uint8) uint8 {
	var pixel uint8
	if bit.IsSet(bitIndex, t.Low) {
		pixel |= 1
	}
	if bit.IsSet(bitIndex, t.High) {
		pixel |= 2
	}
	return pixel
}

// FetchTileRow reads a single tile row (2 bytes) from VRAM at the given
// byte address (the first of the row's two bytes).
func FetchTileRow(vram VRAMReader, address uint16) TileRow {
	return TileRow{
		Low:  vram.ReadVRAM(address),
		High: vram.ReadVRAM(address + 1),
	}
}

// VRAMReader is the minimal surface PPU rendering needs to pull tile
// and tile-map bytes, satisfied trivially by PPU's own internal VRAM.
type VRAMReader interface {
	ReadVRAM(address uint16) uint8
}
