package video

// DecodePalette splits a palette register (BGP/OBP0/OBP1) into the four
// 2-bit shade values it maps color indices 0-3 to.
func DecodePalette(reg uint8) [4]uint8 {
	var out [4]uint8
	for i := range out {
		out[i] = (reg >> (uint8(i) * 2)) & 0x03
	}
	return out
}

// ApplyPalette maps a raw color index (0-3) through a decoded palette to
// the shade it should display as.
func ApplyPalette(colorIndex uint8, palette [4]uint8) uint8 {
	return palette[colorIndex&0x03]
}
