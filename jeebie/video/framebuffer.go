package video

// Width and Height are the Game Boy's fixed LCD dimensions.
const (
	Width  = 160
	Height = 144
)

// FrameBuffer stores one rendered frame as raw 2-bit color IDs (0-3),
// not RGBA: translating those IDs into host colors is a render-layer
// concern, not the PPU's.
type FrameBuffer struct {
	pixels [Width * Height]uint8
}

// NewFrameBuffer creates an all-zero (color ID 0) framebuffer.
func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{}
}

// Set stores colorIndex (0-3) at (x, y). Out-of-bounds writes are
// silently ignored since callers compute coordinates from hardware
// register values that can legally describe off-screen positions.
func (f *FrameBuffer) Set(x, y int, colorIndex uint8) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	f.pixels[y*Width+x] = colorIndex & 0x03
}

// At returns the color ID stored at (x, y), or 0 if out of bounds.
func (f *FrameBuffer) At(x, y int) uint8 {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return 0
	}
	return f.pixels[y*Width+x]
}

// Pixels returns the raw backing slice of Width*Height color IDs,
// row-major, for renderers that want to walk the whole frame at once.
func (f *FrameBuffer) Pixels() []uint8 {
	return f.pixels[:]
}
