// Package cartridge models the read-only ROM surface the bus maps at
// 0x0000-0x7FFF. There is no MBC bank-switching here: bank 0 and bank N
// are both fixed views into the loaded ROM image, matching a
// no-mapper (ROM ONLY) cartridge.
package cartridge

import "fmt"

const (
	titleAddress       = 0x134
	titleLength        = 16
	entryPointAddress  = 0x100
	entryPointLength   = 4
	headerChecksumAddr = 0x14D
)

const bankSize = 0x4000

// Cartridge is a read-only view over a loaded ROM image split into a
// fixed bank 0 (0x0000-0x3FFF) and a fixed bank N (0x4000-0x7FFF, here
// always bank 1 since no MBC switches it).
type Cartridge struct {
	data  []byte
	title string
}

// New creates an empty cartridge backed by two zeroed 16KB banks, useful
// for tests and for running without a ROM loaded.
func New() *Cartridge {
	return &Cartridge{data: make([]byte, bankSize*2)}
}

// NewFromBytes creates a Cartridge from a raw ROM image. The image is
// copied; the caller retains ownership of the original slice. If the
// image is shorter than two banks it is zero-padded.
func NewFromBytes(data []byte) (*Cartridge, error) {
	if len(data) < headerChecksumAddr+1 {
		return nil, fmt.Errorf("cartridge: image too short to contain a header (%d bytes)", len(data))
	}

	size := len(data)
	if size < bankSize*2 {
		size = bankSize * 2
	}

	c := &Cartridge{data: make([]byte, size)}
	copy(c.data, data)
	c.title = parseTitle(c.data)

	return c, nil
}

// ReadByte reads a byte from the cartridge's address space (0x0000-0x7FFF).
// Out-of-range addresses are a programmer error in the caller (the bus is
// responsible for only forwarding addresses in range) and return 0xFF.
func (c *Cartridge) ReadByte(address uint16) uint8 {
	if int(address) >= len(c.data) {
		return 0xFF
	}
	return c.data[address]
}

// WriteByte is a no-op: this cartridge has no MBC registers and no
// battery-backed RAM, so writes to ROM addresses are simply discarded,
// matching real ROM-only cartridge behavior.
func (c *Cartridge) WriteByte(address uint16, value uint8) {}

// Title returns the cartridge's 16-byte title field from the header,
// trimmed of trailing NUL padding.
func (c *Cartridge) Title() string {
	return c.title
}

// EntryPoint returns the 4-byte entry point sequence at 0x100-0x103,
// the code the CPU executes immediately after boot ROM hand-off.
func (c *Cartridge) EntryPoint() [entryPointLength]byte {
	var out [entryPointLength]byte
	if len(c.data) >= entryPointAddress+entryPointLength {
		copy(out[:], c.data[entryPointAddress:entryPointAddress+entryPointLength])
	}
	return out
}

func parseTitle(data []byte) string {
	if len(data) < titleAddress+titleLength {
		return ""
	}

	raw := data[titleAddress : titleAddress+titleLength]
	end := len(raw)
	for end > 0 && raw[end-1] == 0x00 {
		end--
	}
	return string(raw[:end])
}
