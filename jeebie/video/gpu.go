// Package video implements the PPU: VRAM/OAM storage, the LCD registers,
// the mode state machine that drives scanline timing, and background/
// window/sprite compositing into a raw framebuffer of 2-bit color IDs.
package video

import (
	"fmt"
	"log/slog"

	"github.com/dmgcore/jeebie/jeebie/addr"
	"github.com/dmgcore/jeebie/jeebie/interrupt"
)

// Mode is the PPU's current rendering stage, matching STAT bits 1-0.
type Mode uint8

const (
	ModeHBlank  Mode = 0
	ModeVBlank  Mode = 1
	ModeOAMScan Mode = 2
	ModeDrawing Mode = 3
)

// Per-mode t-cycle durations. LCD transfer (mode 3) is fixed at 172
// regardless of sprite count or fine scroll, a deliberate simplification
// over real hardware's variable-length mode 3.
const (
	oamScanCycles  = 80
	drawingCycles  = 172
	hblankCycles   = 204
	scanlineCycles = oamScanCycles + drawingCycles + hblankCycles // 456
)

const vramSize = 0x2000
const oamSize = 0xA0

// PPU owns video RAM, OAM, the LCD register set, and the mode/line
// state machine. It renders directly into a FrameBuffer of raw 2-bit
// color IDs; palette and host-color translation happen downstream in
// the render layer.
type PPU struct {
	interrupts *interrupt.Controller

	vram [vramSize]byte
	oam  [oamSize]byte

	lcdc, stat         uint8
	scy, scx           uint8
	ly, lyc            uint8
	wy, wx             uint8
	bgp, obp0, obp1    uint8

	mode       Mode
	cycles     int
	windowLine int

	bgColorIndex [Width]uint8 // this scanline's background color indices, for sprite BG-priority
	framebuffer  *FrameBuffer
}

// New creates a PPU with mode/LY initialized as they are immediately
// after the boot ROM hands off control (LCD on, mode 2, LY 0).
func New(interrupts *interrupt.Controller) *PPU {
	p := &PPU{
		interrupts:  interrupts,
		framebuffer: NewFrameBuffer(),
		lcdc:        0x91,
		mode:        ModeOAMScan,
	}
	p.setSTATMode(p.mode)
	slog.Debug("PPU initialized", "LCDC", fmt.Sprintf("0x%02X", p.lcdc))
	return p
}

// FrameBuffer returns the PPU's current framebuffer. The same instance
// is reused and mutated in place scanline by scanline; callers needing
// a stable snapshot should copy Pixels().
func (p *PPU) FrameBuffer() *FrameBuffer {
	return p.framebuffer
}

// ReadVRAM implements VRAMReader for the tile/tile-map fetch helpers.
func (p *PPU) ReadVRAM(address uint16) uint8 {
	return p.vram[address&0x1FFF]
}

// ReadByte reads VRAM, OAM, or an LCD register by its absolute bus
// address. OAM reads return 0xFF while a DMA transfer owns the bus,
// which the bus enforces by simply not forwarding reads during DMA
// rather than this method needing to know about it.
func (p *PPU) ReadByte(address uint16) uint8 {
	switch {
	case address >= addr.VRAMStart && address <= addr.VRAMEnd:
		return p.vram[address-addr.VRAMStart]
	case address >= addr.OAMStart && address <= addr.OAMEnd:
		return p.oam[address-addr.OAMStart]
	default:
		return p.readRegister(address)
	}
}

// WriteByte writes VRAM, OAM, or an LCD register by absolute bus address.
func (p *PPU) WriteByte(address uint16, value uint8) {
	switch {
	case address >= addr.VRAMStart && address <= addr.VRAMEnd:
		p.vram[address-addr.VRAMStart] = value
	case address >= addr.OAMStart && address <= addr.OAMEnd:
		p.oam[address-addr.OAMStart] = value
	default:
		p.writeRegister(address, value)
	}
}

func (p *PPU) readRegister(address uint16) uint8 {
	switch address {
	case addr.LCDC:
		return p.lcdc
	case addr.STAT:
		return p.stat | 0x80
	case addr.SCY:
		return p.scy
	case addr.SCX:
		return p.scx
	case addr.LY:
		return p.ly
	case addr.LYC:
		return p.lyc
	case addr.BGP:
		return p.bgp
	case addr.OBP0:
		return p.obp0
	case addr.OBP1:
		return p.obp1
	case addr.WY:
		return p.wy
	case addr.WX:
		return p.wx
	default:
		return 0xFF
	}
}

func (p *PPU) writeRegister(address uint16, value uint8) {
	switch address {
	case addr.LCDC:
		p.setLCDC(value)
	case addr.STAT:
		// bits 2-0 are read-only (LYC flag, mode); only interrupt-enable
		// bits 6-3 are writable by the CPU.
		p.stat = p.stat&0x07 | value&0x78
	case addr.SCY:
		p.scy = value
	case addr.SCX:
		p.scx = value
	case addr.LY:
		// read-only on real hardware
	case addr.LYC:
		p.lyc = value
		if p.compareLYToLYC() {
			p.interrupts.Request(addr.LCDSTATInterrupt)
		}
	case addr.BGP:
		p.bgp = value
	case addr.OBP0:
		p.obp0 = value
	case addr.OBP1:
		p.obp1 = value
	case addr.WY:
		p.wy = value
	case addr.WX:
		p.wx = value
	}
}

// setLCDC writes LCDC and, when the display-enable bit transitions,
// resets the scanline state machine the way real hardware does:
// turning the LCD off always restarts at LY 0, mode 2 when turned back
// on.
func (p *PPU) setLCDC(value uint8) {
	wasEnabled := p.LCDEnabled()
	p.lcdc = value
	isEnabled := p.LCDEnabled()

	if wasEnabled && !isEnabled {
		p.ly = 0
		p.cycles = 0
		p.mode = ModeHBlank
		p.setSTATMode(p.mode)
	}
	if !wasEnabled && isEnabled {
		p.ly = 0
		p.cycles = 0
		p.mode = ModeOAMScan
		p.windowLine = 0
		p.setSTATMode(p.mode)
	}
}

// Tick advances the PPU by tCycles t-cycles, driving the mode FSM and
// rendering a scanline's worth of pixels the instant mode 3 is entered.
func (p *PPU) Tick(tCycles int) {
	if !p.LCDEnabled() {
		return
	}

	p.cycles += tCycles
	for {
		threshold := p.modeThreshold()
		if p.cycles < threshold {
			return
		}
		p.cycles -= threshold
		p.advance()
	}
}

func (p *PPU) modeThreshold() int {
	switch p.mode {
	case ModeOAMScan:
		return oamScanCycles
	case ModeDrawing:
		return drawingCycles
	case ModeHBlank:
		return hblankCycles
	default: // ModeVBlank, one scanline's worth of dots at a time
		return scanlineCycles
	}
}

func (p *PPU) advance() {
	switch p.mode {
	case ModeOAMScan:
		p.mode = ModeDrawing
		p.setSTATMode(p.mode)
		p.renderScanline()
	case ModeDrawing:
		p.mode = ModeHBlank
		p.setSTATMode(p.mode)
		if p.statInterruptSourceEnabled(ModeHBlank) {
			p.interrupts.Request(addr.LCDSTATInterrupt)
		}
	case ModeHBlank:
		p.advanceLine()
		if int(p.ly) == Height {
			p.mode = ModeVBlank
			p.setSTATMode(p.mode)
			p.interrupts.Request(addr.VBlankInterrupt)
			if p.statInterruptSourceEnabled(ModeVBlank) {
				p.interrupts.Request(addr.LCDSTATInterrupt)
			}
			p.windowLine = 0
		} else {
			p.mode = ModeOAMScan
			p.setSTATMode(p.mode)
			if p.statInterruptSourceEnabled(ModeOAMScan) {
				p.interrupts.Request(addr.LCDSTATInterrupt)
			}
		}
	case ModeVBlank:
		if p.ly == 153 {
			p.ly = 0
			p.mode = ModeOAMScan
			p.setSTATMode(p.mode)
			if p.statInterruptSourceEnabled(ModeOAMScan) {
				p.interrupts.Request(addr.LCDSTATInterrupt)
			}
			p.compareLine()
		} else {
			p.advanceLine()
		}
	}
}

func (p *PPU) advanceLine() {
	p.ly++
	p.compareLine()
}

func (p *PPU) compareLine() {
	if p.compareLYToLYC() {
		p.interrupts.Request(addr.LCDSTATInterrupt)
	}
}
