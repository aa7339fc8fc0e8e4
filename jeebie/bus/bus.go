// Package bus implements the address-range multiplexer that ties the
// cartridge, work RAM, the PPU, the timer, serial port, joypad, and the
// interrupt controller into a single 16-bit address space, plus the
// OAM DMA transfer state machine.
package bus

import (
	"fmt"
	"log/slog"

	"github.com/dmgcore/jeebie/jeebie/addr"
	"github.com/dmgcore/jeebie/jeebie/cartridge"
	"github.com/dmgcore/jeebie/jeebie/interrupt"
	"github.com/dmgcore/jeebie/jeebie/joypad"
	"github.com/dmgcore/jeebie/jeebie/serial"
	"github.com/dmgcore/jeebie/jeebie/timer"
	"github.com/dmgcore/jeebie/jeebie/video"
)

type region uint8

const (
	regionROM region = iota
	regionVRAM
	regionExtRAM
	regionWRAM
	regionEcho
	regionOAM
	regionUnused
	regionIO
	regionHRAM
)

const wramSize = 0x2000
const hramSize = 0x7F

// Bus owns every memory-mapped component and dispatches every CPU
// read/write to the one that owns the address, following a fixed
// page-indexed region table rather than a long if/else chain.
type Bus struct {
	cart       *cartridge.Cartridge
	ppu        *video.PPU
	timer      *timer.Timer
	serial     *serial.Port
	joypad     *joypad.Joypad
	interrupts *interrupt.Controller

	wram [wramSize]byte
	hram [hramSize]byte

	regionMap [256]region

	dmaActive   bool
	dmaSource   uint16
	dmaProgress int

	totalCycles uint64
}

// New wires a Bus to its subsystems. All of them must already share the
// same *interrupt.Controller for interrupt requests to reach the CPU.
func New(cart *cartridge.Cartridge, ppu *video.PPU, t *timer.Timer, s *serial.Port, j *joypad.Joypad, interrupts *interrupt.Controller) *Bus {
	b := &Bus{
		cart:       cart,
		ppu:        ppu,
		timer:      t,
		serial:     s,
		joypad:     j,
		interrupts: interrupts,
	}
	b.initRegionMap()
	return b
}

func (b *Bus) initRegionMap() {
	for i := 0x00; i <= 0x7F; i++ {
		b.regionMap[i] = regionROM
	}
	for i := 0x80; i <= 0x9F; i++ {
		b.regionMap[i] = regionVRAM
	}
	for i := 0xA0; i <= 0xBF; i++ {
		b.regionMap[i] = regionExtRAM
	}
	for i := 0xC0; i <= 0xDF; i++ {
		b.regionMap[i] = regionWRAM
	}
	for i := 0xE0; i <= 0xFD; i++ {
		b.regionMap[i] = regionEcho
	}
	b.regionMap[0xFE] = regionOAM
	b.regionMap[0xFF] = regionIO
}

// Tick advances every ticked subsystem (timer, PPU, DMA) by
// tCycles t-cycles. The CPU must call this once per memory access or
// internal wait state it executes, with the exact t-cycle cost of that
// access — every subsystem's timing is derived from these calls, not
// from instruction counts.
func (b *Bus) Tick(tCycles int) {
	b.timer.Tick(tCycles)
	b.ppu.Tick(tCycles)
	b.tickDMA(tCycles)
	b.totalCycles += uint64(tCycles)
}

// TotalCycles returns the running count of t-cycles ticked since the bus
// was created, used by the root emulator driver to measure frame budgets.
func (b *Bus) TotalCycles() uint64 {
	return b.totalCycles
}

// tickDMA advances an in-progress OAM DMA transfer by one byte per
// m-cycle (4 t-cycles), matching real hardware: DMA is not instantaneous,
// it steals the bus for exactly 160 m-cycles.
func (b *Bus) tickDMA(tCycles int) {
	if !b.dmaActive {
		return
	}

	steps := tCycles / 4
	for i := 0; i < steps && b.dmaActive; i++ {
		srcAddr := b.dmaSource + uint16(b.dmaProgress)
		value := b.readDirect(srcAddr)
		b.ppu.WriteByte(addr.OAMStart+uint16(b.dmaProgress), value)

		b.dmaProgress++
		if b.dmaProgress >= 160 {
			b.dmaActive = false
		}
	}
}

// PPU exposes the bus's PPU instance, for callers that need the
// framebuffer or other state beyond the byte-addressed bus interface.
func (b *Bus) PPU() *video.PPU {
	return b.ppu
}

// Joypad exposes the bus's Joypad instance, for callers forwarding host
// input events.
func (b *Bus) Joypad() *joypad.Joypad {
	return b.joypad
}

// DMAInProgress reports whether an OAM DMA transfer currently owns OAM,
// which the bus uses to return 0xFF for CPU OAM reads during the
// transfer.
func (b *Bus) DMAInProgress() bool {
	return b.dmaActive
}

func (b *Bus) startDMA(value uint8) {
	b.dmaSource = uint16(value) << 8
	b.dmaProgress = 0
	b.dmaActive = true
}

// readDirect reads a byte bypassing the OAM-during-DMA guard, used by
// the DMA engine itself to pull source bytes.
func (b *Bus) readDirect(address uint16) uint8 {
	switch b.regionMap[address>>8] {
	case regionROM:
		return b.cart.ReadByte(address)
	case regionVRAM:
		return b.ppu.ReadByte(address)
	case regionExtRAM:
		return 0xFF
	case regionWRAM:
		return b.wram[address-addr.WRAMStart]
	case regionEcho:
		return b.wram[address-addr.EchoStart]
	case regionOAM:
		return b.ppu.ReadByte(address)
	case regionIO:
		return b.readIO(address)
	default:
		return 0xFF
	}
}

// ReadByte reads a byte from the full 16-bit address space.
func (b *Bus) ReadByte(address uint16) uint8 {
	if b.dmaActive && address >= addr.OAMStart && address <= addr.OAMEnd {
		return 0xFF
	}
	return b.readDirect(address)
}

// WriteByte writes a byte to the full 16-bit address space.
func (b *Bus) WriteByte(address uint16, value uint8) {
	if b.dmaActive && address >= addr.OAMStart && address <= addr.OAMEnd {
		return
	}

	switch b.regionMap[address>>8] {
	case regionROM:
		b.cart.WriteByte(address, value)
	case regionVRAM:
		b.ppu.WriteByte(address, value)
	case regionExtRAM:
		// no cartridge RAM backing in this core
	case regionWRAM:
		b.wram[address-addr.WRAMStart] = value
	case regionEcho:
		b.wram[address-addr.EchoStart] = value
	case regionOAM:
		b.ppu.WriteByte(address, value)
	case regionIO:
		b.writeIO(address, value)
	default:
		slog.Warn("bus: write to unmapped address", "addr", fmt.Sprintf("0x%04X", address))
	}
}

func (b *Bus) readIO(address uint16) uint8 {
	switch {
	case address == addr.P1:
		return b.joypad.Read(address)
	case address == addr.SB || address == addr.SC:
		return b.serial.Read(address)
	case address == addr.DIV || address == addr.TIMA || address == addr.TMA || address == addr.TAC:
		return b.timer.Read(address)
	case address == addr.IF:
		return b.interrupts.ReadIF()
	case address == addr.IE:
		return b.interrupts.ReadIE()
	case address == addr.DMA:
		return uint8(b.dmaSource >> 8)
	case address >= addr.HRAMStart && address <= addr.HRAMEnd:
		return b.hram[address-addr.HRAMStart]
	case address >= 0xFF40 && address <= 0xFF4B:
		return b.ppu.ReadByte(address)
	default:
		return 0xFF
	}
}

func (b *Bus) writeIO(address uint16, value uint8) {
	switch {
	case address == addr.P1:
		b.joypad.Write(address, value)
	case address == addr.SB || address == addr.SC:
		b.serial.Write(address, value)
	case address == addr.DIV || address == addr.TIMA || address == addr.TMA || address == addr.TAC:
		b.timer.Write(address, value)
	case address == addr.IF:
		b.interrupts.WriteIF(value)
	case address == addr.IE:
		b.interrupts.WriteIE(value)
	case address == addr.DMA:
		b.startDMA(value)
	case address >= addr.HRAMStart && address <= addr.HRAMEnd:
		b.hram[address-addr.HRAMStart] = value
	case address >= 0xFF40 && address <= 0xFF4B:
		b.ppu.WriteByte(address, value)
	}
}
