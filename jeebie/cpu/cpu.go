// Package cpu implements the Sharp LR35902 instruction core: the
// register file, the full unprefixed and CB-prefixed opcode tables, and
// interrupt/HALT/STOP dispatch. Every memory access and internal wait
// state ticks the bus for its exact t-cycle cost, so downstream timing
// (PPU, timer, DMA) stays synchronized to real instruction timing
// without the CPU needing to know about any of them.
package cpu

import (
	"fmt"
	"log/slog"

	"github.com/dmgcore/jeebie/jeebie/addr"
	"github.com/dmgcore/jeebie/jeebie/bit"
	"github.com/dmgcore/jeebie/jeebie/disasm"
	"github.com/dmgcore/jeebie/jeebie/interrupt"
)

// Bus is the minimal surface the CPU needs from the rest of the
// system: byte-addressed read/write and a cycle-accounting Tick.
type Bus interface {
	ReadByte(address uint16) uint8
	WriteByte(address uint16, value uint8)
	Tick(tCycles int)
}

// CPU is the Sharp LR35902 instruction core.
type CPU struct {
	Registers Registers

	bus        Bus
	interrupts *interrupt.Controller

	ime        bool // interrupt master enable
	pendingIME bool // EI was executed; IME turns on after the next instruction
	halted     bool
	haltBug    bool // halt entered with IME off and an interrupt already pending

	debugTrace bool
}

// New creates a CPU with boot-handoff register state, wired to bus for
// memory access and interrupts for interrupt request/ack/pending.
func New(bus Bus, interrupts *interrupt.Controller) *CPU {
	return &CPU{
		Registers:  NewRegisters(),
		bus:        bus,
		interrupts: interrupts,
	}
}

// SetDebugTrace enables per-instruction slog.Debug tracing of PC, the
// disassembled instruction, and register state.
func (c *CPU) SetDebugTrace(enabled bool) {
	c.debugTrace = enabled
}

func (c *CPU) tick(tCycles int) {
	c.bus.Tick(tCycles)
}

func (c *CPU) readByte(address uint16) uint8 {
	v := c.bus.ReadByte(address)
	c.tick(4)
	return v
}

func (c *CPU) writeByte(address uint16, value uint8) {
	c.bus.WriteByte(address, value)
	c.tick(4)
}

// internalDelay accounts for an internal m-cycle that touches no bus
// address (e.g. the extra cycle ADD HL,rr and 16-bit INC/DEC spend
// doing the actual addition, or PUSH's cycle before its two writes).
func (c *CPU) internalDelay() {
	c.tick(4)
}

func (c *CPU) fetch() uint8 {
	opcode := c.readByte(c.Registers.PC.get())
	if c.haltBug {
		// The halt bug: PC does not advance past this byte, so the
		// next fetch reads it again.
		c.haltBug = false
	} else {
		c.Registers.PC.incr()
	}
	return opcode
}

func (c *CPU) fetch16() uint16 {
	low := c.fetch()
	high := c.fetch()
	return bit.Combine(high, low)
}

func (c *CPU) pushStack(value uint16) {
	c.internalDelay()
	c.Registers.SP.decr()
	c.writeByte(c.Registers.SP.get(), bit.High(value))
	c.Registers.SP.decr()
	c.writeByte(c.Registers.SP.get(), bit.Low(value))
}

func (c *CPU) popStack() uint16 {
	low := c.readByte(c.Registers.SP.get())
	c.Registers.SP.incr()
	high := c.readByte(c.Registers.SP.get())
	c.Registers.SP.incr()
	return bit.Combine(high, low)
}

// Step checks for interrupts before fetching: a halted CPU with nothing
// pending idles for one m-cycle; if IME is set and an enabled interrupt
// is pending, Step dispatches it and executes no instruction; otherwise
// it executes exactly one instruction. It returns a *DecodeError if the
// opcode fetched has no defined behavior.
func (c *CPU) Step() error {
	c.serviceWake()

	if c.halted {
		c.tick(4)
		return nil
	}

	if c.ime && c.interrupts.HasAny() {
		c.serviceInterrupt()
		return nil
	}

	if c.debugTrace {
		pc := c.Registers.PC.get()
		slog.Debug("cpu step", "pc", fmt.Sprintf("0x%04X", pc), "instr", disasm.DisassembleAt(pc, c.bus).Instruction, "af", c.Registers.AF.get(), "bc", c.Registers.BC.get())
	}

	// EI's delayed enable: IME turns on only once the instruction after
	// EI has completed, so an interrupt can fire no earlier than the
	// following step.
	enableIME := c.pendingIME

	opcode := c.fetch()
	if err := c.execute(opcode); err != nil {
		return err
	}

	if enableIME && c.pendingIME {
		c.ime = true
		c.pendingIME = false
	}

	return nil
}

// serviceWake wakes the CPU from HALT the instant any enabled interrupt
// is pending, independent of IME (a halted CPU resumes fetching even
// when interrupts are globally disabled; it just won't jump to a
// handler in that case).
func (c *CPU) serviceWake() {
	if c.halted && c.interrupts.HasAny() {
		c.halted = false
	}
}

// serviceInterrupt dispatches the highest-priority pending, enabled
// interrupt if IME is set: acks it, pushes PC, and jumps to its vector.
func (c *CPU) serviceInterrupt() {
	if !c.ime {
		return
	}

	i, ok := c.interrupts.Pending()
	if !ok {
		return
	}

	c.ime = false
	c.pendingIME = false
	c.interrupts.Ack(i)

	c.internalDelay()
	c.internalDelay()
	c.pushStack(c.Registers.PC.get())
	c.Registers.PC.set(addr.InterruptVector(i))
}

// halt enters HALT, applying the halt-bug quirk: if IME is off and an
// interrupt is already pending at the moment HALT executes, the CPU
// does not actually halt, and instead fails to advance PC past the
// next opcode byte.
func (c *CPU) halt() {
	if !c.ime && c.interrupts.HasAny() {
		c.haltBug = true
		return
	}
	c.halted = true
}

// stop is treated as a one-m-cycle NOP. Real STOP drops the CPU into a
// low-power state until a button press, and resets the divider; none of
// that matters for a DMG core with no low-power modeling, and treating
// it as HALT would hang forever on a STOP with IME off and nothing
// pending.
func (c *CPU) stop() {
}
