package cpu

import "github.com/dmgcore/jeebie/jeebie/bit"

// reg8 reads one of the eight 8-bit operands addressed by the standard
// 3-bit register encoding: 0=B,1=C,2=D,3=E,4=H,5=L,6=(HL),7=A. Index 6
// costs a memory read; the others are free register accesses.
func (c *CPU) reg8(index uint8) uint8 {
	r := &c.Registers
	switch index {
	case 0:
		return r.B()
	case 1:
		return r.C()
	case 2:
		return r.D()
	case 3:
		return r.E()
	case 4:
		return r.H()
	case 5:
		return r.L()
	case 6:
		return c.readByte(r.HL.get())
	default:
		return r.A()
	}
}

func (c *CPU) setReg8(index uint8, value uint8) {
	r := &c.Registers
	switch index {
	case 0:
		r.setB(value)
	case 1:
		r.setC(value)
	case 2:
		r.setD(value)
	case 3:
		r.setE(value)
	case 4:
		r.setH(value)
	case 5:
		r.setL(value)
	case 6:
		c.writeByte(r.HL.get(), value)
	default:
		r.setA(value)
	}
}

// reg16 reads one of BC/DE/HL/SP, the pairing used by most 16-bit loads
// and arithmetic.
func (c *CPU) reg16(index uint8) uint16 {
	r := &c.Registers
	switch index {
	case 0:
		return r.BC.get()
	case 1:
		return r.DE.get()
	case 2:
		return r.HL.get()
	default:
		return r.SP.get()
	}
}

func (c *CPU) setReg16(index uint8, value uint16) {
	r := &c.Registers
	switch index {
	case 0:
		r.BC.set(value)
	case 1:
		r.DE.set(value)
	case 2:
		r.HL.set(value)
	default:
		r.SP.set(value)
	}
}

// reg16Stack reads one of BC/DE/HL/AF, the pairing used by PUSH/POP.
func (c *CPU) reg16Stack(index uint8) uint16 {
	r := &c.Registers
	switch index {
	case 0:
		return r.BC.get()
	case 1:
		return r.DE.get()
	case 2:
		return r.HL.get()
	default:
		return r.AF.get()
	}
}

func (c *CPU) setReg16Stack(index uint8, value uint16) {
	r := &c.Registers
	switch index {
	case 0:
		r.BC.set(value)
	case 1:
		r.DE.set(value)
	case 2:
		r.HL.set(value)
	default:
		r.AF.set(value & 0xFFF0)
	}
}

func (c *CPU) condition(index uint8) bool {
	r := &c.Registers
	switch index {
	case 0:
		return !r.Zero()
	case 1:
		return r.Zero()
	case 2:
		return !r.Carry()
	default:
		return r.Carry()
	}
}

func (c *CPU) fetchSigned() int8 {
	return int8(c.fetch())
}

func (c *CPU) jumpRelative(offset int8) {
	pc := c.Registers.PC.get()
	c.Registers.PC.set(uint16(int32(pc) + int32(offset)))
	c.internalDelay()
}

func (c *CPU) call(address uint16) {
	c.pushStack(c.Registers.PC.get())
	c.Registers.PC.set(address)
}

func (c *CPU) ret() {
	c.Registers.PC.set(c.popStack())
	c.internalDelay()
}

// execute decodes and runs one unprefixed opcode. Opcodes are grouped
// by the standard bit-field structure of the LR35902 table rather than
// spelled out byte by byte, matching how the table is actually laid
// out in hardware.
func (c *CPU) execute(opcode uint8) error {
	r := &c.Registers

	switch opcode {
	case 0x00: // NOP
		return nil

	case 0x10: // STOP
		r.PC.incr() // skip STOP's padding byte without spending a bus cycle
		c.stop()
		return nil

	case 0x76: // HALT
		c.halt()
		return nil

	case 0xF3: // DI
		c.ime = false
		c.pendingIME = false
		return nil

	case 0xFB: // EI
		c.pendingIME = true
		return nil

	case 0x27:
		c.daa()
		return nil
	case 0x2F:
		c.cpl()
		return nil
	case 0x37:
		c.scf()
		return nil
	case 0x3F:
		c.ccf()
		return nil

	case 0x07: // RLCA
		r.setA(c.rotateLeft(r.A(), false))
		r.SetZero(false)
		return nil
	case 0x0F: // RRCA
		r.setA(c.rotateRight(r.A(), false))
		r.SetZero(false)
		return nil
	case 0x17: // RLA
		r.setA(c.rotateLeft(r.A(), true))
		r.SetZero(false)
		return nil
	case 0x1F: // RRA
		r.setA(c.rotateRight(r.A(), true))
		r.SetZero(false)
		return nil

	case 0xCB:
		return c.executeCB()

	case 0xC3: // JP nn
		addr16 := c.fetch16()
		r.PC.set(addr16)
		c.internalDelay()
		return nil
	case 0xE9: // JP HL
		r.PC.set(r.HL.get())
		return nil
	case 0x18: // JR r8
		offset := c.fetchSigned()
		c.jumpRelative(offset)
		return nil

	case 0xCD: // CALL nn
		addr16 := c.fetch16()
		c.call(addr16)
		return nil

	case 0xC9: // RET
		c.ret()
		return nil
	case 0xD9: // RETI
		c.ret()
		c.ime = true
		c.pendingIME = false
		return nil

	case 0xE8: // ADD SP,r8
		offset := c.fetchSigned()
		result := c.addSPSigned(offset)
		c.internalDelay()
		c.internalDelay()
		r.SP.set(result)
		return nil
	case 0xF8: // LD HL,SP+r8
		offset := c.fetchSigned()
		result := c.addSPSigned(offset)
		c.internalDelay()
		r.HL.set(result)
		return nil
	case 0xF9: // LD SP,HL
		c.internalDelay()
		r.SP.set(r.HL.get())
		return nil

	case 0x08: // LD (a16),SP
		addr16 := c.fetch16()
		sp := r.SP.get()
		c.writeByte(addr16, bit.Low(sp))
		c.writeByte(addr16+1, bit.High(sp))
		return nil

	case 0xE0: // LDH (a8),A
		offset := c.fetch()
		c.writeByte(0xFF00+uint16(offset), r.A())
		return nil
	case 0xF0: // LDH A,(a8)
		offset := c.fetch()
		r.setA(c.readByte(0xFF00 + uint16(offset)))
		return nil
	case 0xE2: // LD (C),A
		c.writeByte(0xFF00+uint16(r.C()), r.A())
		return nil
	case 0xF2: // LD A,(C)
		r.setA(c.readByte(0xFF00 + uint16(r.C())))
		return nil

	case 0xEA: // LD (a16),A
		addr16 := c.fetch16()
		c.writeByte(addr16, r.A())
		return nil
	case 0xFA: // LD A,(a16)
		addr16 := c.fetch16()
		r.setA(c.readByte(addr16))
		return nil

	case 0x02: // LD (BC),A
		c.writeByte(r.BC.get(), r.A())
		return nil
	case 0x12: // LD (DE),A
		c.writeByte(r.DE.get(), r.A())
		return nil
	case 0x22: // LD (HL+),A
		c.writeByte(r.HL.get(), r.A())
		r.HL.incr()
		return nil
	case 0x32: // LD (HL-),A
		c.writeByte(r.HL.get(), r.A())
		r.HL.decr()
		return nil

	case 0x0A: // LD A,(BC)
		r.setA(c.readByte(r.BC.get()))
		return nil
	case 0x1A: // LD A,(DE)
		r.setA(c.readByte(r.DE.get()))
		return nil
	case 0x2A: // LD A,(HL+)
		r.setA(c.readByte(r.HL.get()))
		r.HL.incr()
		return nil
	case 0x3A: // LD A,(HL-)
		r.setA(c.readByte(r.HL.get()))
		r.HL.decr()
		return nil

	case 0xC6: // ADD A,d8
		c.add8(c.fetch(), false)
		return nil
	case 0xCE: // ADC A,d8
		c.add8(c.fetch(), true)
		return nil
	case 0xD6: // SUB d8
		c.sub8Store(c.fetch(), false)
		return nil
	case 0xDE: // SBC A,d8
		c.sub8Store(c.fetch(), true)
		return nil
	case 0xE6: // AND d8
		c.and8(c.fetch())
		return nil
	case 0xEE: // XOR d8
		c.xor8(c.fetch())
		return nil
	case 0xF6: // OR d8
		c.or8(c.fetch())
		return nil
	case 0xFE: // CP d8
		c.cp8(c.fetch())
		return nil

	case 0x3E: // LD A,d8
		r.setA(c.fetch())
		return nil

	case 0xC0, 0xC8, 0xD0, 0xD8: // RET cc
		c.internalDelay()
		if c.condition((opcode >> 3) & 0x03) {
			c.ret()
		}
		return nil

	case 0xC2, 0xCA, 0xD2, 0xDA: // JP cc,a16
		addr16 := c.fetch16()
		if c.condition((opcode >> 3) & 0x03) {
			r.PC.set(addr16)
			c.internalDelay()
		}
		return nil

	case 0x20, 0x28, 0x30, 0x38: // JR cc,r8
		offset := c.fetchSigned()
		if c.condition((opcode >> 3) & 0x03) {
			c.jumpRelative(offset)
		}
		return nil

	case 0xC4, 0xCC, 0xD4, 0xDC: // CALL cc,a16
		addr16 := c.fetch16()
		if c.condition((opcode >> 3) & 0x03) {
			c.call(addr16)
		}
		return nil

	case 0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF: // RST
		target := uint16(opcode & 0x38)
		c.pushStack(r.PC.get())
		r.PC.set(target)
		return nil
	}

	switch {
	case opcode >= 0x40 && opcode <= 0x7F:
		// LD r,r' block (0x76 handled above as HALT).
		dst := (opcode >> 3) & 0x07
		src := opcode & 0x07
		c.setReg8(dst, c.reg8(src))
		return nil

	case opcode >= 0x80 && opcode <= 0xBF:
		// ALU A,r block.
		src := opcode & 0x07
		value := c.reg8(src)
		switch (opcode >> 3) & 0x07 {
		case 0:
			c.add8(value, false)
		case 1:
			c.add8(value, true)
		case 2:
			c.sub8Store(value, false)
		case 3:
			c.sub8Store(value, true)
		case 4:
			c.and8(value)
		case 5:
			c.xor8(value)
		case 6:
			c.or8(value)
		case 7:
			c.cp8(value)
		}
		return nil

	case opcode&0xC7 == 0x04: // INC r
		idx := (opcode >> 3) & 0x07
		c.setReg8(idx, c.inc8(c.reg8(idx)))
		return nil

	case opcode&0xC7 == 0x05: // DEC r
		idx := (opcode >> 3) & 0x07
		c.setReg8(idx, c.dec8(c.reg8(idx)))
		return nil

	case opcode&0xC7 == 0x06: // LD r,d8
		idx := (opcode >> 3) & 0x07
		c.setReg8(idx, c.fetch())
		return nil

	case opcode&0xCF == 0x01: // LD rr,d16
		idx := (opcode >> 4) & 0x03
		c.setReg16(idx, c.fetch16())
		return nil

	case opcode&0xCF == 0x03: // INC rr
		idx := (opcode >> 4) & 0x03
		c.internalDelay()
		c.setReg16(idx, c.reg16(idx)+1)
		return nil

	case opcode&0xCF == 0x0B: // DEC rr
		idx := (opcode >> 4) & 0x03
		c.internalDelay()
		c.setReg16(idx, c.reg16(idx)-1)
		return nil

	case opcode&0xCF == 0x09: // ADD HL,rr
		idx := (opcode >> 4) & 0x03
		c.internalDelay()
		c.addHL(c.reg16(idx))
		return nil

	case opcode&0xCF == 0xC5: // PUSH rr
		idx := (opcode >> 4) & 0x03
		c.pushStack(c.reg16Stack(idx))
		return nil

	case opcode&0xCF == 0xC1: // POP rr
		idx := (opcode >> 4) & 0x03
		c.setReg16Stack(idx, c.popStack())
		return nil
	}

	return &DecodeError{Opcode: opcode, PC: r.PC.get() - 1}
}
