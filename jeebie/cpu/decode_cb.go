package cpu

import "github.com/dmgcore/jeebie/jeebie/bit"

// executeCB decodes and runs one CB-prefixed opcode. The CB table's
// layout is fully regular: bits 5-3 select the bit index or rotate/shift
// variant, bits 2-0 select the 8-bit operand via the same encoding as
// the unprefixed table.
func (c *CPU) executeCB() error {
	opcode := c.fetch()
	operand := opcode & 0x07
	group := (opcode >> 3) & 0x07

	value := c.reg8(operand)

	switch {
	case opcode < 0x40:
		var result uint8
		switch group {
		case 0:
			result = c.rotateLeft(value, false)
		case 1:
			result = c.rotateRight(value, false)
		case 2:
			result = c.rotateLeft(value, true)
		case 3:
			result = c.rotateRight(value, true)
		case 4:
			result = c.shiftLeftArith(value)
		case 5:
			result = c.shiftRightArith(value)
		case 6:
			result = c.swap(value)
		case 7:
			result = c.shiftRightLogical(value)
		}
		c.setReg8(operand, result)
		return nil

	case opcode < 0x80: // BIT
		c.bitTest(group, value)
		return nil

	case opcode < 0xC0: // RES
		c.setReg8(operand, bit.Reset(group, value))
		return nil

	default: // SET
		c.setReg8(operand, bit.Set(group, value))
		return nil
	}
}
