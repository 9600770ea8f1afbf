package cpu

// executeCB decodes and runs one CB-prefixed opcode. The 0xCB byte and
// this sub-opcode byte are fetched together inside a single Step() call
// atomically, so no interrupt can be serviced between them. The returned cost
// is the whole instruction's total, including the 4-tick 0xCB fetch; the
// caller returns it unchanged.
func (c *CPU) executeCB(opcode uint8) int {
	group := opcode >> 6
	operand := opcode & 0x07
	isMemory := operand == 6

	if group == 0 {
		return c.execRotateShift(opcode, operand, isMemory)
	}

	bitIndex := (opcode >> 3) & 0x07
	value := c.getR8(operand)

	switch group {
	case 1: // BIT b,r8
		c.bitTest(bitIndex, value)
		if isMemory {
			return 12
		}
		return 8
	case 2: // RES b,r8
		c.setR8(operand, value&^(1<<bitIndex))
	case 3: // SET b,r8
		c.setR8(operand, value|(1<<bitIndex))
	}

	if isMemory {
		return 16
	}
	return 8
}

// execRotateShift handles the 0x00-0x3F rotate/shift/swap block: bits 5-3
// select the operation, bits 2-0 the operand register.
func (c *CPU) execRotateShift(opcode, operand uint8, isMemory bool) int {
	op := (opcode >> 3) & 0x07
	value := c.getR8(operand)

	var result uint8
	switch op {
	case 0:
		result = c.rlc(value)
	case 1:
		result = c.rrc(value)
	case 2:
		result = c.rl(value)
	case 3:
		result = c.rr(value)
	case 4:
		result = c.sla(value)
	case 5:
		result = c.sra(value)
	case 6:
		result = c.swap(value)
	case 7:
		result = c.srl(value)
	}

	c.setR8(operand, result)

	if isMemory {
		return 16
	}
	return 8
}
