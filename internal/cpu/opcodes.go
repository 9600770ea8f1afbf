package cpu

import "github.com/ravnsson/dmgboy/internal/bit"

// executeBase decodes and runs one base (non-CB-prefixed) opcode and
// returns its total elapsed tick cost, including the opcode fetch itself.
// The uniform LD r,r' / ALU A,r8 / INC-DEC r8 groups are expressed
// through getR8/setR8 rather than as 256 named handlers, in favor of
// compact dispatch over one function per opcode.
func (c *CPU) executeBase(opcode uint8) int {
	switch {
	case opcode >= 0x40 && opcode <= 0x7F && opcode != 0x76:
		return c.execLoadR8R8(opcode)
	case opcode >= 0x80 && opcode <= 0xBF:
		return c.execALUA(opcode)
	}

	switch opcode {
	case 0x00: // NOP
		return 4
	case 0x01: // LD BC,d16
		c.SetBC(c.fetchWord())
		return 12
	case 0x02: // LD (BC),A
		c.mem.Write(c.BC(), c.A)
		return 8
	case 0x03: // INC BC
		c.SetBC(c.BC() + 1)
		return 8
	case 0x04: // INC B
		c.B = c.inc8(c.B)
		return 4
	case 0x05: // DEC B
		c.B = c.dec8(c.B)
		return 4
	case 0x06: // LD B,d8
		c.B = c.fetchByte()
		return 8
	case 0x07: // RLCA
		c.A = c.rlc(c.A)
		c.SetZero(false)
		return 4
	case 0x08: // LD (a16),SP
		address := c.fetchWord()
		c.mem.Write(address, uint8(c.SP))
		c.mem.Write(address+1, uint8(c.SP>>8))
		return 20
	case 0x09: // ADD HL,BC
		c.addHL16(c.BC())
		return 8
	case 0x0A: // LD A,(BC)
		c.A = c.mem.Read(c.BC())
		return 8
	case 0x0B: // DEC BC
		c.SetBC(c.BC() - 1)
		return 8
	case 0x0C: // INC C
		c.C = c.inc8(c.C)
		return 4
	case 0x0D: // DEC C
		c.C = c.dec8(c.C)
		return 4
	case 0x0E: // LD C,d8
		c.C = c.fetchByte()
		return 8
	case 0x0F: // RRCA
		c.A = c.rrc(c.A)
		c.SetZero(false)
		return 4

	case 0x10: // STOP
		c.fetchByte() // the trailing 0x00 of the two-byte encoding
		c.stop()
		return 4
	case 0x11: // LD DE,d16
		c.SetDE(c.fetchWord())
		return 12
	case 0x12: // LD (DE),A
		c.mem.Write(c.DE(), c.A)
		return 8
	case 0x13: // INC DE
		c.SetDE(c.DE() + 1)
		return 8
	case 0x14: // INC D
		c.D = c.inc8(c.D)
		return 4
	case 0x15: // DEC D
		c.D = c.dec8(c.D)
		return 4
	case 0x16: // LD D,d8
		c.D = c.fetchByte()
		return 8
	case 0x17: // RLA
		c.A = c.rl(c.A)
		c.SetZero(false)
		return 4
	case 0x18: // JR r8
		c.jumpRelative(c.fetchByte())
		return 12
	case 0x19: // ADD HL,DE
		c.addHL16(c.DE())
		return 8
	case 0x1A: // LD A,(DE)
		c.A = c.mem.Read(c.DE())
		return 8
	case 0x1B: // DEC DE
		c.SetDE(c.DE() - 1)
		return 8
	case 0x1C: // INC E
		c.E = c.inc8(c.E)
		return 4
	case 0x1D: // DEC E
		c.E = c.dec8(c.E)
		return 4
	case 0x1E: // LD E,d8
		c.E = c.fetchByte()
		return 8
	case 0x1F: // RRA
		c.A = c.rr(c.A)
		c.SetZero(false)
		return 4

	case 0x20: // JR NZ,r8
		return c.jumpRelativeConditional(c.NotZero())
	case 0x21: // LD HL,d16
		c.SetHL(c.fetchWord())
		return 12
	case 0x22: // LD (HL+),A
		c.mem.Write(c.HL(), c.A)
		c.SetHL(c.HL() + 1)
		return 8
	case 0x23: // INC HL
		c.SetHL(c.HL() + 1)
		return 8
	case 0x24: // INC H
		c.H = c.inc8(c.H)
		return 4
	case 0x25: // DEC H
		c.H = c.dec8(c.H)
		return 4
	case 0x26: // LD H,d8
		c.H = c.fetchByte()
		return 8
	case 0x27: // DAA
		c.daa()
		return 4
	case 0x28: // JR Z,r8
		return c.jumpRelativeConditional(c.Zero())
	case 0x29: // ADD HL,HL
		c.addHL16(c.HL())
		return 8
	case 0x2A: // LD A,(HL+)
		c.A = c.mem.Read(c.HL())
		c.SetHL(c.HL() + 1)
		return 8
	case 0x2B: // DEC HL
		c.SetHL(c.HL() - 1)
		return 8
	case 0x2C: // INC L
		c.L = c.inc8(c.L)
		return 4
	case 0x2D: // DEC L
		c.L = c.dec8(c.L)
		return 4
	case 0x2E: // LD L,d8
		c.L = c.fetchByte()
		return 8
	case 0x2F: // CPL
		c.A = ^c.A
		c.SetNegative(true)
		c.SetHalfCarry(true)
		return 4

	case 0x30: // JR NC,r8
		return c.jumpRelativeConditional(c.NotCarry())
	case 0x31: // LD SP,d16
		c.SP = c.fetchWord()
		return 12
	case 0x32: // LD (HL-),A
		c.mem.Write(c.HL(), c.A)
		c.SetHL(c.HL() - 1)
		return 8
	case 0x33: // INC SP
		c.SP++
		return 8
	case 0x34: // INC (HL)
		c.mem.Write(c.HL(), c.inc8(c.mem.Read(c.HL())))
		return 12
	case 0x35: // DEC (HL)
		c.mem.Write(c.HL(), c.dec8(c.mem.Read(c.HL())))
		return 12
	case 0x36: // LD (HL),d8
		c.mem.Write(c.HL(), c.fetchByte())
		return 12
	case 0x37: // SCF
		c.SetNegative(false)
		c.SetHalfCarry(false)
		c.SetCarry(true)
		return 4
	case 0x38: // JR C,r8
		return c.jumpRelativeConditional(c.Carry())
	case 0x39: // ADD HL,SP
		c.addHL16(c.SP)
		return 8
	case 0x3A: // LD A,(HL-)
		c.A = c.mem.Read(c.HL())
		c.SetHL(c.HL() - 1)
		return 8
	case 0x3B: // DEC SP
		c.SP--
		return 8
	case 0x3C: // INC A
		c.A = c.inc8(c.A)
		return 4
	case 0x3D: // DEC A
		c.A = c.dec8(c.A)
		return 4
	case 0x3E: // LD A,d8
		c.A = c.fetchByte()
		return 8
	case 0x3F: // CCF
		c.SetNegative(false)
		c.SetHalfCarry(false)
		c.SetCarry(!c.Carry())
		return 4

	case 0x76: // HALT
		c.halt()
		return 4

	case 0xC0: // RET NZ
		return c.retConditional(c.NotZero())
	case 0xC1: // POP BC
		c.SetBC(c.pop())
		return 12
	case 0xC2: // JP NZ,a16
		return c.jumpAbsoluteConditional(c.NotZero())
	case 0xC3: // JP a16
		c.PC = c.fetchWord()
		return 16
	case 0xC4: // CALL NZ,a16
		return c.callConditional(c.NotZero())
	case 0xC5: // PUSH BC
		c.push(c.BC())
		return 16
	case 0xC6: // ADD A,d8
		c.A = c.add8(c.A, c.fetchByte())
		return 8
	case 0xC7: // RST 00H
		c.rst(0x00)
		return 16
	case 0xC8: // RET Z
		return c.retConditional(c.Zero())
	case 0xC9: // RET
		c.PC = c.pop()
		return 16
	case 0xCA: // JP Z,a16
		return c.jumpAbsoluteConditional(c.Zero())
	case 0xCC: // CALL Z,a16
		return c.callConditional(c.Zero())
	case 0xCD: // CALL a16
		c.call(c.fetchWord())
		return 24
	case 0xCE: // ADC A,d8
		c.A = c.adc8(c.A, c.fetchByte())
		return 8
	case 0xCF: // RST 08H
		c.rst(0x08)
		return 16

	case 0xD0: // RET NC
		return c.retConditional(c.NotCarry())
	case 0xD1: // POP DE
		c.SetDE(c.pop())
		return 12
	case 0xD2: // JP NC,a16
		return c.jumpAbsoluteConditional(c.NotCarry())
	case 0xD4: // CALL NC,a16
		return c.callConditional(c.NotCarry())
	case 0xD5: // PUSH DE
		c.push(c.DE())
		return 16
	case 0xD6: // SUB d8
		c.A = c.sub8(c.A, c.fetchByte())
		return 8
	case 0xD7: // RST 10H
		c.rst(0x10)
		return 16
	case 0xD8: // RET C
		return c.retConditional(c.Carry())
	case 0xD9: // RETI
		c.PC = c.pop()
		c.ime = true
		return 16
	case 0xDA: // JP C,a16
		return c.jumpAbsoluteConditional(c.Carry())
	case 0xDC: // CALL C,a16
		return c.callConditional(c.Carry())
	case 0xDE: // SBC A,d8
		c.A = c.sbc8(c.A, c.fetchByte())
		return 8
	case 0xDF: // RST 18H
		c.rst(0x18)
		return 16

	case 0xE0: // LDH (a8),A
		c.mem.Write(0xFF00+uint16(c.fetchByte()), c.A)
		return 12
	case 0xE1: // POP HL
		c.SetHL(c.pop())
		return 12
	case 0xE2: // LD (C),A
		c.mem.Write(0xFF00+uint16(c.C), c.A)
		return 8
	case 0xE5: // PUSH HL
		c.push(c.HL())
		return 16
	case 0xE6: // AND d8
		c.A = c.and8(c.A, c.fetchByte())
		return 8
	case 0xE7: // RST 20H
		c.rst(0x20)
		return 16
	case 0xE8: // ADD SP,r8
		c.SP = c.addSPSigned(bit.SignedByte(c.fetchByte()))
		return 16
	case 0xE9: // JP (HL)
		c.PC = c.HL()
		return 4
	case 0xEA: // LD (a16),A
		c.mem.Write(c.fetchWord(), c.A)
		return 16
	case 0xEE: // XOR d8
		c.A = c.xor8(c.A, c.fetchByte())
		return 8
	case 0xEF: // RST 28H
		c.rst(0x28)
		return 16

	case 0xF0: // LDH A,(a8)
		c.A = c.mem.Read(0xFF00 + uint16(c.fetchByte()))
		return 12
	case 0xF1: // POP AF
		c.SetAF(c.pop())
		return 12
	case 0xF2: // LD A,(C)
		c.A = c.mem.Read(0xFF00 + uint16(c.C))
		return 8
	case 0xF3: // DI
		c.ime = false
		return 4
	case 0xF5: // PUSH AF
		c.push(c.AF())
		return 16
	case 0xF6: // OR d8
		c.A = c.or8(c.A, c.fetchByte())
		return 8
	case 0xF7: // RST 30H
		c.rst(0x30)
		return 16
	case 0xF8: // LD HL,SP+r8
		c.SetHL(c.addSPSigned(bit.SignedByte(c.fetchByte())))
		return 12
	case 0xF9: // LD SP,HL
		c.SP = c.HL()
		return 8
	case 0xFA: // LD A,(a16)
		c.A = c.mem.Read(c.fetchWord())
		return 16
	case 0xFB: // EI
		c.ime = true
		return 4
	case 0xFE: // CP d8
		c.cp8(c.A, c.fetchByte())
		return 8
	case 0xFF: // RST 38H
		c.rst(0x38)
		return 16
	}

	// Unreachable: every opcode not covered above is either one of the
	// uniform ranges handled before the switch or one of the eleven
	// illegal opcodes intercepted in execNext before executeBase is called.
	return 4
}

// execLoadR8R8 handles the 63 LD r,r' forms in 0x40-0x7F (0x76 is HALT and
// is intercepted before this is called). Source/destination are the
// standard 3-bit register-index encoding in bits 5-3 and 2-0.
func (c *CPU) execLoadR8R8(opcode uint8) int {
	dst := (opcode >> 3) & 0x07
	src := opcode & 0x07
	c.setR8(dst, c.getR8(src))
	if dst == 6 || src == 6 {
		return 8
	}
	return 4
}

// execALUA handles the eight ALU-A,r8 rows in 0x80-0xBF: ADD, ADC, SUB,
// SBC, AND, XOR, OR, CP, selected by bits 5-3, operand by bits 2-0.
func (c *CPU) execALUA(opcode uint8) int {
	op := (opcode >> 3) & 0x07
	operand := c.getR8(opcode & 0x07)

	switch op {
	case 0:
		c.A = c.add8(c.A, operand)
	case 1:
		c.A = c.adc8(c.A, operand)
	case 2:
		c.A = c.sub8(c.A, operand)
	case 3:
		c.A = c.sbc8(c.A, operand)
	case 4:
		c.A = c.and8(c.A, operand)
	case 5:
		c.A = c.xor8(c.A, operand)
	case 6:
		c.A = c.or8(c.A, operand)
	case 7:
		c.cp8(c.A, operand)
	}

	if opcode&0x07 == 6 {
		return 8
	}
	return 4
}

// jumpRelative applies a signed 8-bit displacement to PC. The displacement
// is relative to the address of the instruction following the JR, i.e.
// PC as already advanced past both opcode bytes.
func (c *CPU) jumpRelative(offset uint8) {
	c.PC = uint16(int32(c.PC) + int32(bit.SignedByte(offset)))
}

// jumpRelativeConditional fetches the displacement unconditionally (it is
// always part of the instruction encoding) and applies it only if taken.
func (c *CPU) jumpRelativeConditional(taken bool) int {
	offset := c.fetchByte()
	if taken {
		c.jumpRelative(offset)
		return 12
	}
	return 8
}

func (c *CPU) jumpAbsoluteConditional(taken bool) int {
	address := c.fetchWord()
	if taken {
		c.PC = address
		return 16
	}
	return 12
}

func (c *CPU) call(address uint16) {
	c.push(c.PC)
	c.PC = address
}

func (c *CPU) callConditional(taken bool) int {
	address := c.fetchWord()
	if taken {
		c.call(address)
		return 24
	}
	return 12
}

func (c *CPU) retConditional(taken bool) int {
	if taken {
		c.PC = c.pop()
		return 20
	}
	return 8
}

func (c *CPU) rst(target uint16) {
	c.push(c.PC)
	c.PC = target
}
