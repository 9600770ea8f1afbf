package cpu

// This file implements the per-operation flag semantics for the ALU
// instruction group. Each helper both computes the result and sets F; callers
// write the result back to the appropriate register or memory operand.

func (c *CPU) add8(d, s uint8) uint8 {
	result := d + s
	c.SetZero(result == 0)
	c.SetNegative(false)
	c.SetHalfCarry((d&0x0F)+(s&0x0F) > 0x0F)
	c.SetCarry(uint16(d)+uint16(s) > 0xFF)
	return result
}

func (c *CPU) adc8(d, s uint8) uint8 {
	carry := uint8(0)
	if c.Carry() {
		carry = 1
	}
	result := d + s + carry
	c.SetZero(result == 0)
	c.SetNegative(false)
	c.SetHalfCarry((d&0x0F)+(s&0x0F)+carry > 0x0F)
	c.SetCarry(uint16(d)+uint16(s)+uint16(carry) > 0xFF)
	return result
}

func (c *CPU) sub8(d, s uint8) uint8 {
	result := d - s
	c.SetZero(result == 0)
	c.SetNegative(true)
	c.SetHalfCarry(d&0x0F < s&0x0F)
	c.SetCarry(d < s)
	return result
}

// cp8 sets flags as sub8 would but discards the result (CP).
func (c *CPU) cp8(d, s uint8) {
	c.sub8(d, s)
}

func (c *CPU) sbc8(d, s uint8) uint8 {
	carry := uint8(0)
	if c.Carry() {
		carry = 1
	}
	result := d - s - carry
	c.SetZero(result == 0)
	c.SetNegative(true)
	c.SetHalfCarry(int(d&0x0F)-int(s&0x0F)-int(carry) < 0)
	c.SetCarry(int(d)-int(s)-int(carry) < 0)
	return result
}

func (c *CPU) and8(d, s uint8) uint8 {
	result := d & s
	c.SetZero(result == 0)
	c.SetNegative(false)
	c.SetHalfCarry(true)
	c.SetCarry(false)
	return result
}

func (c *CPU) or8(d, s uint8) uint8 {
	result := d | s
	c.SetZero(result == 0)
	c.SetNegative(false)
	c.SetHalfCarry(false)
	c.SetCarry(false)
	return result
}

func (c *CPU) xor8(d, s uint8) uint8 {
	result := d ^ s
	c.SetZero(result == 0)
	c.SetNegative(false)
	c.SetHalfCarry(false)
	c.SetCarry(false)
	return result
}

// inc8 increments value, preserving the carry flag: INC never touches C,
// including for the INC (HL) memory operand.
func (c *CPU) inc8(value uint8) uint8 {
	result := value + 1
	c.SetZero(result == 0)
	c.SetNegative(false)
	c.SetHalfCarry(value&0x0F == 0x0F)
	return result
}

// dec8 decrements value, preserving the carry flag.
func (c *CPU) dec8(value uint8) uint8 {
	result := value - 1
	c.SetZero(result == 0)
	c.SetNegative(true)
	c.SetHalfCarry(value&0x0F == 0x00)
	return result
}

// addHL16 adds value to HL in place; Z is left untouched.
func (c *CPU) addHL16(value uint16) {
	hl := c.HL()
	result := hl + value
	c.SetNegative(false)
	c.SetHalfCarry((hl&0x0FFF)+(value&0x0FFF) > 0x0FFF)
	c.SetCarry(uint32(hl)+uint32(value) > 0xFFFF)
	c.SetHL(result)
}

// addSPSigned implements both ADD SP,i8 and the HL=SP+i8 addressing mode:
// Z=0, N=0; H/C come from the low-byte addition of SP and the signed
// offset.
func (c *CPU) addSPSigned(offset int8) uint16 {
	sp := c.SP
	value := uint16(int32(sp) + int32(offset))

	c.SetZero(false)
	c.SetNegative(false)
	unsignedOffset := uint16(uint8(offset))
	c.SetHalfCarry((sp&0x0F)+(unsignedOffset&0x0F) > 0x0F)
	c.SetCarry((sp&0xFF)+unsignedOffset > 0xFF)

	return value
}

func (c *CPU) rlc(value uint8) uint8 {
	carryOut := value&0x80 != 0
	result := value<<1 | value>>7
	c.SetCarry(carryOut)
	c.SetNegative(false)
	c.SetHalfCarry(false)
	c.SetZero(result == 0)
	return result
}

func (c *CPU) rrc(value uint8) uint8 {
	carryOut := value&0x01 != 0
	result := value>>1 | value<<7
	c.SetCarry(carryOut)
	c.SetNegative(false)
	c.SetHalfCarry(false)
	c.SetZero(result == 0)
	return result
}

func (c *CPU) rl(value uint8) uint8 {
	carryIn := uint8(0)
	if c.Carry() {
		carryIn = 1
	}
	carryOut := value&0x80 != 0
	result := value<<1 | carryIn
	c.SetCarry(carryOut)
	c.SetNegative(false)
	c.SetHalfCarry(false)
	c.SetZero(result == 0)
	return result
}

func (c *CPU) rr(value uint8) uint8 {
	carryIn := uint8(0)
	if c.Carry() {
		carryIn = 1
	}
	carryOut := value&0x01 != 0
	result := value>>1 | carryIn<<7
	c.SetCarry(carryOut)
	c.SetNegative(false)
	c.SetHalfCarry(false)
	c.SetZero(result == 0)
	return result
}

func (c *CPU) sla(value uint8) uint8 {
	carryOut := value&0x80 != 0
	result := value << 1
	c.SetCarry(carryOut)
	c.SetNegative(false)
	c.SetHalfCarry(false)
	c.SetZero(result == 0)
	return result
}

func (c *CPU) sra(value uint8) uint8 {
	carryOut := value&0x01 != 0
	result := value>>1 | value&0x80
	c.SetCarry(carryOut)
	c.SetNegative(false)
	c.SetHalfCarry(false)
	c.SetZero(result == 0)
	return result
}

func (c *CPU) srl(value uint8) uint8 {
	carryOut := value&0x01 != 0
	result := value >> 1
	c.SetCarry(carryOut)
	c.SetNegative(false)
	c.SetHalfCarry(false)
	c.SetZero(result == 0)
	return result
}

func (c *CPU) swap(value uint8) uint8 {
	result := value<<4 | value>>4
	c.SetZero(result == 0)
	c.SetNegative(false)
	c.SetHalfCarry(false)
	c.SetCarry(false)
	return result
}

// bitTest sets flags for BIT b,r8 without modifying the operand.
func (c *CPU) bitTest(index uint8, value uint8) {
	c.SetZero(value&(1<<index) == 0)
	c.SetNegative(false)
	c.SetHalfCarry(true)
}

// daa implements the binary-coded-decimal adjustment of A using the N/H/C
// flags left by the preceding ADD/SUB.
func (c *CPU) daa() {
	a := c.A
	adjust := uint8(0)
	carry := false

	if c.Negative() {
		if c.HalfCarry() {
			adjust |= 0x06
		}
		if c.Carry() {
			adjust |= 0x60
		}
		a -= adjust
	} else {
		if c.HalfCarry() || a&0x0F > 0x09 {
			adjust |= 0x06
		}
		if c.Carry() || a > 0x99 {
			adjust |= 0x60
			carry = true
		}
		a += adjust
	}

	c.A = a
	c.SetZero(a == 0)
	c.SetHalfCarry(false)
	c.SetCarry(carry || c.Carry())
}
