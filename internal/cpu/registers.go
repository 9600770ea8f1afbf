package cpu

import "github.com/ravnsson/dmgboy/internal/bit"

// Flag bits within F: bits 3..0 are wired to ground and
// always read/write as zero.
const (
	FlagZero      uint8 = 1 << 7
	FlagNegative  uint8 = 1 << 6
	FlagHalfCarry uint8 = 1 << 5
	FlagCarry     uint8 = 1 << 4
	flagMask      uint8 = 0xF0
)

// Registers is the Sharp LR35902 register file: eight 8-bit registers,
// a 16-bit stack pointer and program counter, with AF/BC/DE/HL pair views
// computed as (high<<8)|low.
type Registers struct {
	A, B, C, D, E, F, H, L uint8
	SP, PC                 uint16
}

// Reset restores the documented DMG post-boot register state
// (A=0x01, F=0xB0, SP=0xFFFE, PC=0x0100). The values are fixed
// constants, so every reset yields the same state.
func (r *Registers) Reset() {
	r.A, r.F = 0x01, 0xB0
	r.B, r.C = 0x00, 0x13
	r.D, r.E = 0x00, 0xD8
	r.H, r.L = 0x01, 0x4D
	r.SP = 0xFFFE
	r.PC = 0x0100
}

func (r *Registers) AF() uint16     { return bit.Combine(r.A, r.F) }
func (r *Registers) BC() uint16     { return bit.Combine(r.B, r.C) }
func (r *Registers) DE() uint16     { return bit.Combine(r.D, r.E) }
func (r *Registers) HL() uint16     { return bit.Combine(r.H, r.L) }

// SetAF writes a 16-bit value to AF; bits 3..0 of F are always masked
// off since they have no hardware wiring.
func (r *Registers) SetAF(value uint16) {
	r.A = bit.High(value)
	r.F = bit.Low(value) & flagMask
}

func (r *Registers) SetBC(value uint16) { r.B, r.C = bit.High(value), bit.Low(value) }
func (r *Registers) SetDE(value uint16) { r.D, r.E = bit.High(value), bit.Low(value) }
func (r *Registers) SetHL(value uint16) { r.H, r.L = bit.High(value), bit.Low(value) }

func (r *Registers) setFlag(mask uint8, set bool) {
	if set {
		r.F |= mask
	} else {
		r.F &^= mask
	}
	r.F &= flagMask
}

func (r *Registers) SetZero(v bool)      { r.setFlag(FlagZero, v) }
func (r *Registers) SetNegative(v bool)  { r.setFlag(FlagNegative, v) }
func (r *Registers) SetHalfCarry(v bool) { r.setFlag(FlagHalfCarry, v) }
func (r *Registers) SetCarry(v bool)     { r.setFlag(FlagCarry, v) }

func (r *Registers) Zero() bool      { return r.F&FlagZero != 0 }
func (r *Registers) Negative() bool  { return r.F&FlagNegative != 0 }
func (r *Registers) HalfCarry() bool { return r.F&FlagHalfCarry != 0 }
func (r *Registers) Carry() bool     { return r.F&FlagCarry != 0 }

func (r *Registers) NotZero() bool  { return !r.Zero() }
func (r *Registers) NotCarry() bool { return !r.Carry() }
