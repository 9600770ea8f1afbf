// Package cpu implements the Sharp LR35902 fetch-decode-execute loop: the
// register file, the two 256-entry base/extended instruction sets, cycle
// accounting, and interrupt dispatch.
package cpu

import (
	"github.com/ravnsson/dmgboy/internal/addr"
	"github.com/ravnsson/dmgboy/internal/interrupt"
	"github.com/ravnsson/dmgboy/internal/memory"
)

// Mode is one of the three CPU run states.
type Mode int

const (
	Running Mode = iota
	Halted
	Stopped
)

// interruptServiceCost is the fixed tick cost of dispatching an interrupt.
const interruptServiceCost = 20

// CPU is the Sharp LR35902 core: register file, mode, IME gate, and the
// bus it fetches from and writes to.
type CPU struct {
	Registers

	mem        *memory.MMU
	interrupts *interrupt.Controller

	ime  bool
	mode Mode

	// haltBugPending reproduces the documented HALT timing bug: if HALT
	// executes with IME=0 while an interrupt is already
	// pending, the CPU fails to increment PC on the very next fetch, so
	// the byte after HALT is executed twice.
	haltBugPending bool
}

// New returns a CPU in the documented DMG post-boot state, bound to the
// given bus and interrupt controller.
func New(mem *memory.MMU, interrupts *interrupt.Controller) *CPU {
	c := &CPU{mem: mem, interrupts: interrupts, mode: Running}
	c.Registers.Reset()
	return c
}

// IME reports whether the interrupt master enable is currently set.
func (c *CPU) IME() bool { return c.ime }

// Step executes exactly one unit of CPU work: service a
// pending interrupt if one is due, otherwise fetch-decode-execute one
// instruction. It returns the number of elapsed machine ticks.
func (c *CPU) Step() (int, error) {
	if c.mode == Stopped {
		if c.interrupts.Requested(addr.Joypad) {
			c.mode = Running
		} else {
			return 4, nil
		}
	}

	if c.mode == Halted {
		if c.interrupts.Pending() != 0 {
			c.mode = Running
		} else {
			return 4, nil
		}
	}

	if c.ime {
		if source, ok := c.interrupts.Highest(); ok {
			c.serviceInterrupt(source)
			return interruptServiceCost, nil
		}
	}

	return c.execNext()
}

// execNext fetches one opcode byte and dispatches it to the base or
// extended (0xCB-prefixed) instruction set.
func (c *CPU) execNext() (int, error) {
	pc := c.PC
	opcode := c.fetchOpcode()

	if opcode == 0xCB {
		sub := c.fetchByte()
		return c.executeCB(sub), nil
	}

	if isIllegal(opcode) {
		return 0, &illegalInstructionError{opcode: opcode, pc: pc}
	}

	return c.executeBase(opcode), nil
}

// fetchOpcode reads the byte at PC and advances PC, except on the single
// fetch immediately following a halt-bug-triggering HALT, where PC is left
// unchanged so the same byte executes twice.
func (c *CPU) fetchOpcode() uint8 {
	value := c.mem.Read(c.PC)
	if c.haltBugPending {
		c.haltBugPending = false
		return value
	}
	c.PC++
	return value
}

// fetchByte reads the byte at PC and unconditionally advances PC; used
// for every byte after the first opcode byte of an instruction.
func (c *CPU) fetchByte() uint8 {
	value := c.mem.Read(c.PC)
	c.PC++
	return value
}

// fetchWord reads a little-endian 16-bit immediate and advances PC by 2.
func (c *CPU) fetchWord() uint16 {
	low := c.fetchByte()
	high := c.fetchByte()
	return uint16(high)<<8 | uint16(low)
}

// isIllegal reports whether opcode is one of the eleven undefined DMG
// base opcodes.
func isIllegal(opcode uint8) bool {
	switch opcode {
	case 0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD:
		return true
	default:
		return false
	}
}

// serviceInterrupt dispatches the highest-priority pending interrupt:
// clears its IF bit, pushes PC, jumps to its vector, and clears IME.
func (c *CPU) serviceInterrupt(source addr.Interrupt) {
	c.interrupts.Clear(source)
	c.ime = false
	c.push(c.PC)
	c.PC = addr.Vector[source]
}

// push decrements SP by 2 and writes value as a little-endian word, high
// byte first at the higher address.
func (c *CPU) push(value uint16) {
	c.SP--
	c.mem.Write(c.SP, uint8(value>>8))
	c.SP--
	c.mem.Write(c.SP, uint8(value))
}

// pop reads a little-endian word from SP and increments SP by 2.
func (c *CPU) pop() uint16 {
	low := c.mem.Read(c.SP)
	c.SP++
	high := c.mem.Read(c.SP)
	c.SP++
	return uint16(high)<<8 | uint16(low)
}

// getR8 reads one of the eight uniform 8-bit operand slots used by LD
// r,r', the ALU A,r8 group, INC/DEC r8 and the CB rotate/shift/BIT/RES/SET
// group. Index 6 is the (HL) memory operand.
func (c *CPU) getR8(index uint8) uint8 {
	switch index {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.mem.Read(c.HL())
	default: // 7
		return c.A
	}
}

// setR8 is the write counterpart of getR8.
func (c *CPU) setR8(index uint8, value uint8) {
	switch index {
	case 0:
		c.B = value
	case 1:
		c.C = value
	case 2:
		c.D = value
	case 3:
		c.E = value
	case 4:
		c.H = value
	case 5:
		c.L = value
	case 6:
		c.mem.Write(c.HL(), value)
	default: // 7
		c.A = value
	}
}

// Halt transitions Running -> Halted (opcode 0x76). If IME is clear and an
// interrupt is already pending, the halt-bug condition latches.
func (c *CPU) halt() {
	if !c.ime && c.interrupts.Pending() != 0 {
		c.haltBugPending = true
		return
	}
	c.mode = Halted
}

// stop transitions Running -> Stopped (opcode 0x10).
func (c *CPU) stop() {
	c.mode = Stopped
}
