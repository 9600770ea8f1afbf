package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravnsson/dmgboy/internal/addr"
	"github.com/ravnsson/dmgboy/internal/interrupt"
	"github.com/ravnsson/dmgboy/internal/memory"
)

func newTestCPU(program ...uint8) (*CPU, *memory.MMU, *interrupt.Controller) {
	interrupts := interrupt.New()
	mmu := memory.New(interrupts)
	// NoMBC ignores writes to the ROM window, so the program is placed in
	// the ROM image itself rather than written through the bus.
	rom := make([]byte, 0x8000)
	copy(rom[0x0100:], program)
	mmu.AttachCartridge(memory.NewNoMBC(rom))
	c := New(mmu, interrupts)
	return c, mmu, interrupts
}

func TestCPU_step_loadImmediate16(t *testing.T) {
	c, _, _ := newTestCPU(0x01, 0xEF, 0xBE) // LD BC,0xBEEF

	ticks, err := c.Step()

	require.NoError(t, err)
	assert.Equal(t, 12, ticks)
	assert.Equal(t, uint16(0xBEEF), c.BC())
	assert.Equal(t, uint16(0x0103), c.PC)
}

func TestCPU_step_illegalOpcode(t *testing.T) {
	c, _, _ := newTestCPU(0xD3)

	_, err := c.Step()

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIllegalInstruction))
}

func TestCPU_step_cbPrefixIsAtomic(t *testing.T) {
	c, _, _ := newTestCPU(0xCB, 0x00) // RLC B

	c.B = 0x80
	ticks, err := c.Step()

	require.NoError(t, err)
	assert.Equal(t, 8, ticks, "CB prefix + sub-opcode resolve inside a single Step call")
	assert.Equal(t, uint8(0x01), c.B)
	assert.True(t, c.Carry())
}

func TestCPU_step_servicesHighestPriorityInterrupt(t *testing.T) {
	c, mmu, interrupts := newTestCPU(0x00)

	c.ime = true
	c.SP = 0xFFFE
	c.PC = 0x0150
	interrupts.SetIE(0xFF)
	interrupts.Request(addr.LCD)
	interrupts.Request(addr.VBlank)

	ticks, err := c.Step()

	require.NoError(t, err)
	assert.Equal(t, interruptServiceCost, ticks)
	assert.Equal(t, addr.Vector[addr.VBlank], c.PC, "VBlank outranks LCD")
	assert.False(t, c.ime)
	assert.False(t, interrupts.Requested(addr.VBlank))

	pushedPC := mmu.Read16(c.SP)
	assert.Equal(t, uint16(0x0150), pushedPC)
}

func TestCPU_halt_wakesOnPendingInterrupt(t *testing.T) {
	c, _, interrupts := newTestCPU(0x76) // HALT

	c.ime = false
	ticks, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, 4, ticks)
	assert.Equal(t, Halted, c.mode)

	c.ime = true
	interrupts.SetIE(uint8(addr.VBlank))
	interrupts.Request(addr.VBlank)

	ticks, err = c.Step()
	require.NoError(t, err)
	assert.Equal(t, interruptServiceCost, ticks)
	assert.Equal(t, Running, c.mode)
}

func TestCPU_halt_bugDuplicatesNextFetch(t *testing.T) {
	c, _, interrupts := newTestCPU(0x76, 0x3C) // HALT; INC A

	c.A = 0 // post-boot A is 0x01; start from 0 so each INC A is countable
	c.ime = false
	interrupts.SetIE(uint8(addr.VBlank))
	interrupts.Request(addr.VBlank) // pending but masked by IME=0

	_, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, Running, c.mode, "halt bug means HALT never actually latches")
	assert.Equal(t, uint16(0x0101), c.PC)

	_, err = c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint8(1), c.A)
	assert.Equal(t, uint16(0x0101), c.PC, "PC does not advance: the next fetch re-reads the same byte")

	_, err = c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint8(2), c.A)
	assert.Equal(t, uint16(0x0102), c.PC)
}

func TestCPU_stop_wakesOnJoypadRequestRegardlessOfIE(t *testing.T) {
	c, _, interrupts := newTestCPU(0x10, 0x00) // STOP

	_, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, Stopped, c.mode)

	interrupts.Request(addr.Joypad) // IE left at 0: real hardware wakes on the pin, not IE

	ticks, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, Running, c.mode)
	assert.Equal(t, 4, ticks)
}

func TestCPU_pushPop_roundTrip(t *testing.T) {
	c, _, _ := newTestCPU()
	c.SP = 0xFFFE

	c.SetBC(0xBEEF)
	c.push(c.BC())
	c.SetDE(0x0000)
	c.SetDE(c.pop())

	assert.Equal(t, uint16(0xBEEF), c.DE())
	assert.Equal(t, uint16(0xFFFE), c.SP)
}
