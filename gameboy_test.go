package dmgboy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravnsson/dmgboy/internal/addr"
	"github.com/ravnsson/dmgboy/internal/input"
	"github.com/ravnsson/dmgboy/internal/memory"
)

func testROM() []byte {
	data := make([]byte, 2*0x4000)
	data[0x147] = 0x11 // MBC3, no RAM
	return data
}

func TestNew_rejectsBadCartridge(t *testing.T) {
	_, err := New([]byte{0x01, 0x02})
	require.Error(t, err)
}

func TestGameboy_stepReturnsElapsedTicks(t *testing.T) {
	gb, err := New(testROM())
	require.NoError(t, err)

	ticks, err := gb.Step(0)
	require.NoError(t, err)
	assert.Greater(t, ticks, 0)
}

func TestGameboy_joypadFallingEdgeRequestsInterrupt(t *testing.T) {
	gb, err := New(testROM())
	require.NoError(t, err)

	_, err = gb.Step(0)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), gb.mmu.Read(addr.IF)&uint8(addr.Joypad))

	_, err = gb.Step(input.A)
	require.NoError(t, err)
	assert.NotEqual(t, uint8(0), gb.mmu.Read(addr.IF)&uint8(addr.Joypad))
}

// TestGameboy_joypadInterruptServicesOnNextStep pins down the ordering
// guarantee: an interrupt requested during a Step (here, a Joypad edge
// raised by this very Step's input) is serviced at the top of the next
// Step, never the one it arrived in. If the edge check ran before
// cpu.Step(), this call would service the interrupt immediately and
// return interruptServiceCost instead of executing the scheduled NOP.
func TestGameboy_joypadInterruptServicesOnNextStep(t *testing.T) {
	rom := testROM()
	rom[0x100] = 0xFB // EI
	rom[0x101] = 0x00 // NOP
	rom[0x102] = 0x00 // NOP
	gb, err := New(rom)
	require.NoError(t, err)

	require.NoError(t, gb.mmu.Write(addr.IE, uint8(addr.Joypad)))

	// Step 1: executes EI (4 ticks). No interrupt pending yet.
	ticks, err := gb.Step(0)
	require.NoError(t, err)
	assert.Equal(t, 4, ticks)
	assert.Equal(t, uint16(0x101), gb.cpu.PC)

	// Step 2: a fresh button press raises the Joypad interrupt as part of
	// this very step, after the CPU has already executed its NOP. The
	// step must still run (and time) that NOP, not service the interrupt
	// early.
	ticks, err = gb.Step(input.A)
	require.NoError(t, err)
	assert.Equal(t, 4, ticks, "this step must execute its scheduled instruction, not service the interrupt early")
	assert.Equal(t, uint16(0x102), gb.cpu.PC)
	assert.NotEqual(t, uint8(0), gb.mmu.Read(addr.IF)&uint8(addr.Joypad))

	// Step 3: the interrupt requested last step is serviced now, at the
	// top of this step, before any further fetch.
	ticks, err = gb.Step(input.A)
	require.NoError(t, err)
	assert.Equal(t, 20, ticks, "the pending Joypad interrupt should be serviced at the start of this step")
	assert.Equal(t, uint16(0x60), gb.cpu.PC, "PC should point at the Joypad ISR vector")
	assert.Equal(t, uint8(0), gb.mmu.Read(addr.IF)&uint8(addr.Joypad), "IF should be cleared once serviced")
}

func TestGameboy_runFrameConsumesAFullFrameBudget(t *testing.T) {
	gb, err := New(testROM())
	require.NoError(t, err)

	total, err := gb.RunFrame(0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, ticksPerFrame)
}

func TestGameboy_MMUExposed(t *testing.T) {
	gb, err := New(testROM())
	require.NoError(t, err)

	assert.NotNil(t, gb.MMU())
	var _ *memory.MMU = gb.MMU()
}
