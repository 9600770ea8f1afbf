package video

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ravnsson/dmgboy/internal/addr"
)

type fakeBus struct {
	regs map[uint16]uint8
}

func newFakeBus() *fakeBus {
	b := &fakeBus{regs: map[uint16]uint8{}}
	b.regs[addr.LCDC] = 0x80 // LCD on
	return b
}

func (b *fakeBus) Read(address uint16) uint8 { return b.regs[address] }
func (b *fakeBus) Write(address uint16, value uint8) error {
	b.regs[address] = value
	return nil
}

func TestNew_powerOnState(t *testing.T) {
	mem := newFakeBus()
	p := New(mem)

	assert.Equal(t, modeVBlank, p.mode)
	assert.Equal(t, 144, p.line)
	assert.Equal(t, uint8(144), mem.Read(addr.LY))
}

func TestPPU_oamToVRAMTransition(t *testing.T) {
	mem := newFakeBus()
	p := &PPU{mem: mem, mode: modeOAM, line: 0}

	event := p.Advance(oamCycles)

	assert.Equal(t, modeVRAM, p.mode)
	assert.Equal(t, NoEvent, event)
}

func TestPPU_fullLineEntersNextOAM(t *testing.T) {
	mem := newFakeBus()
	p := &PPU{mem: mem, mode: modeOAM, line: 0}

	p.Advance(scanlineCycles)

	assert.Equal(t, modeOAM, p.mode)
	assert.Equal(t, 1, p.line)
	assert.Equal(t, uint8(1), mem.Read(addr.LY))
}

func TestPPU_line143EntersVBlank(t *testing.T) {
	mem := newFakeBus()
	p := &PPU{mem: mem, mode: modeHBlank, line: 143, cycles: hblankCycles}

	event := p.Advance(0)

	assert.Equal(t, VBlankEvent, event)
	assert.Equal(t, modeVBlank, p.mode)
	assert.Equal(t, 144, p.line)
}

func TestPPU_vblankWrapsToOAMAtLine154(t *testing.T) {
	mem := newFakeBus()
	p := &PPU{mem: mem, mode: modeVBlank, line: 153, cycles: scanlineCycles}

	p.Advance(0)

	assert.Equal(t, modeOAM, p.mode)
	assert.Equal(t, 0, p.line)
}

func TestPPU_vblankEntryOutranksLCDEventInSameCall(t *testing.T) {
	mem := newFakeBus()
	mem.regs[addr.STAT] = (1 << statHBlankIRQ) | (1 << statOAMIRQ)
	p := &PPU{mem: mem, mode: modeOAM, line: 143}

	// One full line's worth of ticks crosses OAM->VRAM->HBlank->VBlank:
	// the VRAM->HBlank edge alone would raise an LCDEvent, but entering
	// VBlank on the same call must win.
	event := p.Advance(oamCycles + vramCycles + hblankCycles)

	assert.Equal(t, VBlankEvent, event)
	assert.Equal(t, modeVBlank, p.mode)
	assert.Equal(t, 144, p.line)
}

func TestPPU_noEventWhenLCDOff(t *testing.T) {
	mem := newFakeBus()
	mem.regs[addr.LCDC] = 0x00
	mem.regs[addr.STAT] = 1 << statHBlankIRQ
	p := &PPU{mem: mem, mode: modeVRAM, line: 0}

	event := p.Advance(vramCycles)

	assert.Equal(t, NoEvent, event, "STAT interrupts never fire while the LCD is disabled")
}

func TestPPU_lycCoincidenceRaisesSTATEvent(t *testing.T) {
	mem := newFakeBus()
	mem.regs[addr.LYC] = 0 // matches the PPU's starting line
	mem.regs[addr.STAT] = 1 << statLYCIRQ
	p := &PPU{mem: mem, mode: modeOAM, line: 0}

	event := p.Advance(oamCycles)

	assert.Equal(t, LCDEvent, event)
}

func TestPPU_writeLYUpdatesCoincidenceFlag(t *testing.T) {
	mem := newFakeBus()
	mem.regs[addr.LYC] = 5
	p := &PPU{mem: mem, mode: modeHBlank, line: 4, cycles: hblankCycles}

	p.Advance(0) // line becomes 5, matching LYC

	assert.NotEqual(t, uint8(0), mem.Read(addr.STAT)&(1<<2))
}
