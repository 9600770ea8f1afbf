// Package dmgboy composes the Sharp LR35902 CPU, the DMG bus, and the PPU
// tick-accounting model into a single Gameboy component: one Step per CPU
// instruction and one RunFrame per host frame, driven by a snapshot of
// controller input.
package dmgboy

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ravnsson/dmgboy/internal/addr"
	"github.com/ravnsson/dmgboy/internal/cpu"
	"github.com/ravnsson/dmgboy/internal/input"
	"github.com/ravnsson/dmgboy/internal/interrupt"
	"github.com/ravnsson/dmgboy/internal/memory"
	"github.com/ravnsson/dmgboy/internal/video"
)

// ticksPerFrame is the DMG's well-known per-frame tick budget (154
// scanlines * 456 ticks), used by RunFrame to know when to stop.
const ticksPerFrame = 70224

// Gameboy is the root emulation component: it wires the CPU, MMU, PPU and
// interrupt controller together and advances them in lockstep.
type Gameboy struct {
	cpu        *cpu.CPU
	mmu        *memory.MMU
	ppu        *video.PPU
	interrupts *interrupt.Controller

	input     input.State
	frameTick int
}

// New builds a Gameboy with the given cartridge ROM image loaded behind an
// MBC3 controller. Images that do not declare an MBC3 cartridge type are
// rejected; there is no flat (unbanked) fallback here.
func New(romData []byte) (*Gameboy, error) {
	cartridge, err := memory.NewCartridge(romData)
	if err != nil {
		return nil, fmt.Errorf("dmgboy: %w", err)
	}

	interrupts := interrupt.New()
	mmu := memory.New(interrupts)
	mmu.AttachCartridge(memory.NewMBC3(cartridge.ROMBanks, cartridge.RAMBankCount))

	gb := &Gameboy{
		cpu:        cpu.New(mmu, interrupts),
		mmu:        mmu,
		ppu:        video.New(mmu),
		interrupts: interrupts,
	}

	slog.Debug("loaded cartridge", "title", cartridge.Title, "romBanks", len(cartridge.ROMBanks), "ramBanks", cartridge.RAMBankCount)

	return gb, nil
}

// Step executes exactly one CPU unit of work, advances the PPU and timer
// by the same number of ticks, routes any PPU event to the interrupt
// controller, and only then applies the latest input snapshot and raises
// a Joypad interrupt on a falling edge. Ordering matters: any interrupt
// requested during a step (PPU or Joypad) is serviced at the top of the
// *next* Step call, never the one it arrived in, so this call always
// executes and times the instruction it was asked to run. It returns the
// number of ticks elapsed.
func (gb *Gameboy) Step(newInput input.State) (int, error) {
	ticks, err := gb.cpu.Step()
	if err != nil {
		return ticks, err
	}

	gb.mmu.Tick(ticks)

	switch gb.ppu.Advance(ticks) {
	case video.VBlankEvent:
		gb.interrupts.Request(addr.VBlank)
	case video.LCDEvent:
		gb.interrupts.Request(addr.LCD)
	}

	edges := input.FallingEdges(gb.input, newInput)
	gb.input = newInput
	gb.mmu.SetButtons(uint8(newInput))
	if edges != 0 {
		gb.interrupts.Request(addr.Joypad)
	}

	return ticks, nil
}

// RunFrame steps the machine until at least one frame's worth of ticks has
// elapsed, returning the total tick count consumed. This is the unit a
// host render loop calls once per display refresh.
func (gb *Gameboy) RunFrame(newInput input.State) (int, error) {
	total := 0
	for total < ticksPerFrame {
		ticks, err := gb.Step(newInput)
		if err != nil {
			return total, err
		}
		total += ticks
	}
	return total, nil
}

// MMU exposes the bus for host-side framebuffer or debug inspection.
func (gb *Gameboy) MMU() *memory.MMU { return gb.mmu }

// LoadROM reads a ROM image from disk and constructs a Gameboy from it.
func LoadROM(path string) (*Gameboy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dmgboy: reading ROM: %w", err)
	}
	return New(data)
}
