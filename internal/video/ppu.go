// Package video implements the PPU as a tick-accounting contract: a
// tick-driven mode state machine that emits at most one event per Advance
// call. The pixel pipeline itself (tile fetch, sprite
// compositing, the framebuffer) is out of this core's scope — PPU is a
// collaborator here, contracted only by its event-emitting tick API.
package video

import "github.com/ravnsson/dmgboy/internal/addr"

// Event is emitted by Advance; at most one is ever returned per call.
type Event int

const (
	// NoEvent means nothing interrupt-worthy happened this tick batch.
	NoEvent Event = iota
	// LCDEvent means a STAT-enabled mode transition occurred.
	LCDEvent
	// VBlankEvent means the PPU entered VBlank (start of line 144).
	VBlankEvent
)

// mode mirrors STAT bits 1-0.
type mode uint8

const (
	modeHBlank mode = 0
	modeVBlank mode = 1
	modeOAM    mode = 2
	modeVRAM   mode = 3
)

const (
	oamCycles      = 80
	vramCycles     = 172
	hblankCycles   = 204
	scanlineCycles = oamCycles + vramCycles + hblankCycles // 456
	scanlineCount  = 154                                    // 144 visible + 10 VBlank lines

	statHBlankIRQ = 3
	statVBlankIRQ = 4
	statOAMIRQ    = 5
	statLYCIRQ    = 6
)

// bus is the subset of the MMU the PPU needs: reading/writing the LCD
// registers it owns. Kept as an interface so PPU tests can swap in a
// minimal fake without an MBC3/cartridge attached.
type bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8) error
}

// PPU advances the video unit by elapsed ticks and reports LCD/VBlank
// events back to the Gameboy component, which is responsible for routing
// them to the interrupt controller.
type PPU struct {
	mem    bus
	mode   mode
	line   int
	cycles int
}

// New creates a PPU bound to the given memory bus, in VBlank mode with
// LY=144 — the DMG's documented power-on PPU state.
func New(mem bus) *PPU {
	p := &PPU{mem: mem, mode: modeVBlank, line: 144}
	p.writeLY(144)
	p.writeSTATMode(modeVBlank)
	return p
}

// Advance steps the PPU by the given number of machine ticks, returning
// at most one event: VBlankEvent takes priority over LCDEvent if a single
// Advance call crosses both a VBlank entry and the line it triggers the
// interrupt.
func (p *PPU) Advance(ticks int) Event {
	event := NoEvent
	p.cycles += ticks

	for {
		advanced, e := p.step()
		if e == VBlankEvent {
			event = VBlankEvent
		} else if e == LCDEvent && event == NoEvent {
			event = LCDEvent
		}
		if !advanced {
			break
		}
	}

	return event
}

// step consumes one mode-period worth of cycles if enough have
// accumulated, returning whether it advanced and any event raised.
func (p *PPU) step() (bool, Event) {
	switch p.mode {
	case modeOAM:
		if p.cycles < oamCycles {
			return false, NoEvent
		}
		p.cycles -= oamCycles
		p.setMode(modeVRAM)
		return true, p.statEventIfEnabled(statLYCIRQ, p.checkLYC())
	case modeVRAM:
		if p.cycles < vramCycles {
			return false, NoEvent
		}
		p.cycles -= vramCycles
		p.setMode(modeHBlank)
		return true, p.statEventIfEnabled(statHBlankIRQ, true)
	case modeHBlank:
		if p.cycles < hblankCycles {
			return false, NoEvent
		}
		p.cycles -= hblankCycles
		p.line++
		if p.line == 144 {
			p.writeLY(p.line)
			p.setMode(modeVBlank)
			return true, VBlankEvent
		}
		p.writeLY(p.line)
		p.setMode(modeOAM)
		return true, p.statEventIfEnabled(statOAMIRQ, true)
	case modeVBlank:
		if p.cycles < scanlineCycles {
			return false, NoEvent
		}
		p.cycles -= scanlineCycles
		p.line++
		if p.line >= scanlineCount {
			p.line = 0
			p.writeLY(p.line)
			p.setMode(modeOAM)
			return true, p.statEventIfEnabled(statOAMIRQ, true)
		}
		p.writeLY(p.line)
		return true, p.statEventIfEnabled(statLYCIRQ, p.checkLYC())
	}
	return false, NoEvent
}

func (p *PPU) setMode(m mode) {
	p.mode = m
	p.writeSTATMode(m)
}

// statEventIfEnabled returns LCDEvent if the LCD is on and the STAT
// interrupt-source bit is set, else NoEvent. condition lets callers fold
// in the LY==LYC coincidence check.
func (p *PPU) statEventIfEnabled(bitIndex uint8, condition bool) Event {
	if !condition {
		return NoEvent
	}
	if !p.lcdEnabled() {
		return NoEvent
	}
	stat := p.mem.Read(addr.STAT)
	if stat&(1<<bitIndex) != 0 {
		return LCDEvent
	}
	return NoEvent
}

func (p *PPU) lcdEnabled() bool {
	return p.mem.Read(addr.LCDC)&0x80 != 0
}

func (p *PPU) checkLYC() bool {
	return uint8(p.line) == p.mem.Read(addr.LYC)
}

func (p *PPU) writeLY(line int) {
	p.mem.Write(addr.LY, uint8(line))
	p.updateLYCFlag()
}

func (p *PPU) updateLYCFlag() {
	stat := p.mem.Read(addr.STAT)
	if p.checkLYC() {
		stat |= 1 << 2
	} else {
		stat &^= 1 << 2
	}
	p.mem.Write(addr.STAT, stat)
}

func (p *PPU) writeSTATMode(m mode) {
	stat := p.mem.Read(addr.STAT)
	stat = (stat &^ 0x03) | uint8(m)
	p.mem.Write(addr.STAT, stat)
}
