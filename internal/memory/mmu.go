// Package memory implements the DMG bus: the MMU address dispatcher, the
// MBC3 cartridge controller, and cartridge loading.
package memory

import (
	"fmt"

	"github.com/ravnsson/dmgboy/internal/addr"
	"github.com/ravnsson/dmgboy/internal/interrupt"
)

const (
	vramSize = 0x2000
	wramSize = 0x2000
	oamSize  = 0xA0 // 0xFE00-0xFE9F
	ioSize   = 0x80 // 0xFF00-0xFF7F
	hramSize = 0x7F // 0xFF80-0xFFFE
)

// MMU dispatches reads and writes across the fixed address-space partition
// in the fixed DMG memory map: cartridge MBC, VRAM, WRAM (with echo
// aliasing), OAM, I/O registers, HRAM, and the interrupt-enable register.
type MMU struct {
	mbc MBC

	vram [vramSize]byte
	wram [wramSize]byte
	oam  [oamSize]byte
	io   [ioSize]byte
	hram [hramSize]byte

	interrupts *interrupt.Controller
	timer      *Timer

	joypadButtons uint8 // low nibble: A,B,Select,Start (1 = released)
	joypadDpad    uint8 // low nibble: Right,Left,Up,Down (1 = released)
}

// New builds an MMU with no cartridge attached; reads from the ROM/RAM
// windows return 0xFF until AttachCartridge is called.
func New(interrupts *interrupt.Controller) *MMU {
	m := &MMU{
		interrupts:    interrupts,
		timer:         NewTimer(),
		joypadButtons: 0x0F,
		joypadDpad:    0x0F,
	}
	m.io[addr.P1-0xFF00] = 0xCF
	return m
}

// Tick advances the timer by ticks elapsed CPU ticks, requesting the
// timer interrupt on TIMA overflow.
func (m *MMU) Tick(ticks int) {
	if m.timer.Tick(ticks) {
		m.interrupts.Request(addr.Timer)
	}
}

// AttachCartridge wires the given MBC as the backing store for the ROM and
// cartridge-RAM windows.
func (m *MMU) AttachCartridge(mbc MBC) {
	m.mbc = mbc
}

// Read implements the CPU-to-memory interface.
func (m *MMU) Read(address uint16) uint8 {
	switch {
	case address <= 0x7FFF:
		return m.readMBC(address)
	case address <= 0x9FFF:
		return m.vram[address-0x8000]
	case address <= 0xBFFF:
		return m.readMBC(address)
	case address <= 0xDFFF:
		return m.wram[address-0xC000]
	case address <= 0xFDFF:
		// Echo RAM mirrors 0xC000-0xDDFF: must alias, not panic.
		return m.wram[address-0xE000]
	case address <= 0xFE9F:
		return m.oam[address-0xFE00]
	case address <= 0xFEFF:
		// Unused region, reads as 0xFF.
		return 0xFF
	case address == addr.IF:
		return m.interrupts.IF()
	case address <= 0xFF7F:
		return m.readIO(address)
	case address <= 0xFFFE:
		return m.hram[address-0xFF80]
	default: // 0xFFFF
		return m.interrupts.IE()
	}
}

// Read16 reads a little-endian 16 bit word, per the CPU-to-memory interface.
func (m *MMU) Read16(address uint16) uint16 {
	low := m.Read(address)
	high := m.Read(address + 1)
	return uint16(high)<<8 | uint16(low)
}

// Write implements the CPU-to-memory interface. Write errors are fatal
// faults; in practice a conformant core never raises one, since every
// address is mapped to a writable owner.
func (m *MMU) Write(address uint16, value uint8) error {
	switch {
	case address <= 0x7FFF:
		return m.writeMBC(address, value)
	case address <= 0x9FFF:
		m.vram[address-0x8000] = value
		return nil
	case address <= 0xBFFF:
		return m.writeMBC(address, value)
	case address <= 0xDFFF:
		m.wram[address-0xC000] = value
		return nil
	case address <= 0xFDFF:
		m.wram[address-0xE000] = value
		return nil
	case address <= 0xFE9F:
		m.oam[address-0xFE00] = value
		return nil
	case address <= 0xFEFF:
		// Unused region, writes ignored.
		return nil
	case address == addr.IF:
		m.interrupts.SetIF(value)
		return nil
	case address <= 0xFF7F:
		return m.writeIO(address, value)
	case address <= 0xFFFE:
		m.hram[address-0xFF80] = value
		return nil
	default: // 0xFFFF
		m.interrupts.SetIE(value)
		return nil
	}
}

func (m *MMU) readMBC(address uint16) uint8 {
	if m.mbc == nil {
		return 0xFF
	}
	return m.mbc.Read(address)
}

func (m *MMU) writeMBC(address uint16, value uint8) error {
	if m.mbc == nil {
		return nil
	}
	return m.mbc.Write(address, value)
}

func (m *MMU) readIO(address uint16) uint8 {
	switch address {
	case addr.P1:
		return m.joypadRegister()
	case addr.DIV, addr.TIMA, addr.TMA, addr.TAC:
		return m.timer.Read(address)
	default:
		return m.io[address-0xFF00]
	}
}

func (m *MMU) writeIO(address uint16, value uint8) error {
	switch address {
	case addr.P1:
		// Only the selection bits (4-5) are writable.
		m.io[address-0xFF00] = value & 0x30
		return nil
	case addr.DIV, addr.TIMA, addr.TMA, addr.TAC:
		m.timer.Write(address, value)
		return nil
	case addr.DMA:
		m.performOAMDMA(value)
		m.io[address-0xFF00] = value
		return nil
	default:
		m.io[address-0xFF00] = value
		return nil
	}
}

// performOAMDMA copies 160 bytes from (value<<8) through (value<<8)+0x9F
// into OAM. This core performs the copy instantaneously; a cycle-accurate
// CPU stall during DMA is not modeled.
func (m *MMU) performOAMDMA(value uint8) {
	source := uint16(value) << 8
	for i := uint16(0); i < oamSize; i++ {
		m.oam[i] = m.Read(source + i)
	}
}

// joypadRegister computes P1's live value from the selection bits and the
// tracked button/d-pad state. Bits 6-7 always read as 1; 1 means released,
// 0 means pressed.
func (m *MMU) joypadRegister() uint8 {
	selectBits := m.io[addr.P1-0xFF00] & 0x30
	result := uint8(0xC0) | selectBits

	selectDpad := selectBits&0x10 == 0
	selectButtons := selectBits&0x20 == 0

	switch {
	case selectButtons && !selectDpad:
		result |= m.joypadButtons & 0x0F
	case selectDpad && !selectButtons:
		result |= m.joypadDpad & 0x0F
	case selectButtons && selectDpad:
		result |= m.joypadButtons & m.joypadDpad & 0x0F
	default:
		result |= 0x0F
	}

	return result
}

// SetButtons updates the live button/d-pad state from a full 8-bit input
// mask (A,B,Select,Start,Right,Left,Up,Down; 1 = pressed).
// Falling-edge detection and the resulting Joypad interrupt are the
// Gameboy component's responsibility, not the MMU's; this
// only keeps P1 consistent with the current snapshot.
func (m *MMU) SetButtons(mask uint8) {
	// Button order matches input.State bit layout: A,B,Select,Start,
	// Right,Left,Up,Down from bit 0 to bit 7.
	m.joypadButtons = ^uint8(mask) & 0x0F
	m.joypadDpad = (^(mask >> 4)) & 0x0F
}

func (m *MMU) String() string {
	return fmt.Sprintf("MMU{cartridge attached: %t}", m.mbc != nil)
}
