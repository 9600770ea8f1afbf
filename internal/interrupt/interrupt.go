// Package interrupt implements the DMG interrupt controller: the IE/IF
// bitfields and the request/pending/clear API the CPU and MMU share.
package interrupt

import "github.com/ravnsson/dmgboy/internal/addr"

// sourceBit maps an interrupt source to its bit position in IE/IF.
func sourceBit(source addr.Interrupt) uint8 {
	switch source {
	case addr.VBlank:
		return 0
	case addr.LCD:
		return 1
	case addr.Timer:
		return 2
	case addr.Serial:
		return 3
	case addr.Joypad:
		return 4
	default:
		return 0
	}
}

// Controller holds the two interrupt bitfields (IE, IF). Bits 5-7 of IF
// are unused on real hardware; this implementation masks them off on every
// IF mutation and reads them back as 1. IE is stored exactly as written;
// Pending masks both registers to the five meaningful bits.
type Controller struct {
	ie uint8
	ifr uint8
}

// New returns a controller with both registers cleared.
func New() *Controller {
	return &Controller{}
}

// Request latches the given source in IF. A disabled-but-requested
// interrupt stays latched until IE enables it.
func (c *Controller) Request(source addr.Interrupt) {
	c.ifr |= 1 << sourceBit(source)
}

// Clear resets the IF bit for source, invoked while servicing it.
func (c *Controller) Clear(source addr.Interrupt) {
	c.ifr &^= 1 << sourceBit(source)
}

// Requested reports whether source is currently latched in IF, regardless
// of whether it is enabled in IE. Used for the STOP->Running transition,
// which on real hardware is a joypad pin wake independent of IE/IME.
func (c *Controller) Requested(source addr.Interrupt) bool {
	return c.ifr&(1<<sourceBit(source)) != 0
}

// Pending returns the bitmask of sources that are both enabled (IE) and
// requested (IF), restricted to the five meaningful bits.
func (c *Controller) Pending() uint8 {
	return c.ie & c.ifr & 0x1F
}

// Highest returns the highest-priority pending source (VBlank > LCD > Timer
// > Serial > Joypad) and true, or (0, false) if nothing is pending.
func (c *Controller) Highest() (addr.Interrupt, bool) {
	pending := c.Pending()
	if pending == 0 {
		return 0, false
	}

	for _, source := range []addr.Interrupt{addr.VBlank, addr.LCD, addr.Timer, addr.Serial, addr.Joypad} {
		if pending&(1<<sourceBit(source)) != 0 {
			return source, true
		}
	}

	return 0, false
}

// IE returns the raw IE byte, for the memory-mapped read at 0xFFFF.
func (c *Controller) IE() uint8 {
	return c.ie
}

// SetIE writes the raw IE byte, for the memory-mapped write at 0xFFFF.
func (c *Controller) SetIE(value uint8) {
	c.ie = value
}

// IF returns the raw IF byte, for the memory-mapped read at 0xFF0F. The
// unused upper 3 bits read back as 1, matching real hardware.
func (c *Controller) IF() uint8 {
	return c.ifr | 0xE0
}

// SetIF writes the raw IF byte, for the memory-mapped write at 0xFF0F.
func (c *Controller) SetIF(value uint8) {
	c.ifr = value & 0x1F
}
