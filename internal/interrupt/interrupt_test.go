package interrupt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ravnsson/dmgboy/internal/addr"
)

func TestController_requestAndClear(t *testing.T) {
	c := New()

	c.Request(addr.Timer)
	assert.True(t, c.Requested(addr.Timer))
	assert.Equal(t, uint8(0), c.Pending(), "requested but not enabled in IE is not yet pending")

	c.SetIE(uint8(addr.Timer))
	assert.Equal(t, uint8(addr.Timer), c.Pending())

	c.Clear(addr.Timer)
	assert.False(t, c.Requested(addr.Timer))
	assert.Equal(t, uint8(0), c.Pending())
}

func TestController_highestPriorityOrder(t *testing.T) {
	c := New()
	c.SetIE(0x1F)

	c.Request(addr.Joypad)
	c.Request(addr.Serial)
	source, ok := c.Highest()
	assert.True(t, ok)
	assert.Equal(t, addr.Serial, source, "Serial outranks Joypad")

	c.Request(addr.VBlank)
	source, ok = c.Highest()
	assert.True(t, ok)
	assert.Equal(t, addr.VBlank, source, "VBlank outranks everything else")
}

func TestController_nonePending(t *testing.T) {
	c := New()
	_, ok := c.Highest()
	assert.False(t, ok)
}

func TestController_IFUnusedBitsReadAsOne(t *testing.T) {
	c := New()
	c.SetIF(0x01)

	assert.Equal(t, uint8(0xE1), c.IF())
}
