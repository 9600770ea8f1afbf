package bit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	assert.Equal(t, uint16(0xBEEF), Combine(0xBE, 0xEF))
}

func TestLowHigh(t *testing.T) {
	assert.Equal(t, uint8(0xEF), Low(0xBEEF))
	assert.Equal(t, uint8(0xBE), High(0xBEEF))
}

func TestIsSetSetReset(t *testing.T) {
	var v uint8 = 0

	v = Set(3, v)
	assert.True(t, IsSet(3, v))

	v = Reset(3, v)
	assert.False(t, IsSet(3, v))
}

func TestSignedByte(t *testing.T) {
	assert.Equal(t, int8(-1), SignedByte(0xFF))
	assert.Equal(t, int8(5), SignedByte(0x05))
}
