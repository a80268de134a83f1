package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeypad(t *testing.T) {
	var k Keypad

	k.SetKey(0xF, true)
	assert.True(t, k.IsPressed(0xF))
	assert.True(t, k.IsPressed(0x1F))

	// out of range codes are ignored
	k.SetKey(0x10, true)
	assert.False(t, k.IsPressed(0x0))

	k.SetKey(0xF, false)
	assert.False(t, k.IsPressed(0xF))
}
