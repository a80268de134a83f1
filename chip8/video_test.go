package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestFrameBufferLayout(t *testing.T) {
	var fb FrameBuffer

	assert.False(t, fb.Toggle(0, 0))
	assert.Equal(t, byte(0x80), fb[0])

	assert.False(t, fb.Toggle(9, 1))
	assert.Equal(t, byte(0x40), fb[9])

	assert.Equal(t, 2, fb.Lit())
}

func TestFrameBufferToggle(t *testing.T) {
	var fb FrameBuffer

	assert.False(t, fb.Toggle(5, 5))
	assert.True(t, fb.Pixel(5, 5))

	// turning a lit pixel off reports it
	assert.True(t, fb.Toggle(5, 5))
	assert.False(t, fb.Pixel(5, 5))
}

func TestFrameBufferWrap(t *testing.T) {
	var fb FrameBuffer

	fb.Toggle(ScreenWidth+1, ScreenHeight+2)
	assert.True(t, fb.Pixel(1, 2))

	fb.Toggle(-1, -1)
	assert.True(t, fb.Pixel(ScreenWidth-1, ScreenHeight-1))

	fb.Clear()
	assert.Equal(t, 0, fb.Lit())
}
