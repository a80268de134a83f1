package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
	"github.com/tunra/Chip8VM/chip8"
)

func newTestTerminal(t *testing.T) (*terminalHost, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer

	h := &terminalHost{
		s:    newTestSession(t, "ADD V0, 1\nJP #200", "-term"),
		out:  &out,
		held: make(map[chip8.Key]time.Time),
	}

	return h, &out
}

func TestTerminalKey(t *testing.T) {
	tests := []struct {
		in  byte
		key chip8.Key
	}{
		{'1', 0x1}, {'4', 0xC}, {'q', 0x4}, {'R', 0xD},
		{'a', 0x7}, {'F', 0xE}, {'z', 0xA}, {'x', 0x0}, {'V', 0xF},
	}

	for _, test := range tests {
		key, ok := terminalKey(test.in)
		assert.True(t, ok)
		assert.Equal(t, test.key, key)
	}

	_, ok := terminalKey('p')
	assert.False(t, ok)

	// every keypad key is reachable
	seen := make(map[chip8.Key]bool)
	for _, k := range terminalKeys {
		seen[k] = true
	}
	assert.Equal(t, chip8.KeyCount, len(seen))
}

func TestTerminalKeyHold(t *testing.T) {
	h, _ := newTestTerminal(t)
	now := time.Now()

	assert.NoError(t, h.handleInput([]byte("w"), now))
	assert.True(t, h.s.vm.Keys.IsPressed(0x5))

	// auto-repeat keeps it held
	assert.NoError(t, h.handleInput([]byte("w"), now.Add(100*time.Millisecond)))
	h.releaseKeys(now.Add(200 * time.Millisecond))
	assert.True(t, h.s.vm.Keys.IsPressed(0x5))

	h.releaseKeys(now.Add(250 * time.Millisecond))
	assert.False(t, h.s.vm.Keys.IsPressed(0x5))
	assert.Equal(t, 0, len(h.held))
}

func TestTerminalControls(t *testing.T) {
	h, _ := newTestTerminal(t)
	now := time.Now()

	assert.True(t, errors.Is(h.handleInput([]byte{keyEscape}, now), errQuit))
	assert.True(t, errors.Is(h.handleInput([]byte{keyCtrlC}, now), errQuit))

	// an arrow key is not a quit
	assert.NoError(t, h.handleInput([]byte("\x1b[A"), now))

	assert.NoError(t, h.handleInput([]byte("]"), now))
	assert.Equal(t, chip8.DefaultSpeed*2, h.s.clock.Speed)

	assert.NoError(t, h.handleInput([]byte(" "), now))
	assert.True(t, h.s.paused)

	assert.NoError(t, h.handleInput([]byte(".."), now))
	assert.Equal(t, int64(2), h.s.vm.Cycles)

	assert.NoError(t, h.handleInput([]byte{keyBackspace}, now))
	assert.Equal(t, int64(0), h.s.vm.Cycles)
	assert.Equal(t, byte(0), h.s.vm.V[chip8.V0])
}

func TestTerminalDraw(t *testing.T) {
	h, out := newTestTerminal(t)

	h.draw()
	first := out.String()
	assert.True(t, strings.HasPrefix(first, "\x1b[H"))
	assert.Contains(t, first, "running")

	// unchanged frames aren't redrawn
	out.Reset()
	h.draw()
	assert.Equal(t, "", out.String())

	h.s.vm.Timers.SetSound(4)
	h.draw()
	assert.Equal(t, "\a", out.String())

	// only once per tone
	out.Reset()
	h.draw()
	assert.Equal(t, "", out.String())
}

func TestRenderHalfBlocks(t *testing.T) {
	var fb chip8.FrameBuffer
	fb.Toggle(0, 0)
	fb.Toggle(1, 1)
	fb.Toggle(2, 0)
	fb.Toggle(2, 1)

	lines := strings.Split(renderHalfBlocks(&fb), "\r\n")

	assert.Equal(t, chip8.ScreenHeight/2+1, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "▀▄█ "))
	assert.Equal(t, strings.Repeat(" ", chip8.ScreenWidth), lines[1])
	assert.Equal(t, "", lines[len(lines)-1])
}
