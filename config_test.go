package main

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/tunra/Chip8VM/chip8"
)

func TestParseFlagsDefaults(t *testing.T) {
	opts, err := parseFlags([]string{"game.ch8"}, io.Discard)
	assert.NoError(t, err)

	assert.Equal(t, "game.ch8", opts.file)
	assert.Equal(t, chip8.DefaultSpeed, opts.speed)
	assert.Equal(t, uint(0x200), opts.origin)
	assert.Equal(t, 10, opts.scale)
	assert.Equal(t, 1000, opts.cycles)
	assert.False(t, opts.term)
	assert.False(t, opts.headless)

	q, err := opts.interpreterQuirks()
	assert.NoError(t, err)
	assert.Equal(t, chip8.Quirks{}, q)
}

func TestParseFlagsOrigin(t *testing.T) {
	opts, err := parseFlags([]string{"-origin", "0x600", "game.ch8"}, io.Discard)
	assert.NoError(t, err)
	assert.Equal(t, uint(0x600), opts.origin)

	opts, err = parseFlags([]string{"-origin", "1024", "game.ch8"}, io.Discard)
	assert.NoError(t, err)
	assert.Equal(t, uint(0x400), opts.origin)

	_, err = parseFlags([]string{"-origin", "0x1000", "game.ch8"}, io.Discard)
	assert.ErrorContains(t, err, "invalid origin")

	_, err = parseFlags([]string{"-origin", "nope", "game.ch8"}, io.Discard)
	assert.ErrorContains(t, err, "invalid origin")
}

func TestParseFlagsInvalid(t *testing.T) {
	_, err := parseFlags([]string{"-cycles", "-1", "game.ch8"}, io.Discard)
	assert.ErrorContains(t, err, "invalid cycle count")

	_, err = parseFlags([]string{"-nosuchflag"}, io.Discard)
	assert.Error(t, err)
}

func TestParseFlagsUsage(t *testing.T) {
	var usage bytes.Buffer

	_, err := parseFlags([]string{"-headless"}, &usage)
	assert.True(t, errors.Is(err, errUsage))
	assert.Contains(t, usage.String(), "usage: chip8")

	_, err = parseFlags([]string{"-term"}, io.Discard)
	assert.True(t, errors.Is(err, errUsage))

	// the window asks for a program instead
	opts, err := parseFlags(nil, io.Discard)
	assert.NoError(t, err)
	assert.Equal(t, "", opts.file)

	opts, err = parseFlags([]string{"-version"}, io.Discard)
	assert.NoError(t, err)
	assert.True(t, opts.version)
}

func TestInterpreterQuirks(t *testing.T) {
	opts, err := parseFlags([]string{"-quirks", "chip48", "-clip", "game.ch8"}, io.Discard)
	assert.NoError(t, err)

	q, err := opts.interpreterQuirks()
	assert.NoError(t, err)
	assert.True(t, q.LegacyJump)
	assert.True(t, q.ClipSprites)
	assert.False(t, q.LegacyShift)

	opts, err = parseFlags([]string{"-quirks", "vip", "-jump", "game.ch8"}, io.Discard)
	assert.NoError(t, err)

	q, err = opts.interpreterQuirks()
	assert.NoError(t, err)
	assert.Equal(t, chip8.Quirks{LegacyShift: true, LegacyJump: true, LegacyStore: true, LegacyLogic: true, ClipSprites: true}, q)

	opts, err = parseFlags([]string{"-quirks", "schip", "game.ch8"}, io.Discard)
	assert.NoError(t, err)

	_, err = opts.interpreterQuirks()
	assert.Error(t, err)
}

func TestStatePath(t *testing.T) {
	opts := &options{file: "games/pong.ch8"}
	assert.Equal(t, "games/pong.ch8.state", opts.statePath())

	opts.state = "slot1"
	assert.Equal(t, "slot1", opts.statePath())

	assert.Equal(t, "chip8.state", (&options{}).statePath())
}
