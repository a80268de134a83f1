package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/tunra/Chip8VM/chip8"
)

const digitProgram = `
	LD V0, 0
	LD V1, 1
	LD F, V0
	DRW V1, V1, 5
.LOOP
	JP LOOP
`

func TestRunHeadless(t *testing.T) {
	s := newTestSession(t, digitProgram, "-headless", "-cycles", "100")

	var out bytes.Buffer
	assert.NoError(t, runHeadless(context.Background(), s, &out))

	lines := strings.Split(out.String(), "\n")

	// the font's 0 drawn at 1,1
	assert.Equal(t, "."+strings.Repeat(".", chip8.ScreenWidth-1), lines[0])
	assert.Equal(t, ".####"+strings.Repeat(".", chip8.ScreenWidth-5), lines[1])
	assert.Equal(t, ".#..#"+strings.Repeat(".", chip8.ScreenWidth-5), lines[2])
	assert.Equal(t, 14, strings.Count(strings.Join(lines[:chip8.ScreenHeight], ""), "#"))

	assert.Contains(t, out.String(), "PC - #0208")
	assert.Contains(t, out.String(), "cycles: 100")
}

func TestRunHeadlessBreakpoint(t *testing.T) {
	s := newTestSession(t, "CLS\nBREAK stop\nCLS", "-headless")

	var out bytes.Buffer
	assert.NoError(t, runHeadless(context.Background(), s, &out))

	assert.Contains(t, out.String(), "cycles: 1")
	assert.Contains(t, out.String(), "breakpoint at #0202: STOP")
}

func TestRunHeadlessFault(t *testing.T) {
	s := newTestSession(t, "CLS\nRET", "-headless")

	var out bytes.Buffer
	err := runHeadless(context.Background(), s, &out)
	assert.True(t, errors.Is(err, chip8.ErrStackUnderflow))
	assert.Contains(t, out.String(), "halted")
}

func TestRunHeadlessCancelled(t *testing.T) {
	s := newTestSession(t, digitProgram, "-headless")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := runHeadless(ctx, s, &out)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, int64(0), s.vm.Cycles)
}

func TestRenderText(t *testing.T) {
	var fb chip8.FrameBuffer
	fb.Toggle(0, 0)
	fb.Toggle(63, 31)

	text := renderText(&fb)
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")

	assert.Equal(t, chip8.ScreenHeight, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "#."))
	assert.True(t, strings.HasSuffix(lines[31], ".#"))
	assert.Equal(t, 2, strings.Count(text, "#"))
}
