/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/retroenv/retrogolib/log"
	"github.com/tunra/Chip8VM/chip8"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

/// Terminals only report key presses, so a key counts as held for this
/// long after its last press (or auto-repeat).
///
const keyHold = 150 * time.Millisecond

/// errQuit stops the terminal host when the user asks to.
///
var errQuit = errors.New("quit")

/// terminalKeys maps the left-hand block of a QWERTY keyboard onto the
/// hex keypad:
///
///	1 2 3 4      1 2 3 C
///	Q W E R  ->  4 5 6 D
///	A S D F      7 8 9 E
///	Z X C V      A 0 B F
///
var terminalKeys = map[byte]chip8.Key{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

/// Host control keys in the terminal.
///
const (
	keyCtrlC     = 0x03
	keyCtrlL     = 0x0C
	keyCtrlR     = 0x12
	keyCtrlS     = 0x13
	keyEscape    = 0x1B
	keyBackspace = 0x7F
)

/// terminalKey maps an input byte to a keypad key.
///
func terminalKey(b byte) (chip8.Key, bool) {
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}

	k, ok := terminalKeys[b]
	return k, ok
}

/// terminalHost runs a session drawing to an ANSI terminal.
///
type terminalHost struct {
	s   *session
	out io.Writer

	/// when each held key was last pressed
	///
	held map[chip8.Key]time.Time

	/// the sound timer was running last frame
	///
	beeping bool

	/// last frame drawn
	///
	drawn string

	/// mirrors the session pause state for the timer loop
	///
	paused atomic.Bool
}

/// runTerminal runs the session in the terminal until Escape or Ctrl-C.
/// Input is read in its own goroutine and the timers tick from their own
/// 60 Hz loop, independent of the CPU clock.
///
func runTerminal(ctx context.Context, s *session, in *os.File, out io.Writer) error {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("stdin is not a terminal")
	}

	if w, h, err := term.GetSize(fd); err == nil && (w < chip8.ScreenWidth || h < chip8.ScreenHeight/2+1) {
		return fmt.Errorf("terminal too small: %dx%d, need %dx%d", w, h, chip8.ScreenWidth, chip8.ScreenHeight/2+1)
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("setting raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	// hide the cursor and clear the screen
	fmt.Fprint(out, "\x1b[?25l\x1b[2J")
	defer fmt.Fprint(out, "\x1b[?25h\x1b[2J\x1b[H")

	h := &terminalHost{
		s:    s,
		out:  out,
		held: make(map[chip8.Key]time.Time),
	}

	s.clock.Timers = false

	g, ctx := errgroup.WithContext(ctx)
	input := make(chan []byte, 16)

	g.Go(func() error {
		return readTerminal(ctx, fd, input)
	})

	g.Go(func() error {
		ticker := time.NewTicker(time.Second / chip8.TimerRate)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if !h.paused.Load() {
					s.vm.TickTimers()
				}
			}
		}
	})

	g.Go(func() error {
		return h.run(ctx, input)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}

	return nil
}

/// run is the CPU and display loop.
///
func (h *terminalHost) run(ctx context.Context, input <-chan []byte) error {
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case b := <-input:
			if err := h.handleInput(b, time.Now()); err != nil {
				return err
			}
			h.paused.Store(h.s.paused)
		case now := <-ticker.C:
			h.releaseKeys(now)
			h.s.frame(now.Sub(last))
			h.paused.Store(h.s.paused)
			last = now

			h.draw()
		}
	}
}

/// handleInput processes one read's worth of bytes.
///
func (h *terminalHost) handleInput(b []byte, now time.Time) error {
	// a lone escape quits; escape sequences (arrows, F-keys) are ignored
	if len(b) > 0 && b[0] == keyEscape {
		if len(b) == 1 {
			return errQuit
		}
		return nil
	}

	s := h.s

	for _, c := range b {
		if k, ok := terminalKey(c); ok {
			if _, down := h.held[k]; !down {
				s.vm.PressKey(k)
			}
			h.held[k] = now
			continue
		}

		switch c {
		case keyCtrlC:
			return errQuit
		case keyBackspace, '\b':
			s.reset()
		case ' ':
			s.togglePause()
		case '.':
			s.step()
		case '[':
			s.slower()
		case ']':
			s.faster()
		case keyCtrlR:
			s.report("Reload", s.reload())
		case keyCtrlS:
			s.report("Save state", s.saveState())
		case keyCtrlL:
			s.report("Restore state", s.restoreState())
		}
	}

	return nil
}

/// releaseKeys lets go of keys that haven't been pressed recently.
///
func (h *terminalHost) releaseKeys(now time.Time) {
	for k, t := range h.held {
		if now.Sub(t) >= keyHold {
			h.s.vm.ReleaseKey(k)
			delete(h.held, k)
		}
	}
}

/// draw writes the screen and status line if anything changed, and rings
/// the bell when the sound timer starts.
///
func (h *terminalHost) draw() {
	s := h.s

	status := fmt.Sprintf("%s  %d Hz", s.vm.State, s.clock.Speed)
	if s.paused {
		status += "  paused"
	}

	frame := renderHalfBlocks(&s.vm.Video) + status + "\x1b[K"

	if frame != h.drawn {
		fmt.Fprint(h.out, "\x1b[H"+frame)
		h.drawn = frame
	}

	sound := s.vm.SoundTimer() > 0
	if sound && !h.beeping {
		fmt.Fprint(h.out, "\a")
		s.logger.Debug("Beep", log.Uint8("st", s.vm.SoundTimer()))
	}
	h.beeping = sound
}

/// renderHalfBlocks draws the screen two pixel rows per line using half
/// block characters. Lines end in CR LF for raw mode.
///
func renderHalfBlocks(fb *chip8.FrameBuffer) string {
	var sb strings.Builder

	for y := 0; y < chip8.ScreenHeight; y += 2 {
		for x := 0; x < chip8.ScreenWidth; x++ {
			top, bottom := fb.Pixel(x, y), fb.Pixel(x, y+1)

			switch {
			case top && bottom:
				sb.WriteString("█")
			case top:
				sb.WriteString("▀")
			case bottom:
				sb.WriteString("▄")
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}

	return sb.String()
}
