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
	"fmt"

	"github.com/tunra/Chip8VM/chip8"
)

/// TraceLog keeps a bounded scrollback of executed instructions that
/// can be viewed and scrolled.
///
type TraceLog struct {
	/// buf contains each traced line, oldest first.
	///
	buf []string

	/// limit is the most lines kept.
	///
	limit int

	/// pos is the current user read position within the log.
	///
	pos int
}

/// NewTraceLog creates a new trace log holding up to limit lines.
///
func NewTraceLog(limit int) *TraceLog {
	if limit < 1 {
		limit = 1
	}

	return &TraceLog{
		buf:   make([]string, 0, limit),
		limit: limit,
	}
}

/// Hook returns a function suitable for chip8.CHIP_8.Trace.
///
func (t *TraceLog) Hook() func(pc uint16, inst chip8.Instruction) {
	return func(pc uint16, inst chip8.Instruction) {
		t.Log(fmt.Sprintf("%04X - %s", pc, inst))
	}
}

/// Log outputs a new line to the log, dropping the oldest line if full.
///
func (t *TraceLog) Log(s string) {
	scroll := t.pos == len(t.buf)

	if len(t.buf) == t.limit {
		copy(t.buf, t.buf[1:])
		t.buf = t.buf[:len(t.buf)-1]

		if !scroll && t.pos > 0 {
			t.pos--
		}
	}

	t.buf = append(t.buf, s)

	if scroll {
		t.pos = len(t.buf)
	}
}

/// Len returns the number of lines kept.
///
func (t *TraceLog) Len() int {
	return len(t.buf)
}

/// Window returns up to n lines ending at the read position.
///
func (t *TraceLog) Window(n int) []string {
	start := t.pos - n

	// don't scroll past the beginning
	if start < 0 {
		start = 0
	}

	if start+n >= len(t.buf) {
		return t.buf[start:]
	}

	return t.buf[start : start+n]
}

/// Home scrolls the log to the beginning.
///
func (t *TraceLog) Home() {
	t.pos = 0
}

/// End scrolls the log to the end.
///
func (t *TraceLog) End() {
	t.pos = len(t.buf)
}

/// ScrollUp scrolls the log back one position.
///
func (t *TraceLog) ScrollUp() {
	t.pos--

	// clamp to home
	if t.pos < 0 {
		t.Home()
	}
}

/// ScrollDown scrolls the log forward one position, never leaving fewer
/// than windowSize lines above the read position.
///
func (t *TraceLog) ScrollDown(windowSize int) {
	t.pos++

	if t.pos < windowSize {
		t.pos = windowSize
	}

	// clamp to end
	if t.pos >= len(t.buf) {
		t.End()
	}
}

/// Clear drops every line.
///
func (t *TraceLog) Clear() {
	t.buf = t.buf[:0]
	t.pos = 0
}
