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
	"strings"
	"time"

	"github.com/tunra/Chip8VM/chip8"
)

/// runHeadless runs opts.cycles instructions' worth of time without a
/// display, then prints the screen and registers. A breakpoint or fault
/// stops it early.
///
func runHeadless(ctx context.Context, s *session, out io.Writer) error {
	total := time.Duration(s.opts.cycles) * time.Second / time.Duration(s.clock.Speed)
	frame := time.Second / chip8.TimerRate

	var runErr error

	for total > 0 && runErr == nil {
		if err := ctx.Err(); err != nil {
			return err
		}

		d := min(frame, total)
		total -= d

		runErr = s.clock.Advance(s.vm, d)
	}

	fmt.Fprint(out, renderText(&s.vm.Video))
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Join(DebugRegisters(s.vm), "\n"))
	fmt.Fprintf(out, "cycles: %d\n", s.vm.Cycles)

	if errors.Is(runErr, chip8.ErrBreakpoint) {
		fmt.Fprintln(out, runErr)
		return nil
	}

	return runErr
}

/// renderText draws the screen with '#' for lit pixels.
///
func renderText(fb *chip8.FrameBuffer) string {
	var sb strings.Builder

	sb.Grow((chip8.ScreenWidth + 1) * chip8.ScreenHeight)

	for y := 0; y < chip8.ScreenHeight; y++ {
		for x := 0; x < chip8.ScreenWidth; x++ {
			if fb.Pixel(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
