//go:build !nosdl

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
	"github.com/tunra/Chip8VM/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// Mapping of modern keyboard to CHIP-8 keys.
	///
	KeyMap = map[sdl.Scancode]chip8.Key{
		sdl.SCANCODE_X: 0x0,
		sdl.SCANCODE_1: 0x1,
		sdl.SCANCODE_2: 0x2,
		sdl.SCANCODE_3: 0x3,
		sdl.SCANCODE_Q: 0x4,
		sdl.SCANCODE_W: 0x5,
		sdl.SCANCODE_E: 0x6,
		sdl.SCANCODE_A: 0x7,
		sdl.SCANCODE_S: 0x8,
		sdl.SCANCODE_D: 0x9,
		sdl.SCANCODE_Z: 0xA,
		sdl.SCANCODE_C: 0xB,
		sdl.SCANCODE_4: 0xC,
		sdl.SCANCODE_R: 0xD,
		sdl.SCANCODE_F: 0xE,
		sdl.SCANCODE_V: 0xF,
	}
)

/// processEvents from SDL and map keys to the CHIP-8. Returns false
/// once the user quits.
///
func (h *sdlHost) processEvents() bool {
	s := h.s

	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			return false
		case *sdl.KeyboardEvent:
			key, mapped := KeyMap[ev.Keysym.Scancode]

			if ev.Type == sdl.KEYUP {
				if mapped {
					s.vm.ReleaseKey(key)
				}
				continue
			}

			if mapped {
				s.pressKey(key, ev.Repeat != 0)
				continue
			}

			// host keys don't auto-repeat
			if ev.Repeat != 0 {
				continue
			}

			switch ev.Keysym.Scancode {
			case sdl.SCANCODE_ESCAPE:
				return false
			case sdl.SCANCODE_BACKSPACE:
				s.reset()

				// holding control during reset will reboot paused
				if ev.Keysym.Mod&sdl.KMOD_CTRL != 0 && !s.paused {
					s.togglePause()
				}
			case sdl.SCANCODE_UP, sdl.SCANCODE_PAGEUP:
				s.trace.ScrollUp()
				h.showTrace()
			case sdl.SCANCODE_DOWN, sdl.SCANCODE_PAGEDOWN:
				s.trace.ScrollDown(traceWindow)
				h.showTrace()
			case sdl.SCANCODE_HOME:
				s.trace.Home()
				h.showTrace()
			case sdl.SCANCODE_END:
				s.trace.End()
				h.showTrace()
			case sdl.SCANCODE_F1:
				DebugHelp(s.logger)
			case sdl.SCANCODE_F2:
				s.report("Reload", s.reload())
			case sdl.SCANCODE_F3:
				h.openNew()
			case sdl.SCANCODE_F4:
				s.report("Save state", s.saveState())
			case sdl.SCANCODE_F8:
				s.report("Restore state", s.restoreState())
			case sdl.SCANCODE_F9:
				s.toggleBreakpoint()
			case sdl.SCANCODE_LEFTBRACKET:
				s.slower()
			case sdl.SCANCODE_RIGHTBRACKET:
				s.faster()
			case sdl.SCANCODE_F5, sdl.SCANCODE_SPACE:
				s.togglePause()
			case sdl.SCANCODE_F6, sdl.SCANCODE_F10:
				s.step()
			}
		}
	}

	return true
}

/// Lines of the trace shown at a time.
///
const traceWindow = 16

/// showTrace logs the visible window of the instruction trace.
///
func (h *sdlHost) showTrace() {
	for _, line := range h.s.trace.Window(traceWindow) {
		h.s.logger.Info(line)
	}
}
