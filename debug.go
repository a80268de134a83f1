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
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/tunra/Chip8VM/chip8"
)

/// helpText lists the host keys.
///
var helpText = []string{
	"Virtual keys:",
	"  1-2-3-4",
	"  Q-W-E-R",
	"  A-S-D-F",
	"  Z-X-C-V",
	"",
	"Emulation keys:",
	"  ESC      - Quit",
	"  BS       - Reset",
	"  F1       - Help",
	"  F2       - Reload",
	"  F3       - Open ROM",
	"  F4       - Save state",
	"  F8       - Restore state",
	"  F5/SPACE - Pause",
	"  F6       - Step",
	"  F9       - Toggle breakpoint",
	"  [ / ]    - Slower / Faster",
	"  Up/Dn    - Scroll trace",
	"  Pg Up/Dn - Scroll trace",
	"  Home/End - Trace start/end",
}

/// DebugAssembly returns the disassembled instructions around the
/// CHIP-8 program counter, the current one marked with '>'.
///
func DebugAssembly(vm *chip8.CHIP_8, before, after int) []string {
	lines := make([]string, 0, before+after+1)

	start := int(vm.PC) - before*2
	if start < 0 {
		start = int(vm.PC) & 1
	}

	for addr := start; addr <= int(vm.PC)+after*2; addr += 2 {
		s := vm.Disassemble(uint16(addr))
		if s == "" {
			break
		}

		mark := "  "
		if addr == int(vm.PC) {
			mark = "> "
		}

		lines = append(lines, mark+s)
	}

	return lines
}

/// DebugRegisters returns the current value of all the CHIP-8 registers.
///
func DebugRegisters(vm *chip8.CHIP_8) []string {
	lines := make([]string, 0, 8)

	// two columns of v-registers
	for i := 0; i < 8; i++ {
		lines = append(lines, fmt.Sprintf("V%X - #%02X    V%X - #%02X", i, vm.V[i], i+8, vm.V[i+8]))
	}

	lines = append(lines,
		fmt.Sprintf("PC - #%04X   I  - #%04X", vm.PC, vm.I),
		fmt.Sprintf("DT - #%02X     ST - #%02X", vm.DelayTimer(), vm.SoundTimer()),
		fmt.Sprintf("SP - %d       %s", vm.Stack.Len(), vm.State))

	return lines
}

/// DebugStack returns the call stack, innermost frame first.
///
func DebugStack(vm *chip8.CHIP_8) []string {
	frames := vm.Stack.Frames()
	lines := make([]string, 0, len(frames))

	for i := len(frames) - 1; i >= 0; i-- {
		lines = append(lines, fmt.Sprintf("%2d - #%04X", i, frames[i]))
	}

	return lines
}

/// DebugDump logs the machine state.
///
func DebugDump(vm *chip8.CHIP_8, logger *log.Logger) {
	logger.Info("Machine state",
		log.String("registers", "\n"+strings.Join(DebugRegisters(vm), "\n")),
		log.String("stack", strings.Join(DebugStack(vm), ", ")),
		log.String("code", "\n"+strings.Join(DebugAssembly(vm, 4, 4), "\n")))
}

/// DebugHelp logs the help text.
///
func DebugHelp(logger *log.Logger) {
	logger.Info("Help\n" + strings.Join(helpText, "\n"))
}
