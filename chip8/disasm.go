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

package chip8

import (
	"fmt"
	"strings"

	cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

/// Disassemble the CHIP-8 instruction at address i.
///
func (vm *CHIP_8) Disassemble(i uint16) string {
	word, err := vm.Memory.Word(i)
	if err != nil {
		return ""
	}

	// end of program memory?
	if word == 0 {
		return fmt.Sprintf("%04X -", i)
	}

	return fmt.Sprintf("%04X - %s", i, DisassembleWord(word))
}

/// DisassembleWord renders a single instruction word. Words that are
/// instructions of a CHIP-8 extension (SUPER-CHIP, XO-CHIP) have the
/// extension mnemonic appended as a comment, since this interpreter
/// treats them as SYS calls or unknown opcodes.
///
func DisassembleWord(word uint16) string {
	inst := Decode(word)
	s := inst.String()

	if inst.Op != OpUnknown && inst.Op != OpSys {
		return s
	}

	if name, ok := ExtensionMnemonic(word); ok {
		return fmt.Sprintf("%-19s; %s", s, name)
	}

	return s
}

/// ExtensionMnemonic looks word up in the full CHIP-8 family opcode
/// table and returns its mnemonic if it isn't the base interpreter's
/// reading of the word.
///
func ExtensionMnemonic(word uint16) (string, bool) {
	local := Decode(word).Op.Mnemonic()
	found := ""

	for _, op := range cpu.Opcodes[int(word>>12)] {
		if op.Instruction == nil || op.Info.Mask&word != op.Info.Value {
			continue
		}

		name := strings.ToUpper(op.Instruction.Name)
		if name == local {
			return "", false
		}

		if found == "" {
			found = name
		}
	}

	return found, found != ""
}
