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

import "fmt"

/// Op identifies a decoded CHIP-8 instruction.
///
type Op uint8

/// The CHIP-8 instruction table. OpUnknown is every word that isn't
/// one of the 35 instructions below.
///
const (
	OpUnknown Op = iota
	OpSys        // 0NNN
	OpCls        // 00E0
	OpRet        // 00EE
	OpJp         // 1NNN
	OpCall       // 2NNN
	OpSeImm      // 3XNN
	OpSneImm     // 4XNN
	OpSeReg      // 5XY0
	OpLdImm      // 6XNN
	OpAddImm     // 7XNN
	OpLdReg      // 8XY0
	OpOr         // 8XY1
	OpAnd        // 8XY2
	OpXor        // 8XY3
	OpAddReg     // 8XY4
	OpSub        // 8XY5
	OpShr        // 8XY6
	OpSubn       // 8XY7
	OpShl        // 8XYE
	OpSneReg     // 9XY0
	OpLdI        // ANNN
	OpJpV0       // BNNN
	OpRnd        // CXNN
	OpDrw        // DXYN
	OpSkp        // EX9E
	OpSknp       // EXA1
	OpLdVxDT     // FX07
	OpLdVxK      // FX0A
	OpLdDTVx     // FX15
	OpLdSTVx     // FX18
	OpAddI       // FX1E
	OpLdF        // FX29
	OpLdB        // FX33
	OpLdIVx      // FX55
	OpLdVxI      // FX65
)

/// mnemonics maps each op to its assembly mnemonic.
///
var mnemonics = [...]string{
	OpUnknown: "??",
	OpSys:     "SYS",
	OpCls:     "CLS",
	OpRet:     "RET",
	OpJp:      "JP",
	OpCall:    "CALL",
	OpSeImm:   "SE",
	OpSneImm:  "SNE",
	OpSeReg:   "SE",
	OpLdImm:   "LD",
	OpAddImm:  "ADD",
	OpLdReg:   "LD",
	OpOr:      "OR",
	OpAnd:     "AND",
	OpXor:     "XOR",
	OpAddReg:  "ADD",
	OpSub:     "SUB",
	OpShr:     "SHR",
	OpSubn:    "SUBN",
	OpShl:     "SHL",
	OpSneReg:  "SNE",
	OpLdI:     "LD",
	OpJpV0:    "JP",
	OpRnd:     "RND",
	OpDrw:     "DRW",
	OpSkp:     "SKP",
	OpSknp:    "SKNP",
	OpLdVxDT:  "LD",
	OpLdVxK:   "LD",
	OpLdDTVx:  "LD",
	OpLdSTVx:  "LD",
	OpAddI:    "ADD",
	OpLdF:     "LD",
	OpLdB:     "LD",
	OpLdIVx:   "LD",
	OpLdVxI:   "LD",
}

/// Mnemonic returns the assembly mnemonic for the op.
///
func (op Op) Mnemonic() string {
	if int(op) < len(mnemonics) {
		return mnemonics[op]
	}

	return mnemonics[OpUnknown]
}

/// Instruction is a decoded instruction word and its operand fields.
///
type Instruction struct {
	/// Opcode is the raw 16-bit instruction word.
	///
	Opcode uint16

	/// Op is the decoded operation.
	///
	Op Op

	/// X and Y are the register operands (bits 8-11 and 4-7).
	///
	X, Y Register

	/// N is the 4-bit immediate, NN the 8-bit immediate, and NNN the
	/// 12-bit address.
	///
	N   byte
	NN  byte
	NNN uint16
}

/// Decode a 16-bit instruction word. Decode never fails: words that
/// aren't in the instruction table decode as OpUnknown and are left for
/// the interpreter to reject.
///
func Decode(word uint16) Instruction {
	inst := Instruction{
		Opcode: word,
		X:      Register(word >> 8 & 0xF),
		Y:      Register(word >> 4 & 0xF),
		N:      byte(word & 0xF),
		NN:     byte(word & 0xFF),
		NNN:    word & 0xFFF,
	}

	inst.Op = decodeOp(word)

	return inst
}

/// decodeOp classifies by the family nibble, then by the low nibble or
/// low byte within the family.
///
func decodeOp(word uint16) Op {
	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x00E0:
			return OpCls
		case 0x00EE:
			return OpRet
		}
		return OpSys
	case 0x1:
		return OpJp
	case 0x2:
		return OpCall
	case 0x3:
		return OpSeImm
	case 0x4:
		return OpSneImm
	case 0x5:
		if word&0xF == 0x0 {
			return OpSeReg
		}
	case 0x6:
		return OpLdImm
	case 0x7:
		return OpAddImm
	case 0x8:
		switch word & 0xF {
		case 0x0:
			return OpLdReg
		case 0x1:
			return OpOr
		case 0x2:
			return OpAnd
		case 0x3:
			return OpXor
		case 0x4:
			return OpAddReg
		case 0x5:
			return OpSub
		case 0x6:
			return OpShr
		case 0x7:
			return OpSubn
		case 0xE:
			return OpShl
		}
	case 0x9:
		if word&0xF == 0x0 {
			return OpSneReg
		}
	case 0xA:
		return OpLdI
	case 0xB:
		return OpJpV0
	case 0xC:
		return OpRnd
	case 0xD:
		return OpDrw
	case 0xE:
		switch word & 0xFF {
		case 0x9E:
			return OpSkp
		case 0xA1:
			return OpSknp
		}
	case 0xF:
		switch word & 0xFF {
		case 0x07:
			return OpLdVxDT
		case 0x0A:
			return OpLdVxK
		case 0x15:
			return OpLdDTVx
		case 0x18:
			return OpLdSTVx
		case 0x1E:
			return OpAddI
		case 0x29:
			return OpLdF
		case 0x33:
			return OpLdB
		case 0x55:
			return OpLdIVx
		case 0x65:
			return OpLdVxI
		}
	}

	return OpUnknown
}

/// String renders the instruction in assembler syntax.
///
func (inst Instruction) String() string {
	m := inst.Op.Mnemonic()

	return m + inst.operands()
}

/// operands renders the operand list, including the leading padding.
///
func (inst Instruction) operands() string {
	x, y := inst.X, inst.Y

	switch inst.Op {
	case OpCls, OpRet:
		return ""
	case OpSys, OpJp, OpCall:
		return pad(inst.Op, fmt.Sprintf("#%04X", inst.NNN))
	case OpSeImm, OpSneImm, OpLdImm, OpAddImm, OpRnd:
		return pad(inst.Op, fmt.Sprintf("%s, #%02X", x, inst.NN))
	case OpSeReg, OpSneReg, OpLdReg, OpOr, OpAnd, OpXor, OpAddReg, OpSub, OpSubn, OpShr, OpShl:
		return pad(inst.Op, fmt.Sprintf("%s, %s", x, y))
	case OpLdI:
		return pad(inst.Op, fmt.Sprintf("I, #%04X", inst.NNN))
	case OpJpV0:
		return pad(inst.Op, fmt.Sprintf("V0, #%04X", inst.NNN))
	case OpDrw:
		return pad(inst.Op, fmt.Sprintf("%s, %s, %d", x, y, inst.N))
	case OpSkp, OpSknp:
		return pad(inst.Op, x.String())
	case OpLdVxDT:
		return pad(inst.Op, fmt.Sprintf("%s, DT", x))
	case OpLdVxK:
		return pad(inst.Op, fmt.Sprintf("%s, K", x))
	case OpLdDTVx:
		return pad(inst.Op, fmt.Sprintf("DT, %s", x))
	case OpLdSTVx:
		return pad(inst.Op, fmt.Sprintf("ST, %s", x))
	case OpAddI:
		return pad(inst.Op, fmt.Sprintf("I, %s", x))
	case OpLdF:
		return pad(inst.Op, fmt.Sprintf("F, %s", x))
	case OpLdB:
		return pad(inst.Op, fmt.Sprintf("B, %s", x))
	case OpLdIVx:
		return pad(inst.Op, fmt.Sprintf("[I], %s", x))
	case OpLdVxI:
		return pad(inst.Op, fmt.Sprintf("%s, [I]", x))
	}

	return pad(inst.Op, fmt.Sprintf("#%04X", inst.Opcode))
}

/// pad the mnemonic column to 7 characters, like the debugger listing.
///
func pad(op Op, s string) string {
	return fmt.Sprintf("%*s%s", 7-len(op.Mnemonic()), "", s)
}
