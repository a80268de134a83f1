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
	"bufio"
	"bytes"
	"fmt"
)

/// Breakpoint is an address the Clock stops at before executing.
///
type Breakpoint struct {
	/// Address of the instruction to break on.
	///
	Address uint16

	/// Reason is shown when the breakpoint is hit.
	///
	Reason string
}

/// AsmError is returned by Assemble. Line is 1-based, or 0 for errors
/// that don't belong to a single line.
///
type AsmError struct {
	Line int
	Msg  string
}

func (e *AsmError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d - %s", e.Line, e.Msg)
	}

	return e.Msg
}

/// Assembly is a completely assembled source file.
///
type Assembly struct {
	/// ROM is the final, assembled bytes to load at 0x200.
	///
	ROM []byte

	/// Breakpoints from BREAK directives.
	///
	Breakpoints []Breakpoint

	/// Labels maps each label to its address or EQU value.
	///
	Labels map[string]int

	/// fixups are operands that referenced a label before it was
	/// declared.
	///
	fixups []fixup

	/// line being assembled
	///
	line int
}

/// fixWidth is the part of the ROM a fixup patches.
///
type fixWidth uint8

const (
	fixAddress fixWidth = iota // low 12 bits of the word at
	fixByte                    // the byte at
	fixNibble                  // low 4 bits of the byte at
	fixWord                    // the word at
)

type fixup struct {
	label string
	at    int
	width fixWidth
	line  int
}

/// operand is an instruction operand with labels expanded. ref is set
/// when the operand is a label that isn't declared yet.
///
type operand struct {
	kind tokenKind
	n    int
	ref  string
}

/// Assemble an input CHIP-8 source code file.
///
func Assemble(program []byte) (out *Assembly, err error) {
	a := &Assembly{
		ROM:    make([]byte, ProgramOrigin, MemorySize),
		Labels: make(map[string]int),
	}

	// handle panics during assembly
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, &AsmError{Line: a.line, Msg: fmt.Sprint(r)}
		}
	}()

	scanner := bufio.NewScanner(bytes.NewReader(bytes.ToUpper(program)))

	// parse and assemble
	for a.line = 1; scanner.Scan(); a.line++ {
		a.assemble(&tokenScanner{bytes: scanner.Bytes()})

		if len(a.ROM) > MemorySize {
			panic("program too large")
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, &AsmError{Msg: err.Error()}
	}

	a.resolve()
	a.line = 0

	// drop the reserved interpreter region
	a.ROM = a.ROM[ProgramOrigin:]

	return a, nil
}

/// resolve patches every forward label reference.
///
func (a *Assembly) resolve() {
	for _, f := range a.fixups {
		a.line = f.line

		v, ok := a.Labels[f.label]
		if !ok {
			panic(fmt.Sprintf("unresolved label: %s", f.label))
		}

		switch f.width {
		case fixAddress:
			a.ROM[f.at] = a.ROM[f.at]&0xF0 | byte(checkRange(v, 0, 0xFFF, "address")>>8)
			a.ROM[f.at+1] = byte(v)
		case fixByte:
			a.ROM[f.at] = byte(checkRange(v, -0x80, 0xFF, "byte"))
		case fixNibble:
			a.ROM[f.at] = a.ROM[f.at]&0xF0 | byte(checkRange(v, 0, 0xF, "nibble"))
		case fixWord:
			a.ROM[f.at] = byte(checkRange(v, -0x8000, 0xFFFF, "word") >> 8)
			a.ROM[f.at+1] = byte(v)
		}
	}

	a.fixups = nil
}

func checkRange(n, lo, hi int, what string) int {
	if n < lo || n > hi {
		panic(fmt.Sprintf("%s out of range: %d", what, n))
	}

	return n
}

/// assemble a single line.
///
func (a *Assembly) assemble(s *tokenScanner) {
	t := s.scanToken()

	// assign labels
	if t.kind == tokenLabel {
		t = a.assembleLabel(t.text, s)
	}

	switch t.kind {
	case tokenMnemonic:
		a.assembleInstruction(t.text, s.scanOperands())
	case tokenDirective:
		a.assembleDirective(t.text, s.scanOperands())
	case tokenBreak:
		a.assembleBreakpoint(s)
	case tokenEnd:
	default:
		panic("unexpected token")
	}
}

/// assembleLabel declares a label and returns the token following it.
///
func (a *Assembly) assembleLabel(label string, s *tokenScanner) token {
	if _, exists := a.Labels[label]; exists {
		panic(fmt.Sprintf("duplicate label: %s", label))
	}

	// by default, the label is assigned the current address
	a.Labels[label] = len(a.ROM)

	t := s.scanToken()
	if t.kind != tokenEqu {
		return t
	}

	ops := s.scanOperands()
	if len(ops) != 1 {
		panic("illegal label assignment")
	}

	v := a.operand(ops[0])
	if v.kind != tokenLit || v.ref != "" {
		panic("illegal label assignment")
	}

	a.Labels[label] = v.n

	return token{kind: tokenEnd}
}

/// assembleBreakpoint creates a new breakpoint at the current address.
///
func (a *Assembly) assembleBreakpoint(s *tokenScanner) {
	a.Breakpoints = append(a.Breakpoints, Breakpoint{
		Address: uint16(len(a.ROM)),
		Reason:  s.scanToEnd().text,
	})
}

/// operand expands a label reference.
///
func (a *Assembly) operand(t token) operand {
	if t.kind != tokenRef {
		return operand{kind: t.kind, n: t.n}
	}

	if n, ok := a.Labels[t.text]; ok {
		return operand{kind: tokenLit, n: n}
	}

	return operand{kind: tokenLit, ref: t.text}
}

/// match the operand kinds with a list of tokens, expanding labels.
///
func (a *Assembly) match(tokens []token, kinds ...tokenKind) ([]operand, bool) {
	if len(tokens) != len(kinds) {
		return nil, false
	}

	ops := make([]operand, len(tokens))

	for i, kind := range kinds {
		if ops[i] = a.operand(tokens[i]); ops[i].kind != kind {
			return nil, false
		}
	}

	return ops, true
}

/// literal returns the value of op, or records a fixup at the given
/// ROM offset and returns 0 when op is a forward reference.
///
func (a *Assembly) literal(op operand, at int, width fixWidth) int {
	if op.ref != "" {
		a.fixups = append(a.fixups, fixup{label: op.ref, at: at, width: width, line: a.line})

		return 0
	}

	switch width {
	case fixAddress:
		return checkRange(op.n, 0, 0xFFF, "address")
	case fixByte:
		return checkRange(op.n, -0x80, 0xFF, "byte") & 0xFF
	case fixNibble:
		return checkRange(op.n, 0, 0xF, "nibble")
	}

	return checkRange(op.n, -0x8000, 0xFFFF, "word") & 0xFFFF
}

/// assembleInstruction assembles a single instruction word.
///
func (a *Assembly) assembleInstruction(m string, tokens []token) {
	var w int

	switch m {
	case "CLS":
		w = a.assembleNoOperands(tokens, 0x00E0)
	case "RET":
		w = a.assembleNoOperands(tokens, 0x00EE)
	case "SYS":
		w = a.assembleAddress(tokens, 0x0000)
	case "JP":
		w = a.assembleJP(tokens)
	case "CALL":
		w = a.assembleAddress(tokens, 0x2000)
	case "SE":
		w = a.assembleSkip(tokens, 0x3000, 0x5000)
	case "SNE":
		w = a.assembleSkip(tokens, 0x4000, 0x9000)
	case "SKP":
		w = a.assembleKey(tokens, 0xE09E)
	case "SKNP":
		w = a.assembleKey(tokens, 0xE0A1)
	case "OR":
		w = a.assembleXY(tokens, 0x8001)
	case "AND":
		w = a.assembleXY(tokens, 0x8002)
	case "XOR":
		w = a.assembleXY(tokens, 0x8003)
	case "SUB":
		w = a.assembleXY(tokens, 0x8005)
	case "SUBN":
		w = a.assembleXY(tokens, 0x8007)
	case "SHR":
		w = a.assembleShift(tokens, 0x8006)
	case "SHL":
		w = a.assembleShift(tokens, 0x800E)
	case "ADD":
		w = a.assembleADD(tokens)
	case "RND":
		w = a.assembleRND(tokens)
	case "DRW":
		w = a.assembleDRW(tokens)
	case "LD":
		w = a.assembleLD(tokens)
	}

	a.ROM = append(a.ROM, byte(w>>8), byte(w))
}

/// assembleNoOperands assembles CLS and RET.
///
func (a *Assembly) assembleNoOperands(tokens []token, w int) int {
	if len(tokens) == 0 {
		return w
	}

	panic("illegal instruction")
}

/// assembleAddress assembles SYS, JP and CALL with an address.
///
func (a *Assembly) assembleAddress(tokens []token, w int) int {
	if ops, ok := a.match(tokens, tokenLit); ok {
		return w | a.literal(ops[0], len(a.ROM), fixAddress)
	}

	panic("illegal instruction")
}

/// assembleJP assembles JP addr and JP V0, addr.
///
func (a *Assembly) assembleJP(tokens []token) int {
	if len(tokens) == 1 {
		return a.assembleAddress(tokens, 0x1000)
	}

	if ops, ok := a.match(tokens, tokenV, tokenLit); ok && ops[0].n == 0 {
		return 0xB000 | a.literal(ops[1], len(a.ROM), fixAddress)
	}

	panic("illegal instruction")
}

/// assembleSkip assembles SE and SNE.
///
func (a *Assembly) assembleSkip(tokens []token, imm, reg int) int {
	if ops, ok := a.match(tokens, tokenV, tokenLit); ok {
		return imm | ops[0].n<<8 | a.literal(ops[1], len(a.ROM)+1, fixByte)
	}

	if ops, ok := a.match(tokens, tokenV, tokenV); ok {
		return reg | ops[0].n<<8 | ops[1].n<<4
	}

	panic("illegal instruction")
}

/// assembleKey assembles SKP and SKNP.
///
func (a *Assembly) assembleKey(tokens []token, w int) int {
	if ops, ok := a.match(tokens, tokenV); ok {
		return w | ops[0].n<<8
	}

	panic("illegal instruction")
}

/// assembleXY assembles the 8XYN register to register instructions.
///
func (a *Assembly) assembleXY(tokens []token, w int) int {
	if ops, ok := a.match(tokens, tokenV, tokenV); ok {
		return w | ops[0].n<<8 | ops[1].n<<4
	}

	panic("illegal instruction")
}

/// assembleShift assembles SHR and SHL. With a single operand, Y is
/// set to X so the result is the same with or without the shift quirk.
///
func (a *Assembly) assembleShift(tokens []token, w int) int {
	if ops, ok := a.match(tokens, tokenV); ok {
		return w | ops[0].n<<8 | ops[0].n<<4
	}

	return a.assembleXY(tokens, w)
}

/// assembleADD assembles ADD.
///
func (a *Assembly) assembleADD(tokens []token) int {
	if ops, ok := a.match(tokens, tokenV, tokenLit); ok {
		return 0x7000 | ops[0].n<<8 | a.literal(ops[1], len(a.ROM)+1, fixByte)
	}

	if ops, ok := a.match(tokens, tokenV, tokenV); ok {
		return 0x8004 | ops[0].n<<8 | ops[1].n<<4
	}

	if ops, ok := a.match(tokens, tokenI, tokenV); ok {
		return 0xF01E | ops[1].n<<8
	}

	panic("illegal instruction")
}

/// assembleRND assembles RND.
///
func (a *Assembly) assembleRND(tokens []token) int {
	if ops, ok := a.match(tokens, tokenV, tokenLit); ok {
		return 0xC000 | ops[0].n<<8 | a.literal(ops[1], len(a.ROM)+1, fixByte)
	}

	panic("illegal instruction")
}

/// assembleDRW assembles DRW.
///
func (a *Assembly) assembleDRW(tokens []token) int {
	if ops, ok := a.match(tokens, tokenV, tokenV, tokenLit); ok {
		return 0xD000 | ops[0].n<<8 | ops[1].n<<4 | a.literal(ops[2], len(a.ROM)+1, fixNibble)
	}

	panic("illegal instruction")
}

/// assembleLD assembles every form of LD.
///
func (a *Assembly) assembleLD(tokens []token) int {
	if ops, ok := a.match(tokens, tokenV, tokenLit); ok {
		return 0x6000 | ops[0].n<<8 | a.literal(ops[1], len(a.ROM)+1, fixByte)
	}

	if ops, ok := a.match(tokens, tokenV, tokenV); ok {
		return 0x8000 | ops[0].n<<8 | ops[1].n<<4
	}

	if ops, ok := a.match(tokens, tokenI, tokenLit); ok {
		return 0xA000 | a.literal(ops[1], len(a.ROM), fixAddress)
	}

	// the remaining forms are all FXNN
	forms := []struct {
		dst, src tokenKind
		nn       int
	}{
		{tokenV, tokenDT, 0x07},
		{tokenV, tokenK, 0x0A},
		{tokenDT, tokenV, 0x15},
		{tokenST, tokenV, 0x18},
		{tokenF, tokenV, 0x29},
		{tokenB, tokenV, 0x33},
		{tokenIndirect, tokenV, 0x55},
		{tokenV, tokenIndirect, 0x65},
	}

	for _, form := range forms {
		if ops, ok := a.match(tokens, form.dst, form.src); ok {
			x := ops[0].n
			if form.src == tokenV {
				x = ops[1].n
			}

			return 0xF000 | x<<8 | form.nn
		}
	}

	panic("illegal instruction")
}

/// assembleDirective assembles BYTE, WORD, ALIGN and PAD.
///
func (a *Assembly) assembleDirective(d string, tokens []token) {
	switch d {
	case "BYTE":
		a.assembleBYTE(tokens)
	case "WORD":
		a.assembleWORD(tokens)
	case "ALIGN":
		a.ROM = append(a.ROM, make([]byte, a.assembleALIGN(tokens))...)
	case "PAD":
		a.ROM = append(a.ROM, make([]byte, a.assemblePAD(tokens))...)
	}
}

/// assembleBYTE writes bytes and strings.
///
func (a *Assembly) assembleBYTE(tokens []token) {
	if len(tokens) == 0 {
		panic("expected operand")
	}

	for _, t := range tokens {
		op := a.operand(t)

		switch op.kind {
		case tokenLit:
			n := a.literal(op, len(a.ROM), fixByte)
			a.ROM = append(a.ROM, byte(n))
		case tokenText:
			a.ROM = append(a.ROM, t.text...)
		default:
			panic("invalid byte")
		}
	}
}

/// assembleWORD writes 16-bit values, MSB first.
///
func (a *Assembly) assembleWORD(tokens []token) {
	if len(tokens) == 0 {
		panic("expected operand")
	}

	for _, t := range tokens {
		op := a.operand(t)
		if op.kind != tokenLit {
			panic("invalid word")
		}

		n := a.literal(op, len(a.ROM), fixWord)
		a.ROM = append(a.ROM, byte(n>>8), byte(n))
	}
}

/// assembleALIGN returns the padding needed to align the next address
/// to a power of 2.
///
func (a *Assembly) assembleALIGN(tokens []token) int {
	if ops, ok := a.match(tokens, tokenLit); ok && ops[0].ref == "" {
		n := ops[0].n

		if n > 0 && n&(n-1) == 0 {
			return (n - len(a.ROM)&(n-1)) & (n - 1)
		}
	}

	panic("illegal alignment")
}

/// assemblePAD returns the number of zero bytes to reserve.
///
func (a *Assembly) assemblePAD(tokens []token) int {
	if ops, ok := a.match(tokens, tokenLit); ok && ops[0].ref == "" {
		if n := ops[0].n; n >= 0 && n <= MemorySize-len(a.ROM) {
			return n
		}
	}

	panic("illegal size")
}
