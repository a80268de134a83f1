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
	"errors"
	"fmt"
)

var (
	/// ErrOutOfBounds is returned when an address falls outside of memory.
	///
	ErrOutOfBounds = errors.New("address out of bounds")

	/// ErrStackOverflow is returned by CALL when the stack is full.
	///
	ErrStackOverflow = errors.New("stack overflow")

	/// ErrStackUnderflow is returned by RET when the stack is empty.
	///
	ErrStackUnderflow = errors.New("stack underflow")

	/// ErrUnknownOpcode is returned for words that decode to no instruction.
	///
	ErrUnknownOpcode = errors.New("unknown opcode")

	/// ErrImageTooLarge is returned when a program doesn't fit in memory.
	///
	ErrImageTooLarge = errors.New("program image too large")
)

/// Fault is the error returned by Step when an instruction could not be
/// executed. The CHIP-8 is halted until it is reset.
///
type Fault struct {
	/// Err is one of the sentinel errors above.
	///
	Err error

	/// PC is the address of the faulting instruction.
	///
	PC uint16

	/// Opcode is the faulting instruction word (0 if it couldn't be fetched).
	///
	Opcode uint16
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s at #%04X (opcode #%04X)", f.Err, f.PC, f.Opcode)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
