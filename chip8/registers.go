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

/// Register indexes one of the 16 V registers. Only the low nibble is used.
///
type Register uint8

const (
	V0 Register = iota
	V1
	V2
	V3
	V4
	V5
	V6
	V7
	V8
	V9
	VA
	VB
	VC
	VD
	VE
	VF
)

func (r Register) String() string {
	return fmt.Sprintf("V%X", uint8(r)&0xF)
}

/// Registers is the CHIP-8 register file.
///
type Registers struct {
	/// V are the 16 virtual registers. VF doubles as the flag register.
	///
	V [16]byte

	/// I is the address register.
	///
	I uint16

	/// PC is the program counter.
	///
	PC uint16
}

/// Get returns the value of register x.
///
func (r *Registers) Get(x Register) byte {
	return r.V[x&0xF]
}

/// Set assigns b to register x.
///
func (r *Registers) Set(x Register, b byte) {
	r.V[x&0xF] = b
}

/// setFlag writes VF. Flag-producing instructions call it after writing VX,
/// since VX may itself be VF.
///
func (r *Registers) setFlag(on bool) {
	if on {
		r.V[VF] = 1
	} else {
		r.V[VF] = 0
	}
}
