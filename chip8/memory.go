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

const (
	/// MemorySize is the number of addressable bytes.
	///
	MemorySize = 0x1000

	/// ProgramOrigin is where programs are loaded and execution begins.
	///
	ProgramOrigin = 0x200
)

/// Memory addressable by CHIP-8. The first 512 bytes are reserved
/// for the interpreter; only the font sprites live there now.
///
type Memory [MemorySize]byte

/// Byte returns the byte at addr.
///
func (m *Memory) Byte(addr uint16) (byte, error) {
	if int(addr) >= MemorySize {
		return 0, ErrOutOfBounds
	}

	return m[addr], nil
}

/// SetByte writes b to addr. Nothing stops writes into the reserved
/// region, same as the original interpreters.
///
func (m *Memory) SetByte(addr uint16, b byte) error {
	if int(addr) >= MemorySize {
		return ErrOutOfBounds
	}

	m[addr] = b

	return nil
}

/// Word returns the big-endian 16-bit word at addr.
///
func (m *Memory) Word(addr uint16) (uint16, error) {
	if int(addr)+1 >= MemorySize {
		return 0, ErrOutOfBounds
	}

	return uint16(m[addr])<<8 | uint16(m[addr+1]), nil
}

/// Slice returns n bytes starting at addr. The slice aliases memory.
///
func (m *Memory) Slice(addr uint16, n int) ([]byte, error) {
	if int(addr)+n > MemorySize {
		return nil, ErrOutOfBounds
	}

	return m[int(addr) : int(addr)+n], nil
}

/// LoadBytes copies p into memory starting at origin.
///
func (m *Memory) LoadBytes(origin uint16, p []byte) error {
	if int(origin)+len(p) > MemorySize {
		return ErrOutOfBounds
	}

	copy(m[origin:], p)

	return nil
}
