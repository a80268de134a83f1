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

/// StackDepth is the maximum number of nested subroutine calls.
///
const StackDepth = 16

/// Stack holds subroutine return addresses.
///
type Stack struct {
	addrs [StackDepth]uint16
	sp    int
}

/// Push a return address. Fails with ErrStackOverflow when full.
///
func (s *Stack) Push(addr uint16) error {
	if s.sp == StackDepth {
		return ErrStackOverflow
	}

	s.addrs[s.sp] = addr
	s.sp++

	return nil
}

/// Pop the most recent return address. Fails with ErrStackUnderflow when empty.
///
func (s *Stack) Pop() (uint16, error) {
	if s.sp == 0 {
		return 0, ErrStackUnderflow
	}

	s.sp--

	return s.addrs[s.sp], nil
}

/// Len returns the current depth.
///
func (s *Stack) Len() int {
	return s.sp
}

/// Frames returns a copy of the return addresses, oldest first.
///
func (s *Stack) Frames() []uint16 {
	return append([]uint16(nil), s.addrs[:s.sp]...)
}

/// Reset empties the stack.
///
func (s *Stack) Reset() {
	*s = Stack{}
}
