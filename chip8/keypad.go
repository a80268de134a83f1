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

/// KeyCount is the number of keys on the hex keypad.
///
const KeyCount = 16

/// Key is a hex keypad code, 0x0-0xF.
///
type Key uint8

/// Keypad holds the current state for the 16-key pad keys.
///
type Keypad [KeyCount]bool

/// SetKey records a key as pressed or released. Codes above 0xF are ignored.
///
func (k *Keypad) SetKey(key Key, pressed bool) {
	if key < KeyCount {
		k[key] = pressed
	}
}

/// IsPressed reports whether key is down. Only the low nibble of the
/// code is used, so any register value maps onto a key.
///
func (k *Keypad) IsPressed(key Key) bool {
	return k[key&0xF]
}
