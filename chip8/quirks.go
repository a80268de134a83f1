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
)

/// Quirks select between the behaviours of historical CHIP-8 interpreters.
/// The zero value runs programs the way most CHIP-8 games released since the
/// HP-48 port expect, apart from BNNN which keeps the original V0 offset.
///
type Quirks struct {
	/// LegacyShift makes 8XY6 and 8XYE shift VY and store the result in VX,
	/// as the COSMAC VIP did. When clear, VX is shifted in place and Y is
	/// ignored.
	///
	LegacyShift bool

	/// LegacyJump makes BNNN jump to XNN + VX, the CHIP-48 and SUPER-CHIP
	/// reading of the instruction. When clear it jumps to NNN + V0.
	///
	LegacyJump bool

	/// LegacyStore makes FX55 and FX65 leave I pointing past the last
	/// register stored or loaded (I += X + 1). When clear, I is unchanged.
	///
	LegacyStore bool

	/// LegacyLogic makes 8XY1, 8XY2 and 8XY3 reset VF to 0.
	///
	LegacyLogic bool

	/// ClipSprites clips sprite pixels that run past the right or bottom
	/// edge instead of wrapping them. The starting coordinate always wraps.
	///
	ClipSprites bool
}

var (
	/// QuirksVIP matches the original COSMAC VIP interpreter.
	///
	QuirksVIP = Quirks{
		LegacyShift: true,
		LegacyStore: true,
		LegacyLogic: true,
		ClipSprites: true,
	}

	/// QuirksCHIP48 matches the HP-48 CHIP-48 interpreter.
	///
	QuirksCHIP48 = Quirks{
		LegacyJump: true,
	}
)

/// QuirksPreset returns the named quirk preset: "default", "vip" or "chip48".
///
func QuirksPreset(name string) (Quirks, error) {
	switch strings.ToLower(name) {
	case "", "default":
		return Quirks{}, nil
	case "vip", "cosmac":
		return QuirksVIP, nil
	case "chip48", "chip-48":
		return QuirksCHIP48, nil
	}

	return Quirks{}, fmt.Errorf("unknown quirks preset %q", name)
}
