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
	/// ScreenWidth is the number of pixel columns.
	///
	ScreenWidth = 64

	/// ScreenHeight is the number of pixel rows.
	///
	ScreenHeight = 32

	/// pitch is the number of bytes per scan line.
	///
	pitch = ScreenWidth / 8
)

/// FrameBuffer is the video memory for CHIP-8 (64x32 bits). Each bit
/// represents a single pixel, stored MSB first. For example, pixel
/// <0,0> is bit 0x80 of byte 0 and pixel <9,1> is bit 0x40 of byte 9.
///
type FrameBuffer [ScreenWidth * ScreenHeight / 8]byte

/// Clear the video display memory.
///
func (fb *FrameBuffer) Clear() {
	for i := range fb {
		fb[i] = 0
	}
}

/// Pixel returns whether the pixel at x, y is lit. Coordinates wrap.
///
func (fb *FrameBuffer) Pixel(x, y int) bool {
	i, mask := fb.locate(x, y)

	return fb[i]&mask != 0
}

/// Toggle XORs the pixel at x, y and returns whether it was lit
/// beforehand; a true result turning a pixel off is a collision.
/// Coordinates wrap.
///
func (fb *FrameBuffer) Toggle(x, y int) bool {
	i, mask := fb.locate(x, y)

	// original pixel value
	on := fb[i]&mask != 0

	fb[i] ^= mask

	return on
}

/// Lit returns the number of pixels that are on.
///
func (fb *FrameBuffer) Lit() int {
	n := 0

	for _, b := range fb {
		for ; b != 0; b &= b - 1 {
			n++
		}
	}

	return n
}

/// locate the byte index and bit mask for a wrapped coordinate.
///
func (fb *FrameBuffer) locate(x, y int) (int, byte) {
	x = wrap(x, ScreenWidth)
	y = wrap(y, ScreenHeight)

	return y*pitch + x>>3, 0x80 >> uint(x&7)
}

func wrap(n, size int) int {
	n %= size

	if n < 0 {
		n += size
	}

	return n
}
