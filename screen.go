//go:build !nosdl

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

package main

import (
	"fmt"

	"github.com/tunra/Chip8VM/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

/// initScreen creates the render target for the CHIP-8 video memory.
///
func (h *sdlHost) initScreen() error {
	var err error

	// create a render target for the display
	h.screen, err = h.renderer.CreateTexture(sdl.PIXELFORMAT_RGB888, sdl.TEXTUREACCESS_TARGET, chip8.ScreenWidth, chip8.ScreenHeight)
	if err != nil {
		return fmt.Errorf("creating screen texture: %w", err)
	}

	return nil
}

/// refreshScreen redraws the render target from the CHIP-8 video memory.
///
func (h *sdlHost) refreshScreen() error {
	if err := h.renderer.SetRenderTarget(h.screen); err != nil {
		return fmt.Errorf("setting render target: %w", err)
	}

	// the background color for the screen
	_ = h.renderer.SetDrawColor(143, 145, 133, 255)
	_ = h.renderer.Clear()

	// set the pixel color
	_ = h.renderer.SetDrawColor(17, 29, 43, 255)

	video := &h.s.vm.Video

	for y := 0; y < chip8.ScreenHeight; y++ {
		for x := 0; x < chip8.ScreenWidth; x++ {
			if video.Pixel(x, y) {
				_ = h.renderer.DrawPoint(int32(x), int32(y))
			}
		}
	}

	// restore the render target
	if err := h.renderer.SetRenderTarget(nil); err != nil {
		return fmt.Errorf("restoring render target: %w", err)
	}

	return nil
}

/// copyScreen stretches the render target over the window.
///
func (h *sdlHost) copyScreen() error {
	src := sdl.Rect{W: chip8.ScreenWidth, H: chip8.ScreenHeight}
	dst := sdl.Rect{W: chip8.ScreenWidth * h.scale, H: chip8.ScreenHeight * h.scale}

	if err := h.renderer.Copy(h.screen, &src, &dst); err != nil {
		return fmt.Errorf("copying screen: %w", err)
	}

	return nil
}
