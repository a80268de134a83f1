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
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/retroenv/retrogolib/log"
	"github.com/tunra/Chip8VM/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

func init() {
	runtime.LockOSThread()
}

/// sdlHost is a session running in an SDL window.
///
type sdlHost struct {
	s *session

	/// The SDL Window and Renderer.
	///
	window   *sdl.Window
	renderer *sdl.Renderer

	/// Render target holding the CHIP-8 video memory.
	///
	screen *sdl.Texture

	/// Tone played while the sound timer runs, nil without audio.
	///
	audio *tone

	scale int32
	title string
}

/// runSDL runs the session in a window until it's closed or the user
/// quits. Without a program it asks for one first.
///
func runSDL(ctx context.Context, s *session) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("initializing SDL: %w", err)
	}
	defer sdl.Quit()

	if s.prog == nil {
		path, err := openDialog()
		if err != nil {
			return err
		}
		if err := s.open(path); err != nil {
			return err
		}
	}

	scale := int32(max(s.opts.scale, 1))

	window, renderer, err := sdl.CreateWindowAndRenderer(chip8.ScreenWidth*scale, chip8.ScreenHeight*scale, uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer func() {
		_ = renderer.Destroy()
		_ = window.Destroy()
	}()

	h := &sdlHost{
		s:        s,
		window:   window,
		renderer: renderer,
		scale:    scale,
	}

	if err := h.initScreen(); err != nil {
		return err
	}
	defer func() { _ = h.screen.Destroy() }()

	if h.audio, err = openTone(); err != nil {
		s.logger.Warn("Audio unavailable", log.Err(err))
	} else {
		defer h.audio.close()
	}

	DebugHelp(s.logger)

	return h.loop(ctx)
}

/// loop processes events and runs a frame 60 times a second.
///
func (h *sdlHost) loop(ctx context.Context) error {
	video := time.NewTicker(time.Second / 60)
	defer video.Stop()

	last := time.Now()

	for h.processEvents() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-video.C:
			h.s.frame(now.Sub(last))
			last = now

			if h.audio != nil {
				h.audio.update(h.s.vm.SoundTimer() > 0 && !h.s.paused)
			}

			if err := h.refresh(); err != nil {
				return err
			}
		}
	}

	return nil
}

/// refresh redraws the window and keeps the title current.
///
func (h *sdlHost) refresh() error {
	if err := h.refreshScreen(); err != nil {
		return err
	}

	if err := h.copyScreen(); err != nil {
		return err
	}

	h.renderer.Present()

	title := fmt.Sprintf("CHIP-8 - %s - %d Hz", filepath.Base(h.s.opts.file), h.s.clock.Speed)
	switch {
	case h.s.vm.State == chip8.Halted:
		title += " - halted"
	case h.s.paused:
		title += " - paused"
	}

	if title != h.title {
		h.window.SetTitle(title)
		h.title = title
	}

	return nil
}

/// openNew asks for a program and loads it.
///
func (h *sdlHost) openNew() {
	path, err := openDialog()
	if errors.Is(err, errCancelled) {
		return
	}
	if err == nil {
		err = h.s.open(path)
	}

	h.s.report("Open", err)
}
