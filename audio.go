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

	"github.com/veandco/go-sdl2/sdl"
)

const (
	toneRate   = 22050
	toneFreq   = 440
	toneVolume = 32
)

/// tone is a square wave queued to an SDL audio device while the CHIP-8
/// sound timer is running.
///
type tone struct {
	dev sdl.AudioDeviceID

	/// One frame of samples, a whole number of periods long.
	///
	frame []byte

	playing bool
}

/// openTone opens the default audio device, paused.
///
func openTone() (*tone, error) {
	spec := &sdl.AudioSpec{
		Freq:     toneRate,
		Format:   sdl.AUDIO_S8,
		Channels: 1,
		Samples:  512,
	}

	dev, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}

	return &tone{dev: dev, frame: squareWave(toneRate, toneFreq, toneVolume, toneRate/60)}, nil
}

/// update starts or stops the tone, keeping a couple of frames queued
/// while it plays.
///
func (t *tone) update(on bool) {
	if !on {
		if t.playing {
			sdl.PauseAudioDevice(t.dev, true)
			sdl.ClearQueuedAudio(t.dev)
			t.playing = false
		}
		return
	}

	for sdl.GetQueuedAudioSize(t.dev) < uint32(2*len(t.frame)) {
		if err := sdl.QueueAudio(t.dev, t.frame); err != nil {
			break
		}
	}

	if !t.playing {
		sdl.PauseAudioDevice(t.dev, false)
		t.playing = true
	}
}

func (t *tone) close() {
	sdl.CloseAudioDevice(t.dev)
}

/// squareWave returns at least n signed 8-bit samples of a square wave,
/// rounded up to whole periods so consecutive buffers join cleanly.
///
func squareWave(rate, freq int, volume int8, n int) []byte {
	period := rate / freq
	half := period / 2

	n = (n + period - 1) / period * period
	buf := make([]byte, n)

	for i := range buf {
		v := volume
		if i%period >= half {
			v = -volume
		}
		buf[i] = byte(v)
	}

	return buf
}
