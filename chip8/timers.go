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

import "sync"

/// TimerRate is the frequency (Hz) at which the delay and sound timers count down.
///
const TimerRate = 60

/// Timers are the delay and sound timer registers. They are the only part
/// of the CHIP-8 that a host may touch from a second goroutine (the 60 Hz
/// clock and the audio device), so every access takes the lock.
///
type Timers struct {
	mu    sync.Mutex
	delay byte
	sound byte
}

/// Tick counts both timers down once. Neither goes below zero.
///
func (t *Timers) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.delay > 0 {
		t.delay--
	}
	if t.sound > 0 {
		t.sound--
	}
}

/// Delay returns the delay timer.
///
func (t *Timers) Delay() byte {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.delay
}

/// Sound returns the sound timer. The tone is on while it is nonzero.
///
func (t *Timers) Sound() byte {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.sound
}

/// SetDelay loads the delay timer.
///
func (t *Timers) SetDelay(b byte) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.delay = b
}

/// SetSound loads the sound timer.
///
func (t *Timers) SetSound(b byte) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sound = b
}

/// Reset zeroes both timers.
///
func (t *Timers) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.delay = 0
	t.sound = 0
}
