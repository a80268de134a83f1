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
	"errors"
	"fmt"
	"time"
)

const (
	/// DefaultSpeed is the CPU speed in instructions per second.
	///
	DefaultSpeed = 500

	/// MinSpeed and MaxSpeed bound the CPU speed.
	///
	MinSpeed = 60
	MaxSpeed = 10000
)

/// ErrBreakpoint is returned by Clock.Advance when the PC reaches a
/// breakpoint. The instruction there has not been executed.
///
var ErrBreakpoint = errors.New("breakpoint")

/// Clock paces a CHIP-8 against elapsed time. It issues CPU cycles at
/// Speed and, if Timers is set, timer ticks at 60 Hz, interleaved in the
/// order they fall due. Given the same durations it always issues the
/// same sequence.
///
type Clock struct {
	/// Speed is the number of instructions executed per second.
	///
	Speed int

	/// Timers makes the clock tick the delay and sound timers. Leave it
	/// clear when the host ticks them from its own 60 Hz loop.
	///
	Timers bool

	elapsed time.Duration

	// cycles issued since cycleBase
	cycleBase time.Duration
	cycles    int64

	// timer ticks issued
	ticks int64

	// the breakpoint last stopped at, and whether to step over it
	stoppedAt uint16
	stopped   bool
	resume    bool
}

/// NewClock returns a clock running at speed that also ticks timers.
///
func NewClock(speed int) *Clock {
	return &Clock{Speed: clampSpeed(speed), Timers: true}
}

/// Elapsed returns the total time advanced.
///
func (c *Clock) Elapsed() time.Duration {
	return c.elapsed
}

/// Advance the clock by d, running every cycle and timer tick that
/// falls due. It stops early on a breakpoint or fault and drops the
/// rest of the cycles owed, so the CHIP-8 doesn't race to catch up
/// when it's resumed.
///
func (c *Clock) Advance(vm *CHIP_8, d time.Duration) error {
	c.elapsed += d

	for {
		nextCycle := c.cycleBase + c.period(c.cycles+1)
		nextTick := time.Duration(c.ticks+1) * time.Second / TimerRate

		cycleDue := nextCycle <= c.elapsed
		tickDue := c.Timers && nextTick <= c.elapsed

		switch {
		case cycleDue && (!tickDue || nextCycle <= nextTick):
			if err := c.cycle(vm); err != nil {
				c.rebase()
				return err
			}
			c.cycles++
		case tickDue:
			vm.TickTimers()
			c.ticks++
		default:
			return nil
		}
	}
}

/// cycle executes one instruction, unless a breakpoint is in the way.
///
func (c *Clock) cycle(vm *CHIP_8) error {
	skip := c.resume && c.stopped && vm.PC == c.stoppedAt

	if vm.State == Running && !skip {
		if bp, ok := vm.Breakpoints[vm.PC]; ok {
			c.stoppedAt, c.stopped, c.resume = vm.PC, true, false
			return fmt.Errorf("%w at #%04X: %s", ErrBreakpoint, bp.Address, bp.Reason)
		}
	}

	c.stopped, c.resume = false, false

	return vm.Step()
}

/// Resume lets the next cycle execute the instruction at the breakpoint
/// the clock last stopped at. If the PC has moved off it since, by
/// stepping the CHIP-8 directly, breakpoints are checked as usual.
///
func (c *Clock) Resume() {
	c.resume = true
}

/// SetSpeed changes the CPU speed, clamped to MinSpeed..MaxSpeed.
///
func (c *Clock) SetSpeed(speed int) {
	c.Speed = clampSpeed(speed)
	c.rebase()
}

/// Faster doubles the CPU speed.
///
func (c *Clock) Faster() {
	c.SetSpeed(c.Speed * 2)
}

/// Slower halves the CPU speed.
///
func (c *Clock) Slower() {
	c.SetSpeed(c.Speed / 2)
}

/// Reset the clock back to zero elapsed time.
///
func (c *Clock) Reset() {
	*c = Clock{Speed: c.Speed, Timers: c.Timers}
}

/// rebase counts cycles from now on.
///
func (c *Clock) rebase() {
	c.cycleBase = c.elapsed
	c.cycles = 0
}

/// period returns how long n cycles take.
///
func (c *Clock) period(n int64) time.Duration {
	return time.Duration(n) * time.Second / time.Duration(clampSpeed(c.Speed))
}

func clampSpeed(speed int) int {
	switch {
	case speed < MinSpeed:
		return MinSpeed
	case speed > MaxSpeed:
		return MaxSpeed
	}

	return speed
}
