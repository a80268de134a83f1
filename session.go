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
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/retroenv/retrogolib/log"
	"github.com/tunra/Chip8VM/chip8"
)

/// session is a running CHIP-8 and everything the hosts share to drive
/// it: the clock, the loaded program, the trace log and pause state.
///
type session struct {
	vm     *chip8.CHIP_8
	clock  *chip8.Clock
	opts   *options
	prog   *program
	trace  *TraceLog
	logger *log.Logger

	/// True if pausing emulation (single stepping).
	///
	paused bool
}

/// newSession loads the program named by the options into a new CHIP-8.
///
func newSession(opts *options, logger *log.Logger) (*session, error) {
	quirks, err := opts.interpreterQuirks()
	if err != nil {
		return nil, err
	}

	vm := chip8.New(chip8.Config{
		Quirks: quirks,
		Seed:   opts.seed,
		Logger: logger,
	})

	s := &session{
		vm:     vm,
		clock:  chip8.NewClock(opts.speed),
		opts:   opts,
		trace:  NewTraceLog(traceLines),
		logger: logger,
	}

	if opts.debug {
		vm.Trace = s.trace.Hook()
	}

	if opts.file != "" {
		if err := s.open(opts.file); err != nil {
			return nil, err
		}
	}

	logger.Debug("Session created",
		log.Int("speed", s.clock.Speed),
		log.String("quirks", fmt.Sprintf("%+v", quirks)))

	return s, nil
}

/// traceLines is the size of the trace scrollback.
///
const traceLines = 1000

/// open loads a new program file and restarts.
///
func (s *session) open(path string) error {
	prog, err := loadProgram(path, uint16(s.opts.origin))
	if err != nil {
		return err
	}

	if err := prog.load(s.vm, s.logger); err != nil {
		return err
	}

	s.prog = prog
	s.opts.file = path
	s.clock.Reset()
	s.trace.Clear()

	return nil
}

/// reload re-reads the current program from disk and restarts.
///
func (s *session) reload() error {
	if s.prog == nil {
		return errors.New("no program loaded")
	}

	return s.open(s.prog.Path)
}

/// reset restarts the loaded program.
///
func (s *session) reset() {
	s.vm.Reset()
	s.clock.Reset()
	s.trace.Clear()

	s.logger.Info("Reset")
}

/// togglePause pauses or resumes emulation.
///
func (s *session) togglePause() {
	s.paused = !s.paused

	if s.paused {
		s.logger.Info("Paused")
		DebugDump(s.vm, s.logger)
	} else {
		// run straight over a breakpoint we're stopped at
		s.clock.Resume()
		s.logger.Info("Resumed")
	}
}

/// step executes a single instruction while paused.
///
func (s *session) step() {
	if !s.paused {
		return
	}

	if err := s.vm.Step(); err != nil {
		s.logger.Warn("Halted", log.Err(err))
	}

	DebugDump(s.vm, s.logger)
}

/// pressKey passes a key press to the CHIP-8. Auto-repeats of a key
/// that is already held are dropped so FX0A only sees new presses.
///
func (s *session) pressKey(key chip8.Key, repeat bool) {
	if repeat && s.vm.Keys.IsPressed(key) {
		return
	}

	s.vm.PressKey(key)
}

/// toggleBreakpoint sets or clears a breakpoint at the PC.
///
func (s *session) toggleBreakpoint() {
	pc := s.vm.PC

	if _, ok := s.vm.Breakpoints[pc]; ok {
		delete(s.vm.Breakpoints, pc)
		s.logger.Info("Breakpoint cleared", log.Hex("address", pc))
		return
	}

	if s.vm.Breakpoints == nil {
		s.vm.Breakpoints = make(map[uint16]chip8.Breakpoint)
	}

	s.vm.Breakpoints[pc] = chip8.Breakpoint{Address: pc, Reason: "user break"}
	s.logger.Info("Breakpoint set", log.Hex("address", pc))
}

/// faster doubles the CPU speed.
///
func (s *session) faster() {
	s.clock.Faster()
	s.logger.Info("Speed", log.Int("hz", s.clock.Speed))
}

/// slower halves the CPU speed.
///
func (s *session) slower() {
	s.clock.Slower()
	s.logger.Info("Speed", log.Int("hz", s.clock.Speed))
}

/// saveState writes the machine state to the state file.
///
func (s *session) saveState() error {
	path := s.opts.statePath()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating save state: %w", err)
	}

	if err := s.vm.Save(f); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("writing save state: %w", err)
	}

	s.logger.Info("Saved state", log.String("file", path))

	return nil
}

/// restoreState reads the machine state back from the state file.
///
func (s *session) restoreState() error {
	path := s.opts.statePath()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening save state: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := s.vm.LoadState(f); err != nil {
		return err
	}

	s.clock.Reset()
	s.logger.Info("Restored state", log.String("file", path))

	return nil
}

/// frame advances emulation by d. Hitting a breakpoint pauses; a fault
/// is logged once and the CHIP-8 stays halted until it's reset.
///
func (s *session) frame(d time.Duration) {
	if s.paused || s.vm.State == chip8.Halted {
		return
	}

	err := s.clock.Advance(s.vm, d)

	switch {
	case err == nil:
	case errors.Is(err, chip8.ErrBreakpoint):
		s.paused = true
		s.logger.Warn("Break", log.Err(err))
		DebugDump(s.vm, s.logger)
	default:
		s.logger.Warn("Halted", log.Err(err))
		DebugDump(s.vm, s.logger)
	}
}

/// report logs a failed host action without stopping emulation.
///
func (s *session) report(action string, err error) {
	if err != nil {
		s.logger.Error(action+" failed", log.Err(err))
	}
}
