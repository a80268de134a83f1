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
	"encoding/gob"
	"errors"
	"fmt"
	"io"
)

/// Snapshot is a copy of everything that changes while a CHIP-8 runs.
/// Restoring it onto a CHIP-8 with the same ROM, quirks and seed picks up
/// exactly where it was taken, apart from the RND sequence which restarts.
///
type Snapshot struct {
	Registers Registers
	Stack     []uint16
	Delay     byte
	Sound     byte
	Memory    Memory
	Video     FrameBuffer
	Keys      Keypad
	State     State
	W         Register
	Cycles    int64

	/// The fault, if halted. Err is stored by message.
	///
	FaultErr    string
	FaultPC     uint16
	FaultOpcode uint16
}

/// Snapshot captures the current machine state.
///
func (vm *CHIP_8) Snapshot() *Snapshot {
	s := &Snapshot{
		Registers: vm.Registers,
		Stack:     vm.Stack.Frames(),
		Delay:     vm.Timers.Delay(),
		Sound:     vm.Timers.Sound(),
		Memory:    vm.Memory,
		Video:     vm.Video,
		Keys:      vm.Keys,
		State:     vm.State,
		W:         vm.W,
		Cycles:    vm.Cycles,
	}

	if vm.Fault != nil {
		s.FaultErr = vm.Fault.Err.Error()
		s.FaultPC = vm.Fault.PC
		s.FaultOpcode = vm.Fault.Opcode
	}

	return s
}

/// Restore applies a snapshot.
///
func (vm *CHIP_8) Restore(s *Snapshot) error {
	if len(s.Stack) > StackDepth {
		return fmt.Errorf("restoring snapshot: %w", ErrStackOverflow)
	}
	if s.State > Halted {
		return fmt.Errorf("restoring snapshot: invalid state %d", s.State)
	}

	vm.Registers = s.Registers
	vm.Memory = s.Memory
	vm.Video = s.Video
	vm.Keys = s.Keys
	vm.State = s.State
	vm.W = s.W & 0xF
	vm.Cycles = s.Cycles

	vm.Stack.Reset()
	for _, addr := range s.Stack {
		_ = vm.Stack.Push(addr)
	}

	vm.Timers.SetDelay(s.Delay)
	vm.Timers.SetSound(s.Sound)

	vm.Fault = nil
	if s.State == Halted {
		vm.Fault = &Fault{Err: faultError(s.FaultErr), PC: s.FaultPC, Opcode: s.FaultOpcode}
	}

	return nil
}

/// faultError maps a stored fault message back to its sentinel error.
///
func faultError(msg string) error {
	for _, err := range []error{ErrOutOfBounds, ErrStackOverflow, ErrStackUnderflow, ErrUnknownOpcode} {
		if err.Error() == msg {
			return err
		}
	}

	return errors.New(msg)
}

/// Save writes the current machine state to w.
///
func (vm *CHIP_8) Save(w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(vm.Snapshot()); err != nil {
		return fmt.Errorf("encoding save state: %w", err)
	}

	return nil
}

/// LoadState reads a machine state written by Save and restores it.
///
func (vm *CHIP_8) LoadState(r io.Reader) error {
	var s Snapshot

	if err := gob.NewDecoder(r).Decode(&s); err != nil {
		return fmt.Errorf("decoding save state: %w", err)
	}

	return vm.Restore(&s)
}
