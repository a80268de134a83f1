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
	"math/rand"
	"time"

	"github.com/retroenv/retrogolib/log"
)

/// State of the CHIP-8 fetch/execute loop.
///
type State uint8

const (
	/// Running executes one instruction per Step.
	///
	Running State = iota

	/// WaitingForKey is entered by LD VX, K. Step does nothing until
	/// a key is pressed.
	///
	WaitingForKey

	/// Halted is entered on a fault. Step returns the fault until Reset.
	///
	Halted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case WaitingForKey:
		return "waiting for key"
	case Halted:
		return "halted"
	}

	return fmt.Sprintf("state(%d)", uint8(s))
}

/// Config holds the construction options for a CHIP-8.
///
type Config struct {
	/// Quirks select historical instruction behaviours.
	///
	Quirks Quirks

	/// Seed for RND. Zero picks a seed from the clock; either way the
	/// same seed is reused on every Reset so a run can be replayed.
	///
	Seed int64

	/// Logger receives debug output. May be nil.
	///
	Logger *log.Logger
}

/// CHIP_8 virtual machine emulator.
///
type CHIP_8 struct {
	/// ROM is the pristine memory image: the font sprites and the
	/// loaded program. Memory is reset back to it.
	///
	ROM Memory

	/// Memory addressable by CHIP-8.
	///
	Memory Memory

	/// Video memory for CHIP-8 (64x32 bits).
	///
	Video FrameBuffer

	/// Registers are V0-VF, I and the PC.
	///
	Registers

	/// Stack of subroutine return addresses.
	///
	Stack Stack

	/// Timers are the delay and sound timers.
	///
	Timers Timers

	/// Keys hold the current state for the 16-key pad keys.
	///
	Keys Keypad

	/// Quirks in effect.
	///
	Quirks Quirks

	/// Origin is the address programs are loaded at and the PC is
	/// reset to.
	///
	Origin uint16

	/// State of the fetch/execute loop.
	///
	State State

	/// W is the register LD VX, K will store the next key press in.
	/// Only meaningful while State is WaitingForKey.
	///
	W Register

	/// Fault is why the CHIP-8 halted. Nil unless State is Halted.
	///
	Fault *Fault

	/// Cycles is how many instructions have been executed since reset.
	///
	Cycles int64

	/// Breakpoints by address. Step ignores them; a Clock stops on them.
	///
	Breakpoints map[uint16]Breakpoint

	/// Trace, if set, is called with every instruction before it
	/// executes.
	///
	Trace func(pc uint16, inst Instruction)

	seed   int64
	rng    *rand.Rand
	logger *log.Logger
}

/// New returns a CHIP-8 with no program loaded.
///
func New(config Config) *CHIP_8 {
	vm := &CHIP_8{
		Quirks:      config.Quirks,
		Origin:      ProgramOrigin,
		Breakpoints: make(map[uint16]Breakpoint),
		seed:        config.Seed,
		logger:      config.Logger,
	}

	if vm.seed == 0 {
		vm.seed = time.Now().UnixNano()
	}

	// the font lives in the reserved interpreter region
	copy(vm.ROM[FontAddress:], Font[:])

	// reset the VM memory
	vm.Reset()

	return vm
}

/// LoadROM loads a program at 0x200 and returns a new CHIP-8 virtual
/// machine ready to run it.
///
func LoadROM(program []byte, config Config) (*CHIP_8, error) {
	vm := New(config)

	if err := vm.Load(ProgramOrigin, program); err != nil {
		return nil, err
	}

	return vm, nil
}

/// Load replaces the program with one at origin, then resets.
///
func (vm *CHIP_8) Load(origin uint16, program []byte) error {
	if int(origin)+len(program) > MemorySize {
		return fmt.Errorf("%w: %d bytes at #%04X", ErrImageTooLarge, len(program), origin)
	}

	// wipe the previous program, keeping the font
	vm.ROM = Memory{}
	copy(vm.ROM[FontAddress:], Font[:])

	if err := vm.ROM.LoadBytes(origin, program); err != nil {
		return err
	}

	vm.Origin = origin
	vm.Reset()

	return nil
}

/// Reset the CHIP-8 virtual machine to the state it was in right after
/// the program was loaded. Breakpoints and quirks are kept.
///
func (vm *CHIP_8) Reset() {
	vm.Memory = vm.ROM

	// reset video memory and keys
	vm.Video.Clear()
	vm.Keys = Keypad{}

	// reset registers and stack
	vm.Registers = Registers{PC: vm.Origin}
	vm.Stack.Reset()

	// reset timer registers
	vm.Timers.Reset()

	vm.State = Running
	vm.W = V0
	vm.Fault = nil
	vm.Cycles = 0

	// same seed, same random sequence
	vm.rng = rand.New(rand.NewSource(vm.seed))
}

/// Seed returns the seed RND is using.
///
func (vm *CHIP_8) Seed() int64 {
	return vm.seed
}

/// PressKey emulates a CHIP-8 key being pressed. If the CHIP-8 is
/// waiting for a key, the key is stored and execution resumes.
///
func (vm *CHIP_8) PressKey(key Key) {
	if key >= KeyCount {
		return
	}

	vm.Keys.SetKey(key, true)

	if vm.State == WaitingForKey {
		vm.V[vm.W] = byte(key)

		// advance past the LD VX, K
		vm.PC += 2
		vm.State = Running
	}
}

/// ReleaseKey emulates a CHIP-8 key being released.
///
func (vm *CHIP_8) ReleaseKey(key Key) {
	vm.Keys.SetKey(key, false)
}

/// SetKey presses or releases a key.
///
func (vm *CHIP_8) SetKey(key Key, pressed bool) {
	if pressed {
		vm.PressKey(key)
	} else {
		vm.ReleaseKey(key)
	}
}

/// TickTimers counts the delay and sound timers down once. Call it at
/// 60 Hz. It is safe to call from a goroutine other than the one
/// calling Step.
///
func (vm *CHIP_8) TickTimers() {
	vm.Timers.Tick()
}

/// DelayTimer returns the delay timer register.
///
func (vm *CHIP_8) DelayTimer() byte {
	return vm.Timers.Delay()
}

/// SoundTimer returns the sound timer register. A tone should play
/// while it is nonzero.
///
func (vm *CHIP_8) SoundTimer() byte {
	return vm.Timers.Sound()
}

/// Step the CHIP-8 virtual machine a single instruction. A halted
/// CHIP-8 returns its fault again without doing anything.
///
func (vm *CHIP_8) Step() error {
	switch vm.State {
	case Halted:
		return vm.Fault
	case WaitingForKey:
		return nil
	}

	pc := vm.PC

	// fetch the next instruction
	word, err := vm.Memory.Word(pc)
	if err != nil {
		return vm.halt(err, pc, 0)
	}

	inst := Decode(word)

	if vm.Trace != nil {
		vm.Trace(pc, inst)
	}

	// advance the program counter
	vm.PC += 2

	if err := vm.execute(inst); err != nil {
		vm.PC = pc

		return vm.halt(err, pc, word)
	}

	// increment the cycle count
	vm.Cycles++

	return nil
}

/// halt the CHIP-8 with a fault.
///
func (vm *CHIP_8) halt(err error, pc, opcode uint16) error {
	vm.State = Halted
	vm.Fault = &Fault{Err: err, PC: pc, Opcode: opcode}

	if vm.logger != nil {
		vm.logger.Debug("CHIP-8 halted",
			log.Err(err),
			log.Hex("pc", pc),
			log.Hex("opcode", opcode))
	}

	return vm.Fault
}

/// execute a decoded instruction. The PC has already been advanced.
/// Instructions check everything that can fail before they change any
/// state.
///
func (vm *CHIP_8) execute(inst Instruction) error {
	x, y := inst.X, inst.Y

	switch inst.Op {
	case OpCls:
		vm.cls()
	case OpRet:
		return vm.ret()
	case OpSys:
		vm.sys(inst.NNN)
	case OpJp:
		vm.jump(inst.NNN)
	case OpCall:
		return vm.call(inst.NNN)
	case OpSeImm:
		vm.skipIf(x, inst.NN)
	case OpSneImm:
		vm.skipIfNot(x, inst.NN)
	case OpSeReg:
		vm.skipIfXY(x, y)
	case OpLdImm:
		vm.loadX(x, inst.NN)
	case OpAddImm:
		vm.addX(x, inst.NN)
	case OpLdReg:
		vm.loadXY(x, y)
	case OpOr:
		vm.or(x, y)
	case OpAnd:
		vm.and(x, y)
	case OpXor:
		vm.xor(x, y)
	case OpAddReg:
		vm.addXY(x, y)
	case OpSub:
		vm.subXY(x, y)
	case OpShr:
		vm.shr(x, y)
	case OpSubn:
		vm.subYX(x, y)
	case OpShl:
		vm.shl(x, y)
	case OpSneReg:
		vm.skipIfNotXY(x, y)
	case OpLdI:
		vm.loadI(inst.NNN)
	case OpJpV0:
		return vm.jumpV0(x, inst.NNN)
	case OpRnd:
		vm.rnd(x, inst.NN)
	case OpDrw:
		return vm.drw(x, y, inst.N)
	case OpSkp:
		vm.skipIfPressed(x)
	case OpSknp:
		vm.skipIfNotPressed(x)
	case OpLdVxDT:
		vm.loadXDT(x)
	case OpLdVxK:
		vm.loadXK(x)
	case OpLdDTVx:
		vm.loadDTX(x)
	case OpLdSTVx:
		vm.loadSTX(x)
	case OpAddI:
		vm.addIX(x)
	case OpLdF:
		vm.loadF(x)
	case OpLdB:
		return vm.loadB(x)
	case OpLdIVx:
		return vm.saveRegs(x)
	case OpLdVxI:
		return vm.loadRegs(x)
	default:
		return ErrUnknownOpcode
	}

	return nil
}

/// Clear the video display memory.
///
func (vm *CHIP_8) cls() {
	vm.Video.Clear()
}

/// system call an RCA 1802 program at address. There is no 1802 to
/// run it on, so it's ignored.
///
func (vm *CHIP_8) sys(address uint16) {
	if vm.logger != nil {
		vm.logger.Debug("Ignoring SYS call", log.Hex("address", address))
	}
}

/// call a subroutine at address.
///
func (vm *CHIP_8) call(address uint16) error {
	if err := vm.Stack.Push(vm.PC); err != nil {
		return err
	}

	vm.PC = address

	return nil
}

/// return from subroutine.
///
func (vm *CHIP_8) ret() error {
	address, err := vm.Stack.Pop()
	if err != nil {
		return err
	}

	vm.PC = address

	return nil
}

/// jump to address.
///
func (vm *CHIP_8) jump(address uint16) {
	vm.PC = address
}

/// jump to address + v0, or xnn + vx with the legacy jump quirk.
///
func (vm *CHIP_8) jumpV0(x Register, address uint16) error {
	offset := vm.V[V0]

	if vm.Quirks.LegacyJump {
		offset = vm.Get(x)
	}

	target := address + uint16(offset)
	if target >= MemorySize {
		return ErrOutOfBounds
	}

	vm.PC = target

	return nil
}

/// skip next instruction if vx == n.
///
func (vm *CHIP_8) skipIf(x Register, b byte) {
	if vm.Get(x) == b {
		vm.PC += 2
	}
}

/// skip next instruction if vx != n.
///
func (vm *CHIP_8) skipIfNot(x Register, b byte) {
	if vm.Get(x) != b {
		vm.PC += 2
	}
}

/// skip next instruction if vx == vy.
///
func (vm *CHIP_8) skipIfXY(x, y Register) {
	if vm.Get(x) == vm.Get(y) {
		vm.PC += 2
	}
}

/// skip next instruction if vx != vy.
///
func (vm *CHIP_8) skipIfNotXY(x, y Register) {
	if vm.Get(x) != vm.Get(y) {
		vm.PC += 2
	}
}

/// skip next instruction if key(vx) is pressed.
///
func (vm *CHIP_8) skipIfPressed(x Register) {
	if vm.Keys.IsPressed(Key(vm.Get(x))) {
		vm.PC += 2
	}
}

/// skip next instruction if key(vx) is not pressed.
///
func (vm *CHIP_8) skipIfNotPressed(x Register) {
	if !vm.Keys.IsPressed(Key(vm.Get(x))) {
		vm.PC += 2
	}
}

/// load n into vx.
///
func (vm *CHIP_8) loadX(x Register, b byte) {
	vm.Set(x, b)
}

/// load y into vx.
///
func (vm *CHIP_8) loadXY(x, y Register) {
	vm.Set(x, vm.Get(y))
}

/// load delay timer into vx.
///
func (vm *CHIP_8) loadXDT(x Register) {
	vm.Set(x, vm.Timers.Delay())
}

/// load vx into delay timer.
///
func (vm *CHIP_8) loadDTX(x Register) {
	vm.Timers.SetDelay(vm.Get(x))
}

/// load vx into sound timer.
///
func (vm *CHIP_8) loadSTX(x Register) {
	vm.Timers.SetSound(vm.Get(x))
}

/// load vx with next key hit. This doesn't block; the PC is left on
/// this instruction until PressKey is called.
///
func (vm *CHIP_8) loadXK(x Register) {
	vm.PC -= 2
	vm.W = x
	vm.State = WaitingForKey

	if vm.logger != nil {
		vm.logger.Debug("Waiting for key", log.Hex("pc", vm.PC), log.String("register", x.String()))
	}
}

/// load address register.
///
func (vm *CHIP_8) loadI(address uint16) {
	vm.I = address
}

/// load address with BCD of vx.
///
func (vm *CHIP_8) loadB(x Register) error {
	dst, err := vm.Memory.Slice(vm.I, 3)
	if err != nil {
		return err
	}

	n := uint16(vm.Get(x))
	b := uint16(0)

	// double dabble: perform 8 shifts
	for i := uint(0); i < 8; i++ {
		if (b>>0)&0xF >= 5 {
			b += 3
		}
		if (b>>4)&0xF >= 5 {
			b += 3 << 4
		}
		if (b>>8)&0xF >= 5 {
			b += 3 << 8
		}

		// apply shift, pull next bit
		b = (b << 1) | (n >> (7 - i) & 1)
	}

	// write to memory
	dst[0] = byte(b>>8) & 0xF
	dst[1] = byte(b>>4) & 0xF
	dst[2] = byte(b>>0) & 0xF

	return nil
}

/// load font sprite for vx into I.
///
func (vm *CHIP_8) loadF(x Register) {
	vm.I = fontSprite(vm.Get(x))
}

/// or vx with vy into vx.
///
func (vm *CHIP_8) or(x, y Register) {
	vm.Set(x, vm.Get(x)|vm.Get(y))

	if vm.Quirks.LegacyLogic {
		vm.setFlag(false)
	}
}

/// and vx with vy into vx.
///
func (vm *CHIP_8) and(x, y Register) {
	vm.Set(x, vm.Get(x)&vm.Get(y))

	if vm.Quirks.LegacyLogic {
		vm.setFlag(false)
	}
}

/// xor vx with vy into vx.
///
func (vm *CHIP_8) xor(x, y Register) {
	vm.Set(x, vm.Get(x)^vm.Get(y))

	if vm.Quirks.LegacyLogic {
		vm.setFlag(false)
	}
}

/// shiftSource is the register 8XY6 and 8XYE read from.
///
func (vm *CHIP_8) shiftSource(x, y Register) byte {
	if vm.Quirks.LegacyShift {
		return vm.Get(y)
	}

	return vm.Get(x)
}

/// shl 1 bit into vx, set carry to MSB of the source before shift.
///
func (vm *CHIP_8) shl(x, y Register) {
	v := vm.shiftSource(x, y)

	vm.Set(x, v<<1)
	vm.setFlag(v>>7 == 1)
}

/// shr 1 bit into vx, set carry to LSB of the source before shift.
///
func (vm *CHIP_8) shr(x, y Register) {
	v := vm.shiftSource(x, y)

	vm.Set(x, v>>1)
	vm.setFlag(v&1 == 1)
}

/// add n to vx. The carry flag is not affected.
///
func (vm *CHIP_8) addX(x Register, b byte) {
	vm.Set(x, vm.Get(x)+b)
}

/// add vy to vx and set carry.
///
func (vm *CHIP_8) addXY(x, y Register) {
	sum := uint16(vm.Get(x)) + uint16(vm.Get(y))

	vm.Set(x, byte(sum))
	vm.setFlag(sum > 0xFF)
}

/// add vx to i.
///
func (vm *CHIP_8) addIX(x Register) {
	vm.I += uint16(vm.Get(x))
}

/// subtract vy from vx, set carry if no borrow.
///
func (vm *CHIP_8) subXY(x, y Register) {
	vx, vy := vm.Get(x), vm.Get(y)

	vm.Set(x, vx-vy)
	vm.setFlag(vx >= vy)
}

/// subtract vx from vy and store in vx, set carry if no borrow.
///
func (vm *CHIP_8) subYX(x, y Register) {
	vx, vy := vm.Get(x), vm.Get(y)

	vm.Set(x, vy-vx)
	vm.setFlag(vy >= vx)
}

/// load a random number & n into vx.
///
func (vm *CHIP_8) rnd(x Register, b byte) {
	vm.Set(x, byte(vm.rng.Intn(0x100))&b)
}

/// draw a sprite at I to video memory at vx, vy. VF is set if any lit
/// pixel was turned off.
///
func (vm *CHIP_8) drw(x, y Register, n byte) error {
	sprite, err := vm.Memory.Slice(vm.I, int(n))
	if err != nil {
		return err
	}

	// the origin always wraps onto the screen
	ox := int(vm.Get(x)) % ScreenWidth
	oy := int(vm.Get(y)) % ScreenHeight

	c := false

	// draw each row of the sprite
	for row, s := range sprite {
		py := oy + row

		if vm.Quirks.ClipSprites && py >= ScreenHeight {
			break
		}

		for bit := 0; bit < 8; bit++ {
			if s&(0x80>>uint(bit)) == 0 {
				continue
			}

			px := ox + bit

			// clip pixels that are off screen
			if vm.Quirks.ClipSprites && px >= ScreenWidth {
				continue
			}

			if vm.Video.Toggle(px, py) {
				c = true
			}
		}
	}

	// set carry flag if any collision occurred
	vm.setFlag(c)

	return nil
}

/// save registers v0..vx to I.
///
func (vm *CHIP_8) saveRegs(x Register) error {
	n := int(x&0xF) + 1

	dst, err := vm.Memory.Slice(vm.I, n)
	if err != nil {
		return err
	}

	copy(dst, vm.V[:n])

	if vm.Quirks.LegacyStore {
		vm.I += uint16(n)
	}

	return nil
}

/// load registers v0..vx from I.
///
func (vm *CHIP_8) loadRegs(x Register) error {
	n := int(x&0xF) + 1

	src, err := vm.Memory.Slice(vm.I, n)
	if err != nil {
		return err
	}

	copy(vm.V[:n], src)

	if vm.Quirks.LegacyStore {
		vm.I += uint16(n)
	}

	return nil
}
