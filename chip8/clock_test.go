package chip8

import (
	"errors"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
)

func TestClockRate(t *testing.T) {
	vm := newTestVM(t, `
		LD V0, 120
		LD DT, V0
	.LOOP
		JP LOOP
	`, Quirks{})

	clock := NewClock(500)
	assert.NoError(t, clock.Advance(vm, time.Second))

	assert.Equal(t, int64(500), vm.Cycles)
	assert.Equal(t, byte(60), vm.DelayTimer())
	assert.Equal(t, time.Second, clock.Elapsed())
}

func TestClockIncrementalAdvance(t *testing.T) {
	source := `
		LD V0, 200
		LD DT, V0
	.LOOP
		ADD V1, 1
		JP LOOP
	`

	whole := newTestVM(t, source, Quirks{})
	assert.NoError(t, NewClock(700).Advance(whole, 2*time.Second))

	parts := newTestVM(t, source, Quirks{})
	clock := NewClock(700)
	for i := 0; i < 2000; i++ {
		assert.NoError(t, clock.Advance(parts, time.Millisecond))
	}

	assert.Equal(t, whole.Cycles, parts.Cycles)
	assert.Equal(t, whole.V, parts.V)
	assert.Equal(t, whole.DelayTimer(), parts.DelayTimer())
}

func TestClockWithoutTimers(t *testing.T) {
	vm := newTestVM(t, "LD V0, 10\nLD DT, V0\n.LOOP\nJP LOOP", Quirks{})

	clock := NewClock(500)
	clock.Timers = false
	assert.NoError(t, clock.Advance(vm, time.Second))

	assert.Equal(t, byte(10), vm.DelayTimer())
}

func TestClockSpeed(t *testing.T) {
	clock := NewClock(1)
	assert.Equal(t, MinSpeed, clock.Speed)

	clock.SetSpeed(500)
	clock.Faster()
	assert.Equal(t, 1000, clock.Speed)

	clock.SetSpeed(20000)
	assert.Equal(t, MaxSpeed, clock.Speed)

	clock.SetSpeed(MinSpeed)
	clock.Slower()
	assert.Equal(t, MinSpeed, clock.Speed)
}

func TestClockBreakpoint(t *testing.T) {
	vm := newTestVM(t, `
		LD V0, 1
		LD V1, 2
	.LOOP
		JP LOOP
	`, Quirks{})
	vm.Breakpoints[0x202] = Breakpoint{Address: 0x202, Reason: "here"}

	clock := NewClock(500)

	err := clock.Advance(vm, time.Second)
	assert.True(t, errors.Is(err, ErrBreakpoint))
	assert.Equal(t, "breakpoint at #0202: here", err.Error())
	assert.Equal(t, uint16(0x202), vm.PC)
	assert.Equal(t, int64(1), vm.Cycles)

	// still stopped
	err = clock.Advance(vm, time.Second)
	assert.True(t, errors.Is(err, ErrBreakpoint))
	assert.Equal(t, byte(0), vm.V[V1])

	clock.Resume()
	assert.NoError(t, clock.Advance(vm, 10*time.Millisecond))
	assert.Equal(t, byte(2), vm.V[V1])
	assert.Equal(t, int64(6), vm.Cycles)
}

func TestClockFault(t *testing.T) {
	vm := newTestVM(t, "CLS\nWORD #FFFF", Quirks{})

	clock := NewClock(500)
	err := clock.Advance(vm, time.Second)
	assert.True(t, errors.Is(err, ErrUnknownOpcode))
	assert.Equal(t, Halted, vm.State)
	assert.Equal(t, int64(1), vm.Cycles)
}

func TestClockWaitForKey(t *testing.T) {
	vm := newTestVM(t, "LD V0, K\n.LOOP\nJP LOOP", Quirks{})

	clock := NewClock(500)
	assert.NoError(t, clock.Advance(vm, time.Second))
	assert.Equal(t, WaitingForKey, vm.State)
	assert.Equal(t, int64(1), vm.Cycles)

	// the backlog isn't replayed once the key arrives
	vm.PressKey(3)
	assert.NoError(t, clock.Advance(vm, 2*time.Millisecond))
	assert.Equal(t, int64(2), vm.Cycles)
	assert.Equal(t, byte(3), vm.V[V0])
}

func TestClockReset(t *testing.T) {
	clock := NewClock(600)
	clock.Timers = false

	vm := newTestVM(t, ".LOOP\nJP LOOP", Quirks{})
	assert.NoError(t, clock.Advance(vm, time.Second))

	clock.Reset()
	assert.Equal(t, time.Duration(0), clock.Elapsed())
	assert.Equal(t, 600, clock.Speed)
	assert.False(t, clock.Timers)
}

func TestClockStepOffBreakpoint(t *testing.T) {
	a, err := Assemble([]byte(`
		CLS
		BREAK one
		CLS
		BREAK two
		CLS
	.LOOP
		JP LOOP
	`))
	assert.NoError(t, err)

	vm, err := LoadROM(a.ROM, Config{Seed: 1})
	assert.NoError(t, err)
	for _, bp := range a.Breakpoints {
		vm.Breakpoints[bp.Address] = bp
	}

	clock := NewClock(500)

	err = clock.Advance(vm, time.Second)
	assert.ErrorContains(t, err, "#0202: ONE")

	// stepping directly moves onto the next breakpoint
	assert.NoError(t, vm.Step())
	assert.Equal(t, uint16(0x204), vm.PC)

	clock.Resume()
	err = clock.Advance(vm, time.Second)
	assert.ErrorContains(t, err, "#0204: TWO")
	assert.Equal(t, uint16(0x204), vm.PC)
	assert.Equal(t, int64(2), vm.Cycles)

	clock.Resume()
	assert.NoError(t, clock.Advance(vm, 10*time.Millisecond))
	assert.Equal(t, uint16(0x206), vm.PC)
}
