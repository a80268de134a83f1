package chip8

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

const snapshotProgram = `
.LOOP
	RND V0, #1F
	SKP V1
	ADD V2, 1
	LD DT, V0
	LD F, V0
	DRW V2, V0, 5
	CALL SUBR
	JP LOOP
.SUBR
	LD I, #300
	LD [I], V2
	RET
`

// replay runs the program with a fixed key and timer trace, recording
// a snapshot after every cycle.
func replay(t *testing.T, vm *CHIP_8, cycles int) []*Snapshot {
	t.Helper()

	snapshots := make([]*Snapshot, 0, cycles)

	for i := 0; i < cycles; i++ {
		switch i % 17 {
		case 0:
			vm.PressKey(0)
		case 5:
			vm.ReleaseKey(0)
		}

		if i%8 == 0 {
			vm.TickTimers()
		}

		assert.NoError(t, vm.Step())
		snapshots = append(snapshots, vm.Snapshot())
	}

	return snapshots
}

func TestDeterministicReplay(t *testing.T) {
	vm := newTestVM(t, snapshotProgram, Quirks{})
	first := replay(t, vm, 300)

	vm.Reset()
	second := replay(t, vm, 300)

	assert.Equal(t, len(first), len(second))
	for i := range first {
		assert.True(t, reflect.DeepEqual(first[i], second[i]), "cycle mismatch")
	}
}

func TestSnapshotRestore(t *testing.T) {
	vm := newTestVM(t, snapshotProgram, Quirks{})
	replay(t, vm, 50)

	s := vm.Snapshot()
	replay(t, vm, 50)
	assert.False(t, reflect.DeepEqual(s, vm.Snapshot()))

	assert.NoError(t, vm.Restore(s))
	assert.True(t, reflect.DeepEqual(s, vm.Snapshot()))
}

func TestSaveLoadState(t *testing.T) {
	vm := newTestVM(t, snapshotProgram, Quirks{})
	replay(t, vm, 75)

	var buf bytes.Buffer
	assert.NoError(t, vm.Save(&buf))

	other := newTestVM(t, snapshotProgram, Quirks{})
	assert.NoError(t, other.LoadState(&buf))

	assert.True(t, reflect.DeepEqual(vm.Snapshot(), other.Snapshot()))
	assert.Equal(t, vm.PC, other.PC)
	assert.Equal(t, vm.Stack.Len(), other.Stack.Len())
}

func TestSaveLoadHalted(t *testing.T) {
	vm := newTestVM(t, "RET", Quirks{})
	assert.Error(t, vm.Step())

	var buf bytes.Buffer
	assert.NoError(t, vm.Save(&buf))

	other := newTestVM(t, "RET", Quirks{})
	assert.NoError(t, other.LoadState(&buf))

	assert.Equal(t, Halted, other.State)
	assert.True(t, errors.Is(other.Step(), ErrStackUnderflow))
	assert.Equal(t, uint16(0x200), other.Fault.PC)
	assert.Equal(t, uint16(0x00EE), other.Fault.Opcode)
}

func TestRestoreInvalid(t *testing.T) {
	vm := newTestVM(t, "CLS", Quirks{})

	s := vm.Snapshot()
	s.Stack = make([]uint16, StackDepth+1)
	assert.True(t, errors.Is(vm.Restore(s), ErrStackOverflow))

	s = vm.Snapshot()
	s.State = State(7)
	assert.Error(t, vm.Restore(s))

	assert.Error(t, vm.LoadState(bytes.NewReader([]byte("not a save state"))))
}
