package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDisassemble(t *testing.T) {
	vm := newTestVM(t, `
		LD V1, #0A
		DRW V1, V2, 5
		WORD 0
		LD [I], V3
	`, Quirks{})

	assert.Equal(t, "0200 - LD     V1, #0A", vm.Disassemble(0x200))
	assert.Equal(t, "0202 - DRW    V1, V2, 5", vm.Disassemble(0x202))
	assert.Equal(t, "0204 -", vm.Disassemble(0x204))
	assert.Equal(t, "0206 - LD     [I], V3", vm.Disassemble(0x206))

	// not a whole word left
	assert.Equal(t, "", vm.Disassemble(0xFFF))
}

func TestDisassembleRoundTrip(t *testing.T) {
	words := []uint16{
		0x00E0, 0x00EE, 0x0123, 0x1234, 0x2345, 0x3A12, 0x4A12, 0x5120, 0x6A12, 0x7A12,
		0x8120, 0x8121, 0x8122, 0x8123, 0x8124, 0x8125, 0x8126, 0x8127, 0x812E,
		0x9120, 0xA123, 0xB123, 0xC1FF, 0xD125, 0xE19E, 0xE1A1,
		0xF107, 0xF10A, 0xF115, 0xF118, 0xF11E, 0xF129, 0xF133, 0xF155, 0xF165,
	}

	for _, w := range words {
		text := Decode(w).String()

		a, err := Assemble([]byte(text))
		assert.NoError(t, err, text)
		assert.Equal(t, 2, len(a.ROM), text)
		assert.Equal(t, w, uint16(a.ROM[0])<<8|uint16(a.ROM[1]), text)
	}
}
