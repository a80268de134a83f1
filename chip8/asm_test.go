package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func assembleWords(t *testing.T, source string) []byte {
	t.Helper()

	a, err := Assemble([]byte(source))
	assert.NoError(t, err)
	if a == nil {
		return nil
	}

	return a.ROM
}

func TestAssembleInstructions(t *testing.T) {
	tests := []struct {
		source string
		word   uint16
	}{
		{"cls", 0x00E0},
		{"ret", 0x00EE},
		{"sys #123", 0x0123},
		{"jp 564", 0x1234},
		{"call #ABC", 0x2ABC},
		{"se v3, $1010", 0x330A},
		{"sne v3, -1", 0x43FF},
		{"se v3, v4", 0x5340},
		{"sne v3, v4", 0x9340},
		{"skp v7", 0xE79E},
		{"sknp v7", 0xE7A1},
		{"ld v1, 255", 0x61FF},
		{"ld v1, v2", 0x8120},
		{"or v1, v2", 0x8121},
		{"and v1, v2", 0x8122},
		{"xor v1, v2", 0x8123},
		{"add v1, v2", 0x8124},
		{"sub v1, v2", 0x8125},
		{"shr v1", 0x8116},
		{"shr v1, v2", 0x8126},
		{"subn v1, v2", 0x8127},
		{"shl v1", 0x811E},
		{"shl v1, v2", 0x812E},
		{"add v1, 2", 0x7102},
		{"add i, v9", 0xF91E},
		{"ld i, #FFF", 0xAFFF},
		{"jp v0, #300", 0xB300},
		{"rnd vc, #0F", 0xCC0F},
		{"drw v1, v2, 15", 0xD12F},
		{"ld v5, dt", 0xF507},
		{"ld v5, k", 0xF50A},
		{"ld dt, v5", 0xF515},
		{"ld st, v5", 0xF518},
		{"ld f, v5", 0xF529},
		{"ld b, v5", 0xF533},
		{"ld [i], v5", 0xF555},
		{"ld v5, [i]", 0xF565},
		{"LD V5, [ I ]", 0xF565},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			rom := assembleWords(t, tt.source)

			assert.Equal(t, 2, len(rom))
			assert.Equal(t, tt.word, uint16(rom[0])<<8|uint16(rom[1]))
		})
	}
}

func TestAssembleLabels(t *testing.T) {
	a, err := Assemble([]byte(`
	; comment line
	.START	LD V0, COUNT    ; forward EQU
		CALL SUBR
	.LOOP
		JP LOOP
	.SUBR	LD I, DATA
		RET
	.DATA	BYTE 1, 2, "AB"
		WORD START, DATA
	.COUNT	EQU 10
	`))
	assert.NoError(t, err)

	assert.Equal(t, 0x200, a.Labels["START"])
	assert.Equal(t, 0x204, a.Labels["LOOP"])
	assert.Equal(t, 0x206, a.Labels["SUBR"])
	assert.Equal(t, 0x20A, a.Labels["DATA"])
	assert.Equal(t, 10, a.Labels["COUNT"])

	expected := []byte{
		0x60, 0x0A,
		0x22, 0x06,
		0x12, 0x04,
		0xA2, 0x0A,
		0x00, 0xEE,
		0x01, 0x02, 'A', 'B',
		0x02, 0x00, 0x02, 0x0A,
	}
	assert.Equal(t, len(expected), len(a.ROM))

	for i := range expected {
		assert.Equal(t, expected[i], a.ROM[i])
	}
}

func TestAssembleDirectives(t *testing.T) {
	rom := assembleWords(t, `
		BYTE #FF
		ALIGN 4
		BYTE $1.1.1.1.
		ALIGN 2
		PAD 3
		BYTE 9
	`)

	assert.Equal(t, 10, len(rom))
	assert.Equal(t, byte(0xFF), rom[0])
	assert.Equal(t, byte(0), rom[1])
	assert.Equal(t, byte(0xAA), rom[4])
	assert.Equal(t, byte(0), rom[5])
	assert.Equal(t, byte(9), rom[9])

	// already aligned addresses don't move
	rom = assembleWords(t, "ALIGN 16\nBYTE 1")
	assert.Equal(t, 1, len(rom))
}

func TestAssembleBreakpoints(t *testing.T) {
	a, err := Assemble([]byte(`
		LD V0, 1
		BREAK before the loop
	.LOOP
		JP LOOP
	`))
	assert.NoError(t, err)

	assert.Equal(t, 1, len(a.Breakpoints))
	assert.Equal(t, uint16(0x202), a.Breakpoints[0].Address)
	assert.Equal(t, "BEFORE THE LOOP", a.Breakpoints[0].Reason)
}

func TestAssembleErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		line   int
		msg    string
	}{
		{"unknown mnemonic", "CLS\nFOO V1", 2, "unexpected token"},
		{"bad operands", "LD V1", 1, "illegal instruction"},
		{"jp vx", "JP V1, #200", 1, "illegal instruction"},
		{"byte range", "LD V0, 256", 1, "byte out of range: 256"},
		{"nibble range", "DRW V0, V1, 16", 1, "nibble out of range: 16"},
		{"address range", "JP #1000", 1, "address out of range: 4096"},
		{"duplicate label", ".A\n.A", 2, "duplicate label: A"},
		{"unresolved label", "CLS\nJP NOWHERE\nCLS", 2, "unresolved label: NOWHERE"},
		{"forward byte range", "LD V0, BIG\n.BIG EQU 300", 1, "byte out of range: 300"},
		{"alignment", "ALIGN 3", 1, "illegal alignment"},
		{"pad", "PAD 4000", 1, "illegal size"},
		{"too large", "PAD 3584\nCLS", 2, "program too large"},
		{"missing operand", "LD V0,", 1, "expected operand"},
		{"bad hex", "LD V0, #", 1, "illegal hex value: #"},
		{"bad string", "BYTE \"ABC", 1, "unterminated string"},
		{"bad label", ".1A", 1, "expected label"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Assemble([]byte(tt.source))
			assert.True(t, a == nil)

			var asmErr *AsmError
			assert.True(t, errors.As(err, &asmErr))
			assert.Equal(t, tt.line, asmErr.Line)
			assert.Equal(t, tt.msg, asmErr.Msg)
		})
	}
}

func TestAsmErrorString(t *testing.T) {
	assert.Equal(t, "line 3 - illegal instruction", (&AsmError{Line: 3, Msg: "illegal instruction"}).Error())
	assert.Equal(t, "read failed", (&AsmError{Msg: "read failed"}).Error())
}
