package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestMemoryBounds(t *testing.T) {
	var m Memory

	assert.NoError(t, m.SetByte(0xFFF, 0xAB))
	b, err := m.Byte(0xFFF)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xAB), b)

	_, err = m.Byte(0x1000)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	assert.True(t, errors.Is(m.SetByte(0x1000, 1), ErrOutOfBounds))

	// writes into the reserved region are allowed
	assert.NoError(t, m.SetByte(0x000, 1))
}

func TestMemoryWord(t *testing.T) {
	var m Memory
	m[0x200], m[0x201] = 0xA2, 0x2A

	w, err := m.Word(0x200)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0xA22A), w)

	_, err = m.Word(0xFFE)
	assert.NoError(t, err)

	_, err = m.Word(0xFFF)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}

func TestMemorySlice(t *testing.T) {
	var m Memory

	s, err := m.Slice(0xFFD, 3)
	assert.NoError(t, err)
	assert.Equal(t, 3, len(s))

	// aliases memory
	s[2] = 9
	assert.Equal(t, byte(9), m[0xFFF])

	_, err = m.Slice(0xFFE, 3)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}

func TestMemoryLoadBytes(t *testing.T) {
	var m Memory

	assert.NoError(t, m.LoadBytes(0xFFE, []byte{1, 2}))
	assert.Equal(t, byte(2), m[0xFFF])
	assert.True(t, errors.Is(m.LoadBytes(0xFFE, []byte{1, 2, 3}), ErrOutOfBounds))
}
