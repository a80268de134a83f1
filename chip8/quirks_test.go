package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestQuirksPreset(t *testing.T) {
	tests := []struct {
		name   string
		quirks Quirks
	}{
		{"", Quirks{}},
		{"default", Quirks{}},
		{"VIP", QuirksVIP},
		{"cosmac", QuirksVIP},
		{"chip48", QuirksCHIP48},
		{"CHIP-48", QuirksCHIP48},
	}

	for _, tt := range tests {
		q, err := QuirksPreset(tt.name)
		assert.NoError(t, err)
		assert.Equal(t, tt.quirks, q)
	}

	_, err := QuirksPreset("schip")
	assert.Error(t, err)
}
