package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuneIndexToByteOffset(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		index int
		want  int
	}{
		{"start", "abc", 0, 0},
		{"ascii", "abc", 2, 2},
		{"end of line", "abc", 3, 3},
		{"past end", "abc", 4, -1},
		{"negative", "abc", -1, -1},
		{"multibyte", "héllo", 2, 3},
		{"wide", "日本語", 3, 9},
		{"empty line", "", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RuneIndexToByteOffset([]byte(tt.line), tt.index))
		})
	}
}
