package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Tests for pure functions - trivial input → output, no mocks needed.

func TestMoveCursor(t *testing.T) {
	tests := []struct {
		name     string
		cursor   int
		delta    int
		count    int
		expected int
	}{
		{"move down from start", 0, 1, 10, 1},
		{"move down in middle", 5, 1, 10, 6},
		{"move up in middle", 5, -1, 10, 4},
		{"clamp at end", 9, 1, 10, 9},
		{"clamp at start", 0, -1, 10, 0},
		{"large jump down", 5, 100, 10, 9},
		{"large jump up", 5, -100, 10, 0},
		{"empty list", 0, 1, 0, 0},
		{"single item list", 0, 1, 1, 0},
		{"move multiple down", 2, 3, 10, 5},
		{"move multiple up", 5, -3, 10, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MoveCursor(tt.cursor, tt.delta, tt.count)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestAdjustOffset(t *testing.T) {
	tests := []struct {
		name          string
		cursor        int
		offset        int
		visibleHeight int
		expected      int
	}{
		{"cursor in view", 5, 3, 10, 3},
		{"cursor above view - scroll up", 2, 5, 10, 2},
		{"cursor below view - scroll down", 15, 3, 10, 6},
		{"cursor at top of view", 3, 3, 10, 3},
		{"cursor at bottom of view", 12, 3, 10, 3},
		{"cursor just below view", 13, 3, 10, 4},
		{"zero visible height", 5, 0, 0, 5},
		{"negative visible height", 5, 0, -1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AdjustOffset(tt.cursor, tt.offset, tt.visibleHeight)
			assert.Equal(t, tt.expected, result)
		})
	}
}
