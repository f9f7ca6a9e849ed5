package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"ellipsis", "hello world", 8, "hello..."},
		{"tiny width", "hello", 2, "he"},
		{"zero width", "hello", 0, ""},
		{"multibyte", "▼ docs/guide", 6, "▼ d..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.input, tt.width))
		})
	}
}

func TestTruncateLeft(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{"fits", "/tmp", 10, "/tmp"},
		{"keeps the tail", "/home/user/project", 10, "...project"},
		{"tiny width", "/home", 2, "me"},
		{"negative width", "/home", -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateLeft(tt.input, tt.width))
		})
	}
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "abc", PadRight("abcdef", 3))
	assert.Equal(t, "▶ a ", PadRight("▶ a", 4))
	assert.Equal(t, "", PadRight("abc", -1))
}

func TestRender(t *testing.T) {
	t.Run("title contains text", func(t *testing.T) {
		assert.Contains(t, RenderTitle("files", 20, true), "files")
		assert.Contains(t, RenderTitle("files", 20, false), "files")
	})

	t.Run("border wraps content", func(t *testing.T) {
		out := RenderBorder("row", 10, 1, true)
		assert.Contains(t, out, "row")
		assert.Contains(t, out, "╭")
	})
}
