package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Component is the interface for all TUI components.
type Component interface {
	// Init initializes the component.
	Init() tea.Cmd

	// Update handles messages and returns the updated component.
	Update(msg tea.Msg) (Component, tea.Cmd)

	// View renders the component.
	View() string

	// Title returns the component title.
	Title() string

	// Focused returns true if the component is focused.
	Focused() bool

	// Focus sets the component as focused.
	Focus()

	// Blur removes focus from the component.
	Blur()

	// SetSize sets the component dimensions.
	SetSize(width, height int)

	// Width returns the component width.
	Width() int

	// Height returns the component height.
	Height() int
}

// Messages

// FocusMsg is sent when a component should gain focus.
type FocusMsg struct{}

// BlurMsg is sent when a component should lose focus.
type BlurMsg struct{}

// RenderTitle renders a title bar.
func RenderTitle(title string, width int, focused bool) string {
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Bold(true)

	if focused {
		style = style.Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("62"))
	} else {
		style = style.Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238"))
	}

	return style.Render(title)
}

// RenderBorder renders content with a border.
func RenderBorder(content string, width, height int, focused bool) string {
	style := lipgloss.NewStyle().
		Width(width).
		Height(height).
		BorderStyle(lipgloss.RoundedBorder())

	if focused {
		style = style.BorderForeground(lipgloss.Color("62"))
	} else {
		style = style.BorderForeground(lipgloss.Color("240"))
	}

	return style.Render(content)
}

// Truncate cuts s to width runes, ending in "..." when there is room.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

// TruncateLeft keeps the last width runes of s, starting with "..." when
// there is room. Paths read better cut this way.
func TruncateLeft(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[len(r)-width:])
	}
	return "..." + string(r[len(r)-width+3:])
}

// PadRight pads or cuts s to exactly width runes.
func PadRight(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:max(width, 0)])
	}
	return s + strings.Repeat(" ", width-len(r))
}
