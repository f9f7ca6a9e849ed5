package components

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/artpar/celltree/internal/core"
	"github.com/artpar/celltree/internal/tui"
	"github.com/artpar/celltree/internal/widget"
)

// KeyMap defines the key bindings of a TreeView.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Expand   key.Binding
	Collapse key.Binding
	Click    key.Binding
	Toggle   key.Binding
	Yank     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the vim-style bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
		Expand:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "expand")),
		Collapse: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "collapse")),
		Click:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Yank:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yank")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// NodeSelectedMsg is sent when a row is opened with the click binding.
type NodeSelectedMsg struct {
	Node *core.TreeNode
}

// Init initializes the component.
func (t *TreeView) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (t *TreeView) Update(msg tea.Msg) (tui.Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		t.SetSize(msg.Width, msg.Height)
		return t, nil
	case tui.FocusMsg:
		t.focused = true
		return t, nil
	case tui.BlurMsg:
		t.focused = false
		return t, nil
	case tea.KeyMsg:
		if !t.focused {
			return t, nil
		}
		return t, t.handleKey(msg)
	}
	return t, nil
}

func (t *TreeView) handleKey(msg tea.KeyMsg) tea.Cmd {
	t.status = ""
	rows := t.NumRows()

	switch {
	case key.Matches(msg, t.keys.Quit):
		return tea.Quit
	case key.Matches(msg, t.keys.Up):
		t.cursor = MoveCursor(t.cursor, -1, rows)
	case key.Matches(msg, t.keys.Down):
		t.cursor = MoveCursor(t.cursor, 1, rows)
	case key.Matches(msg, t.keys.Top):
		t.cursor = 0
	case key.Matches(msg, t.keys.Bottom):
		t.cursor = MoveCursor(rows-1, 0, rows)
	case key.Matches(msg, t.keys.PageUp):
		t.cursor = MoveCursor(t.cursor, -t.visibleHeight(), rows)
	case key.Matches(msg, t.keys.PageDown):
		t.cursor = MoveCursor(t.cursor, t.visibleHeight(), rows)
	case key.Matches(msg, t.keys.Expand):
		t.expandAtCursor()
	case key.Matches(msg, t.keys.Collapse):
		t.collapseAtCursor()
	case key.Matches(msg, t.keys.Toggle):
		if node := t.RowNode(t.cursor); node != nil && node.IsFolder() {
			node.SetExpanded(!node.Expanded())
		}
	case key.Matches(msg, t.keys.Click):
		node := t.RowNode(t.cursor)
		if node == nil {
			return nil
		}
		if err := t.ClickRow(t.cursor); err != nil {
			t.status = err.Error()
			return nil
		}
		return func() tea.Msg { return NodeSelectedMsg{Node: node} }
	case key.Matches(msg, t.keys.Yank):
		t.yank()
	}

	t.offset = AdjustOffset(t.cursor, t.offset, t.visibleHeight())
	return nil
}

// expandAtCursor expands a collapsed folder, or steps into an expanded one.
func (t *TreeView) expandAtCursor() {
	node := t.RowNode(t.cursor)
	if node == nil || !node.IsFolder() {
		return
	}
	if !node.Expanded() {
		node.SetExpanded(true)
		return
	}
	if node.NumChildren() > 0 {
		t.cursor = MoveCursor(t.cursor, 1, t.NumRows())
	}
}

// collapseAtCursor collapses an expanded folder, or steps out to the parent.
func (t *TreeView) collapseAtCursor() {
	node := t.RowNode(t.cursor)
	if node == nil {
		return
	}
	if node.IsFolder() && node.Expanded() {
		node.SetExpanded(false)
		return
	}
	if i := t.RowIndex(node.Parent()); i >= 0 {
		t.cursor = i
	}
}

func (t *TreeView) yank() {
	node := t.RowNode(t.cursor)
	if node == nil {
		return
	}
	text := node.Text()
	if t.describe != nil {
		text = t.describe(node)
	}
	if err := clipboard.WriteAll(text); err != nil {
		t.status = "yank failed: " + err.Error()
		t.logger.Error("failed to write clipboard", "error", err)
		return
	}
	t.status = "yanked " + text
}

// Selected returns the node under the cursor, or nil.
func (t *TreeView) Selected() *core.TreeNode { return t.RowNode(t.cursor) }

// Cursor returns the cursor row.
func (t *TreeView) Cursor() int { return t.cursor }

// SetCursor moves the cursor to row i, clamped.
func (t *TreeView) SetCursor(i int) {
	t.cursor = MoveCursor(i, 0, t.NumRows())
	t.offset = AdjustOffset(t.cursor, t.offset, t.visibleHeight())
}

// Status returns the last status message.
func (t *TreeView) Status() string { return t.status }

// SetStatus sets the status line.
func (t *TreeView) SetStatus(s string) { t.status = s }

// Title returns the component title.
func (t *TreeView) Title() string { return t.title }

// Focused returns true if the component is focused.
func (t *TreeView) Focused() bool { return t.focused }

// Focus sets the component as focused.
func (t *TreeView) Focus() { t.focused = true }

// Blur removes focus.
func (t *TreeView) Blur() { t.focused = false }

// SetSize sets the component dimensions.
func (t *TreeView) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.offset = AdjustOffset(t.cursor, t.offset, t.visibleHeight())
}

// Width returns the component width.
func (t *TreeView) Width() int { return t.width }

// Height returns the component height.
func (t *TreeView) Height() int { return t.height }

// visibleHeight is the number of rows inside the border and above the status line.
func (t *TreeView) visibleHeight() int {
	return max(t.height-3, 1)
}

// View renders the component.
func (t *TreeView) View() string {
	if t.width == 0 || t.height == 0 {
		return ""
	}
	innerWidth := max(t.width-2, 1)
	height := t.visibleHeight()

	var lines []string
	for i := t.offset; i < t.NumRows() && i < t.offset+height; i++ {
		lines = append(lines, t.renderRow(i, innerWidth))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}

	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	lines = append(lines, statusStyle.Render(tui.Truncate(t.status, innerWidth)))

	content := strings.Join(lines, "\n")
	return tui.RenderBorder(content, innerWidth, height+1, t.focused)
}

func (t *TreeView) renderRow(i, width int) string {
	line := tui.PadRight(t.RowText(i), width)
	if i != t.cursor {
		return line
	}
	style := lipgloss.NewStyle().Bold(true)
	if t.focused {
		style = style.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("62"))
	} else {
		style = style.Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238"))
	}
	return style.Render(line)
}

// RowText renders row i as plain text: indent, expand indicator, icon, text.
func (t *TreeView) RowText(i int) string {
	c := t.rowCell(i)
	if c == nil {
		return ""
	}
	node := c.TreeNode()

	var b strings.Builder
	if obj, ok := c.Child(core.ChildIndent); ok {
		b.WriteString(strings.Repeat(" ", int(obj.Width())))
	}
	b.WriteString(indicator(c, node))
	if icon := c.Icon(); icon != "" {
		b.WriteString(icon)
		b.WriteByte(' ')
	}
	b.WriteString(c.Text())
	return b.String()
}

// Lines renders every visible row as plain text.
func (t *TreeView) Lines() []string {
	lines := make([]string, 0, t.NumRows())
	for i := range t.NumRows() {
		lines = append(lines, t.RowText(i))
	}
	return lines
}

func indicator(c *widget.Component, node *core.TreeNode) string {
	if node == nil {
		return "  "
	}
	if leaf, ok := c.Controller(core.ControllerLeaf); ok && leaf.SelectedIndex() == 1 {
		return "  "
	}
	if !node.IsFolder() {
		return "  "
	}
	if node.Expanded() {
		return "▼ "
	}
	return "▶ "
}
