package views

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/artpar/celltree/internal/loader"
	"github.com/artpar/celltree/internal/tui"
	"github.com/artpar/celltree/internal/tui/components"
)

// DirChangedMsg reports a watched directory whose listing changed.
type DirChangedMsg struct {
	Path string
}

// watcherClosedMsg is sent once the watcher's change channel is closed.
type watcherClosedMsg struct{}

// clearNotificationMsg is sent to clear the notification.
type clearNotificationMsg struct{}

// ExplorerView shows a directory tree with a header and a help line.
type ExplorerView struct {
	width        int
	height       int
	root         string
	tree         *components.TreeView
	source       *loader.Source
	watcher      *loader.Watcher
	cancel       context.CancelFunc
	notification string
	notifyUntil  time.Time
	keys         components.KeyMap
}

// NewExplorerView creates the view. watcher may be nil.
func NewExplorerView(root string, tree *components.TreeView, source *loader.Source, watcher *loader.Watcher) *ExplorerView {
	v := &ExplorerView{
		root:    root,
		tree:    tree,
		source:  source,
		watcher: watcher,
		keys:    components.DefaultKeyMap(),
	}
	v.tree.Focus()
	return v
}

// Init starts the watcher, if any.
func (v *ExplorerView) Init() tea.Cmd {
	if v.watcher == nil {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	go v.watcher.Run(ctx)
	return v.waitForChange()
}

// Stop ends the watcher loop.
func (v *ExplorerView) Stop() {
	if v.cancel != nil {
		v.cancel()
	}
}

func (v *ExplorerView) waitForChange() tea.Cmd {
	if v.watcher == nil {
		return nil
	}
	changes := v.watcher.Changes()
	return func() tea.Msg {
		path, ok := <-changes
		if !ok {
			return watcherClosedMsg{}
		}
		return DirChangedMsg{Path: path}
	}
}

// Update handles messages.
func (v *ExplorerView) Update(msg tea.Msg) (tui.Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.tree.SetSize(msg.Width, max(msg.Height-2, 1))
		return v, nil

	case DirChangedMsg:
		if err := v.source.RefreshPath(msg.Path); err != nil {
			return v, tea.Batch(v.notify("refresh failed: "+err.Error()), v.waitForChange())
		}
		return v, v.waitForChange()

	case watcherClosedMsg:
		return v, nil

	case components.NodeSelectedMsg:
		return v, v.notify("selected " + v.source.Describe(msg.Node))

	case clearNotificationMsg:
		if time.Now().After(v.notifyUntil) {
			v.notification = ""
		}
		return v, nil

	case tea.KeyMsg:
		if key.Matches(msg, v.keys.Quit) {
			v.Stop()
			return v, tea.Quit
		}
	}

	_, cmd := v.tree.Update(msg)
	return v, cmd
}

func (v *ExplorerView) notify(text string) tea.Cmd {
	v.notification = text
	v.notifyUntil = time.Now().Add(3 * time.Second)
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearNotificationMsg{}
	})
}

// View renders the view.
func (v *ExplorerView) View() string {
	if v.width == 0 || v.height == 0 {
		return ""
	}
	header := tui.RenderTitle(tui.TruncateLeft(v.root, v.width), v.width, true)

	footer := v.notification
	if footer == "" {
		footer = v.helpLine()
	}
	footer = lipgloss.NewStyle().
		Foreground(lipgloss.Color("243")).
		MaxWidth(v.width).
		Render(footer)

	return lipgloss.JoinVertical(lipgloss.Left, header, v.tree.View(), footer)
}

func (v *ExplorerView) helpLine() string {
	bindings := []key.Binding{
		v.keys.Down, v.keys.Up, v.keys.Expand, v.keys.Collapse,
		v.keys.Toggle, v.keys.Yank, v.keys.Quit,
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

// Title returns the view title.
func (v *ExplorerView) Title() string { return v.root }

// Focused is always true; the view owns the whole screen.
func (v *ExplorerView) Focused() bool { return true }

// Focus is a no-op.
func (v *ExplorerView) Focus() {}

// Blur is a no-op.
func (v *ExplorerView) Blur() {}

// SetSize sets the view dimensions.
func (v *ExplorerView) SetSize(width, height int) {
	v.Update(tea.WindowSizeMsg{Width: width, Height: height})
}

// Width returns the view width.
func (v *ExplorerView) Width() int { return v.width }

// Height returns the view height.
func (v *ExplorerView) Height() int { return v.height }

// Tree returns the tree view.
func (v *ExplorerView) Tree() *components.TreeView { return v.tree }

// Notification returns the current notification.
func (v *ExplorerView) Notification() string { return v.notification }
