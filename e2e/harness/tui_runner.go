package harness

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/artpar/celltree/internal/cli"
	"github.com/artpar/celltree/internal/tui/components"
	"github.com/artpar/celltree/internal/tui/views"
)

// settle is how long a session waits for command results after a key.
const settle = 20 * time.Millisecond

// TUIRunner provides TUI testing capabilities.
type TUIRunner struct {
	harness *E2EHarness
}

// TUISession represents an active TUI test session. Commands returned by the
// model run on their own goroutines and their messages are fed back through
// Update on the test goroutine.
type TUISession struct {
	runner *TUIRunner
	model  *views.ExplorerView
	t      *testing.T
	msgs   chan tea.Msg
	quit   bool
}

// Start starts a new TUI session over the harness temp dir without a watcher.
func (r *TUIRunner) Start(t *testing.T) *TUISession {
	return r.start(t, 80, 24, false)
}

// StartWithSize starts a TUI session with custom dimensions.
func (r *TUIRunner) StartWithSize(t *testing.T, width, height int) *TUISession {
	return r.start(t, width, height, false)
}

// StartWatching starts a TUI session that follows filesystem changes.
func (r *TUIRunner) StartWatching(t *testing.T) *TUISession {
	return r.start(t, 80, 24, true)
}

func (r *TUIRunner) start(t *testing.T, width, height int, watch bool) *TUISession {
	t.Helper()

	model, closeView, err := cli.NewExplorer(r.harness.config, r.harness.tmpDir, watch)
	if err != nil {
		t.Fatalf("failed to open explorer: %v", err)
	}
	t.Cleanup(func() { _ = closeView() })

	s := &TUISession{
		runner: r,
		model:  model,
		t:      t,
		msgs:   make(chan tea.Msg, 64),
	}
	s.dispatch(model.Init())
	s.process(tea.WindowSizeMsg{Width: width, Height: height})
	return s
}

func (s *TUISession) dispatch(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	go func() {
		if msg := cmd(); msg != nil {
			s.msgs <- msg
		}
	}()
}

func (s *TUISession) process(msg tea.Msg) {
	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, cmd := range msg {
			s.dispatch(cmd)
		}
		return
	case tea.QuitMsg:
		s.quit = true
		return
	}
	updated, cmd := s.model.Update(msg)
	s.model = updated.(*views.ExplorerView)
	s.dispatch(cmd)
}

// Settle processes command results until none arrive for d.
func (s *TUISession) Settle(d time.Duration) *TUISession {
	for {
		select {
		case msg := <-s.msgs:
			s.process(msg)
		case <-time.After(d):
			return s
		}
	}
}

// SendKey sends a key press.
func (s *TUISession) SendKey(key string) *TUISession {
	s.process(parseKeyMsg(key))
	return s.Settle(settle)
}

// SendKeys sends multiple key presses.
func (s *TUISession) SendKeys(keys ...string) *TUISession {
	for _, key := range keys {
		s.SendKey(key)
	}
	return s
}

// WaitForOutput waits for specific text in output.
func (s *TUISession) WaitForOutput(text string) error {
	return s.waitFor(text, func(out string) bool { return strings.Contains(out, text) })
}

// WaitForNoOutput waits until text no longer appears in output.
func (s *TUISession) WaitForNoOutput(text string) error {
	return s.waitFor("absence of "+text, func(out string) bool { return !strings.Contains(out, text) })
}

func (s *TUISession) waitFor(what string, done func(string) bool) error {
	timeout := s.runner.harness.timeout
	deadline := time.After(timeout)
	poll := time.NewTicker(settle)
	defer poll.Stop()

	for {
		if done(s.Output()) {
			return nil
		}
		select {
		case msg := <-s.msgs:
			s.process(msg)
		case <-poll.C:
		case <-deadline:
			return &TimeoutError{text: what, timeout: timeout}
		}
	}
}

// Output returns the current TUI output.
func (s *TUISession) Output() string {
	return s.model.View()
}

// Lines returns the tree rows without styling.
func (s *TUISession) Lines() []string {
	return s.model.Tree().Lines()
}

// Quitting reports whether the model asked to quit.
func (s *TUISession) Quitting() bool {
	return s.quit
}

// Model returns the underlying ExplorerView for direct assertions.
func (s *TUISession) Model() *views.ExplorerView {
	return s.model
}

// Tree returns the tree view of the session.
func (s *TUISession) Tree() *components.TreeView {
	return s.model.Tree()
}

// TimeoutError represents a timeout waiting for output.
type TimeoutError struct {
	text    string
	timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return "timeout after " + e.timeout.String() + " waiting for: " + e.text
}

// parseKeyMsg converts key string to tea.KeyMsg.
func parseKeyMsg(key string) tea.KeyMsg {
	switch strings.ToLower(key) {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc", "escape":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "pgup":
		return tea.KeyMsg{Type: tea.KeyPgUp}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}
