package e2e

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/celltree/e2e/harness"
	"github.com/artpar/celltree/internal/app"
)

func TestExplorer_Startup(t *testing.T) {
	h := harness.New(t, harness.Config{Files: sampleFiles})
	s := h.TUI().Start(t)

	out := s.Output()
	assert.Contains(t, out, "docs/")
	assert.Contains(t, out, "main.go")
	assert.NotContains(t, out, ".env")
	assert.Equal(t, []string{"▶ docs/", "  main.go"}, s.Lines())
}

func TestExplorer_Navigation(t *testing.T) {
	h := harness.New(t, harness.Config{Files: sampleFiles})
	s := h.TUI().Start(t)

	t.Run("expand and step in", func(t *testing.T) {
		s.SendKeys("l", "l")
		assert.Equal(t, []string{"▼ docs/", "  ▶ deep/", "    api.md", "  main.go"}, s.Lines())
		assert.Equal(t, 1, s.Tree().Cursor())
	})

	t.Run("collapse steps out to the parent", func(t *testing.T) {
		s.SendKey("h")
		assert.Equal(t, 0, s.Tree().Cursor())
		s.SendKey("h")
		assert.Equal(t, []string{"▶ docs/", "  main.go"}, s.Lines())
	})

	t.Run("bottom and top", func(t *testing.T) {
		s.SendKey("G")
		assert.Equal(t, 1, s.Tree().Cursor())
		s.SendKey("g")
		assert.Equal(t, 0, s.Tree().Cursor())
	})

	t.Run("space toggles", func(t *testing.T) {
		s.SendKey("space")
		assert.Len(t, s.Lines(), 4)
		s.SendKey("space")
		assert.Len(t, s.Lines(), 2)
	})
}

func TestExplorer_OpenRow(t *testing.T) {
	h := harness.New(t, harness.Config{Files: sampleFiles})
	s := h.TUI().StartWithSize(t, 200, 20)

	s.SendKey("enter")

	assert.Equal(t, "▼ docs/", s.Lines()[0], "single click mode toggles folders")
	assert.Contains(t, s.Model().Notification(), "selected "+h.Path("docs"))
	assert.Len(t, s.Tree().Clicked(), 1)
}

func TestExplorer_DoubleClickMode(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.ClickToExpand = 2
	h := harness.New(t, harness.Config{Files: sampleFiles, App: &cfg})
	s := h.TUI().Start(t)

	s.SendKey("enter")

	assert.Equal(t, "▶ docs/", s.Lines()[0], "a single click does not toggle")
	assert.Len(t, s.Tree().Clicked(), 1)
}

func TestExplorer_Quit(t *testing.T) {
	h := harness.New(t, harness.Config{})
	s := h.TUI().Start(t)

	s.SendKey("q")

	assert.True(t, s.Quitting())
}

func TestExplorer_Watch(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.WatchDebounce = 20 * time.Millisecond
	h := harness.New(t, harness.Config{Files: sampleFiles, App: &cfg, Timeout: 3 * time.Second})
	s := h.TUI().StartWatching(t)

	t.Run("new file appears", func(t *testing.T) {
		h.Create("new.txt")
		require.NoError(t, s.WaitForOutput("new.txt"))
		assert.Equal(t, []string{"▶ docs/", "  main.go", "  new.txt"}, s.Lines())
	})

	t.Run("removed file disappears", func(t *testing.T) {
		h.Remove("main.go")
		require.NoError(t, s.WaitForNoOutput("main.go"))
	})

	t.Run("expanded folders keep their state", func(t *testing.T) {
		s.SendKeys("g", "l")
		require.Equal(t, "▼ docs/", s.Lines()[0])

		h.Create("docs/guide.md")
		require.NoError(t, s.WaitForOutput("guide.md"))
		assert.Equal(t, []string{"▼ docs/", "  ▶ deep/", "    api.md", "    guide.md", "  new.txt"}, s.Lines())
	})
}
