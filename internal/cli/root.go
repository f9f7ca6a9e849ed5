package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/artpar/celltree/internal/app"
	"github.com/artpar/celltree/internal/core"
	"github.com/artpar/celltree/internal/loader"
	"github.com/artpar/celltree/internal/tui/components"
	"github.com/artpar/celltree/internal/tui/views"
)

// options are the flags shared by every command.
type options struct {
	configPath    string
	showHidden    bool
	indent        int
	clickToExpand int
	noWatch       bool
}

func (o *options) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&o.configPath, "config", "c", "", "Path to a YAML config file")
	cmd.PersistentFlags().BoolVar(&o.showHidden, "hidden", false, "Show dot files")
	cmd.PersistentFlags().IntVar(&o.indent, "indent", -1, "Columns per indent level (default from config)")
	cmd.PersistentFlags().IntVar(&o.clickToExpand, "click-to-expand", -1, "0 off, 1 single click, 2 double click (default from config)")
	cmd.Flags().BoolVar(&o.noWatch, "no-watch", false, "Do not watch directories for changes")
}

// loadConfig reads the config file and applies flag overrides.
func (o *options) loadConfig() (app.Config, error) {
	cfg, err := app.LoadConfig(o.configPath)
	if err != nil {
		return cfg, err
	}
	if o.showHidden {
		cfg.ShowHidden = true
	}
	if o.indent >= 0 {
		cfg.Indent = o.indent
	}
	if o.clickToExpand >= 0 {
		cfg.ClickToExpand = o.clickToExpand
	}
	if o.noWatch {
		cfg.Watch = false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// NewRootCommand creates the root command.
func NewRootCommand(version string) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:     "celltree [dir]",
		Short:   "celltree - browse a directory as a virtualized tree",
		Long:    "celltree shows a directory as an expandable tree whose rows are drawn from a pool of reusable cells.",
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts, dirArg(args))
		},
	}
	cmd.SilenceUsage = true
	opts.register(cmd)

	// Add subcommands
	cmd.AddCommand(NewPrintCommand(opts))

	return cmd
}

func dirArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

// session is a loaded tree ready to display.
type session struct {
	app     *app.App
	tree    *components.TreeView
	source  *loader.Source
	watcher *loader.Watcher
	close   func() error
}

// newSession builds the app, the tree view and the filesystem source for dir.
func newSession(cfg app.Config, dir string, watch bool) (*session, error) {
	logger, closeLog, err := app.NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	a := app.New(app.WithConfig(cfg), app.WithLogger(logger))

	srcOpts := []loader.Option{
		loader.WithHidden(cfg.ShowHidden),
		loader.WithFolderResource(cfg.FolderItem),
		loader.WithLogger(logger),
	}
	var watcher *loader.Watcher
	if watch && cfg.Watch {
		watcher, err = loader.NewWatcher(cfg.WatchDebounce, logger)
		if err != nil {
			_ = closeLog()
			return nil, err
		}
		srcOpts = append(srcOpts, loader.WithWatcher(watcher))
	}
	src := loader.NewSource(srcOpts...)

	a.RegisterHook(app.HookWillExpand, func(ctx context.Context, data any) (any, error) {
		ev := data.(app.WillExpandEvent)
		src.WillExpand(ev.Node, ev.Expand)
		return data, nil
	})
	a.RegisterHook(app.HookRender, func(ctx context.Context, data any) (any, error) {
		ev := data.(app.RenderEvent)
		src.Render(ev.Node, ev.Cell)
		return data, nil
	})

	tree := a.NewTreeView(
		components.WithTitle(dir),
		components.WithDescribe(src.Describe),
	)
	s := &session{app: a, tree: tree, source: src, watcher: watcher, close: closeLog}
	if err := src.Mount(tree.RootNode(), dir); err != nil {
		_ = s.Close()
		return nil, err
	}
	logger.Info("mounted", "dir", dir, "rows", tree.NumRows())
	return s, nil
}

// Close releases the watcher and the log file.
func (s *session) Close() error {
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
	return s.close()
}

// tuiModel wraps the ExplorerView for bubbletea
type tuiModel struct {
	view *views.ExplorerView
}

func (m tuiModel) Init() tea.Cmd {
	return m.view.Init()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.view.Update(msg)
	m.view = updated.(*views.ExplorerView)
	return m, cmd
}

func (m tuiModel) View() string {
	return m.view.View()
}

// NewExplorer loads dir and returns an explorer view over it, plus a func
// that stops the view and releases the session.
func NewExplorer(cfg app.Config, dir string, watch bool) (*views.ExplorerView, func() error, error) {
	s, err := newSession(cfg, dir, watch)
	if err != nil {
		return nil, nil, err
	}
	root, _ := loader.EntryOf(s.tree.RootNode())
	v := views.NewExplorerView(root.Path, s.tree, s.source, s.watcher)
	return v, func() error {
		v.Stop()
		return s.Close()
	}, nil
}

// runTUI starts the TUI application
func runTUI(opts *options, dir string) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	view, closeView, err := NewExplorer(cfg, dir, true)
	if err != nil {
		return err
	}
	defer closeView()

	p := tea.NewProgram(tuiModel{view: view}, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		return err
	}
	return nil
}

// expandAll expands folders down to depth levels below the root; a negative
// depth expands everything.
func expandAll(root *core.TreeNode, depth int) {
	var walk func(n *core.TreeNode)
	walk = func(n *core.TreeNode) {
		if depth >= 0 && n.Level() >= depth {
			return
		}
		for _, child := range n.Children() {
			if child.IsFolder() {
				child.SetExpanded(true)
				walk(child)
			}
		}
	}
	walk(root)
}
