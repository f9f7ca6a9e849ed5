package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/artpar/celltree/internal/core"
	"github.com/artpar/celltree/internal/tui/components"
	"github.com/artpar/celltree/internal/widget"
)

// Hook names.
const (
	// HookWillExpand receives a WillExpandEvent before a folder is shown or hidden.
	HookWillExpand = "tree.will_expand"
	// HookRender receives a RenderEvent after a cell is filled.
	HookRender = "tree.render"
)

// WillExpandEvent is the data passed to HookWillExpand handlers.
type WillExpandEvent struct {
	Node   *core.TreeNode
	Expand bool
}

// RenderEvent is the data passed to HookRender handlers.
type RenderEvent struct {
	Node *core.TreeNode
	Cell core.Cell
}

// HookHandler is a function that handles a hook event.
type HookHandler func(ctx context.Context, data any) (any, error)

// App is the main application container with dependency injection.
type App struct {
	config Config
	logger *slog.Logger
	hooks  map[string][]HookHandler
}

// Option is a function that configures the App.
type Option func(*App)

// New creates a new App with the given options.
func New(opts ...Option) *App {
	app := &App{
		config: DefaultConfig(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		hooks:  make(map[string][]HookHandler),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// WithConfig sets the application configuration.
func WithConfig(cfg Config) Option {
	return func(a *App) {
		a.config = cfg
	}
}

// WithLogger sets the application logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// Config returns the application configuration.
func (a *App) Config() Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// NewPool builds a cell pool from the configured templates.
func (a *App) NewPool() *widget.Pool {
	return widget.NewPool(a.config.Templates, a.config.PoolLimit)
}

// NewTreeView builds a tree view from the configuration. Will-expand and
// render go through the hook registry; extra options are applied last.
func (a *App) NewTreeView(opts ...components.TreeViewOption) *components.TreeView {
	base := []components.TreeViewOption{
		components.WithIndent(a.config.Indent),
		components.WithDefaultItem(a.config.DefaultItem),
		components.WithClickToExpand(components.ClickMode(a.config.ClickToExpand)),
		components.WithTreeLogger(a.logger),
		components.WithWillExpand(a.willExpand),
		components.WithRender(a.render),
	}
	return components.NewTreeView(a.NewPool(), append(base, opts...)...)
}

func (a *App) willExpand(node *core.TreeNode, expand bool) {
	ev := WillExpandEvent{Node: node, Expand: expand}
	if _, err := a.ExecuteHooks(context.Background(), HookWillExpand, ev); err != nil {
		a.logger.Error("will-expand hook failed", "node", node.Data(), "error", err)
	}
}

func (a *App) render(node *core.TreeNode, cell core.Cell) {
	if len(a.hooks[HookRender]) == 0 {
		cell.SetText(defaultText(node))
		return
	}
	ev := RenderEvent{Node: node, Cell: cell}
	if _, err := a.ExecuteHooks(context.Background(), HookRender, ev); err != nil {
		a.logger.Error("render hook failed", "node", node.Data(), "error", err)
	}
}

func defaultText(node *core.TreeNode) string {
	return fmt.Sprint(node.Data())
}

// RegisterHook registers a hook handler for the given hook name.
func (a *App) RegisterHook(hook string, handler HookHandler) {
	if a.hooks[hook] == nil {
		a.hooks[hook] = make([]HookHandler, 0)
	}
	a.hooks[hook] = append(a.hooks[hook], handler)
}

// GetHooks returns all handlers for the given hook.
func (a *App) GetHooks(hook string) []HookHandler {
	return a.hooks[hook]
}

// ExecuteHooks executes all handlers for the given hook in order.
func (a *App) ExecuteHooks(ctx context.Context, hook string, data any) (any, error) {
	handlers := a.hooks[hook]
	result := data

	for _, handler := range handlers {
		var err error
		result, err = handler(ctx, result)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}
