package components

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/artpar/celltree/internal/core"
	"github.com/artpar/celltree/internal/event"
	"github.com/artpar/celltree/internal/widget"
)

// ClickMode controls whether clicking a folder row toggles it.
type ClickMode int

const (
	ClickNone ClickMode = iota
	ClickSingle
	ClickDouble
)

// RenderFunc fills a cell for a node. It runs whenever a cell is shown for
// the node and after each expand or collapse.
type RenderFunc func(node *core.TreeNode, cell core.Cell)

// TreeViewOption configures a TreeView.
type TreeViewOption func(*TreeView)

// WithIndent sets the width of one indent level, in columns.
func WithIndent(indent int) TreeViewOption {
	return func(t *TreeView) { t.indent = indent }
}

// WithDefaultItem sets the resource used for nodes without an override.
func WithDefaultItem(url string) TreeViewOption {
	return func(t *TreeView) { t.defaultItem = url }
}

// WithClickToExpand sets the folder toggle mode for row clicks.
func WithClickToExpand(mode ClickMode) TreeViewOption {
	return func(t *TreeView) { t.clickToExpand = mode }
}

// WithWillExpand sets the hook called before a folder is shown or hidden.
func WithWillExpand(fn core.WillExpandFunc) TreeViewOption {
	return func(t *TreeView) { t.willExpand = fn }
}

// WithRender sets the cell render hook.
func WithRender(fn RenderFunc) TreeViewOption {
	return func(t *TreeView) { t.render = fn }
}

// WithDescribe sets how a node is turned into text for yanking.
func WithDescribe(fn func(*core.TreeNode) string) TreeViewOption {
	return func(t *TreeView) { t.describe = fn }
}

// WithTreeLogger sets the logger.
func WithTreeLogger(logger *slog.Logger) TreeViewOption {
	return func(t *TreeView) { t.logger = logger }
}

// WithTitle sets the panel title.
func WithTitle(title string) TreeViewOption {
	return func(t *TreeView) { t.title = title }
}

// TreeView owns a root node and shows the visible part of its subtree as a
// flat list of pooled cells.
type TreeView struct {
	title   string
	focused bool
	width   int
	height  int
	cursor  int
	offset  int
	status  string
	keys    KeyMap

	root          *core.TreeNode
	pool          *widget.Pool
	list          *widget.Component
	indent        int
	defaultItem   string
	clickToExpand ClickMode
	willExpand    core.WillExpandFunc
	render        RenderFunc
	describe      func(*core.TreeNode) string
	logger        *slog.Logger

	expandedStatusInEvt bool
	rowClicks           map[string]func()
	clicked             []*core.TreeNode
}

var _ core.Tree = (*TreeView)(nil)

// NewTreeView creates a tree view drawing its cells from pool.
func NewTreeView(pool *widget.Pool, opts ...TreeViewOption) *TreeView {
	t := &TreeView{
		title:       "Tree",
		keys:        DefaultKeyMap(),
		pool:        pool,
		list:        widget.NewComponent("list"),
		indent:      2,
		defaultItem: "ui://item",
		rowClicks:   make(map[string]func()),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.root = core.NewRootNode(t)
	return t
}

// RootNode returns the tree's root.
func (t *TreeView) RootNode() *core.TreeNode { return t.root }

// Indent returns the width of one indent level.
func (t *TreeView) Indent() int { return t.indent }

// DefaultItem returns the resource used for nodes without an override.
func (t *TreeView) DefaultItem() string { return t.defaultItem }

// ClickToExpand returns the folder toggle mode.
func (t *TreeView) ClickToExpand() ClickMode { return t.clickToExpand }

// SetClickToExpand changes the folder toggle mode.
func (t *TreeView) SetClickToExpand(mode ClickMode) { t.clickToExpand = mode }

// TreeNodeWillExpand returns the will-expand hook, or nil.
func (t *TreeView) TreeNodeWillExpand() core.WillExpandFunc { return t.willExpand }

// SetExpandedStatusInEvt records a folder's expanded state at pointer-down.
func (t *TreeView) SetExpandedStatusInEvt(expanded bool) { t.expandedStatusInEvt = expanded }

// GetFromPool takes a cell for url from the pool.
func (t *TreeView) GetFromPool(url string) (core.Cell, error) {
	c, err := t.pool.Get(url)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// NumRows returns the number of visible rows.
func (t *TreeView) NumRows() int { return t.list.NumChildren() }

// RowNode returns the node shown at row i, or nil.
func (t *TreeView) RowNode(i int) *core.TreeNode {
	if c := t.rowCell(i); c != nil {
		return c.TreeNode()
	}
	return nil
}

// RowIndex returns the row showing node, or -1.
func (t *TreeView) RowIndex(node *core.TreeNode) int {
	c, ok := node.Cell().(*widget.Component)
	if !ok || c.Parent() != t.list {
		return -1
	}
	return t.list.ChildIndex(c)
}

// VisibleNodes returns the nodes in display order.
func (t *TreeView) VisibleNodes() []*core.TreeNode {
	nodes := make([]*core.TreeNode, 0, t.list.NumChildren())
	for i := range t.list.NumChildren() {
		nodes = append(nodes, t.RowNode(i))
	}
	return nodes
}

// Clicked returns the nodes whose rows were clicked, oldest first.
func (t *TreeView) Clicked() []*core.TreeNode { return t.clicked }

func (t *TreeView) rowCell(i int) *widget.Component {
	c, _ := t.list.ChildAt(i).(*widget.Component)
	return c
}

// AfterInserted shows the cell of a node that became visible.
func (t *TreeView) AfterInserted(node *core.TreeNode) {
	if !t.ensureCell(node) {
		return
	}
	index := t.insertIndexForNode(node)
	t.attach(node, index)
	t.renderNode(node)
	if node.IsFolder() && node.Expanded() {
		t.checkChildren(node, index)
	}
	t.logger.Debug("node inserted", "node", node.Data(), "cell", node.Cell().(*widget.Component).ID(), "row", index)
	t.clampCursor()
}

// AfterRemoved releases the cells of a removed subtree.
func (t *TreeView) AfterRemoved(node *core.TreeNode) {
	t.removeNode(node)
	t.logger.Debug("node removed", "node", node.Data())
	t.clampCursor()
}

// AfterMoved moves the rows of node and its visible descendants as a block.
func (t *TreeView) AfterMoved(node *core.TreeNode) {
	cell, ok := node.Cell().(*widget.Component)
	if !ok || cell.Parent() != t.list {
		return
	}
	start := t.list.ChildIndex(cell)
	end := start + 1
	if node.IsFolder() {
		end = t.folderEndIndex(start, node.Level())
	}
	count := end - start

	// the block's own rows must not count while finding the destination
	block := make([]*widget.Component, 0, count)
	for range count {
		block = append(block, t.list.RemoveChildAt(start).(*widget.Component))
	}
	insert := t.insertIndexForNode(node)
	for i, c := range block {
		_ = t.list.AddChildAt(c, insert+i)
	}
	t.logger.Debug("node moved", "node", node.Data(), "from", start, "to", insert)
}

// AfterExpanded shows the children of an expanded folder.
func (t *TreeView) AfterExpanded(node *core.TreeNode) {
	if node == t.root {
		t.checkChildren(node, -1)
		return
	}
	if t.willExpand != nil {
		t.willExpand(node, true)
	}
	cell, ok := node.Cell().(*widget.Component)
	if !ok {
		return
	}
	t.renderNode(node)
	if cell.Parent() == t.list {
		t.checkChildren(node, t.list.ChildIndex(cell))
	}
	t.logger.Debug("node expanded", "node", node.Data())
}

// AfterCollapsed hides the rows below a collapsed folder.
func (t *TreeView) AfterCollapsed(node *core.TreeNode) {
	if node == t.root {
		t.hideFolderNode(node)
		t.clampCursor()
		return
	}
	if t.willExpand != nil {
		t.willExpand(node, false)
	}
	cell, ok := node.Cell().(*widget.Component)
	if !ok {
		return
	}
	t.renderNode(node)
	if cell.Parent() == t.list {
		t.hideFolderNode(node)
	}
	t.logger.Debug("node collapsed", "node", node.Data())
	t.clampCursor()
}

// insertIndexForNode returns the row a node's cell belongs at: after the
// block of its nearest shown previous sibling, or right after its parent.
func (t *TreeView) insertIndexForNode(node *core.TreeNode) int {
	index := 0
	if row := t.anchorRow(node); row >= 0 {
		index = row + 1
	}
	for ; index < t.list.NumChildren(); index++ {
		n := t.RowNode(index)
		if n == nil || n.Level() <= node.Level() {
			break
		}
	}
	return index
}

// anchorRow returns the row of the nearest previous sibling that is shown,
// else the parent's row, else -1. Siblings without a cell in the list are
// skipped.
func (t *TreeView) anchorRow(node *core.TreeNode) int {
	for prev := node.PrevSibling(); prev != nil; prev = prev.PrevSibling() {
		if row := t.RowIndex(prev); row >= 0 {
			return row
		}
	}
	if parent := node.Parent(); parent != nil {
		return t.RowIndex(parent)
	}
	return -1
}

// folderEndIndex returns the first row after start whose level is at most level.
func (t *TreeView) folderEndIndex(start, level int) int {
	for i := start + 1; i < t.list.NumChildren(); i++ {
		if n := t.RowNode(i); n == nil || n.Level() <= level {
			return i
		}
	}
	return t.list.NumChildren()
}

// checkChildren shows every child of folder below row index, recursing into
// expanded folders. It returns the last row used.
func (t *TreeView) checkChildren(folder *core.TreeNode, index int) int {
	for _, node := range folder.Children() {
		index++
		if !t.ensureCell(node) {
			index--
			continue
		}
		cell := node.Cell().(*widget.Component)
		if cell.Parent() == nil {
			t.attach(node, index)
			t.renderNode(node)
		}
		if node.IsFolder() && node.Expanded() {
			index = t.checkChildren(node, index)
		}
	}
	return index
}

// hideFolderNode detaches the cells below folder without releasing them.
func (t *TreeView) hideFolderNode(folder *core.TreeNode) {
	for _, node := range folder.Children() {
		if c, ok := node.Cell().(*widget.Component); ok {
			t.detach(c)
		}
		if node.IsFolder() && node.Expanded() {
			t.hideFolderNode(node)
		}
	}
}

// removeNode returns the cells of node's subtree to the pool.
func (t *TreeView) removeNode(node *core.TreeNode) {
	if c, ok := node.Cell().(*widget.Component); ok {
		t.detach(c)
		fromPool := node.CellFromPool()
		node.SetCell(nil)
		if fromPool {
			t.pool.Return(c)
			t.logger.Debug("cell recycled", "node", node.Data(), "cell", c.ID())
		}
	}
	for _, child := range node.Children() {
		t.removeNode(child)
	}
}

func (t *TreeView) ensureCell(node *core.TreeNode) bool {
	if node.Cell() != nil {
		if _, ok := node.Cell().(*widget.Component); ok {
			return true
		}
		t.logger.Error("cell is not a widget component", "node", node.Data())
		return false
	}
	if err := node.CreateCell(); err != nil {
		t.status = err.Error()
		t.logger.Error("failed to create cell", "node", node.Data(), "error", err)
		return false
	}
	return true
}

// attach places node's cell at row index and listens for row clicks.
func (t *TreeView) attach(node *core.TreeNode, index int) {
	c := node.Cell().(*widget.Component)
	index = max(0, min(index, t.list.NumChildren()))
	if err := t.list.AddChildAt(c, index); err != nil {
		t.logger.Error("failed to attach cell", "node", node.Data(), "cell", c.ID(), "error", err)
		return
	}
	if _, ok := t.rowClicks[c.ID()]; !ok {
		t.rowClicks[c.ID()] = c.Events().On(event.Click, func(evt *event.Event) {
			t.onRowClick(c, evt)
		})
	}
}

func (t *TreeView) detach(c *widget.Component) {
	if off, ok := t.rowClicks[c.ID()]; ok {
		off()
		delete(t.rowClicks, c.ID())
	}
	if c.Parent() == t.list {
		t.list.RemoveChild(c)
	}
}

func (t *TreeView) renderNode(node *core.TreeNode) {
	cell := node.Cell()
	if cell == nil {
		return
	}
	if t.render != nil {
		t.render(node, cell)
		return
	}
	cell.SetText(fmt.Sprint(node.Data()))
}

// onRowClick selects the row and, for folders, toggles them per the click
// mode. A folder whose state changed since pointer-down is left alone.
func (t *TreeView) onRowClick(c *widget.Component, evt *event.Event) {
	node := c.TreeNode()
	if node == nil {
		return
	}
	if t.clickToExpand != ClickNone && node.IsFolder() && t.expandedStatusInEvt == node.Expanded() {
		if t.clickToExpand == ClickSingle || evt.DoubleClick {
			node.SetExpanded(!node.Expanded())
		}
	}
	if i := t.RowIndex(node); i >= 0 {
		t.cursor = i
	}
	t.clicked = append(t.clicked, node)
}

// ClickRow simulates pointer-down and click on row i.
func (t *TreeView) ClickRow(i int) error {
	return t.clickRow(i, false)
}

// DoubleClickRow simulates the second click of a double click on row i.
func (t *TreeView) DoubleClickRow(i int) error {
	return t.clickRow(i, true)
}

func (t *TreeView) clickRow(i int, double bool) error {
	c := t.rowCell(i)
	if c == nil {
		return fmt.Errorf("click row: %w: %d not in [0, %d)", core.ErrInvalidIndex, i, t.NumRows())
	}
	event.Bubble(c, event.New(event.PointerDown, c))
	evt := event.New(event.Click, c)
	evt.DoubleClick = double
	event.Bubble(c, evt)
	return nil
}

// ClickExpandButton simulates pointer-down and click on row i's expand button.
func (t *TreeView) ClickExpandButton(i int) error {
	c := t.rowCell(i)
	if c == nil {
		return fmt.Errorf("click expand button: %w: %d not in [0, %d)", core.ErrInvalidIndex, i, t.NumRows())
	}
	obj, ok := c.Child(core.ChildExpandButton)
	if !ok {
		return fmt.Errorf("click expand button: row %d has no %s", i, core.ChildExpandButton)
	}
	btn := obj.(widget.Displayable)
	event.Bubble(btn, event.New(event.PointerDown, btn))
	event.Bubble(btn, event.New(event.Click, btn))
	return nil
}

func (t *TreeView) clampCursor() {
	t.cursor = MoveCursor(t.cursor, 0, t.NumRows())
}
