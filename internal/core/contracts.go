package core

import "github.com/artpar/celltree/internal/event"

// Names looked up on a bound cell. Every lookup is optional: a cell without
// the named part simply skips the corresponding behaviour.
const (
	ControllerExpanded = "expanded"
	ControllerLeaf     = "leaf"
	ChildIndent        = "indent"
	ChildExpandButton  = "expandButton"
)

// Object is the narrow view of a visual object the tree node touches.
type Object interface {
	Name() string
	Width() float64
	SetWidth(w float64)
	// Attached reports whether the object currently has a parent in the
	// display hierarchy.
	Attached() bool
	Events() *event.Dispatcher
}

// Controller is a named visual state switch on a cell.
// Changing the selected index emits event.StatusChanged.
type Controller interface {
	Name() string
	SelectedIndex() int
	SetSelectedIndex(index int)
	Events() *event.Dispatcher
}

// Cell is the pooled visual object representing one node.
type Cell interface {
	Object
	Text() string
	SetText(text string)
	Icon() string
	SetIcon(icon string)
	// Child looks up a named sub-object; ok is false when absent.
	Child(name string) (Object, bool)
	// Controller looks up a named controller; ok is false when absent.
	Controller(name string) (Controller, bool)
	TreeNode() *TreeNode
	SetTreeNode(node *TreeNode)
}

// WillExpandFunc is invoked before a node's children are shown (expand is
// true) or hidden (expand is false).
type WillExpandFunc func(node *TreeNode, expand bool)

// Tree is the owning tree view as seen by its nodes.
type Tree interface {
	RootNode() *TreeNode
	// Indent is the width of one indent level.
	Indent() int
	// DefaultItem is the resource used for nodes without an override.
	DefaultItem() string
	GetFromPool(url string) (Cell, error)

	AfterInserted(node *TreeNode)
	AfterRemoved(node *TreeNode)
	AfterMoved(node *TreeNode)
	AfterExpanded(node *TreeNode)
	AfterCollapsed(node *TreeNode)

	// TreeNodeWillExpand returns the will-expand hook, or nil when unset.
	TreeNodeWillExpand() WillExpandFunc
	// SetExpandedStatusInEvt records a folder's expanded state at pointer-down.
	SetExpandedStatusInEvt(expanded bool)
}
