package core

// TreeNode is one node of a tree view. Nodes form the logical tree through
// their ordered children; a tree view owns the root and realizes visible
// nodes as pooled cells.
type TreeNode struct {
	data        any
	parent      *TreeNode
	children    []*TreeNode
	expanded    bool
	level       int
	indentLevel int
	extraIndent int
	resourceURL string
	folder      bool
	tree        Tree

	cell         Cell
	cellFromPool bool
	indentObj    Object
	leafCtrl     Controller
	unbind       []func()
}

// NodeOption configures a TreeNode at construction.
type NodeOption func(*TreeNode)

// WithFolder marks the node as a folder even while it has no children.
func WithFolder(folder bool) NodeOption {
	return func(n *TreeNode) {
		n.folder = folder
	}
}

// WithResource overrides the tree's default item for this node's cell.
func WithResource(url string) NodeOption {
	return func(n *TreeNode) {
		n.resourceURL = url
	}
}

// WithExtraIndent adds extra indent levels to the node and, through
// inheritance, to its descendants.
func WithExtraIndent(levels int) NodeOption {
	return func(n *TreeNode) {
		n.extraIndent = levels
	}
}

// WithData sets the node payload.
func WithData(data any) NodeOption {
	return func(n *TreeNode) {
		n.data = data
	}
}

// NewTreeNode creates a detached node.
func NewTreeNode(opts ...NodeOption) *TreeNode {
	n := &TreeNode{}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NewRootNode creates the expanded folder root owned by tree.
func NewRootNode(tree Tree, opts ...NodeOption) *TreeNode {
	n := NewTreeNode(append([]NodeOption{WithFolder(true)}, opts...)...)
	n.setTree(tree)
	n.SetExpanded(true)
	return n
}

func (n *TreeNode) Data() any           { return n.data }
func (n *TreeNode) SetData(data any)    { n.data = data }
func (n *TreeNode) Parent() *TreeNode   { return n.parent }
func (n *TreeNode) Tree() Tree          { return n.tree }
func (n *TreeNode) Level() int          { return n.level }
func (n *TreeNode) IndentLevel() int    { return n.indentLevel }
func (n *TreeNode) ExtraIndent() int    { return n.extraIndent }
func (n *TreeNode) ResourceURL() string { return n.resourceURL }
func (n *TreeNode) Expanded() bool      { return n.expanded }
func (n *TreeNode) Cell() Cell          { return n.cell }
func (n *TreeNode) CellFromPool() bool  { return n.cellFromPool }
func (n *TreeNode) NumChildren() int    { return len(n.children) }

// IsFolder reports whether the node is flagged as a folder or has children.
func (n *TreeNode) IsFolder() bool {
	return n.folder || len(n.children) > 0
}

// SetFolder sets the explicit folder flag.
func (n *TreeNode) SetFolder(folder bool) {
	if n.folder == folder {
		return
	}
	n.folder = folder
	n.syncLeafController()
}

// IsRoot reports whether the node is its tree's root.
func (n *TreeNode) IsRoot() bool {
	return n.tree != nil && n.tree.RootNode() == n
}

// Root returns the top-most ancestor, which is n itself when rootless.
func (n *TreeNode) Root() *TreeNode {
	p := n
	for p.parent != nil {
		p = p.parent
	}
	return p
}

// SetExpanded shows or hides the node's children.
// The owning tree is told only when the change is visible: the node must be a
// folder and either the root or backed by an attached cell.
func (n *TreeNode) SetExpanded(expanded bool) {
	if n.expanded == expanded {
		return
	}
	n.expanded = expanded

	if n.tree != nil && n.IsFolder() && (n.IsRoot() || n.cellAttached()) {
		if expanded {
			n.tree.AfterExpanded(n)
		} else {
			n.tree.AfterCollapsed(n)
		}
	}

	if n.cell != nil {
		if cc, ok := n.cell.Controller(ControllerExpanded); ok {
			cc.SetSelectedIndex(boolIndex(n.expanded))
		}
	}
}

// ExpandToRoot expands the node and every ancestor, bottom-up.
func (n *TreeNode) ExpandToRoot() {
	for p := n; p != nil; p = p.parent {
		p.SetExpanded(true)
	}
}

func (n *TreeNode) cellAttached() bool {
	return n.cell != nil && n.cell.Attached()
}

// notifiable reports whether structural changes under n must reach the tree.
func (n *TreeNode) notifiable() bool {
	if n.tree == nil {
		return false
	}
	return n.IsRoot() || n.cellAttached() && n.expanded
}

// setTree propagates the tree reference through the subtree, refreshing
// levels, indent widths and will-expand hooks on the way down.
func (n *TreeNode) setTree(tree Tree) {
	n.tree = tree

	if tree != nil && n.indentObj != nil {
		n.indentObj.SetWidth(indentWidth(n.indentLevel, tree.Indent()))
	}

	if tree != nil && n.expanded {
		if hook := tree.TreeNodeWillExpand(); hook != nil {
			hook(n, true)
		}
	}

	for _, child := range n.children {
		n.adopt(child)
		child.setTree(tree)
	}
}

// adopt recomputes child's depth bookkeeping relative to n.
func (n *TreeNode) adopt(child *TreeNode) {
	child.level = n.level + 1
	child.indentLevel = n.indentLevel + 1 + child.extraIndent
}

// Walk visits n and its descendants in pre-order until fn returns false.
func (n *TreeNode) Walk(fn func(node *TreeNode) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range n.children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

func indentWidth(indentLevel, indent int) float64 {
	return float64(max(indentLevel-1, 0) * indent)
}

func boolIndex(b bool) int {
	if b {
		return 1
	}
	return 0
}
