package core

import (
	"fmt"
	"slices"
)

// AddChild appends child; see AddChildAt.
func (n *TreeNode) AddChild(child *TreeNode) (*TreeNode, error) {
	return n.AddChildAt(child, len(n.children))
}

// AddChildAt inserts child at index, which must lie in [0, NumChildren()].
// A node that is already a child is moved instead. A node owned by another
// parent is removed from there first.
func (n *TreeNode) AddChildAt(child *TreeNode, index int) (*TreeNode, error) {
	if child == nil {
		return nil, fmt.Errorf("add child: %w", ErrNilNode)
	}
	count := len(n.children)
	if index < 0 || index > count {
		return nil, fmt.Errorf("add child: %w: %d not in [0, %d]", ErrInvalidIndex, index, count)
	}

	if child.parent == n {
		if err := n.SetChildIndex(child, index); err != nil {
			return nil, err
		}
		return child, nil
	}

	for p := n; p != nil; p = p.parent {
		if p == child {
			return nil, fmt.Errorf("add child: %w", ErrCycle)
		}
	}

	if child.parent != nil {
		child.parent.RemoveChild(child)
	}

	n.children = slices.Insert(n.children, index, child)

	if n.leafCtrl != nil && n.IsFolder() {
		n.leafCtrl.SetSelectedIndex(0)
	}

	child.parent = n
	n.adopt(child)
	child.setTree(n.tree)
	if n.notifiable() {
		n.tree.AfterInserted(child)
	}
	return child, nil
}

// RemoveChild removes child and returns it. Removing a node that is not a
// child is a no-op that still returns the argument.
func (n *TreeNode) RemoveChild(child *TreeNode) *TreeNode {
	if i := n.ChildIndex(child); i != -1 {
		_, _ = n.RemoveChildAt(i)
	}
	return child
}

// RemoveChildAt removes and returns the child at index.
func (n *TreeNode) RemoveChildAt(index int) (*TreeNode, error) {
	count := len(n.children)
	if index < 0 || index >= count {
		return nil, fmt.Errorf("remove child: %w: %d not in [0, %d)", ErrInvalidIndex, index, count)
	}

	child := n.children[index]
	n.children = slices.Delete(n.children, index, index+1)

	if n.leafCtrl != nil && !n.IsFolder() {
		n.leafCtrl.SetSelectedIndex(1)
	}

	child.parent = nil
	if n.tree != nil {
		tree := n.tree
		child.setTree(nil)
		tree.AfterRemoved(child)
	}
	return child, nil
}

// RemoveChildren removes every child.
func (n *TreeNode) RemoveChildren() {
	for len(n.children) > 0 {
		_, _ = n.RemoveChildAt(0)
	}
}

// RemoveChildrenRange removes the inclusive range [begin, end]. A negative or
// too large end means the last index. Removal repeats at begin, so each
// removal shifts the remaining children down.
func (n *TreeNode) RemoveChildrenRange(begin, end int) error {
	if end < 0 || end >= len(n.children) {
		end = len(n.children) - 1
	}
	for i := begin; i <= end; i++ {
		if _, err := n.RemoveChildAt(begin); err != nil {
			return err
		}
	}
	return nil
}

// ChildAt returns the child at index.
func (n *TreeNode) ChildAt(index int) (*TreeNode, error) {
	if index < 0 || index >= len(n.children) {
		return nil, fmt.Errorf("child at: %w: %d not in [0, %d)", ErrInvalidIndex, index, len(n.children))
	}
	return n.children[index], nil
}

// ChildIndex returns the position of child, or -1.
func (n *TreeNode) ChildIndex(child *TreeNode) int {
	return slices.Index(n.children, child)
}

// Children returns a copy of the ordered children.
func (n *TreeNode) Children() []*TreeNode {
	return slices.Clone(n.children)
}

// PrevSibling returns the sibling before n, or nil.
func (n *TreeNode) PrevSibling() *TreeNode {
	if n.parent == nil {
		return nil
	}
	i := n.parent.ChildIndex(n)
	if i <= 0 {
		return nil
	}
	return n.parent.children[i-1]
}

// NextSibling returns the sibling after n, or nil.
func (n *TreeNode) NextSibling() *TreeNode {
	if n.parent == nil {
		return nil
	}
	siblings := n.parent.children
	i := n.parent.ChildIndex(n)
	if i < 0 || i >= len(siblings)-1 {
		return nil
	}
	return siblings[i+1]
}

// SetChildIndex moves child to index, clamped to [0, NumChildren()].
func (n *TreeNode) SetChildIndex(child *TreeNode, index int) error {
	old := n.ChildIndex(child)
	if old == -1 {
		return fmt.Errorf("set child index: %w", ErrNotChild)
	}

	index = max(0, min(index, len(n.children)))
	if old == index {
		return nil
	}

	n.children = slices.Delete(n.children, old, old+1)
	n.children = slices.Insert(n.children, min(index, len(n.children)), child)
	if n.notifiable() {
		n.tree.AfterMoved(child)
	}
	return nil
}

// SwapChildren exchanges the positions of two children.
func (n *TreeNode) SwapChildren(a, b *TreeNode) error {
	i, j := n.ChildIndex(a), n.ChildIndex(b)
	if i == -1 || j == -1 {
		return fmt.Errorf("swap children: %w", ErrNotChild)
	}
	return n.SwapChildrenAt(i, j)
}

// SwapChildrenAt exchanges the children at i and j.
func (n *TreeNode) SwapChildrenAt(i, j int) error {
	count := len(n.children)
	if i < 0 || i >= count || j < 0 || j >= count {
		return fmt.Errorf("swap children: %w: (%d, %d) not in [0, %d)", ErrInvalidIndex, i, j, count)
	}
	a, b := n.children[i], n.children[j]
	if err := n.SetChildIndex(a, j); err != nil {
		return err
	}
	return n.SetChildIndex(b, i)
}
