package core

import (
	"fmt"

	"github.com/artpar/celltree/internal/event"
)

// CreateCell binds a cell taken from the tree's pool. It does nothing when a
// cell is already bound.
func (n *TreeNode) CreateCell() error {
	if n.cell != nil {
		return nil
	}
	if n.tree == nil {
		return fmt.Errorf("create cell: %w", ErrDetached)
	}

	url := n.resourceURL
	if url == "" {
		url = n.tree.DefaultItem()
	}
	cell, err := n.tree.GetFromPool(url)
	if err != nil {
		return fmt.Errorf("create cell %q: %w: %w", url, ErrCellUnavailable, err)
	}
	if cell == nil {
		return fmt.Errorf("create cell %q: %w", url, ErrCellUnavailable)
	}

	n.SetCell(cell)
	n.cellFromPool = true
	return nil
}

// SetCell binds cell to the node, fully unwiring any previous cell first.
// A cell still bound to another node is taken from it, leaving that node
// unbound. Passing nil leaves the node unbound.
func (n *TreeNode) SetCell(cell Cell) {
	if n.cell != nil {
		n.unbindCell()
	}
	if cell != nil {
		if prev := cell.TreeNode(); prev != nil && prev != n {
			prev.SetCell(nil)
		}
	}

	n.cell = cell
	n.cellFromPool = false
	if cell == nil {
		return
	}

	cell.SetTreeNode(n)

	if obj, ok := cell.Child(ChildIndent); ok {
		n.indentObj = obj
		if n.tree != nil {
			obj.SetWidth(indentWidth(n.indentLevel, n.tree.Indent()))
		}
	}

	if cc, ok := cell.Controller(ControllerExpanded); ok {
		off := cc.Events().On(event.StatusChanged, func(*event.Event) {
			n.SetExpanded(cc.SelectedIndex() == 1)
		})
		n.unbind = append(n.unbind, off)
		cc.SetSelectedIndex(boolIndex(n.expanded))
	}

	if btn, ok := cell.Child(ChildExpandButton); ok {
		// a toggle click must not also select the row
		off := btn.Events().On(event.Click, func(evt *event.Event) {
			evt.StopPropagation()
		})
		n.unbind = append(n.unbind, off)
	}

	if lc, ok := cell.Controller(ControllerLeaf); ok {
		n.leafCtrl = lc
		n.syncLeafController()
	}

	off := cell.Events().On(event.PointerDown, func(*event.Event) {
		if n.tree != nil && n.IsFolder() {
			n.tree.SetExpandedStatusInEvt(n.expanded)
		}
	})
	n.unbind = append(n.unbind, off)
}

func (n *TreeNode) unbindCell() {
	if n.cell.TreeNode() == n {
		n.cell.SetTreeNode(nil)
	}
	for _, off := range n.unbind {
		off()
	}
	n.unbind = nil
	n.indentObj = nil
	n.leafCtrl = nil
	n.cell = nil
	n.cellFromPool = false
}

func (n *TreeNode) syncLeafController() {
	if n.leafCtrl == nil {
		return
	}
	if n.IsFolder() {
		n.leafCtrl.SetSelectedIndex(0)
	} else {
		n.leafCtrl.SetSelectedIndex(1)
	}
}

// Text returns the bound cell's text, or "" when unbound.
func (n *TreeNode) Text() string {
	if n.cell == nil {
		return ""
	}
	return n.cell.Text()
}

// SetText sets the bound cell's text; it is dropped when unbound.
func (n *TreeNode) SetText(text string) {
	if n.cell != nil {
		n.cell.SetText(text)
	}
}

// Icon returns the bound cell's icon, or "" when unbound.
func (n *TreeNode) Icon() string {
	if n.cell == nil {
		return ""
	}
	return n.cell.Icon()
}

// SetIcon sets the bound cell's icon; it is dropped when unbound.
func (n *TreeNode) SetIcon(icon string) {
	if n.cell != nil {
		n.cell.SetIcon(icon)
	}
}
