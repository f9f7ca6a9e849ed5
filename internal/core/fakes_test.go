package core

import (
	"errors"
	"fmt"

	"github.com/artpar/celltree/internal/event"
)

// fakeTree records every notification it receives.
type fakeTree struct {
	root        *TreeNode
	indent      int
	defaultItem string
	poolErr     error
	poolCalls   []string
	willExpand  []*TreeNode
	hookSet     bool
	statusInEvt *bool
	calls       []string
}

func newFakeTree() *fakeTree {
	ft := &fakeTree{indent: 10, defaultItem: "ui://item"}
	ft.root = NewRootNode(ft)
	return ft
}

func (f *fakeTree) RootNode() *TreeNode { return f.root }
func (f *fakeTree) Indent() int         { return f.indent }
func (f *fakeTree) DefaultItem() string { return f.defaultItem }

func (f *fakeTree) GetFromPool(url string) (Cell, error) {
	f.poolCalls = append(f.poolCalls, url)
	if f.poolErr != nil {
		return nil, f.poolErr
	}
	return newFakeCell(true), nil
}

func (f *fakeTree) record(kind string, n *TreeNode) {
	f.calls = append(f.calls, fmt.Sprintf("%s:%v", kind, n.Data()))
}

func (f *fakeTree) AfterInserted(n *TreeNode)  { f.record("inserted", n) }
func (f *fakeTree) AfterRemoved(n *TreeNode)   { f.record("removed", n) }
func (f *fakeTree) AfterMoved(n *TreeNode)     { f.record("moved", n) }
func (f *fakeTree) AfterExpanded(n *TreeNode)  { f.record("expanded", n) }
func (f *fakeTree) AfterCollapsed(n *TreeNode) { f.record("collapsed", n) }

func (f *fakeTree) TreeNodeWillExpand() WillExpandFunc {
	if !f.hookSet {
		return nil
	}
	return func(n *TreeNode, _ bool) {
		f.willExpand = append(f.willExpand, n)
	}
}

func (f *fakeTree) SetExpandedStatusInEvt(expanded bool) {
	f.statusInEvt = &expanded
}

func (f *fakeTree) reset() {
	f.calls = nil
	f.poolCalls = nil
	f.willExpand = nil
}

type fakeObject struct {
	name     string
	width    float64
	attached bool
	events   event.Dispatcher
}

func (o *fakeObject) Name() string              { return o.name }
func (o *fakeObject) Width() float64            { return o.width }
func (o *fakeObject) SetWidth(w float64)        { o.width = w }
func (o *fakeObject) Attached() bool            { return o.attached }
func (o *fakeObject) Events() *event.Dispatcher { return &o.events }

type fakeController struct {
	name     string
	selected int
	events   event.Dispatcher
}

func (c *fakeController) Name() string              { return c.name }
func (c *fakeController) SelectedIndex() int        { return c.selected }
func (c *fakeController) Events() *event.Dispatcher { return &c.events }

func (c *fakeController) SetSelectedIndex(i int) {
	if c.selected == i {
		return
	}
	c.selected = i
	c.events.Emit(event.New(event.StatusChanged, c))
}

// fakeCell has every optional part unless stripped.
type fakeCell struct {
	fakeObject
	text, icon string
	node       *TreeNode
	children   map[string]*fakeObject
	ctrls      map[string]*fakeController
}

func newFakeCell(full bool) *fakeCell {
	c := &fakeCell{
		fakeObject: fakeObject{name: "cell"},
		children:   map[string]*fakeObject{},
		ctrls:      map[string]*fakeController{},
	}
	if full {
		c.children[ChildIndent] = &fakeObject{name: ChildIndent}
		c.children[ChildExpandButton] = &fakeObject{name: ChildExpandButton}
		c.ctrls[ControllerExpanded] = &fakeController{name: ControllerExpanded}
		c.ctrls[ControllerLeaf] = &fakeController{name: ControllerLeaf}
	}
	return c
}

func (c *fakeCell) Text() string            { return c.text }
func (c *fakeCell) SetText(t string)        { c.text = t }
func (c *fakeCell) Icon() string            { return c.icon }
func (c *fakeCell) SetIcon(i string)        { c.icon = i }
func (c *fakeCell) TreeNode() *TreeNode     { return c.node }
func (c *fakeCell) SetTreeNode(n *TreeNode) { c.node = n }

func (c *fakeCell) Child(name string) (Object, bool) {
	o, ok := c.children[name]
	if !ok {
		return nil, false
	}
	return o, true
}

func (c *fakeCell) Controller(name string) (Controller, bool) {
	cc, ok := c.ctrls[name]
	if !ok {
		return nil, false
	}
	return cc, true
}

func (c *fakeCell) expandedCtrl() *fakeController { return c.ctrls[ControllerExpanded] }
func (c *fakeCell) leafCtrl() *fakeController     { return c.ctrls[ControllerLeaf] }
func (c *fakeCell) button() *fakeObject           { return c.children[ChildExpandButton] }
func (c *fakeCell) indent() *fakeObject           { return c.children[ChildIndent] }

// listenerCount is the number of listeners a node can have wired on c.
func (c *fakeCell) listenerCount() int {
	n := c.events.Count(event.PointerDown)
	if cc := c.expandedCtrl(); cc != nil {
		n += cc.events.Count(event.StatusChanged)
	}
	if b := c.button(); b != nil {
		n += b.events.Count(event.Click)
	}
	return n
}

var errPoolEmpty = errors.New("pool empty")

func named(name string, opts ...NodeOption) *TreeNode {
	return NewTreeNode(append(opts, WithData(name))...)
}
