package widget

import (
	"fmt"
	"slices"

	"github.com/artpar/celltree/internal/core"
)

// Component is a container of ordered children and named controllers.
// A component built from a Template serves as a tree cell.
type Component struct {
	Object
	url         string
	text        string
	icon        string
	builtIcon   string
	children    []Displayable
	controllers []*Controller
	node        *core.TreeNode
}

var _ core.Cell = (*Component)(nil)

// NewComponent creates an empty component.
func NewComponent(name string) *Component {
	c := &Component{}
	c.Object = newObject(name, c)
	return c
}

// ResourceURL returns the resource the component was built from.
func (c *Component) ResourceURL() string { return c.url }

func (c *Component) Text() string        { return c.text }
func (c *Component) SetText(text string) { c.text = text }
func (c *Component) Icon() string        { return c.icon }
func (c *Component) SetIcon(icon string) { c.icon = icon }

func (c *Component) TreeNode() *core.TreeNode        { return c.node }
func (c *Component) SetTreeNode(node *core.TreeNode) { c.node = node }

// NumChildren returns the number of children.
func (c *Component) NumChildren() int { return len(c.children) }

// AddChild appends d, moving it from any previous parent.
func (c *Component) AddChild(d Displayable) error {
	return c.AddChildAt(d, len(c.children))
}

// appendNew appends a freshly built child that has no parent yet.
func (c *Component) appendNew(d Displayable) {
	c.children = append(c.children, d)
	d.base().parent = c
}

// AddChildAt inserts d at index. Re-adding an existing child moves it.
func (c *Component) AddChildAt(d Displayable, index int) error {
	if d.Parent() == c {
		return c.SetChildIndex(d, index)
	}
	if index < 0 || index > len(c.children) {
		return fmt.Errorf("add child %q: index %d not in [0, %d]", d.Name(), index, len(c.children))
	}
	if p := d.Parent(); p != nil {
		p.RemoveChild(d)
	}
	c.children = slices.Insert(c.children, index, d)
	d.base().parent = c
	return nil
}

// RemoveChild detaches d; it is a no-op when d is not a child.
func (c *Component) RemoveChild(d Displayable) {
	if i := c.ChildIndex(d); i >= 0 {
		c.RemoveChildAt(i)
	}
}

// RemoveChildAt detaches and returns the child at index, or nil when out of range.
func (c *Component) RemoveChildAt(index int) Displayable {
	if index < 0 || index >= len(c.children) {
		return nil
	}
	d := c.children[index]
	c.children = slices.Delete(c.children, index, index+1)
	d.base().parent = nil
	return d
}

// RemoveChildren detaches every child.
func (c *Component) RemoveChildren() {
	for _, d := range c.children {
		d.base().parent = nil
	}
	c.children = nil
}

// ChildAt returns the child at index, or nil when out of range.
func (c *Component) ChildAt(index int) Displayable {
	if index < 0 || index >= len(c.children) {
		return nil
	}
	return c.children[index]
}

// ChildIndex returns the position of d, or -1.
func (c *Component) ChildIndex(d Displayable) int {
	return slices.IndexFunc(c.children, func(x Displayable) bool { return x.base() == d.base() })
}

// SetChildIndex moves d to index, clamped to the valid range.
func (c *Component) SetChildIndex(d Displayable, index int) error {
	old := c.ChildIndex(d)
	if old < 0 {
		return fmt.Errorf("set child index %q: not a child of %q", d.Name(), c.Name())
	}
	index = max(0, min(index, len(c.children)-1))
	if index == old {
		return nil
	}
	c.children = slices.Delete(c.children, old, old+1)
	c.children = slices.Insert(c.children, index, d)
	return nil
}

// Children returns a copy of the children in order.
func (c *Component) Children() []Displayable {
	return slices.Clone(c.children)
}

// Child looks up a direct child by name.
func (c *Component) Child(name string) (core.Object, bool) {
	for _, d := range c.children {
		if d.Name() == name {
			return d, true
		}
	}
	return nil, false
}

// AddController registers a controller, replacing one with the same name.
func (c *Component) AddController(ctrl *Controller) {
	for i, x := range c.controllers {
		if x.Name() == ctrl.Name() {
			c.controllers[i] = ctrl
			return
		}
	}
	c.controllers = append(c.controllers, ctrl)
}

// Controller looks up a controller by name.
func (c *Component) Controller(name string) (core.Controller, bool) {
	if ctrl := c.controllerByName(name); ctrl != nil {
		return ctrl, true
	}
	return nil, false
}

func (c *Component) controllerByName(name string) *Controller {
	for _, x := range c.controllers {
		if x.Name() == name {
			return x
		}
	}
	return nil
}

// reset restores a pooled component to its built state.
func (c *Component) reset() {
	c.text = ""
	c.icon = c.builtIcon
	c.node = nil
	for _, ctrl := range c.controllers {
		ctrl.selected = 0
	}
	for _, d := range c.children {
		if d.Name() == core.ChildIndent {
			d.SetWidth(0)
		}
	}
}
