// Package widget provides the visual objects tree cells are built from:
// plain objects, buttons, state controllers and components, plus a pool that
// recycles components by resource URL.
package widget

import (
	"github.com/artpar/celltree/internal/event"
	"github.com/google/uuid"
)

// Displayable is anything a Component can hold as a child.
type Displayable interface {
	ID() string
	Name() string
	Width() float64
	SetWidth(w float64)
	Attached() bool
	Parent() *Component
	Events() *event.Dispatcher
	EventParent() event.Target

	base() *Object
}

// Object is the base of every visual object.
type Object struct {
	id     string
	name   string
	width  float64
	parent *Component
	events *event.Dispatcher
}

func newObject(name string, owner any) Object {
	return Object{
		id:     uuid.New().String(),
		name:   name,
		events: event.NewDispatcher(owner),
	}
}

// NewObject creates a plain named object, such as an indent placeholder.
func NewObject(name string) *Object {
	o := &Object{}
	*o = newObject(name, o)
	return o
}

func (o *Object) ID() string                { return o.id }
func (o *Object) Name() string              { return o.name }
func (o *Object) Width() float64            { return o.width }
func (o *Object) SetWidth(w float64)        { o.width = w }
func (o *Object) Parent() *Component        { return o.parent }
func (o *Object) Attached() bool            { return o.parent != nil }
func (o *Object) Events() *event.Dispatcher { return o.events }
func (o *Object) base() *Object             { return o }

// EventParent returns the parent component for event bubbling.
func (o *Object) EventParent() event.Target {
	if o.parent == nil {
		return nil
	}
	return o.parent
}

// Button is a clickable object. A button related to a controller acts as a
// check button: each click flips the controller between its first two pages.
type Button struct {
	Object
	related *Controller
}

// NewButton creates a button, optionally related to a controller.
func NewButton(name string, related *Controller) *Button {
	b := &Button{related: related}
	b.Object = newObject(name, b)
	b.events.On(event.Click, func(*event.Event) {
		if b.related != nil {
			b.related.SetSelectedIndex(1 - min(b.related.SelectedIndex(), 1))
		}
	})
	return b
}

// Related returns the controller the button flips, or nil.
func (b *Button) Related() *Controller {
	return b.related
}

// Controller is a named state switch over a list of pages.
type Controller struct {
	name     string
	pages    []string
	selected int
	events   *event.Dispatcher
}

// NewController creates a controller with the given pages, selecting the first.
func NewController(name string, pages ...string) *Controller {
	c := &Controller{name: name, pages: pages}
	c.events = event.NewDispatcher(c)
	return c
}

func (c *Controller) Name() string              { return c.name }
func (c *Controller) SelectedIndex() int        { return c.selected }
func (c *Controller) Events() *event.Dispatcher { return c.events }
func (c *Controller) PageCount() int            { return len(c.pages) }

// SelectedPage returns the name of the selected page, or "" without pages.
func (c *Controller) SelectedPage() string {
	if c.selected < len(c.pages) {
		return c.pages[c.selected]
	}
	return ""
}

// SetSelectedIndex selects a page. Out of range indexes are ignored; a change
// emits event.StatusChanged.
func (c *Controller) SetSelectedIndex(index int) {
	if index < 0 || index >= len(c.pages) || index == c.selected {
		return
	}
	c.selected = index
	c.events.Emit(event.New(event.StatusChanged, c))
}
