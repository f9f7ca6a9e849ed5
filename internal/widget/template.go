package widget

import "github.com/artpar/celltree/internal/core"

// Template describes how to build a cell for one resource URL.
type Template struct {
	// Indent adds an indent placeholder sized by the node's depth.
	Indent bool `yaml:"indent"`
	// Expandable adds the "expanded" controller.
	Expandable bool `yaml:"expandable"`
	// ExpandButton adds a button that flips the "expanded" controller.
	// Ignored unless Expandable is set.
	ExpandButton bool `yaml:"expand_button"`
	// LeafController adds the "leaf" controller with pages folder and leaf.
	LeafController bool `yaml:"leaf_controller"`
	// Icon is the initial icon of a built cell.
	Icon string `yaml:"icon"`
}

// DefaultTemplate has every optional part.
func DefaultTemplate() Template {
	return Template{
		Indent:         true,
		Expandable:     true,
		ExpandButton:   true,
		LeafController: true,
	}
}

// Build creates a component for url from the template.
func (t Template) Build(url string) *Component {
	c := NewComponent(url)
	c.url = url
	c.icon = t.Icon
	c.builtIcon = t.Icon

	if t.Indent {
		c.appendNew(NewObject(core.ChildIndent))
	}
	if t.Expandable {
		expanded := NewController(core.ControllerExpanded, "collapsed", "expanded")
		c.AddController(expanded)
		if t.ExpandButton {
			c.appendNew(NewButton(core.ChildExpandButton, expanded))
		}
	}
	if t.LeafController {
		c.AddController(NewController(core.ControllerLeaf, "folder", "leaf"))
	}
	return c
}
