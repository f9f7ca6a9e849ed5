package widget

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownResource = errors.New("unknown resource")
	ErrExhausted       = errors.New("pool exhausted")
)

// Pool recycles components per resource URL.
type Pool struct {
	templates map[string]Template
	free      map[string][]*Component
	live      int
	limit     int
}

// NewPool creates a pool over the given templates. A limit of zero or less
// means no limit on live components.
func NewPool(templates map[string]Template, limit int) *Pool {
	p := &Pool{
		templates: make(map[string]Template, len(templates)),
		free:      make(map[string][]*Component),
		limit:     limit,
	}
	for url, t := range templates {
		p.templates[url] = t
	}
	return p
}

// Register adds or replaces the template for url.
func (p *Pool) Register(url string, t Template) {
	p.templates[url] = t
}

// Get returns a recycled component for url, or builds a new one.
func (p *Pool) Get(url string) (*Component, error) {
	if free := p.free[url]; len(free) > 0 {
		c := free[len(free)-1]
		p.free[url] = free[:len(free)-1]
		p.live++
		return c, nil
	}
	t, ok := p.templates[url]
	if !ok {
		return nil, fmt.Errorf("get %q: %w", url, ErrUnknownResource)
	}
	if p.limit > 0 && p.live >= p.limit {
		return nil, fmt.Errorf("get %q: %w: %d live", url, ErrExhausted, p.live)
	}
	p.live++
	return t.Build(url), nil
}

// Return detaches c and makes it available to Get again.
func (p *Pool) Return(c *Component) {
	if c == nil {
		return
	}
	if parent := c.Parent(); parent != nil {
		parent.RemoveChild(c)
	}
	c.reset()
	p.free[c.url] = append(p.free[c.url], c)
	if p.live > 0 {
		p.live--
	}
}

// Live returns the number of components handed out and not yet returned.
func (p *Pool) Live() int { return p.live }

// Free returns the number of idle components for url.
func (p *Pool) Free(url string) int { return len(p.free[url]) }
