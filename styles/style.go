package styles

import (
	"github.com/tsawler/docxconv/model"
	"github.com/tsawler/docxconv/props"
)

// Type is the kind of content a style applies to.
type Type string

const (
	TypeParagraph Type = "paragraph"
	TypeCharacter Type = "character"
	TypeTable     Type = "table"
	TypeNumbering Type = "numbering"
)

// Formatting groups the property sets a style can carry, one per node kind.
type Formatting struct {
	Paragraph *props.Set
	Run       *props.Set
	Table     *props.Set
	Row       *props.Set
	Cell      *props.Set
}

// Style is a named style definition.
type Style struct {
	ID      string
	Name    string
	Type    Type
	BasedOn string
	// Link names the paired style of the other type (paragraph <-> character).
	Link    string
	Default bool

	Formatting

	// Numbering is the list binding of a paragraph or numbering style.
	Numbering *model.NumberingRef

	// Conditions holds table conditional formatting (w:tblStylePr).
	Conditions map[Condition]*Formatting
}

// Defaults holds the document-wide defaults applied before any style.
type Defaults struct {
	Paragraph *props.Set
	Run       *props.Set
	Table     *props.Set
}

// Catalog maps style ids to styles.
type Catalog struct {
	Defaults Defaults

	styles   map[string]*Style
	order    []string
	defaults map[Type]string
}

// NewCatalog creates a catalog from defaults and styles. Later styles with
// a duplicate id replace earlier ones.
func NewCatalog(defaults Defaults, list ...*Style) *Catalog {
	c := &Catalog{
		Defaults: defaults,
		styles:   make(map[string]*Style),
		defaults: make(map[Type]string),
	}
	for _, s := range list {
		c.Add(s)
	}
	return c
}

// Add registers a style.
func (c *Catalog) Add(s *Style) {
	if s == nil || s.ID == "" {
		return
	}
	if _, ok := c.styles[s.ID]; !ok {
		c.order = append(c.order, s.ID)
	}
	c.styles[s.ID] = s
	if s.Default {
		if _, ok := c.defaults[s.Type]; !ok {
			c.defaults[s.Type] = s.ID
		}
	}
}

// Style returns the style with the given id.
func (c *Catalog) Style(id string) (*Style, bool) {
	if c == nil || id == "" {
		return nil, false
	}
	s, ok := c.styles[id]
	return s, ok
}

// DefaultStyle returns the style marked default for t, if any.
func (c *Catalog) DefaultStyle(t Type) (*Style, bool) {
	if c == nil {
		return nil, false
	}
	id, ok := c.defaults[t]
	if !ok {
		return nil, false
	}
	return c.Style(id)
}

// Styles returns all styles in registration order.
func (c *Catalog) Styles() []*Style {
	if c == nil {
		return nil
	}
	out := make([]*Style, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.styles[id])
	}
	return out
}

// Len returns the number of styles.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Chain returns the style identified by id and its basedOn ancestors,
// ordered root first. The walk is iterative with a visited set: when a
// style repeats the chain stops there and cyclic is true. A missing id
// yields an empty chain; a missing parent ends the chain at the child.
func (c *Catalog) Chain(id string) (chain []*Style, cyclic bool) {
	visited := make(map[string]bool)

	current := id
	for current != "" {
		if visited[current] {
			cyclic = true
			break
		}
		s, ok := c.Style(current)
		if !ok {
			break
		}
		visited[current] = true
		chain = append(chain, s)
		current = s.BasedOn
	}

	// leaf-first to root-first
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, cyclic
}
