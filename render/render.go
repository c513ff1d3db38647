package render

import (
	"fmt"
	"log/slog"

	"github.com/tsawler/docxconv/model"
	"github.com/tsawler/docxconv/numbering"
	"github.com/tsawler/docxconv/styles"
)

// StyleMode controls whether HTML output carries inline styles.
type StyleMode string

const (
	StyleInline StyleMode = "inline"
	StyleNone   StyleMode = "none"
)

// TableMode selects how tables are laid out in plain text.
type TableMode string

const (
	// TableAuto draws ASCII borders where the table has visible borders
	// and falls back to tabs otherwise.
	TableAuto  TableMode = "auto"
	TableASCII TableMode = "ascii"
	TableTabs  TableMode = "tabs"
	TablePlain TableMode = "plain"
)

// ParseTableMode validates a table mode name.
func ParseTableMode(s string) (TableMode, error) {
	switch m := TableMode(s); m {
	case TableAuto, TableASCII, TableTabs, TablePlain:
		return m, nil
	case "":
		return TableAuto, nil
	}
	return "", fmt.Errorf("unknown table mode %q", s)
}

// ParseStyleMode validates a style mode name.
func ParseStyleMode(s string) (StyleMode, error) {
	switch m := StyleMode(s); m {
	case StyleInline, StyleNone:
		return m, nil
	case "":
		return StyleInline, nil
	}
	return "", fmt.Errorf("unknown style mode %q", s)
}

// Converter renders documents against one style and numbering catalog.
// Every call starts with fresh list counters, so a Converter may be
// reused across documents sharing those catalogs, but not concurrently.
type Converter struct {
	resolver  *styles.Resolver
	numbering *numbering.Catalog
	logger    *slog.Logger

	fragment      bool
	responsive    bool
	printStyles   bool
	title         string
	language      string
	styleMode     StyleMode
	semanticTags  bool
	sanitize      bool
	tableMode     TableMode
	paraSeparator string
	explicitNulls bool

	// listElements renders numbered paragraphs as li elements. Markdown
	// sets it on its private copy.
	listElements bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger shared by the resolver and list engine.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithFragment renders only the body content, without the document shell.
func WithFragment(fragment bool) Option {
	return func(c *Converter) { c.fragment = fragment }
}

// WithResponsive adds a viewport meta tag and a readable body width to
// the document head. On by default.
func WithResponsive(on bool) Option {
	return func(c *Converter) { c.responsive = on }
}

// WithPrintStyles adds an @media print block to the document head.
func WithPrintStyles(on bool) Option {
	return func(c *Converter) { c.printStyles = on }
}

// WithTitle overrides the document title used in the HTML head.
func WithTitle(title string) Option {
	return func(c *Converter) { c.title = title }
}

// WithLanguage sets the lang attribute of the HTML root.
func WithLanguage(lang string) Option {
	return func(c *Converter) { c.language = lang }
}

// WithStyleMode selects inline styles or none.
func WithStyleMode(m StyleMode) Option {
	return func(c *Converter) { c.styleMode = m }
}

// WithSemanticTags renders bold, italic, underline, strike and
// super/subscript as strong, em, u, s, sup and sub elements.
func WithSemanticTags(on bool) Option {
	return func(c *Converter) { c.semanticTags = on }
}

// WithSanitize passes HTML output through an allow-list sanitizer.
func WithSanitize(on bool) Option {
	return func(c *Converter) { c.sanitize = on }
}

// WithTableMode selects the plain-text table layout.
func WithTableMode(m TableMode) Option {
	return func(c *Converter) { c.tableMode = m }
}

// WithParagraphSeparator sets the text placed between blocks in plain
// text output.
func WithParagraphSeparator(sep string) Option {
	return func(c *Converter) { c.paraSeparator = sep }
}

// WithExplicitNulls lets cleared properties in higher layers remove
// inherited values.
func WithExplicitNulls(on bool) Option {
	return func(c *Converter) { c.explicitNulls = on }
}

// New creates a converter. Nil catalogs behave as empty ones.
func New(catalog *styles.Catalog, lists *numbering.Catalog, opts ...Option) *Converter {
	if lists == nil {
		lists = numbering.NewCatalog()
	}
	c := &Converter{
		numbering:     lists,
		logger:        slog.New(slog.DiscardHandler),
		language:      "en",
		responsive:    true,
		styleMode:     StyleInline,
		tableMode:     TableAuto,
		paraSeparator: "\n\n",
	}
	for _, opt := range opts {
		opt(c)
	}

	ropts := []styles.Option{styles.WithLogger(c.logger), styles.WithLevels(lists)}
	if c.explicitNulls {
		ropts = append(ropts, styles.WithExplicitNulls())
	}
	c.resolver = styles.NewResolver(catalog, ropts...)
	return c
}

// Resolver returns the cascade resolver the converter uses.
func (c *Converter) Resolver() *styles.Resolver {
	return c.resolver
}

// pass is the state of one conversion: its list counters.
type pass struct {
	*Converter
	engine *numbering.Engine
}

func (c *Converter) newPass() *pass {
	return &pass{
		Converter: c,
		engine:    numbering.NewEngine(c.numbering, numbering.WithLogger(c.logger)),
	}
}

// marker advances the list counters for p. It must be called for every
// paragraph in document order, numbered or not.
func (p *pass) marker(para *model.Paragraph) (numbering.Marker, bool) {
	ref, ok := p.resolver.Numbering(para)
	if !ok {
		return numbering.Marker{}, false
	}
	m := p.engine.Next(ref.InstanceID, ref.Level)
	if m.IsZero() {
		return m, false
	}
	m.Text = markerText(m)
	return m, true
}

// tableContext builds the context for content in cell (row, col).
func tableContext(t *model.Table, row, col int) *styles.TableContext {
	return &styles.TableContext{Table: t, Row: row, Col: col}
}

// mergeSpans computes the row span of each vMerge restart cell and marks
// continuation cells to skip. Keys are row and grid column.
func mergeSpans(t *model.Table) (spans map[[2]int]int, skip map[[2]int]bool) {
	spans = make(map[[2]int]int)
	skip = make(map[[2]int]bool)
	open := make(map[int][2]int) // grid column -> restart cell position

	for r, row := range t.Rows {
		col := 0
		for _, cell := range row.Cells {
			pos := [2]int{r, col}
			switch cell.VMerge {
			case model.VMergeRestart:
				spans[pos] = 1
				open[col] = pos
			case model.VMergeContinue:
				if start, ok := open[col]; ok {
					spans[start]++
					skip[pos] = true
				}
			default:
				delete(open, col)
			}
			col += cell.Span()
		}
	}
	return spans, skip
}
