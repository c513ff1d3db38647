package styles

import (
	"log/slog"

	"github.com/tsawler/docxconv/model"
	"github.com/tsawler/docxconv/props"
)

// LevelSource supplies the formatting carried by list levels. The
// numbering catalog implements it.
type LevelSource interface {
	LevelProperties(instanceID string, level int) (paragraph, run *props.Set)
}

// Resolver computes effective formatting from a catalog.
type Resolver struct {
	catalog   *Catalog
	levels    LevelSource
	logger    *slog.Logger
	mergeOpts []props.MergeOption
}

// Option configures the resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for data-quality warnings such as
// inheritance cycles and unknown style ids.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithLevels makes numbered paragraphs pick up their list level's
// paragraph properties, and enables Marker.
func WithLevels(src LevelSource) Option {
	return func(r *Resolver) {
		r.levels = src
	}
}

// WithExplicitNulls lets a Null in a higher layer clear a value set by a
// lower one instead of being ignored.
func WithExplicitNulls() Option {
	return func(r *Resolver) {
		r.mergeOpts = []props.MergeOption{props.ExplicitNulls()}
	}
}

// NewResolver creates a resolver over catalog. A nil catalog behaves as
// an empty one.
func NewResolver(catalog *Catalog, opts ...Option) *Resolver {
	if catalog == nil {
		catalog = NewCatalog(Defaults{})
	}
	r := &Resolver{
		catalog: catalog,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Catalog returns the catalog the resolver reads.
func (r *Resolver) Catalog() *Catalog {
	return r.catalog
}

// Paragraph returns the resolved paragraph formatting of p. tc is nil
// outside tables.
func (r *Resolver) Paragraph(p *model.Paragraph, tc *TableContext) *props.Set {
	layers := []*props.Set{r.catalog.Defaults.Paragraph}
	for _, s := range r.paragraphChain(p) {
		layers = append(layers, s.Paragraph)
	}
	layers = append(layers, r.tableOverlay(tc, func(f *Formatting) *props.Set { return f.Paragraph })...)
	if r.levels != nil {
		if ref, ok := r.Numbering(p); ok {
			lvlPara, _ := r.levels.LevelProperties(ref.InstanceID, ref.Level)
			layers = append(layers, lvlPara)
		}
	}
	if p != nil {
		layers = append(layers, p.Props)
	}
	return r.finish(layers)
}

// Run returns the resolved run formatting of run inside paragraph p.
func (r *Resolver) Run(run *model.Run, p *model.Paragraph, tc *TableContext) *props.Set {
	layers := []*props.Set{r.catalog.Defaults.Run}
	for _, s := range r.paragraphChain(p) {
		layers = append(layers, s.Run)
	}
	layers = append(layers, r.tableOverlay(tc, func(f *Formatting) *props.Set { return f.Run })...)
	if run == nil {
		return r.finish(layers)
	}
	for _, s := range r.runChain(run.StyleID) {
		layers = append(layers, s.Run)
	}
	layers = append(layers, run.Props)
	return r.finish(layers)
}

// Marker returns the run formatting for the list marker of a numbered
// paragraph: the paragraph's run layers topped by the level's own run
// properties. Unnumbered paragraphs and resolvers without a LevelSource
// get the plain paragraph run formatting.
func (r *Resolver) Marker(p *model.Paragraph, tc *TableContext) *props.Set {
	layers := []*props.Set{r.catalog.Defaults.Run}
	for _, s := range r.paragraphChain(p) {
		layers = append(layers, s.Run)
	}
	layers = append(layers, r.tableOverlay(tc, func(f *Formatting) *props.Set { return f.Run })...)
	if r.levels != nil {
		if ref, ok := r.Numbering(p); ok {
			_, lvlRun := r.levels.LevelProperties(ref.InstanceID, ref.Level)
			layers = append(layers, lvlRun)
		}
	}
	return r.finish(layers)
}

// Table returns the resolved table-level formatting of t.
func (r *Resolver) Table(t *model.Table) *props.Set {
	layers := []*props.Set{r.catalog.Defaults.Table}
	for _, s := range r.tableChain(t) {
		layers = append(layers, s.Table)
	}
	if t != nil {
		layers = append(layers, t.Props)
	}
	return r.finish(layers)
}

// Row returns the resolved formatting of row index row in t.
func (r *Resolver) Row(t *model.Table, row int) *props.Set {
	chain := r.tableChain(t)
	var layers []*props.Set
	for _, s := range chain {
		layers = append(layers, s.Row)
	}
	if t == nil {
		return r.finish(layers)
	}
	layers = append(layers, r.conditional(chain, r.conditionsAt(t, row, -1), func(f *Formatting) *props.Set { return f.Row })...)
	if row >= 0 && row < len(t.Rows) && t.Rows[row] != nil {
		layers = append(layers, t.Rows[row].Props)
	}
	return r.finish(layers)
}

// Cell returns the resolved formatting of the cell at (row, col) in t,
// where col is a grid column.
func (r *Resolver) Cell(t *model.Table, row, col int) *props.Set {
	chain := r.tableChain(t)
	var layers []*props.Set
	for _, s := range chain {
		layers = append(layers, s.Cell)
	}
	if t == nil {
		return r.finish(layers)
	}
	layers = append(layers, r.conditional(chain, r.conditionsAt(t, row, col), func(f *Formatting) *props.Set { return f.Cell })...)
	if c := t.Cell(row, col); c != nil {
		layers = append(layers, c.Props)
	}
	return r.finish(layers)
}

// Conditions returns the conditional regions that apply at tc.
func (r *Resolver) Conditions(tc *TableContext) []Condition {
	if tc == nil || tc.Table == nil {
		return nil
	}
	return r.conditionsAt(tc.Table, tc.Row, tc.Col)
}

// Numbering returns the list reference that applies to p. Direct
// numbering wins; otherwise the nearest style in the paragraph style
// chain that carries one supplies it. Instance "0" switches numbering
// off at that layer.
func (r *Resolver) Numbering(p *model.Paragraph) (model.NumberingRef, bool) {
	if p == nil {
		return model.NumberingRef{}, false
	}
	var ref model.NumberingRef
	if p.Numbering != nil {
		if p.Numbering.IsNone() {
			return model.NumberingRef{}, false
		}
		ref = *p.Numbering
		if ref.InstanceID != "" {
			return ref, true
		}
	}

	chain := r.paragraphChain(p)
	for i := len(chain) - 1; i >= 0; i-- {
		n := chain[i].Numbering
		if n == nil || n.InstanceID == "" {
			continue
		}
		if n.IsNone() {
			return model.NumberingRef{}, false
		}
		ref.InstanceID = n.InstanceID
		if p.Numbering == nil {
			ref.Level = n.Level
		}
		return ref, true
	}
	return model.NumberingRef{}, false
}

// ParagraphStyle returns the style that applies to p: its explicit style
// or the catalog's default paragraph style.
func (r *Resolver) ParagraphStyle(p *model.Paragraph) (*Style, bool) {
	id := ""
	if p != nil {
		id = p.StyleID
	}
	return r.styleOrDefault(id, TypeParagraph)
}

func (r *Resolver) paragraphChain(p *model.Paragraph) []*Style {
	s, ok := r.ParagraphStyle(p)
	if !ok {
		return nil
	}
	return r.chain(s.ID)
}

func (r *Resolver) tableChain(t *model.Table) []*Style {
	id := ""
	if t != nil {
		id = t.StyleID
	}
	s, ok := r.styleOrDefault(id, TypeTable)
	if !ok {
		return nil
	}
	return r.chain(s.ID)
}

// runChain resolves a run style id. A paragraph style with a linked
// character style is redirected to the linked style.
func (r *Resolver) runChain(id string) []*Style {
	s, ok := r.styleOrDefault(id, TypeCharacter)
	if !ok {
		return nil
	}
	if s.Type == TypeParagraph && s.Link != "" {
		if linked, ok := r.catalog.Style(s.Link); ok {
			s = linked
		}
	}
	return r.chain(s.ID)
}

func (r *Resolver) styleOrDefault(id string, t Type) (*Style, bool) {
	if id == "" {
		return r.catalog.DefaultStyle(t)
	}
	s, ok := r.catalog.Style(id)
	if !ok {
		r.logger.Warn("unknown style", "style", id, "type", string(t))
		return nil, false
	}
	return s, true
}

func (r *Resolver) chain(id string) []*Style {
	chain, cyclic := r.catalog.Chain(id)
	if cyclic {
		r.logger.Warn("style inheritance cycle", "style", id, "chain", len(chain))
	}
	return chain
}

// tableOverlay collects the table style layers that apply to content at
// tc: the style chain's own sets followed by each matched condition.
func (r *Resolver) tableOverlay(tc *TableContext, pick func(*Formatting) *props.Set) []*props.Set {
	if tc == nil || tc.Table == nil {
		return nil
	}
	conds := r.conditionsAt(tc.Table, tc.Row, tc.Col)
	if conds == nil {
		return nil
	}
	chain := r.tableChain(tc.Table)
	var layers []*props.Set
	for _, s := range chain {
		layers = append(layers, pick(&s.Formatting))
	}
	return append(layers, r.conditional(chain, conds, pick)...)
}

func (r *Resolver) conditional(chain []*Style, conds []Condition, pick func(*Formatting) *props.Set) []*props.Set {
	var layers []*props.Set
	for _, c := range conds {
		for _, s := range chain {
			if f, ok := s.Conditions[c]; ok && f != nil {
				layers = append(layers, pick(f))
			}
		}
	}
	return layers
}

func (r *Resolver) conditionsAt(t *model.Table, row, col int) []Condition {
	tbl := r.Table(t)
	return Conditions(LookFrom(tbl), t.RowCount(), t.ColCount(), row, col,
		bandSize(tbl, "tblStyleRowBandSize"), bandSize(tbl, "tblStyleColBandSize"))
}

func (r *Resolver) finish(layers []*props.Set) *props.Set {
	out := props.MergeChainWith(r.mergeOpts, layers...).Compact()
	if out == nil {
		out = props.NewSet()
	}
	return out
}
