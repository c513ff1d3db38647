package numbering

import (
	"log/slog"
	"strings"
)

type counterKey struct {
	instance string
	level    int
}

// Marker is the rendered list prefix of one paragraph.
type Marker struct {
	Text   string
	Suffix Suffix
	// Value is the counter value of the invoking level.
	Value int
	Level *Level
}

// String returns the marker text followed by its suffix.
func (m Marker) String() string {
	if m.Level == nil {
		return ""
	}
	return m.Text + m.Suffix.Text()
}

// IsZero reports whether nothing was resolved.
func (m Marker) IsZero() bool {
	return m.Level == nil
}

// Engine holds the counter state of one document conversion.
type Engine struct {
	catalog  *Catalog
	logger   *slog.Logger
	counters map[counterKey]int
	last     map[string]int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger used for unresolvable list references.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an engine with fresh counters over catalog.
func NewEngine(catalog *Catalog, opts ...EngineOption) *Engine {
	if catalog == nil {
		catalog = NewCatalog()
	}
	e := &Engine{
		catalog: catalog,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Reset()
	return e
}

// Reset discards all counters.
func (e *Engine) Reset() {
	e.counters = make(map[counterKey]int)
	e.last = make(map[string]int)
}

// NextPrefix advances the list and returns the prefix for the next
// paragraph at level of instanceID, suffix included. Unresolvable
// references yield "".
func (e *Engine) NextPrefix(instanceID string, level int) string {
	return e.Next(instanceID, level).String()
}

// Next advances the counter for (instanceID, level) and renders the
// marker. It must be called once per list paragraph in document order.
func (e *Engine) Next(instanceID string, level int) Marker {
	if level < 0 || level > MaxLevel {
		e.logger.Warn("numbering level out of range", "num", instanceID, "level", level)
		return Marker{}
	}
	lvl, ok := e.catalog.Level(instanceID, level)
	if !ok {
		e.logger.Warn("unresolved numbering", "num", instanceID, "level", level)
		return Marker{}
	}

	last, seen := e.last[instanceID]
	if seen && level < last {
		// entering a shallower level invalidates deeper nesting
		for l := level + 1; l <= MaxLevel; l++ {
			delete(e.counters, counterKey{instanceID, l})
		}
	}
	if lvl.RestartAfter != nil && seen && last <= *lvl.RestartAfter && last < level {
		delete(e.counters, counterKey{instanceID, level})
	}

	key := counterKey{instanceID, level}
	value, exists := e.counters[key]
	switch {
	case !exists:
		value = e.catalog.StartValue(instanceID, level)
	case lvl.Format != FormatBullet:
		value++
	}
	e.counters[key] = value
	e.last[instanceID] = level

	return Marker{
		Text:   e.render(instanceID, lvl),
		Suffix: lvl.Suffix,
		Value:  value,
		Level:  lvl,
	}
}

// render substitutes %1..%9 in the level template with the current
// counter of each referenced level, formatted per that level.
func (e *Engine) render(instanceID string, lvl *Level) string {
	if lvl.Format == FormatBullet {
		return lvl.Text
	}

	tmpl := lvl.Text
	var sb strings.Builder
	for i := 0; i < len(tmpl); i++ {
		ch := tmpl[i]
		if ch == '%' && i+1 < len(tmpl) && tmpl[i+1] >= '1' && tmpl[i+1] <= '9' {
			sb.WriteString(e.placeholder(instanceID, int(tmpl[i+1]-'1'), lvl.Legal))
			i++
			continue
		}
		sb.WriteByte(ch)
	}
	return sb.String()
}

func (e *Engine) placeholder(instanceID string, level int, legal bool) string {
	value, ok := e.counters[counterKey{instanceID, level}]
	if !ok {
		value = e.catalog.StartValue(instanceID, level)
	}

	format := FormatDecimal
	if l, ok := e.catalog.Level(instanceID, level); ok {
		format = l.Format
	}
	if legal && format != FormatBullet && format != FormatNone {
		format = FormatDecimal
	}
	return FormatValue(format, value)
}
