package docxconv

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// Warning is a non-fatal problem found while converting, such as an
// unknown style id or a list reference that does not resolve. Output is
// still produced; warnings say where it may differ from what Word shows.
type Warning struct {
	Message string
	Attrs   map[string]string
}

// String renders the warning as "message (key=value, ...)".
func (w Warning) String() string {
	if len(w.Attrs) == 0 {
		return w.Message
	}
	keys := make([]string, 0, len(w.Attrs))
	for k := range w.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + w.Attrs[k]
	}
	return w.Message + " (" + strings.Join(parts, ", ") + ")"
}

// FormatWarnings joins warnings into one line per warning.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

// collector is a slog.Handler that records Warn and Error records as
// Warnings, once per distinct message and attributes, and forwards
// everything to an optional next handler.
type collector struct {
	state  *collected
	next   slog.Handler
	attrs  []slog.Attr
	prefix string
}

type collected struct {
	mu       sync.Mutex
	warnings []Warning
	seen     map[string]bool
}

func newCollector(next slog.Handler) *collector {
	return &collector{state: &collected{seen: make(map[string]bool)}, next: next}
}

func (c *collector) Enabled(ctx context.Context, level slog.Level) bool {
	if level >= slog.LevelWarn {
		return true
	}
	return c.next != nil && c.next.Enabled(ctx, level)
}

func (c *collector) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		w := Warning{Message: r.Message, Attrs: make(map[string]string)}
		for _, a := range c.attrs {
			addAttr(w.Attrs, "", a)
		}
		r.Attrs(func(a slog.Attr) bool {
			addAttr(w.Attrs, c.prefix, a)
			return true
		})
		// The same node is resolved several times per conversion, so
		// identical warnings are recorded once.
		key := w.String()
		c.state.mu.Lock()
		if !c.state.seen[key] {
			c.state.seen[key] = true
			c.state.warnings = append(c.state.warnings, w)
		}
		c.state.mu.Unlock()
	}
	if c.next != nil && c.next.Enabled(ctx, r.Level) {
		return c.next.Handle(ctx, r)
	}
	return nil
}

func (c *collector) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := *c
	out.attrs = append([]slog.Attr(nil), c.attrs...)
	for _, a := range attrs {
		if c.prefix != "" {
			a.Key = c.prefix + a.Key
		}
		out.attrs = append(out.attrs, a)
	}
	if c.next != nil {
		out.next = c.next.WithAttrs(attrs)
	}
	return &out
}

func (c *collector) WithGroup(name string) slog.Handler {
	if name == "" {
		return c
	}
	out := *c
	out.prefix = c.prefix + name + "."
	if c.next != nil {
		out.next = c.next.WithGroup(name)
	}
	return &out
}

// Warnings returns a copy of the warnings recorded so far.
func (c *collector) Warnings() []Warning {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()
	return append([]Warning(nil), c.state.warnings...)
}

func addAttr(dst map[string]string, prefix string, a slog.Attr) {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		for _, ga := range v.Group() {
			addAttr(dst, prefix+a.Key+".", ga)
		}
		return
	}
	dst[prefix+a.Key] = fmt.Sprint(v.Any())
}
