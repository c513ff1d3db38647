package render

import (
	"strconv"
	"strings"

	"github.com/tsawler/docxconv/props"
)

// Kind selects which CSS mapping applies to a resolved property set.
type Kind int

const (
	KindParagraph Kind = iota
	KindRun
	KindTable
	KindRow
	KindCell
)

// Declaration is one CSS property and value.
type Declaration struct {
	Property string
	Value    string
}

// Declarations is an ordered CSS declaration list.
type Declarations []Declaration

// String renders the declarations as an inline style attribute value.
func (d Declarations) String() string {
	parts := make([]string, len(d))
	for i, decl := range d {
		parts[i] = decl.Property + ": " + decl.Value
	}
	return strings.Join(parts, "; ")
}

// Get returns the value of property, if declared.
func (d Declarations) Get(property string) (string, bool) {
	for _, decl := range d {
		if decl.Property == property {
			return decl.Value, true
		}
	}
	return "", false
}

// Without returns the declarations minus the named properties.
func (d Declarations) Without(properties ...string) Declarations {
	out := make(Declarations, 0, len(d))
next:
	for _, decl := range d {
		for _, p := range properties {
			if decl.Property == p {
				continue next
			}
		}
		out = append(out, decl)
	}
	return out
}

func (d *Declarations) add(property, value string) {
	if value != "" {
		*d = append(*d, Declaration{Property: property, Value: value})
	}
}

// CSS maps resolved formatting to CSS declarations. Attributes with no
// CSS equivalent are ignored.
func CSS(set *props.Set, kind Kind) Declarations {
	var d Declarations
	if set.Empty() {
		return d
	}
	switch kind {
	case KindRun:
		runCSS(&d, set)
	case KindParagraph:
		paragraphCSS(&d, set)
	case KindTable:
		tableCSS(&d, set)
	case KindRow:
		if h, ok := set.Get("trHeight"); ok {
			if n, ok := intOf(h); ok && n > 0 {
				d.add("height", twipsToPt(n))
			}
		}
	case KindCell:
		cellCSS(&d, set)
	}
	return d
}

func runCSS(d *Declarations, set *props.Set) {
	if flag(set, "b") {
		d.add("font-weight", "bold")
	}
	if flag(set, "i") {
		d.add("font-style", "italic")
	}

	var decoration []string
	underline := scalarString(set, "u")
	if underline != "" && underline != "none" {
		decoration = append(decoration, "underline")
	}
	if flag(set, "strike") || flag(set, "dstrike") {
		decoration = append(decoration, "line-through")
	}
	d.add("text-decoration", strings.Join(decoration, " "))
	switch underline {
	case "double":
		d.add("text-decoration-style", "double")
	case "dotted", "dottedHeavy":
		d.add("text-decoration-style", "dotted")
	case "dash", "dashedHeavy", "dashLong", "dashLongHeavy", "dotDash", "dotDotDash":
		d.add("text-decoration-style", "dashed")
	case "wave", "wavyHeavy", "wavyDouble":
		d.add("text-decoration-style", "wavy")
	}
	if flag(set, "dstrike") && underline == "" {
		d.add("text-decoration-style", "double")
	}

	if v, ok := set.Get("sz"); ok {
		if n, ok := intOf(v); ok && n > 0 {
			d.add("font-size", formatPt(float64(n)/2))
		}
	}
	d.add("color", hexColor(scalarString(set, "color")))
	if hl := highlightColor(scalarString(set, "highlight")); hl != "" {
		d.add("background-color", hl)
	} else {
		d.add("background-color", shadingColor(set))
	}
	d.add("font-family", fontFamily(set))

	if flag(set, "caps") {
		d.add("text-transform", "uppercase")
	}
	if flag(set, "smallCaps") {
		d.add("font-variant", "small-caps")
	}
	switch scalarString(set, "vertAlign") {
	case "superscript":
		d.add("vertical-align", "super")
	case "subscript":
		d.add("vertical-align", "sub")
	}
	if v, ok := set.Get("spacing"); ok {
		if n, ok := intOf(v); ok && n != 0 {
			d.add("letter-spacing", twipsToPt(n))
		}
	}
	if flag(set, "vanish") {
		d.add("display", "none")
	}
}

func paragraphCSS(d *Declarations, set *props.Set) {
	d.add("text-align", alignment(scalarString(set, "jc")))

	if sp, ok := nestedSet(set, "spacing"); ok {
		if n, ok := intAt(sp, "before"); ok {
			d.add("margin-top", twipsToPt(n))
		}
		if n, ok := intAt(sp, "after"); ok {
			d.add("margin-bottom", twipsToPt(n))
		}
		if n, ok := intAt(sp, "line"); ok && n > 0 {
			switch scalarString(sp, "lineRule") {
			case "exact", "atLeast":
				d.add("line-height", twipsToPt(n))
			default:
				// auto: 240ths of a line
				d.add("line-height", formatNumber(float64(n)/240))
			}
		}
	}

	if ind, ok := nestedSet(set, "ind"); ok {
		if n, ok := firstInt(ind, "start", "left"); ok {
			d.add("margin-left", twipsToPt(n))
		}
		if n, ok := firstInt(ind, "end", "right"); ok {
			d.add("margin-right", twipsToPt(n))
		}
		if n, ok := intAt(ind, "hanging"); ok && n != 0 {
			d.add("text-indent", twipsToPt(-n))
		} else if n, ok := intAt(ind, "firstLine"); ok && n != 0 {
			d.add("text-indent", twipsToPt(n))
		}
	}

	d.add("background-color", shadingColor(set))
	if b, ok := nestedSet(set, "pBdr"); ok {
		borders(d, b)
	}
	if flag(set, "pageBreakBefore") {
		d.add("page-break-before", "always")
	}
	if flag(set, "bidi") {
		d.add("direction", "rtl")
	}
}

func tableCSS(d *Declarations, set *props.Set) {
	d.add("border-collapse", "collapse")
	d.add("width", width(set, "tblW"))
	switch scalarString(set, "jc") {
	case "center":
		d.add("margin-left", "auto")
		d.add("margin-right", "auto")
	case "right", "end":
		d.add("margin-left", "auto")
	default:
		if ind, ok := nestedSet(set, "tblInd"); ok {
			if n, ok := intAt(ind, "w"); ok && n != 0 {
				d.add("margin-left", twipsToPt(n))
			}
		}
	}
	d.add("background-color", shadingColor(set))
	if b, ok := nestedSet(set, "tblBorders"); ok {
		borders(d, b)
	}
}

func cellCSS(d *Declarations, set *props.Set) {
	d.add("width", width(set, "tcW"))
	d.add("background-color", shadingColor(set))
	switch scalarString(set, "vAlign") {
	case "top":
		d.add("vertical-align", "top")
	case "center":
		d.add("vertical-align", "middle")
	case "bottom":
		d.add("vertical-align", "bottom")
	}
	if b, ok := nestedSet(set, "tcBorders"); ok {
		borders(d, b)
	}
	if flag(set, "noWrap") {
		d.add("white-space", "nowrap")
	}
}

// borders emits border-top/right/bottom/left from a border container.
func borders(d *Declarations, b *props.Set) {
	sides := []struct{ css, start, fallback string }{
		{"top", "top", ""},
		{"right", "end", "right"},
		{"bottom", "bottom", ""},
		{"left", "start", "left"},
	}
	for _, side := range sides {
		v, ok := b.Get(side.start)
		if !ok && side.fallback != "" {
			v, ok = b.Get(side.fallback)
		}
		if !ok {
			continue
		}
		d.add("border-"+side.css, border(borderSet(v)))
	}
}

// borderSet normalises a border element decoded as a bare w:val.
func borderSet(v props.Value) *props.Set {
	if s, ok := v.AsSet(); ok {
		return s
	}
	return props.NewSet().Put("val", v)
}

// border renders one w:top, w:left... element.
func border(b *props.Set) string {
	style := scalarString(b, "val")
	switch style {
	case "", "nil", "none":
		return "none"
	case "double", "triple":
		style = "double"
	case "dotted":
	case "dashed", "dashSmallGap", "dotDash", "dotDotDash":
		style = "dashed"
	case "inset", "outset":
	default:
		style = "solid"
	}
	w := "1px"
	if n, ok := intAt(b, "sz"); ok && n > 0 {
		// eighths of a point
		w = formatPt(float64(n) / 8)
	}
	color := hexColor(scalarString(b, "color"))
	if color == "" {
		color = "#000000"
	}
	return w + " " + style + " " + color
}

// VisibleBorder reports whether a border element draws a line.
func VisibleBorder(v props.Value) bool {
	switch scalarString(borderSet(v), "val") {
	case "", "nil", "none":
		return false
	}
	return true
}

func width(set *props.Set, key string) string {
	w, ok := nestedSet(set, key)
	if !ok {
		return ""
	}
	n, hasN := intAt(w, "w")
	switch scalarString(w, "type") {
	case "pct":
		if raw := scalarString(w, "w"); strings.HasSuffix(raw, "%") {
			return raw
		}
		if hasN {
			// fiftieths of a percent
			return formatNumber(float64(n)/50) + "%"
		}
	case "auto", "nil":
		return ""
	default:
		if hasN && n > 0 {
			return twipsToPt(n)
		}
	}
	return ""
}

func alignment(jc string) string {
	switch jc {
	case "left", "start":
		return "left"
	case "center":
		return "center"
	case "right", "end":
		return "right"
	case "both", "distribute", "lowKashida", "mediumKashida", "highKashida":
		return "justify"
	}
	return ""
}

func fontFamily(set *props.Set) string {
	fonts, ok := nestedSet(set, "rFonts")
	if !ok {
		return ""
	}
	for _, key := range []string{"ascii", "hAnsi", "cs", "eastAsia"} {
		if name := scalarString(fonts, key); name != "" {
			return "'" + strings.ReplaceAll(name, "'", "") + "'"
		}
	}
	return ""
}

func shadingColor(set *props.Set) string {
	shd, ok := nestedSet(set, "shd")
	if !ok {
		return ""
	}
	return hexColor(scalarString(shd, "fill"))
}

// hexColor converts an ST_HexColor to CSS; auto means inherit.
func hexColor(v string) string {
	if len(v) != 6 {
		return ""
	}
	if _, err := strconv.ParseUint(v, 16, 32); err != nil {
		return ""
	}
	return "#" + strings.ToUpper(v)
}

var highlights = map[string]string{
	"black": "#000000", "blue": "#0000FF", "cyan": "#00FFFF", "green": "#00FF00",
	"magenta": "#FF00FF", "red": "#FF0000", "yellow": "#FFFF00", "white": "#FFFFFF",
	"darkBlue": "#000080", "darkCyan": "#008080", "darkGreen": "#008000",
	"darkMagenta": "#800080", "darkRed": "#800000", "darkYellow": "#808000",
	"darkGray": "#808080", "lightGray": "#C0C0C0",
}

func highlightColor(name string) string {
	return highlights[name]
}

// flag reads a toggle property.
func flag(set *props.Set, key string) bool {
	v, ok := set.Get(key)
	if !ok {
		return false
	}
	if b, ok := v.AsBool(); ok {
		return b
	}
	if n, ok := v.AsInt(); ok {
		return n != 0
	}
	s, _ := v.AsString()
	return s == "true" || s == "on"
}

// scalarString returns a string property, reading w:val when the element
// was decoded as a nested set.
func scalarString(set *props.Set, key string) string {
	v, ok := set.Get(key)
	if !ok {
		return ""
	}
	if s, ok := v.AsSet(); ok {
		v, ok = s.Get("val")
		if !ok {
			return ""
		}
	}
	if v.Kind() == props.KindString {
		s, _ := v.AsString()
		return s
	}
	if v.Kind() == props.KindInt || v.Kind() == props.KindFloat {
		return v.String()
	}
	return ""
}

func nestedSet(set *props.Set, key string) (*props.Set, bool) {
	v, ok := set.Get(key)
	if !ok {
		return nil, false
	}
	return v.AsSet()
}

func intOf(v props.Value) (int64, bool) {
	if s, ok := v.AsSet(); ok {
		if inner, ok := s.Get("val"); ok {
			return inner.AsInt()
		}
		return 0, false
	}
	return v.AsInt()
}

func intAt(set *props.Set, key string) (int64, bool) {
	v, ok := set.Get(key)
	if !ok {
		return 0, false
	}
	return v.AsInt()
}

func firstInt(set *props.Set, keys ...string) (int64, bool) {
	for _, k := range keys {
		if n, ok := intAt(set, k); ok {
			return n, true
		}
	}
	return 0, false
}

func twipsToPt(n int64) string {
	return formatPt(float64(n) / 20)
}

func formatPt(v float64) string {
	return formatNumber(v) + "pt"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
