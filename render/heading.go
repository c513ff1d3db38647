package render

import (
	"strconv"
	"strings"

	"github.com/tsawler/docxconv/model"
	"github.com/tsawler/docxconv/props"
)

// headingLevel returns the HTML heading level (1-6) of a paragraph, or 0.
// The resolved outline level wins; otherwise Word's built-in heading style
// ids and "heading N" style names are recognised.
func (p *pass) headingLevel(para *model.Paragraph, resolved *props.Set) int {
	if v, ok := resolved.Get("outlineLvl"); ok {
		if n, ok := intOf(v); ok {
			// 9 is body text
			if n >= 0 && n <= 8 {
				return clampHeading(int(n) + 1)
			}
			return 0
		}
	}

	style, ok := p.resolver.ParagraphStyle(para)
	if !ok {
		return 0
	}
	if level, ok := builtInHeading(style.ID); ok {
		return clampHeading(level)
	}
	if level, ok := builtInHeading(strings.ReplaceAll(style.Name, " ", "")); ok {
		return clampHeading(level)
	}
	return 0
}

// builtInHeading checks for Word's built-in heading style ids.
func builtInHeading(styleID string) (int, bool) {
	id := strings.ToLower(styleID)
	switch id {
	case "title":
		return 1, true
	case "subtitle":
		return 2, true
	}
	rest, ok := strings.CutPrefix(id, "heading")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 || n > 9 {
		return 0, false
	}
	return n, true
}

func clampHeading(level int) int {
	if level > 6 {
		return 6
	}
	return level
}
