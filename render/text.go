package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tsawler/docxconv/model"
	"github.com/tsawler/docxconv/props"
	"github.com/tsawler/docxconv/styles"
)

// Text renders doc as plain text. Blocks are joined by the paragraph
// separator; empty paragraphs are dropped.
func (c *Converter) Text(doc *model.Document) (string, error) {
	p := c.newPass()
	parts := p.textBlocks(doc.Blocks, nil, c.tableMode)
	return strings.Join(parts, c.paraSeparator), nil
}

func (p *pass) textBlocks(blocks []model.Block, tc *styles.TableContext, mode TableMode) []string {
	var parts []string
	for _, b := range blocks {
		var s string
		switch v := b.(type) {
		case *model.Paragraph:
			s = p.textParagraph(v, tc)
		case *model.Table:
			s = p.textTable(v, mode)
		}
		if s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}

func (p *pass) textParagraph(para *model.Paragraph, tc *styles.TableContext) string {
	var sb strings.Builder
	if m, ok := p.marker(para); ok {
		sb.WriteString(m.String())
	}
	for _, run := range para.Runs {
		resolved := p.resolver.Run(run, para, tc)
		if flag(resolved, "vanish") {
			continue
		}
		text := run.Text()
		if flag(resolved, "caps") || flag(resolved, "smallCaps") {
			text = cases.Upper(language.Und).String(text)
		}
		sb.WriteString(text)
	}
	return sb.String()
}

// borderInfo records which table borders draw a line.
type borderInfo struct {
	top, bottom, left, right bool
	insideH, insideV         bool
}

func (b borderInfo) any() bool {
	return b.top || b.bottom || b.left || b.right || b.insideH || b.insideV
}

var fullBorders = borderInfo{true, true, true, true, true, true}

// detectBorders reads the table borders, inferring them from cell
// borders when the table declares none.
func (p *pass) detectBorders(t *model.Table) borderInfo {
	var info borderInfo
	if b, ok := nestedSet(p.resolver.Table(t), "tblBorders"); ok {
		info.top = visible(b, "top")
		info.bottom = visible(b, "bottom")
		info.left = visible(b, "start", "left")
		info.right = visible(b, "end", "right")
		info.insideH = visible(b, "insideH")
		info.insideV = visible(b, "insideV")
	}
	if info.any() {
		return info
	}

	last := len(t.Rows) - 1
	for r, row := range t.Rows {
		col := 0
		for i, cell := range row.Cells {
			c := col
			col += cell.Span()
			b, ok := nestedSet(p.resolver.Cell(t, r, c), "tcBorders")
			if !ok {
				continue
			}
			top, bottom := visible(b, "top"), visible(b, "bottom")
			left, right := visible(b, "start", "left"), visible(b, "end", "right")
			lastCol := i == len(row.Cells)-1

			info.top = info.top || (r == 0 && top)
			info.bottom = info.bottom || (r == last && bottom)
			info.left = info.left || (i == 0 && left)
			info.right = info.right || (lastCol && right)
			info.insideH = info.insideH || (r < last && bottom) || (r > 0 && top)
			info.insideV = info.insideV || (!lastCol && right) || (i > 0 && left)
		}
	}
	return info
}

func visible(b *props.Set, keys ...string) bool {
	for _, k := range keys {
		if v, ok := b.Get(k); ok {
			return VisibleBorder(v)
		}
	}
	return false
}

// textTable lays the table out in one of the text table modes. Plain text
// has no spans, so each cell contributes one column.
func (p *pass) textTable(t *model.Table, mode TableMode) string {
	if len(t.Rows) == 0 {
		return ""
	}
	rows := p.cellTexts(t)

	switch mode {
	case TableASCII:
		return asciiTable(rows, fullBorders)
	case TableTabs:
		return joinRows(rows, "\t")
	case TablePlain:
		return joinRows(rows, "  ")
	default:
		if info := p.detectBorders(t); info.any() {
			return asciiTable(rows, info)
		}
		return joinRows(rows, "\t")
	}
}

// cellTexts renders every cell of t in order, so list counters inside
// cells advance in document order.
func (p *pass) cellTexts(t *model.Table) [][]string {
	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		col := 0
		for _, cell := range row.Cells {
			parts := p.textBlocks(cell.Blocks, tableContext(t, r, col), TableTabs)
			rows[r] = append(rows[r], strings.Join(parts, "\n"))
			col += cell.Span()
		}
	}
	return rows
}

func joinRows(rows [][]string, sep string) string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, sep)
	}
	return strings.Join(lines, "\n")
}

// asciiTable draws a box table with only the borders in info.
func asciiTable(rows [][]string, info borderInfo) string {
	cols := 0
	for _, row := range rows {
		cols = max(cols, len(row))
	}
	if cols == 0 {
		return ""
	}

	cells := make([][]string, len(rows))
	widths := make([]int, cols)
	for i := range widths {
		widths[i] = 1
	}
	for r, row := range rows {
		cells[r] = make([]string, cols)
		for c, text := range row {
			text = strings.ReplaceAll(text, "\n", " ")
			cells[r][c] = text
			widths[c] = max(widths[c], runewidth.StringWidth(text))
		}
	}

	edge := func(on bool, yes, no string) string {
		if on {
			return yes
		}
		return no
	}

	rule := func() string {
		var inner string
		if info.insideV {
			segs := make([]string, cols)
			for i, w := range widths {
				segs[i] = strings.Repeat("-", w+2)
			}
			inner = strings.Join(segs, "+")
		} else {
			total := 2 + 3*(cols-1)
			for _, w := range widths {
				total += w
			}
			inner = strings.Repeat("-", total)
		}
		return edge(info.left, "+", "-") + inner + edge(info.right, "+", "-")
	}

	line := func(row []string) string {
		segs := make([]string, cols)
		for i, text := range row {
			segs[i] = " " + runewidth.FillRight(text, widths[i]) + " "
		}
		sep := " "
		if info.insideV {
			sep = "|"
		}
		return edge(info.left, "|", " ") + strings.Join(segs, sep) + edge(info.right, "|", " ")
	}

	var lines []string
	if info.top {
		lines = append(lines, rule())
	}
	for r, row := range cells {
		lines = append(lines, line(row))
		if r < len(cells)-1 && info.insideH {
			lines = append(lines, rule())
		}
	}
	if info.bottom {
		lines = append(lines, rule())
	}
	return strings.Join(lines, "\n")
}
