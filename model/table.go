package model

import "github.com/tsawler/docxconv/props"

// Table represents a table (<w:tbl>).
type Table struct {
	StyleID string
	Props   *props.Set
	Grid    []int // column widths in twips
	Rows    []*Row
}

func (t *Table) Type() BlockType { return BlockTypeTable }

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of grid columns, falling back to the widest
// row when the table has no grid.
func (t *Table) ColCount() int {
	if len(t.Grid) > 0 {
		return len(t.Grid)
	}
	widest := 0
	for _, row := range t.Rows {
		n := 0
		for _, c := range row.Cells {
			n += c.Span()
		}
		if n > widest {
			widest = n
		}
	}
	return widest
}

// Cell returns the cell at row and grid column col, accounting for column
// spans, or nil when out of range.
func (t *Table) Cell(row, col int) *Cell {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return nil
	}
	pos := 0
	for _, c := range t.Rows[row].Cells {
		span := c.Span()
		if col >= pos && col < pos+span {
			return c
		}
		pos += span
	}
	return nil
}

// Row represents a table row (<w:tr>).
type Row struct {
	Props *props.Set
	Cells []*Cell
	// IsHeader marks rows repeated as table headers (tblHeader).
	IsHeader bool
}

// VMerge describes a cell's role in a vertical merge.
type VMerge int

const (
	VMergeNone VMerge = iota
	VMergeRestart
	VMergeContinue
)

// Cell represents a table cell (<w:tc>).
type Cell struct {
	Props   *props.Set
	ColSpan int // gridSpan, 0 or 1 for a single column
	VMerge  VMerge
	Blocks  []Block
}

// Span returns the number of grid columns the cell covers.
func (c *Cell) Span() int {
	if c.ColSpan < 1 {
		return 1
	}
	return c.ColSpan
}

// Paragraphs returns the paragraphs of the cell in order.
func (c *Cell) Paragraphs() []*Paragraph {
	var out []*Paragraph
	walkParagraphs(c.Blocks, func(p *Paragraph) {
		out = append(out, p)
	})
	return out
}
