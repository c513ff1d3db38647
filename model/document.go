package model

import (
	"strings"
	"time"
)

// Document represents a parsed word-processing document.
type Document struct {
	Metadata Metadata
	Blocks   []Block
}

// Metadata contains document-level information.
type Metadata struct {
	Title        string
	Author       string
	Subject      string
	Keywords     []string
	Creator      string
	CreationDate time.Time
	ModDate      time.Time
	// Custom metadata
	Custom map[string]string
}

// NewDocument creates a new empty document.
func NewDocument() *Document {
	return &Document{
		Metadata: Metadata{
			Custom: make(map[string]string),
		},
	}
}

// AddBlock appends a block to the document body.
func (d *Document) AddBlock(b Block) {
	d.Blocks = append(d.Blocks, b)
}

// Paragraphs returns every paragraph in document order, descending into
// table cells row by row.
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	walkParagraphs(d.Blocks, func(p *Paragraph) {
		out = append(out, p)
	})
	return out
}

// Tables returns the top-level tables of the document.
func (d *Document) Tables() []*Table {
	var tables []*Table
	for _, b := range d.Blocks {
		if t, ok := b.(*Table); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// ExtractText returns the text of all paragraphs separated by newlines.
func (d *Document) ExtractText() string {
	var parts []string
	for _, p := range d.Paragraphs() {
		parts = append(parts, p.Text())
	}
	return strings.Join(parts, "\n")
}

func walkParagraphs(blocks []Block, fn func(*Paragraph)) {
	for _, b := range blocks {
		switch v := b.(type) {
		case *Paragraph:
			fn(v)
		case *Table:
			for _, row := range v.Rows {
				for _, cell := range row.Cells {
					walkParagraphs(cell.Blocks, fn)
				}
			}
		}
	}
}
