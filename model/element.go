package model

import (
	"strings"

	"github.com/tsawler/docxconv/props"
)

// BlockType represents the type of body element.
type BlockType int

const (
	BlockTypeUnknown BlockType = iota
	BlockTypeParagraph
	BlockTypeTable
)

func (bt BlockType) String() string {
	switch bt {
	case BlockTypeParagraph:
		return "Paragraph"
	case BlockTypeTable:
		return "Table"
	default:
		return "Unknown"
	}
}

// Block is the interface for body elements.
type Block interface {
	Type() BlockType
}

// NumberingRef points a paragraph at a numbering instance and level.
type NumberingRef struct {
	InstanceID string
	Level      int
}

// IsNone reports whether the reference explicitly removes numbering.
// Word uses instance id "0" for that. An empty instance id means only the
// level was given and the instance comes from the paragraph style.
func (r NumberingRef) IsNone() bool {
	return r.InstanceID == "0"
}

// Paragraph represents a paragraph (<w:p>).
type Paragraph struct {
	StyleID   string
	Props     *props.Set
	Numbering *NumberingRef
	Runs      []*Run
}

func (p *Paragraph) Type() BlockType { return BlockTypeParagraph }

// Text returns the concatenated text of all runs.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text())
	}
	return sb.String()
}

// IsEmpty reports whether the paragraph has no visible content.
func (p *Paragraph) IsEmpty() bool {
	for _, r := range p.Runs {
		if len(r.Items) > 0 {
			return false
		}
	}
	return true
}

// RunItemKind identifies the content carried by a RunItem.
type RunItemKind int

const (
	RunText RunItemKind = iota
	RunTab
	RunBreak
	RunPageBreak
)

// RunItem is one piece of run content in order.
type RunItem struct {
	Kind RunItemKind
	Text string
}

// Run represents a text run (<w:r>).
type Run struct {
	StyleID string
	Props   *props.Set
	Items   []RunItem
	// Link is the hyperlink target when the run sits inside <w:hyperlink>.
	Link string
}

// AddText appends a text item.
func (r *Run) AddText(s string) {
	if s == "" {
		return
	}
	r.Items = append(r.Items, RunItem{Kind: RunText, Text: s})
}

// Text returns the run text with tabs as "\t" and breaks as "\n".
func (r *Run) Text() string {
	var sb strings.Builder
	for _, item := range r.Items {
		switch item.Kind {
		case RunText:
			sb.WriteString(item.Text)
		case RunTab:
			sb.WriteString("\t")
		case RunBreak, RunPageBreak:
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
