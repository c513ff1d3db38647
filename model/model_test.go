package model

import (
	"testing"
)

func para(text string) *Paragraph {
	r := &Run{}
	r.AddText(text)
	return &Paragraph{Runs: []*Run{r}}
}

func TestDocument_ParagraphsInOrder(t *testing.T) {
	doc := NewDocument()
	doc.AddBlock(para("one"))
	doc.AddBlock(&Table{
		Rows: []*Row{
			{Cells: []*Cell{
				{Blocks: []Block{para("a1")}},
				{Blocks: []Block{para("b1")}},
			}},
			{Cells: []*Cell{
				{Blocks: []Block{para("a2")}},
			}},
		},
	})
	doc.AddBlock(para("two"))

	want := []string{"one", "a1", "b1", "a2", "two"}
	got := doc.Paragraphs()
	if len(got) != len(want) {
		t.Fatalf("got %d paragraphs, want %d", len(got), len(want))
	}
	for i, p := range got {
		if p.Text() != want[i] {
			t.Errorf("paragraph %d = %q, want %q", i, p.Text(), want[i])
		}
	}
	if len(doc.Tables()) != 1 {
		t.Errorf("Tables() = %d, want 1", len(doc.Tables()))
	}
}

func TestRun_Text(t *testing.T) {
	r := &Run{Items: []RunItem{
		{Kind: RunText, Text: "a"},
		{Kind: RunTab},
		{Kind: RunText, Text: "b"},
		{Kind: RunBreak},
	}}
	if got := r.Text(); got != "a\tb\n" {
		t.Errorf("Text() = %q, want %q", got, "a\tb\n")
	}
}

func TestTable_CellWithSpans(t *testing.T) {
	wide := &Cell{ColSpan: 2}
	last := &Cell{}
	tbl := &Table{Rows: []*Row{{Cells: []*Cell{wide, last}}}}

	tests := []struct {
		col  int
		want *Cell
	}{
		{0, wide},
		{1, wide},
		{2, last},
		{3, nil},
		{-1, nil},
	}
	for _, tt := range tests {
		if got := tbl.Cell(0, tt.col); got != tt.want {
			t.Errorf("Cell(0, %d) = %p, want %p", tt.col, got, tt.want)
		}
	}
	if tbl.ColCount() != 3 {
		t.Errorf("ColCount() = %d, want 3", tbl.ColCount())
	}
	if tbl.Cell(1, 0) != nil {
		t.Error("out of range row should be nil")
	}
}

func TestNumberingRef_IsNone(t *testing.T) {
	if !(NumberingRef{InstanceID: "0"}).IsNone() {
		t.Error(`instance "0" should mean no numbering`)
	}
	if (NumberingRef{InstanceID: "3"}).IsNone() {
		t.Error(`instance "3" should be numbered`)
	}
}
