package render

import (
	"strings"
	"testing"

	"github.com/tsawler/docxconv/model"
)

func TestMarkdown(t *testing.T) {
	heading := para(textRun("Report"))
	heading.StyleID = "Heading3"
	link := textRun("site")
	link.Link = "https://example.com"

	tbl := &model.Table{Rows: []*model.Row{
		{Cells: []*model.Cell{textCell("Name"), textCell("Qty")}, IsHeader: true},
		{Cells: []*model.Cell{textCell("Apple"), textCell("10")}},
	}}

	d := doc(
		heading,
		para(textRun("Some "), styledRun("bold", map[string]any{"b": true}), textRun(" and "), styledRun("italic", map[string]any{"i": true})),
		para(textRun("Visit the "), link),
		tbl,
	)

	out, err := newTestConverter().Markdown(d)
	if err != nil {
		t.Fatalf("Markdown() error = %v", err)
	}

	for _, want := range []string{
		"### Report",
		"Some **bold** and *italic*",
		"[site](https://example.com)",
		"| Name",
		"| Apple",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}
	if strings.Contains(out, "style=") || strings.Contains(out, "<span") {
		t.Errorf("markdown leaked html:\n%s", out)
	}
	if !strings.HasSuffix(out, "\n") || strings.HasSuffix(out, "\n\n") {
		t.Errorf("markdown should end with exactly one newline: %q", out)
	}
}

func TestMarkdown_Lists(t *testing.T) {
	d := doc(
		listPara("1", 0, "first"),
		listPara("1", 1, "nested"),
		listPara("1", 0, "second"),
		para(textRun("break")),
		listPara("2", 0, "dot"),
		listPara("1", 0, "third"),
	)

	c := newTestConverter(WithFragment(true), WithStyleMode(StyleNone))
	c.listElements = true
	got := mustHTML(t, c, d)
	want := "<ol><li>first<ol><li>nested</li></ol></li><li>second</li></ol>\n" +
		"<p>break</p>\n" +
		"<ul><li>dot</li></ul>\n" +
		"<ol start=\"3\"><li>third</li></ol>\n"
	if got != want {
		t.Errorf("list html =\n%q\nwant\n%q", got, want)
	}

	out, err := newTestConverter().Markdown(d)
	if err != nil {
		t.Fatal(err)
	}
	for _, w := range []string{"1. first", "nested", "2. second", "break", "- dot", "3. third"} {
		if !strings.Contains(out, w) {
			t.Errorf("missing %q in\n%s", w, out)
		}
	}
	if strings.Contains(out, `\.`) || strings.Contains(out, "\u2022") {
		t.Errorf("list markers written as text:\n%s", out)
	}

	// plain HTML keeps marker spans
	if h := mustHTML(t, newTestConverter(WithFragment(true)), d); strings.Contains(h, "<li>") {
		t.Errorf("html output should not use list elements:\n%s", h)
	}
}
