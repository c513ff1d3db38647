package render

import (
	"strings"
	"testing"

	"github.com/tsawler/docxconv/model"
)

func mustHTML(t *testing.T, c *Converter, d *model.Document) string {
	t.Helper()
	out, err := c.HTML(d)
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	return out
}

func TestHTML_Fragment(t *testing.T) {
	heading := para(textRun("Title"))
	heading.StyleID = "Heading1"
	d := doc(heading, para(textRun("Hello")))

	got := mustHTML(t, newTestConverter(WithFragment(true)), d)
	want := "<h1><span style=\"font-weight: bold\">Title</span></h1>\n<p>Hello</p>\n"
	if got != want {
		t.Errorf("HTML() =\n%q\nwant\n%q", got, want)
	}
}

func TestHTML_Document(t *testing.T) {
	d := doc(para(textRun("Body")))
	d.Metadata.Title = "From Metadata"

	got := mustHTML(t, newTestConverter(WithLanguage("fr")), d)
	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="fr">`,
		`<meta charset="utf-8"/>`,
		"<title>From Metadata</title>",
		"<body><p>Body</p>\n</body></html>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in\n%s", want, got)
		}
	}

	got = mustHTML(t, newTestConverter(WithTitle("Override")), d)
	if !strings.Contains(got, "<title>Override</title>") {
		t.Errorf("title option ignored:\n%s", got)
	}
}

func TestHTML_DocumentHead(t *testing.T) {
	d := doc(para(textRun("Body")))
	viewport := `<meta name="viewport" content="width=device-width, initial-scale=1"/>`

	tests := []struct {
		name    string
		opts    []Option
		want    []string
		notWant []string
	}{
		{
			name:    "responsive by default",
			want:    []string{viewport, "<style>", "max-width: 800px"},
			notWant: []string{"@media print"},
		},
		{
			name:    "responsive off",
			opts:    []Option{WithResponsive(false)},
			notWant: []string{viewport, "<style>"},
		},
		{
			name:    "print styles only",
			opts:    []Option{WithResponsive(false), WithPrintStyles(true)},
			want:    []string{"<style>", "@media print {", "br.page-break { page-break-after: always; }"},
			notWant: []string{viewport, "max-width: 800px"},
		},
		{
			name: "both",
			opts: []Option{WithPrintStyles(true)},
			want: []string{viewport, "max-width: 800px", "@media print {"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustHTML(t, newTestConverter(tt.opts...), d)
			head, _, ok := strings.Cut(got, "</head>")
			if !ok {
				t.Fatalf("no head in\n%s", got)
			}
			for _, w := range tt.want {
				if !strings.Contains(head, w) {
					t.Errorf("head missing %q in\n%s", w, head)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("unexpected %q in\n%s", w, got)
				}
			}
		})
	}

	frag := mustHTML(t, newTestConverter(WithFragment(true), WithPrintStyles(true)), d)
	if strings.Contains(frag, "<style>") || strings.Contains(frag, "viewport") {
		t.Errorf("fragment carries head content:\n%s", frag)
	}
}

func TestHTML_Headings(t *testing.T) {
	tests := []struct {
		name  string
		style string
		props map[string]any
		want  string
	}{
		{"outline level", "", map[string]any{"outlineLvl": 2}, "<h3>"},
		{"deep outline clamps", "", map[string]any{"outlineLvl": 7}, "<h6>"},
		{"body text level", "Heading1", map[string]any{"outlineLvl": 9}, "<p>"},
		{"style id", "Heading3", nil, "<h3>"},
		{"plain", "", nil, "<p>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := para(textRun("x"))
			p.StyleID = tt.style
			if tt.props != nil {
				p.Props = set(tt.props)
			}
			got := mustHTML(t, newTestConverter(WithFragment(true), WithStyleMode(StyleNone)), doc(p))
			if !strings.HasPrefix(got, tt.want) {
				t.Errorf("HTML() = %q, want prefix %q", got, tt.want)
			}
		})
	}
}

func TestHTML_Lists(t *testing.T) {
	bullet := para(textRun("Dot"))
	bullet.StyleID = "ListBullet"
	d := doc(
		listPara("1", 0, "One"),
		listPara("1", 1, "Sub"),
		listPara("1", 1, "Sub"),
		listPara("1", 0, "Two"),
		bullet,
	)

	got := mustHTML(t, newTestConverter(WithFragment(true)), d)
	for _, want := range []string{
		`<p><span class="marker" style="font-weight: bold">1. </span>One</p>`,
		`<p><span class="marker">a) </span>Sub</p>`,
		`<p><span class="marker">b) </span>Sub</p>`,
		`<p><span class="marker" style="font-weight: bold">2. </span>Two</p>`,
		`<p><span class="marker">• </span>Dot</p>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in\n%s", want, got)
		}
	}
}

func TestHTML_Runs(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		run  *model.Run
		want string
	}{
		{
			"inline styles",
			nil,
			styledRun("x", map[string]any{"b": true, "color": "FF0000"}),
			`<p><span style="font-weight: bold; color: #FF0000">x</span></p>`,
		},
		{
			"semantic tags",
			[]Option{WithSemanticTags(true)},
			styledRun("x", map[string]any{"b": true, "i": true, "vertAlign": "superscript"}),
			`<p><strong><em><sup>x</sup></em></strong></p>`,
		},
		{
			"semantic tags keep other css",
			[]Option{WithSemanticTags(true)},
			styledRun("y", map[string]any{"u": "single", "color": "00FF00"}),
			`<p><span style="color: #00FF00"><u>y</u></span></p>`,
		},
		{
			"style mode none",
			[]Option{WithStyleMode(StyleNone)},
			styledRun("z", map[string]any{"b": true}),
			`<p>z</p>`,
		},
		{
			"hidden text",
			nil,
			styledRun("secret", map[string]any{"vanish": true}),
			`<p></p>`,
		},
		{
			"tabs and breaks",
			nil,
			&model.Run{Items: []model.RunItem{
				{Kind: model.RunText, Text: "a"},
				{Kind: model.RunTab},
				{Kind: model.RunText, Text: "b"},
				{Kind: model.RunBreak},
				{Kind: model.RunText, Text: "c"},
				{Kind: model.RunPageBreak},
			}},
			"<p>a\tb<br/>c<br class=\"page-break\"/></p>",
		},
		{
			"escaping",
			nil,
			textRun("a < b & c"),
			`<p>a &lt; b &amp; c</p>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]Option{WithFragment(true)}, tt.opts...)
			got := mustHTML(t, newTestConverter(opts...), doc(para(tt.run)))
			if got != tt.want+"\n" {
				t.Errorf("HTML() =\n%q\nwant\n%q", got, tt.want+"\n")
			}
		})
	}
}

func TestHTML_Hyperlinks(t *testing.T) {
	a, b := textRun("a"), textRun("b")
	a.Link, b.Link = "https://example.com", "https://example.com"
	other := textRun("d")
	other.Link = "#intro"

	got := mustHTML(t, newTestConverter(WithFragment(true)), doc(para(a, b, textRun("c"), other)))
	want := `<p><a href="https://example.com">ab</a>c<a href="#intro">d</a></p>` + "\n"
	if got != want {
		t.Errorf("HTML() =\n%q\nwant\n%q", got, want)
	}
}

func TestHTML_Sanitize(t *testing.T) {
	r := textRun("click")
	r.Link = "javascript:alert(1)"

	got := mustHTML(t, newTestConverter(WithFragment(true), WithSanitize(true)), doc(para(r)))
	if strings.Contains(got, "javascript:") {
		t.Errorf("unsafe link survived: %s", got)
	}
	if !strings.Contains(got, "click") {
		t.Errorf("text lost: %s", got)
	}
}

func mergedTable() *model.Table {
	a := textCell("A")
	a.ColSpan = 2
	b := textCell("B")
	b.VMerge = model.VMergeRestart
	d := textCell("D")
	d.VMerge = model.VMergeContinue

	return &model.Table{
		StyleID: "TableGrid",
		Grid:    []int{2000, 2000},
		Rows: []*model.Row{
			{Cells: []*model.Cell{a}, IsHeader: true},
			{Cells: []*model.Cell{b, textCell("C")}},
			{Cells: []*model.Cell{d, textCell("E")}},
		},
	}
}

func TestHTML_Table(t *testing.T) {
	got := mustHTML(t, newTestConverter(WithFragment(true)), doc(mergedTable()))

	line := "0.5pt solid #000000"
	for _, want := range []string{
		`<table style="border-collapse: collapse; border-top: ` + line + `"><thead><tr>`,
		`<th colspan="2" style="border-bottom: ` + line + `"><p><span style="font-weight: bold">A</span></p>`,
		`</thead><tbody><tr>`,
		`<td rowspan="2" style="border-top: ` + line + `; border-right: ` + line + `"><p>B</p>`,
		`<td style="border-top: ` + line + `; border-left: ` + line + `"><p>E</p>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in\n%s", want, got)
		}
	}
	if !strings.Contains(got, "<p>B</p>\n<p>D</p>\n</td>") {
		t.Errorf("continuation content should join the merged cell:\n%s", got)
	}
	if strings.Contains(got, "<td><p>D</p>") {
		t.Errorf("continuation cell rendered on its own:\n%s", got)
	}
}

func TestHTML_MergedCellListCounters(t *testing.T) {
	restart := cell(listPara("1", 0, "a"))
	restart.VMerge = model.VMergeRestart
	cont := cell(listPara("1", 0, "b"), para())
	cont.VMerge = model.VMergeContinue
	tbl := &model.Table{Rows: []*model.Row{
		{Cells: []*model.Cell{restart}},
		{Cells: []*model.Cell{cont}},
	}}
	d := doc(tbl, listPara("1", 0, "after"))

	conv := newTestConverter(WithFragment(true), WithStyleMode(StyleNone), WithTableMode(TableTabs))
	got := mustHTML(t, conv, d)
	for _, want := range []string{
		`<td rowspan="2"><p><span class="marker">1. </span>a</p>` + "\n" + `<p><span class="marker">2. </span>b</p>` + "\n</td>",
		`<span class="marker">3. </span>after`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in\n%s", want, got)
		}
	}
	if strings.Contains(got, "<p></p>") {
		t.Errorf("empty continuation paragraph rendered:\n%s", got)
	}

	text, err := conv.Text(d)
	if err != nil {
		t.Fatal(err)
	}
	if want := "1.\ta\n2.\tb\n\n3.\tafter"; text != want {
		t.Errorf("Text() = %q, want %q", text, want)
	}
}

func TestHTML_ListCountersAcrossTables(t *testing.T) {
	tbl := &model.Table{Rows: []*model.Row{
		{Cells: []*model.Cell{cell(listPara("1", 0, "in cell"))}},
	}}
	d := doc(listPara("1", 0, "before"), tbl, listPara("1", 0, "after"))

	got := mustHTML(t, newTestConverter(WithFragment(true), WithStyleMode(StyleNone)), d)
	for _, want := range []string{
		`<span class="marker">1. </span>before`,
		`<span class="marker">2. </span>in cell`,
		`<span class="marker">3. </span>after`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in\n%s", want, got)
		}
	}
}
