package render

import (
	"testing"

	"github.com/tsawler/docxconv/model"
)

func mustText(t *testing.T, c *Converter, d *model.Document) string {
	t.Helper()
	out, err := c.Text(d)
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	return out
}

func TestText_Paragraphs(t *testing.T) {
	bullet := para(textRun("Dot"))
	bullet.StyleID = "ListBullet"
	d := doc(
		para(textRun("Intro")),
		para(),
		listPara("1", 0, "One"),
		listPara("1", 1, "Sub"),
		bullet,
	)

	tests := []struct {
		name string
		opts []Option
		want string
	}{
		{"default separator", nil, "Intro\n\n1.\tOne\n\na)\tSub\n\n• Dot"},
		{"single newline", []Option{WithParagraphSeparator("\n")}, "Intro\n1.\tOne\na)\tSub\n• Dot"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustText(t, newTestConverter(tt.opts...), d); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestText_Runs(t *testing.T) {
	d := doc(para(
		styledRun("shout ", map[string]any{"caps": true}),
		styledRun("hidden", map[string]any{"vanish": true}),
		styledRun("quiet", map[string]any{"smallCaps": true}),
		&model.Run{Items: []model.RunItem{{Kind: model.RunTab}, {Kind: model.RunText, Text: "x"}, {Kind: model.RunBreak}}},
	))

	want := "SHOUT QUIET\tx\n"
	if got := mustText(t, newTestConverter(), d); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func borderlessTable() *model.Table {
	return &model.Table{Rows: []*model.Row{
		{Cells: []*model.Cell{textCell("Name"), textCell("Qty")}},
		{Cells: []*model.Cell{textCell("Apple"), textCell("10")}},
	}}
}

func TestText_TableModes(t *testing.T) {
	tests := []struct {
		name string
		mode TableMode
		want string
	}{
		{"tabs", TableTabs, "Name\tQty\nApple\t10"},
		{"plain", TablePlain, "Name  Qty\nApple  10"},
		{"ascii", TableASCII, "" +
			"+-------+-----+\n" +
			"| Name  | Qty |\n" +
			"+-------+-----+\n" +
			"| Apple | 10  |\n" +
			"+-------+-----+"},
		{"auto without borders", TableAuto, "Name\tQty\nApple\t10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustText(t, newTestConverter(WithTableMode(tt.mode)), doc(borderlessTable()))
			if got != tt.want {
				t.Errorf("Text() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestText_AutoPartialBorders(t *testing.T) {
	line := map[string]any{"val": "single", "sz": 4}

	t.Run("table borders", func(t *testing.T) {
		tbl := borderlessTable()
		tbl.Props = set(map[string]any{"tblBorders": map[string]any{
			"top": line, "bottom": line, "left": map[string]any{"val": "none"},
		}})
		want := "" +
			"---------------\n" +
			"  Name    Qty  \n" +
			"  Apple   10   \n" +
			"---------------"
		if got := mustText(t, newTestConverter(), doc(tbl)); got != want {
			t.Errorf("Text() =\n%s\nwant\n%s", got, want)
		}
	})

	t.Run("inferred from cells", func(t *testing.T) {
		tbl := borderlessTable()
		for _, c := range tbl.Rows[0].Cells {
			c.Props = set(map[string]any{"tcBorders": map[string]any{"bottom": line}})
		}
		want := "" +
			"  Name    Qty  \n" +
			"---------------\n" +
			"  Apple   10   "
		if got := mustText(t, newTestConverter(), doc(tbl)); got != want {
			t.Errorf("Text() =\n%s\nwant\n%s", got, want)
		}
	})

	t.Run("style borders", func(t *testing.T) {
		tbl := borderlessTable()
		tbl.StyleID = "TableGrid"
		want := "" +
			"--------+------\n" +
			"  Name  | Qty  \n" +
			"--------+------\n" +
			"  Apple | 10   "
		if got := mustText(t, newTestConverter(), doc(tbl)); got != want {
			t.Errorf("Text() =\n%s\nwant\n%s", got, want)
		}
	})
}

func TestText_WideCharacters(t *testing.T) {
	tbl := &model.Table{Rows: []*model.Row{
		{Cells: []*model.Cell{textCell("日本"), textCell("x")}},
		{Cells: []*model.Cell{textCell("a"), textCell("y")}},
	}}
	want := "" +
		"+------+---+\n" +
		"| 日本 | x |\n" +
		"+------+---+\n" +
		"| a    | y |\n" +
		"+------+---+"
	if got := mustText(t, newTestConverter(WithTableMode(TableASCII)), doc(tbl)); got != want {
		t.Errorf("Text() =\n%s\nwant\n%s", got, want)
	}
}

func TestText_CellContent(t *testing.T) {
	tbl := &model.Table{Rows: []*model.Row{
		{Cells: []*model.Cell{
			cell(para(textRun("two")), para(), para(textRun("lines"))),
			textCell("b"),
		}},
	}}

	if got, want := mustText(t, newTestConverter(WithTableMode(TableTabs)), doc(tbl)), "two\nlines\tb"; got != want {
		t.Errorf("tabs: Text() = %q, want %q", got, want)
	}
	if got, want := mustText(t, newTestConverter(WithTableMode(TableASCII)), doc(tbl)), ""+
		"+-----------+---+\n"+
		"| two lines | b |\n"+
		"+-----------+---+"; got != want {
		t.Errorf("ascii: Text() =\n%s\nwant\n%s", got, want)
	}
}
