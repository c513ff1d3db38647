package styles

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/tsawler/docxconv/model"
	"github.com/tsawler/docxconv/props"
)

func set(m map[string]any) *props.Set { return props.MustFromMap(m) }

func get(t *testing.T, s *props.Set, path ...string) props.Value {
	t.Helper()
	v, ok := s.Lookup(path...)
	if !ok {
		t.Fatalf("%s missing from %v", strings.Join(path, "."), s)
	}
	return v
}

func testCatalog() *Catalog {
	return NewCatalog(
		Defaults{
			Paragraph: set(map[string]any{"spacing": map[string]any{"after": 160, "line": 259}}),
			Run:       set(map[string]any{"rFonts": map[string]any{"ascii": "Calibri"}, "sz": 22}),
		},
		&Style{ID: "Normal", Type: TypeParagraph, Default: true},
		&Style{
			ID: "Heading1", Type: TypeParagraph, BasedOn: "Normal", Link: "Heading1Char",
			Formatting: Formatting{
				Paragraph: set(map[string]any{"outlineLvl": 0, "spacing": map[string]any{"before": 240}}),
				Run:       set(map[string]any{"b": true, "sz": 32, "color": "2F5496"}),
			},
		},
		&Style{
			ID: "Custom", Type: TypeParagraph, BasedOn: "Heading1",
			Formatting: Formatting{
				Paragraph: set(map[string]any{"jc": "center"}),
				Run:       set(map[string]any{"i": true}),
			},
		},
		&Style{
			ID: "Heading1Char", Type: TypeCharacter,
			Formatting: Formatting{Run: set(map[string]any{"caps": true})},
		},
		&Style{
			ID: "Emphasis", Type: TypeCharacter,
			Formatting: Formatting{Run: set(map[string]any{"i": true, "color": "FF0000"})},
		},
		&Style{ID: "LoopA", Type: TypeParagraph, BasedOn: "LoopB",
			Formatting: Formatting{Paragraph: set(map[string]any{"jc": "right"})}},
		&Style{ID: "LoopB", Type: TypeParagraph, BasedOn: "LoopA",
			Formatting: Formatting{Paragraph: set(map[string]any{"jc": "left", "keepNext": true})}},
	)
}

func TestResolver_ParagraphCascade(t *testing.T) {
	r := NewResolver(testCatalog())
	p := &model.Paragraph{
		StyleID: "Custom",
		Props:   set(map[string]any{"spacing": map[string]any{"after": 0}}),
	}

	got := r.Paragraph(p, nil)

	tests := []struct {
		path []string
		want props.Value
	}{
		{[]string{"jc"}, props.String("center")},               // leaf style
		{[]string{"outlineLvl"}, props.Int(0)},                 // inherited from Heading1
		{[]string{"spacing", "before"}, props.Int(240)},        // Heading1, nested merge
		{[]string{"spacing", "after"}, props.Int(0)},           // direct wins
		{[]string{"spacing", "line"}, props.Int(259)},          // document default
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.path, "."), func(t *testing.T) {
			if v := get(t, got, tt.path...); !v.Equal(tt.want) {
				t.Errorf("%v = %v, want %v", tt.path, v, tt.want)
			}
		})
	}
}

func TestResolver_DefaultParagraphStyle(t *testing.T) {
	c := testCatalog()
	c.Add(&Style{ID: "Body", Type: TypeParagraph, Default: false})
	normal, _ := c.Style("Normal")
	normal.Paragraph = set(map[string]any{"jc": "both"})

	r := NewResolver(c)
	got := r.Paragraph(&model.Paragraph{}, nil)
	if v := get(t, got, "jc"); !v.Equal(props.String("both")) {
		t.Errorf("jc = %v, want both from default style", v)
	}
}

func TestResolver_RunCascade(t *testing.T) {
	r := NewResolver(testCatalog())
	p := &model.Paragraph{StyleID: "Heading1"}

	t.Run("paragraph style run props", func(t *testing.T) {
		got := r.Run(&model.Run{}, p, nil)
		if v := get(t, got, "b"); !v.Equal(props.Bool(true)) {
			t.Errorf("b = %v, want true", v)
		}
		if v := get(t, got, "sz"); !v.Equal(props.Int(32)) {
			t.Errorf("sz = %v, want 32", v)
		}
		if v := get(t, got, "rFonts", "ascii"); !v.Equal(props.String("Calibri")) {
			t.Errorf("rFonts.ascii = %v, want Calibri", v)
		}
	})

	t.Run("character style over paragraph style", func(t *testing.T) {
		got := r.Run(&model.Run{StyleID: "Emphasis"}, p, nil)
		if v := get(t, got, "color"); !v.Equal(props.String("FF0000")) {
			t.Errorf("color = %v, want FF0000", v)
		}
		if v := get(t, got, "b"); !v.Equal(props.Bool(true)) {
			t.Errorf("b = %v, want true", v)
		}
	})

	t.Run("direct over character style", func(t *testing.T) {
		run := &model.Run{StyleID: "Emphasis", Props: set(map[string]any{"i": false})}
		got := r.Run(run, p, nil)
		if v := get(t, got, "i"); !v.Equal(props.Bool(false)) {
			t.Errorf("i = %v, want false", v)
		}
	})

	t.Run("paragraph style used as run style follows link", func(t *testing.T) {
		got := r.Run(&model.Run{StyleID: "Heading1"}, &model.Paragraph{}, nil)
		if v := get(t, got, "caps"); !v.Equal(props.Bool(true)) {
			t.Errorf("caps = %v, want true from linked Heading1Char", v)
		}
	})
}

func TestResolver_MissingStyles(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	r := NewResolver(testCatalog(), WithLogger(logger))

	p := &model.Paragraph{StyleID: "DoesNotExist", Props: set(map[string]any{"jc": "right"})}
	got := r.Paragraph(p, nil)
	if v := get(t, got, "jc"); !v.Equal(props.String("right")) {
		t.Errorf("jc = %v, want right", v)
	}
	if v := get(t, got, "spacing", "after"); !v.Equal(props.Int(160)) {
		t.Errorf("defaults should still apply, spacing.after = %v", v)
	}
	if !strings.Contains(buf.String(), "unknown style") {
		t.Errorf("expected unknown style warning, log: %s", buf.String())
	}

	run := r.Run(&model.Run{StyleID: "Nope"}, p, nil)
	if v := get(t, run, "sz"); !v.Equal(props.Int(22)) {
		t.Errorf("sz = %v, want 22", v)
	}
}

func TestResolver_CycleTerminates(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	r := NewResolver(testCatalog(), WithLogger(logger))

	p := &model.Paragraph{StyleID: "LoopA"}
	first := r.Paragraph(p, nil)
	second := r.Paragraph(p, nil)

	// chain is LoopB (root) then LoopA, so LoopA wins jc
	if v := get(t, first, "jc"); !v.Equal(props.String("right")) {
		t.Errorf("jc = %v, want right", v)
	}
	if v := get(t, first, "keepNext"); !v.Equal(props.Bool(true)) {
		t.Errorf("keepNext = %v, want true", v)
	}
	if !first.Equal(second) {
		t.Errorf("resolution not deterministic: %v vs %v", first, second)
	}
	if !strings.Contains(buf.String(), "style inheritance cycle") {
		t.Errorf("expected cycle warning, log: %s", buf.String())
	}
}

func TestResolver_PureAndConcurrent(t *testing.T) {
	c := testCatalog()
	r := NewResolver(c)
	p := &model.Paragraph{StyleID: "Custom", Props: set(map[string]any{"jc": "left"})}
	directBefore := p.Props.Clone()
	h1, _ := c.Style("Heading1")
	h1Before := h1.Paragraph.Clone()

	want := r.Paragraph(p, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if got := r.Paragraph(p, nil); !got.Equal(want) {
					t.Errorf("concurrent result differs: %v", got)
					return
				}
			}
		}()
	}
	wg.Wait()

	if !p.Props.Equal(directBefore) {
		t.Error("direct properties mutated")
	}
	if !h1.Paragraph.Equal(h1Before) {
		t.Error("style properties mutated")
	}
}

func TestResolver_ExplicitNulls(t *testing.T) {
	p := &model.Paragraph{StyleID: "Heading1"}
	run := &model.Run{Props: props.NewSet().Put("color", props.Null())}

	got := NewResolver(testCatalog()).Run(run, p, nil)
	if v := get(t, got, "color"); !v.Equal(props.String("2F5496")) {
		t.Errorf("default mode: color = %v, want inherited 2F5496", v)
	}

	got = NewResolver(testCatalog(), WithExplicitNulls()).Run(run, p, nil)
	if got.Has("color") {
		t.Errorf("explicit nulls: color should be cleared, got %v", got)
	}
}

func tableCatalog() *Catalog {
	c := testCatalog()
	c.Add(&Style{
		ID: "GridTable", Type: TypeTable,
		Formatting: Formatting{
			Table:     set(map[string]any{"tblBorders": map[string]any{"top": map[string]any{"val": "single"}}}),
			Paragraph: set(map[string]any{"spacing": map[string]any{"after": 0}}),
			Cell:      set(map[string]any{"tcMar": map[string]any{"left": 108}}),
		},
		Conditions: map[Condition]*Formatting{
			FirstRow: {
				Run:  set(map[string]any{"b": true}),
				Cell: set(map[string]any{"shd": map[string]any{"fill": "4472C4"}}),
				Row:  set(map[string]any{"tblHeader": true}),
			},
			Band1Horz: {
				Cell: set(map[string]any{"shd": map[string]any{"fill": "D9E2F3"}}),
			},
		},
	})
	return c
}

func testTable() *model.Table {
	row := func() *model.Row {
		return &model.Row{Cells: []*model.Cell{{}, {}}}
	}
	return &model.Table{
		StyleID: "GridTable",
		Grid:    []int{2000, 2000},
		Rows:    []*model.Row{row(), row(), row()},
	}
}

func TestResolver_TableConditional(t *testing.T) {
	r := NewResolver(tableCatalog())
	tbl := testTable()

	t.Run("table", func(t *testing.T) {
		got := r.Table(tbl)
		if v := get(t, got, "tblBorders", "top", "val"); !v.Equal(props.String("single")) {
			t.Errorf("top border = %v", v)
		}
	})

	t.Run("header cell", func(t *testing.T) {
		got := r.Cell(tbl, 0, 0)
		if v := get(t, got, "shd", "fill"); !v.Equal(props.String("4472C4")) {
			t.Errorf("fill = %v, want 4472C4", v)
		}
		if v := get(t, got, "tcMar", "left"); !v.Equal(props.Int(108)) {
			t.Errorf("tcMar.left = %v, want 108", v)
		}
	})

	t.Run("banded body cell", func(t *testing.T) {
		got := r.Cell(tbl, 1, 1)
		if v := get(t, got, "shd", "fill"); !v.Equal(props.String("D9E2F3")) {
			t.Errorf("fill = %v, want D9E2F3", v)
		}
	})

	t.Run("second band has no fill", func(t *testing.T) {
		got := r.Cell(tbl, 2, 1)
		if got.Has("shd") {
			t.Errorf("row 2 should not be shaded: %v", got)
		}
	})

	t.Run("direct cell props win", func(t *testing.T) {
		tbl.Rows[0].Cells[1].Props = set(map[string]any{"shd": map[string]any{"fill": "FFFFFF"}})
		got := r.Cell(tbl, 0, 1)
		if v := get(t, got, "shd", "fill"); !v.Equal(props.String("FFFFFF")) {
			t.Errorf("fill = %v, want FFFFFF", v)
		}
	})

	t.Run("header row", func(t *testing.T) {
		got := r.Row(tbl, 0)
		if v := get(t, got, "tblHeader"); !v.Equal(props.Bool(true)) {
			t.Errorf("tblHeader = %v", v)
		}
		if r.Row(tbl, 1).Has("tblHeader") {
			t.Error("body row should not be a header")
		}
	})

	t.Run("run in header cell", func(t *testing.T) {
		p := &model.Paragraph{}
		got := r.Run(&model.Run{}, p, &TableContext{Table: tbl, Row: 0, Col: 0})
		if v := get(t, got, "b"); !v.Equal(props.Bool(true)) {
			t.Errorf("b = %v, want true", v)
		}
		body := r.Run(&model.Run{}, p, &TableContext{Table: tbl, Row: 1, Col: 0})
		if body.Has("b") {
			t.Errorf("body run should not be bold: %v", body)
		}
	})

	t.Run("paragraph in table", func(t *testing.T) {
		got := r.Paragraph(&model.Paragraph{}, &TableContext{Table: tbl, Row: 1, Col: 0})
		if v := get(t, got, "spacing", "after"); !v.Equal(props.Int(0)) {
			t.Errorf("spacing.after = %v, want 0 from table style", v)
		}
	})

	t.Run("out of range contributes nothing", func(t *testing.T) {
		got := r.Run(&model.Run{}, &model.Paragraph{}, &TableContext{Table: tbl, Row: 10, Col: 0})
		if got.Has("b") {
			t.Errorf("out of range run got conditional formatting: %v", got)
		}
		if r.Cell(tbl, 10, 10).Has("shd") {
			t.Error("out of range cell got conditional formatting")
		}
	})
}

type fakeLevels map[string][2]*props.Set

func (f fakeLevels) LevelProperties(id string, level int) (*props.Set, *props.Set) {
	v, ok := f[id]
	if !ok || level != 0 {
		return nil, nil
	}
	return v[0], v[1]
}

func TestResolver_NumberingLayers(t *testing.T) {
	c := testCatalog()
	c.Add(&Style{
		ID: "ListBullet", Type: TypeParagraph, BasedOn: "Normal",
		Numbering: &model.NumberingRef{InstanceID: "7", Level: 0},
	})
	levels := fakeLevels{
		"7": {
			set(map[string]any{"ind": map[string]any{"left": 720, "hanging": 360}}),
			set(map[string]any{"rFonts": map[string]any{"ascii": "Symbol"}}),
		},
	}
	r := NewResolver(c, WithLevels(levels))

	t.Run("numbering from style", func(t *testing.T) {
		ref, ok := r.Numbering(&model.Paragraph{StyleID: "ListBullet"})
		if !ok || ref.InstanceID != "7" || ref.Level != 0 {
			t.Errorf("Numbering() = %+v, %v", ref, ok)
		}
	})

	t.Run("direct numbering wins", func(t *testing.T) {
		p := &model.Paragraph{StyleID: "ListBullet", Numbering: &model.NumberingRef{InstanceID: "9", Level: 2}}
		ref, ok := r.Numbering(p)
		if !ok || ref.InstanceID != "9" || ref.Level != 2 {
			t.Errorf("Numbering() = %+v, %v", ref, ok)
		}
	})

	t.Run("direct level with style instance", func(t *testing.T) {
		p := &model.Paragraph{StyleID: "ListBullet", Numbering: &model.NumberingRef{Level: 1}}
		ref, ok := r.Numbering(p)
		if !ok || ref.InstanceID != "7" || ref.Level != 1 {
			t.Errorf("Numbering() = %+v, %v", ref, ok)
		}
	})

	t.Run("instance zero removes numbering", func(t *testing.T) {
		p := &model.Paragraph{StyleID: "ListBullet", Numbering: &model.NumberingRef{InstanceID: "0"}}
		if _, ok := r.Numbering(p); ok {
			t.Error("numId 0 should disable numbering")
		}
	})

	t.Run("level paragraph props", func(t *testing.T) {
		p := &model.Paragraph{StyleID: "ListBullet"}
		got := r.Paragraph(p, nil)
		if v := get(t, got, "ind", "left"); !v.Equal(props.Int(720)) {
			t.Errorf("ind.left = %v, want 720", v)
		}
		p.Props = set(map[string]any{"ind": map[string]any{"left": 1440}})
		got = r.Paragraph(p, nil)
		if v := get(t, got, "ind", "left"); !v.Equal(props.Int(1440)) {
			t.Errorf("direct ind.left = %v, want 1440", v)
		}
		if v := get(t, got, "ind", "hanging"); !v.Equal(props.Int(360)) {
			t.Errorf("ind.hanging = %v, want 360", v)
		}
	})

	t.Run("marker run props", func(t *testing.T) {
		got := r.Marker(&model.Paragraph{StyleID: "ListBullet"}, nil)
		if v := get(t, got, "rFonts", "ascii"); !v.Equal(props.String("Symbol")) {
			t.Errorf("marker font = %v, want Symbol", v)
		}
		if v := get(t, got, "sz"); !v.Equal(props.Int(22)) {
			t.Errorf("marker sz = %v, want 22", v)
		}
	})
}

func TestResolver_NilInputs(t *testing.T) {
	r := NewResolver(nil)
	if got := r.Paragraph(nil, nil); got == nil || got.Len() != 0 {
		t.Errorf("Paragraph(nil) = %v, want empty set", got)
	}
	if got := r.Run(nil, nil, nil); got == nil {
		t.Error("Run(nil) returned nil")
	}
	if got := r.Cell(nil, 0, 0); got == nil {
		t.Error("Cell(nil) returned nil")
	}
}
