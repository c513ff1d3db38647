package styles

import (
	"strconv"

	"github.com/tsawler/docxconv/model"
	"github.com/tsawler/docxconv/props"
)

// Condition names a table region targeted by conditional formatting.
type Condition string

const (
	WholeTable Condition = "wholeTable"
	Band1Vert  Condition = "band1Vert"
	Band2Vert  Condition = "band2Vert"
	Band1Horz  Condition = "band1Horz"
	Band2Horz  Condition = "band2Horz"
	FirstCol   Condition = "firstCol"
	LastCol    Condition = "lastCol"
	FirstRow   Condition = "firstRow"
	LastRow    Condition = "lastRow"
	NECell     Condition = "neCell"
	NWCell     Condition = "nwCell"
	SECell     Condition = "seCell"
	SWCell     Condition = "swCell"
)

// conditionOrder is the application order, lowest precedence first.
var conditionOrder = []Condition{
	WholeTable,
	Band1Vert, Band2Vert,
	Band1Horz, Band2Horz,
	FirstCol, LastCol,
	FirstRow, LastRow,
	NECell, NWCell, SECell, SWCell,
}

// ParseCondition maps a w:tblStylePr type attribute to a Condition.
func ParseCondition(s string) (Condition, bool) {
	for _, c := range conditionOrder {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// TableContext locates a node inside a table: the table itself and the
// zero-based row and grid column of the enclosing cell.
type TableContext struct {
	Table *model.Table
	Row   int
	Col   int
}

// Look is the set of conditional regions a table enables (w:tblLook).
type Look struct {
	FirstRow    bool
	LastRow     bool
	FirstColumn bool
	LastColumn  bool
	NoHBand     bool
	NoVBand     bool
}

// Legacy w:tblLook w:val bit mask.
const (
	lookFirstRow    = 0x0020
	lookLastRow     = 0x0040
	lookFirstColumn = 0x0080
	lookLastColumn  = 0x0100
	lookNoHBand     = 0x0200
	lookNoVBand     = 0x0400
)

// DefaultLook is what Word writes for new tables (04A0).
var DefaultLook = Look{FirstRow: true, FirstColumn: true, NoVBand: true}

// LookFrom reads w:tblLook from resolved table properties. Explicit
// attributes win over the legacy hex mask; no tblLook yields DefaultLook.
func LookFrom(table *props.Set) Look {
	v, ok := table.Get("tblLook")
	if !ok {
		return DefaultLook
	}
	set, ok := v.AsSet()
	if !ok {
		if s, isStr := v.AsString(); isStr {
			return lookFromHex(s)
		}
		return DefaultLook
	}

	var look Look
	if hex, ok := set.Get("val"); ok {
		if s, ok := hex.AsString(); ok {
			look = lookFromHex(s)
		}
	}
	flag := func(key string, dst *bool) {
		if fv, ok := set.Get(key); ok {
			*dst = truthy(fv)
		}
	}
	flag("firstRow", &look.FirstRow)
	flag("lastRow", &look.LastRow)
	flag("firstColumn", &look.FirstColumn)
	flag("lastColumn", &look.LastColumn)
	flag("noHBand", &look.NoHBand)
	flag("noVBand", &look.NoVBand)
	return look
}

func lookFromHex(s string) Look {
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return DefaultLook
	}
	return Look{
		FirstRow:    n&lookFirstRow != 0,
		LastRow:     n&lookLastRow != 0,
		FirstColumn: n&lookFirstColumn != 0,
		LastColumn:  n&lookLastColumn != 0,
		NoHBand:     n&lookNoHBand != 0,
		NoVBand:     n&lookNoVBand != 0,
	}
}

// truthy interprets OOXML on/off values.
func truthy(v props.Value) bool {
	if b, ok := v.AsBool(); ok {
		return b
	}
	if n, ok := v.AsInt(); ok {
		return n != 0
	}
	if s, ok := v.AsString(); ok {
		return s == "true" || s == "on"
	}
	return false
}

// bandSize reads a positive band size from table properties, default 1.
func bandSize(table *props.Set, key string) int {
	v, ok := table.Get(key)
	if !ok {
		return 1
	}
	n, ok := v.AsInt()
	if !ok || n < 1 {
		return 1
	}
	return int(n)
}

// Conditions returns the regions matched by the cell at (row, col) of a
// table with the given dimensions, in application order. Positions
// outside the table match nothing. A negative col matches only
// row-oriented regions, which is what row formatting uses.
func Conditions(look Look, rows, cols, row, col, rowBand, colBand int) []Condition {
	if row < 0 || row >= rows || col >= cols {
		return nil
	}
	rowOnly := col < 0
	if rowBand < 1 {
		rowBand = 1
	}
	if colBand < 1 {
		colBand = 1
	}

	isFirstRow := look.FirstRow && row == 0
	isLastRow := look.LastRow && row == rows-1
	isFirstCol := !rowOnly && look.FirstColumn && col == 0
	isLastCol := !rowOnly && look.LastColumn && col == cols-1

	matched := map[Condition]bool{WholeTable: true}

	if !look.NoVBand && !rowOnly && !isFirstCol && !isLastCol {
		c := col
		if look.FirstColumn {
			c--
		}
		if (c/colBand)%2 == 0 {
			matched[Band1Vert] = true
		} else {
			matched[Band2Vert] = true
		}
	}
	if !look.NoHBand && !isFirstRow && !isLastRow {
		r := row
		if look.FirstRow {
			r--
		}
		if (r/rowBand)%2 == 0 {
			matched[Band1Horz] = true
		} else {
			matched[Band2Horz] = true
		}
	}

	matched[FirstCol] = isFirstCol
	matched[LastCol] = isLastCol
	matched[FirstRow] = isFirstRow
	matched[LastRow] = isLastRow
	matched[NWCell] = isFirstRow && isFirstCol
	matched[NECell] = isFirstRow && isLastCol
	matched[SWCell] = isLastRow && isFirstCol
	matched[SECell] = isLastRow && isLastCol

	var out []Condition
	for _, c := range conditionOrder {
		if matched[c] {
			out = append(out, c)
		}
	}
	return out
}
