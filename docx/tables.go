package docx

import (
	"github.com/tsawler/docxconv/model"
)

// parseTable converts a w:tbl element. Table style and grid are lifted
// out of the properties; vertical merges are recorded per cell and left
// for the renderer to span.
func (bp *bodyParser) parseTable(n *node) *model.Table {
	t := &model.Table{}
	if tblPr := n.child("tblPr"); tblPr != nil {
		t.StyleID = tblPr.child("tblStyle").val()
		t.Props = propertySet(tblPr)
	}
	for _, col := range n.child("tblGrid").children("gridCol") {
		t.Grid = append(t.Grid, intAttr(col, "w", 0))
	}

	for _, tr := range tableRows(n) {
		t.Rows = append(t.Rows, bp.parseRow(tr))
	}
	return t
}

// tableRows returns the w:tr elements of a table, looking through
// content controls and inserted revisions.
func tableRows(n *node) []*node {
	if n == nil {
		return nil
	}
	var rows []*node
	for i := range n.Nodes {
		c := &n.Nodes[i]
		switch c.name() {
		case "tr":
			rows = append(rows, c)
		case "sdt":
			rows = append(rows, tableRows(c.child("sdtContent"))...)
		case "customXml", "ins":
			rows = append(rows, tableRows(c)...)
		}
	}
	return rows
}

func (bp *bodyParser) parseRow(tr *node) *model.Row {
	row := &model.Row{}
	if trPr := tr.child("trPr"); trPr != nil {
		row.Props = propertySet(trPr)
		if h := trPr.child("tblHeader"); h != nil {
			v, ok := h.attr("val")
			row.IsHeader = !ok || onOff(v)
		}
	}
	for _, tc := range rowCells(tr) {
		row.Cells = append(row.Cells, bp.parseCell(tc))
	}
	return row
}

func rowCells(tr *node) []*node {
	if tr == nil {
		return nil
	}
	var cells []*node
	for i := range tr.Nodes {
		c := &tr.Nodes[i]
		switch c.name() {
		case "tc":
			cells = append(cells, c)
		case "sdt":
			cells = append(cells, rowCells(c.child("sdtContent"))...)
		case "customXml":
			cells = append(cells, rowCells(c)...)
		}
	}
	return cells
}

func (bp *bodyParser) parseCell(tc *node) *model.Cell {
	cell := &model.Cell{ColSpan: 1}
	if tcPr := tc.child("tcPr"); tcPr != nil {
		cell.Props = propertySet(tcPr)
		if gs := tcPr.child("gridSpan"); gs != nil {
			if span := intAttr(gs, "val", 1); span > 1 {
				cell.ColSpan = span
			}
		}
		if vm := tcPr.child("vMerge"); vm != nil {
			// a bare vMerge continues the merge above it
			if vm.val() == "restart" {
				cell.VMerge = model.VMergeRestart
			} else {
				cell.VMerge = model.VMergeContinue
			}
		}
	}
	cell.Blocks = bp.parseBlocks(tc)
	return cell
}
