package docx

import (
	"strconv"

	"github.com/tsawler/docxconv/props"
)

// toggles are on/off properties: present means on unless w:val says off.
var toggles = map[string]bool{
	"b": true, "bCs": true, "i": true, "iCs": true,
	"caps": true, "smallCaps": true, "strike": true, "dstrike": true,
	"outline": true, "shadow": true, "emboss": true, "imprint": true,
	"vanish": true, "webHidden": true, "specVanish": true, "noProof": true,
	"rtl": true, "cs": true, "oMath": true,
	"keepNext": true, "keepLines": true, "pageBreakBefore": true,
	"widowControl": true, "suppressLineNumbers": true, "suppressAutoHyphens": true,
	"contextualSpacing": true, "bidi": true, "mirrorIndents": true,
	"snapToGrid": true, "wordWrap": true, "adjustRightInd": true,
	"tblHeader": true, "cantSplit": true, "noWrap": true, "hideMark": true,
	"tcFitText": true, "bidiVisual": true, "isLgl": true,
}

// numericVals lists elements whose w:val is an integer.
var numericVals = map[string]bool{
	"sz": true, "szCs": true, "kern": true, "spacing": true, "position": true,
	"w": true, "outlineLvl": true, "gridSpan": true, "ilvl": true,
	"tblStyleRowBandSize": true, "tblStyleColBandSize": true,
	"start": true, "lvlRestart": true, "startOverride": true,
}

// numericAttrs lists attributes that are measures or counts.
var numericAttrs = map[string]bool{
	"w": true, "before": true, "after": true, "line": true,
	"beforeLines": true, "afterLines": true,
	"left": true, "right": true, "start": true, "end": true,
	"firstLine": true, "hanging": true, "leftChars": true, "rightChars": true,
	"firstLineChars": true, "hangingChars": true,
	"sz": true, "space": true, "pos": true,
	"top": true, "bottom": true, "h": true,
	"tblpX": true, "tblpY": true,
}

// skipped are elements that never become formatting: references lifted
// into model fields, revision tracking and section layout.
var skipped = map[string]bool{
	"pStyle": true, "rStyle": true, "tblStyle": true, "numPr": true,
	"rPr": true, "sectPr": true, "cnfStyle": true,
	"pPrChange": true, "rPrChange": true, "tblPrChange": true,
	"trPrChange": true, "tcPrChange": true, "tblPrExChange": true,
	"ins": true, "del": true, "moveFrom": true, "moveTo": true,
	"gridSpan": true, "vMerge": true, "hMerge": true,
}

// propertySet converts a property container (pPr, rPr, tblPr, trPr, tcPr)
// into a property set. Lifted and revision elements are dropped; the
// caller reads lifted references from the node directly. A nil node
// yields nil.
func propertySet(n *node) *props.Set {
	if n == nil {
		return nil
	}
	out := props.NewSet()
	for i := range n.Nodes {
		c := &n.Nodes[i]
		if skipped[c.name()] {
			continue
		}
		out.Put(c.name(), elementValue(c))
	}
	if out.Empty() {
		return nil
	}
	return out
}

// elementValue decodes one formatting element.
func elementValue(n *node) props.Value {
	name := n.name()
	attrs := n.elementAttrs()

	if toggles[name] && len(n.Nodes) == 0 {
		v, ok := n.attr("val")
		return props.Bool(!ok || onOff(v))
	}
	if name == "tabs" {
		return tabList(n)
	}
	if len(n.Nodes) == 0 {
		switch {
		case len(attrs) == 0:
			return props.Bool(true)
		case len(attrs) == 1 && attrs[0].Name.Local == "val":
			return scalar(name, "val", attrs[0].Value)
		}
	}

	set := props.NewSet()
	for _, a := range attrs {
		set.Put(a.Name.Local, scalar(name, a.Name.Local, a.Value))
	}
	for i := range n.Nodes {
		c := &n.Nodes[i]
		if skipped[c.name()] {
			continue
		}
		set.Put(c.name(), elementValue(c))
	}
	return props.Nested(set)
}

// tabList keeps tab stops in document order.
func tabList(n *node) props.Value {
	var items []props.Value
	for _, tab := range n.children("tab") {
		items = append(items, elementValue(tab))
	}
	return props.List(items...)
}

// scalar types one attribute value. Measures become Int; anything that
// fails to parse stays a string.
func scalar(element, attr, raw string) props.Value {
	numeric := numericAttrs[attr]
	if attr == "val" {
		numeric = numericVals[element]
	}
	if numeric {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return props.Int(n)
		}
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return props.Int(int64(f))
		}
	}
	return props.String(raw)
}

// onOff reads an ST_OnOff value.
func onOff(v string) bool {
	switch v {
	case "0", "false", "off", "none":
		return false
	}
	return true
}

// intAttr parses an integer attribute, returning def when absent or
// malformed.
func intAttr(n *node, local string, def int) int {
	v, ok := n.attr(local)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
