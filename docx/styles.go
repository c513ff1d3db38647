package docx

import (
	"github.com/tsawler/docxconv/model"
	"github.com/tsawler/docxconv/styles"
)

// parseStyles builds the style catalog from word/styles.xml.
func parseStyles(root *node) *styles.Catalog {
	var defaults styles.Defaults
	if dd := root.child("docDefaults"); dd != nil {
		defaults.Paragraph = propertySet(dd.child("pPrDefault").child("pPr"))
		defaults.Run = propertySet(dd.child("rPrDefault").child("rPr"))
	}

	catalog := styles.NewCatalog(defaults)
	for _, def := range root.children("style") {
		if s := parseStyle(def); s != nil {
			catalog.Add(s)
		}
	}
	return catalog
}

// parseStyle converts one w:style element.
func parseStyle(def *node) *styles.Style {
	id, _ := def.attr("styleId")
	if id == "" {
		return nil
	}
	typ, _ := def.attr("type")
	if typ == "" {
		typ = string(styles.TypeParagraph)
	}
	isDefault, _ := def.attr("default")

	s := &styles.Style{
		ID:         id,
		Name:       def.child("name").val(),
		Type:       styles.Type(typ),
		BasedOn:    def.child("basedOn").val(),
		Link:       def.child("link").val(),
		Default:    onOff(isDefault) && isDefault != "",
		Formatting: formatting(def),
	}

	if ppr := def.child("pPr"); ppr != nil {
		s.Numbering = numberingRef(ppr.child("numPr"))
	}
	// table defaults for the whole style live in tblPr, trPr and tcPr;
	// regional overrides in tblStylePr
	for _, cond := range def.children("tblStylePr") {
		t, _ := cond.attr("type")
		c, ok := styles.ParseCondition(t)
		if !ok {
			continue
		}
		if s.Conditions == nil {
			s.Conditions = make(map[styles.Condition]*styles.Formatting)
		}
		f := formatting(cond)
		s.Conditions[c] = &f
	}
	return s
}

// formatting reads the property containers of a style or condition.
func formatting(n *node) styles.Formatting {
	return styles.Formatting{
		Paragraph: propertySet(n.child("pPr")),
		Run:       propertySet(n.child("rPr")),
		Table:     propertySet(n.child("tblPr")),
		Row:       propertySet(n.child("trPr")),
		Cell:      propertySet(n.child("tcPr")),
	}
}

// numberingRef reads w:numPr. An absent numId leaves the instance to the
// style; an absent ilvl is level 0.
func numberingRef(numPr *node) *model.NumberingRef {
	if numPr == nil {
		return nil
	}
	ref := &model.NumberingRef{
		InstanceID: numPr.child("numId").val(),
		Level:      0,
	}
	if lvl := numPr.child("ilvl"); lvl != nil {
		ref.Level = intAttr(lvl, "val", 0)
	}
	return ref
}
