package docx

import (
	"log/slog"

	"github.com/tsawler/docxconv/numbering"
)

// parseNumbering builds the numbering catalog from word/numbering.xml.
func parseNumbering(root *node, logger *slog.Logger) *numbering.Catalog {
	c := numbering.NewCatalog()

	for _, an := range root.children("abstractNum") {
		id, _ := an.attr("abstractNumId")
		abs := &numbering.Abstract{
			ID:             id,
			Levels:         make(map[int]*numbering.Level),
			StyleLink:      an.child("styleLink").val(),
			NumStyleLink:   an.child("numStyleLink").val(),
			MultiLevelType: an.child("multiLevelType").val(),
		}
		for _, lvl := range an.children("lvl") {
			l := parseLevel(lvl)
			if l.Index < 0 || l.Index > numbering.MaxLevel {
				logger.Warn("numbering level out of range", "abstract", id, "level", l.Index)
				continue
			}
			abs.Levels[l.Index] = l
		}
		c.AddAbstract(abs)
	}

	for _, num := range root.children("num") {
		id, _ := num.attr("numId")
		inst := &numbering.Instance{
			ID:         id,
			AbstractID: num.child("abstractNumId").val(),
		}
		for _, ov := range num.children("lvlOverride") {
			idx := intAttr(ov, "ilvl", -1)
			if idx < 0 || idx > numbering.MaxLevel {
				continue
			}
			if so := ov.child("startOverride"); so != nil {
				if inst.StartOverrides == nil {
					inst.StartOverrides = make(map[int]int)
				}
				inst.StartOverrides[idx] = intAttr(so, "val", 1)
			}
			if lvl := ov.child("lvl"); lvl != nil {
				if inst.LevelOverrides == nil {
					inst.LevelOverrides = make(map[int]*numbering.Level)
				}
				l := parseLevel(lvl)
				l.Index = idx
				inst.LevelOverrides[idx] = l
			}
		}
		c.AddInstance(inst)
	}

	// numStyleLink resolves through the numbering style that an instance
	// of the defining abstract is bound to
	for _, num := range root.children("num") {
		id, _ := num.attr("numId")
		abs, ok := c.Abstract(num.child("abstractNumId").val())
		if ok && abs.StyleLink != "" {
			c.LinkStyle(abs.StyleLink, id)
		}
	}
	return c
}

// linkNumberingStyles binds numbering styles from styles.xml to the
// instance they carry in their w:numPr, which is how Word records the
// target of a numStyleLink.
func linkNumberingStyles(c *numbering.Catalog, root *node) {
	for _, def := range root.children("style") {
		if t, _ := def.attr("type"); t != "numbering" {
			continue
		}
		id, _ := def.attr("styleId")
		ref := numberingRef(def.child("pPr").child("numPr"))
		if id == "" || ref == nil || ref.InstanceID == "" {
			continue
		}
		c.LinkStyle(id, ref.InstanceID)
	}
}

// parseLevel converts one w:lvl element.
func parseLevel(lvl *node) *numbering.Level {
	format, _ := numbering.ParseFormat(lvl.child("numFmt").val())
	l := &numbering.Level{
		Index:         intAttr(lvl, "ilvl", 0),
		Format:        format,
		Text:          lvl.child("lvlText").val(),
		Suffix:        numbering.Suffix(lvl.child("suff").val()),
		Justification: lvl.child("lvlJc").val(),
		Paragraph:     propertySet(lvl.child("pPr")),
		Run:           propertySet(lvl.child("rPr")),
	}
	if l.Suffix == "" {
		l.Suffix = numbering.SuffixTab
	}
	if s := lvl.child("start"); s != nil {
		v := intAttr(s, "val", 1)
		l.Start = &v
	}
	// w:lvlRestart names a one-based level; zero is ignored
	if r := lvl.child("lvlRestart"); r != nil {
		if v := intAttr(r, "val", 0); v > 0 {
			after := v - 1
			l.RestartAfter = &after
		}
	}
	if legal := lvl.child("isLgl"); legal != nil {
		v, ok := legal.attr("val")
		l.Legal = !ok || onOff(v)
	}
	return l
}
