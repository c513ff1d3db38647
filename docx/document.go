package docx

import (
	"log/slog"
	"strconv"

	"github.com/tsawler/docxconv/model"
)

// bodyParser walks w:body in document order.
type bodyParser struct {
	rels   *relationshipsXML
	logger *slog.Logger
}

// parseBlocks converts the block-level children of w:body, a cell or a
// content control.
func (bp *bodyParser) parseBlocks(container *node) []model.Block {
	if container == nil {
		return nil
	}
	var blocks []model.Block
	for i := range container.Nodes {
		n := &container.Nodes[i]
		switch n.name() {
		case "p":
			blocks = append(blocks, bp.parseParagraph(n))
		case "tbl":
			blocks = append(blocks, bp.parseTable(n))
		case "sdt":
			// content controls wrap ordinary blocks
			blocks = append(blocks, bp.parseBlocks(n.child("sdtContent"))...)
		case "customXml", "ins", "moveTo":
			blocks = append(blocks, bp.parseBlocks(n)...)
		case "AlternateContent":
			blocks = append(blocks, bp.parseBlocks(alternate(n))...)
		}
	}
	return blocks
}

// parseParagraph converts a w:p element.
func (bp *bodyParser) parseParagraph(n *node) *model.Paragraph {
	p := &model.Paragraph{}
	if ppr := n.child("pPr"); ppr != nil {
		p.StyleID = ppr.child("pStyle").val()
		p.Props = propertySet(ppr)
		p.Numbering = numberingRef(ppr.child("numPr"))
	}
	bp.collectRuns(p, n, "")
	return p
}

// collectRuns appends the runs found under n to p. Hyperlinks, smart
// tags, fields and inserted revisions are transparent wrappers; deleted
// revisions are skipped.
func (bp *bodyParser) collectRuns(p *model.Paragraph, n *node, link string) {
	if n == nil {
		return
	}
	for i := range n.Nodes {
		c := &n.Nodes[i]
		switch c.name() {
		case "r":
			if run := bp.parseRun(c); run != nil {
				run.Link = link
				p.Runs = append(p.Runs, run)
			}
		case "hyperlink":
			bp.collectRuns(p, c, bp.hyperlinkTarget(c))
		case "smartTag", "fldSimple", "ins", "moveTo", "customXml", "bdo", "dir":
			bp.collectRuns(p, c, link)
		case "sdt":
			bp.collectRuns(p, c.child("sdtContent"), link)
		case "AlternateContent":
			bp.collectRuns(p, alternate(c), link)
		}
	}
}

// hyperlinkTarget resolves w:hyperlink through the document relationships,
// falling back to an in-document anchor.
func (bp *bodyParser) hyperlinkTarget(n *node) string {
	if id, ok := n.attrNS(nsR, "id"); ok {
		if rel, ok := bp.rels.byID(id); ok {
			return rel.Target
		}
		bp.logger.Warn("unresolved hyperlink relationship", "id", id)
	}
	if anchor, ok := n.attr("anchor"); ok && anchor != "" {
		return "#" + anchor
	}
	return ""
}

// parseRun converts a w:r element. Field codes and deleted text are
// dropped.
func (bp *bodyParser) parseRun(n *node) *model.Run {
	run := &model.Run{}
	if rpr := n.child("rPr"); rpr != nil {
		run.StyleID = rpr.child("rStyle").val()
		run.Props = propertySet(rpr)
	}
	for i := range n.Nodes {
		c := &n.Nodes[i]
		switch c.name() {
		case "t":
			run.AddText(c.Content)
		case "tab", "ptab":
			run.Items = append(run.Items, model.RunItem{Kind: model.RunTab})
		case "br":
			kind := model.RunBreak
			if t, _ := c.attr("type"); t == "page" {
				kind = model.RunPageBreak
			}
			run.Items = append(run.Items, model.RunItem{Kind: kind})
		case "cr":
			run.Items = append(run.Items, model.RunItem{Kind: model.RunBreak})
		case "noBreakHyphen":
			run.AddText("\u2011")
		case "sym":
			run.AddText(symbolText(c))
		case "AlternateContent":
			if alt := alternate(c); alt != nil {
				for _, t := range alt.children("t") {
					run.AddText(t.Content)
				}
			}
		}
	}
	return run
}

// symbolText decodes w:sym, whose w:char is a hex code point.
func symbolText(n *node) string {
	code, _ := n.attr("char")
	v, err := strconv.ParseUint(code, 16, 32)
	if err != nil || v == 0 {
		return ""
	}
	return string(rune(v))
}

// alternate picks the content of mc:AlternateContent. The fallback is
// plain markup every consumer understands, so it wins over choices.
func alternate(n *node) *node {
	if fb := n.child("Fallback"); fb != nil {
		return fb
	}
	return n.child("Choice")
}
