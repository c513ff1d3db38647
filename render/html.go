package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/docxconv/model"
	"github.com/tsawler/docxconv/numbering"
	"github.com/tsawler/docxconv/props"
	"github.com/tsawler/docxconv/styles"
)

var headingAtoms = []atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

// HTML renders doc as an HTML document, or only its body content when
// the converter was built with WithFragment.
func (c *Converter) HTML(doc *model.Document) (string, error) {
	p := c.newPass()
	body := element(atom.Body)
	p.htmlBlocks(body, doc.Blocks, nil)

	if c.sanitize {
		if err := sanitize(body); err != nil {
			return "", fmt.Errorf("sanitizing html: %w", err)
		}
	}

	var nodes []*html.Node
	if c.fragment {
		for n := body.FirstChild; n != nil; n = n.NextSibling {
			nodes = append(nodes, n)
		}
	} else {
		nodes = []*html.Node{
			{Type: html.DoctypeNode, Data: "html"},
			c.shell(doc, body),
		}
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("rendering html: %w", err)
		}
	}
	if !c.fragment {
		buf.WriteByte('\n')
	}
	return buf.String(), nil
}

const responsiveCSS = `
body { max-width: 800px; margin: 0 auto; padding: 1em; }
img { max-width: 100%; height: auto; }
table { max-width: 100%; }
`

const printCSS = `
@media print {
  body { max-width: none; margin: 0; padding: 0; }
  br.page-break { page-break-after: always; }
  tr, td, th { page-break-inside: avoid; }
}
`

// shell wraps body in html and head elements.
func (c *Converter) shell(doc *model.Document, body *html.Node) *html.Node {
	root := element(atom.Html)
	if c.language != "" {
		setAttr(root, "lang", c.language)
	}
	head := element(atom.Head)
	meta := element(atom.Meta)
	setAttr(meta, "charset", "utf-8")
	head.AppendChild(meta)

	title := c.title
	if title == "" && doc.Metadata.Title != "" {
		title = doc.Metadata.Title
	}
	if title != "" {
		t := element(atom.Title)
		t.AppendChild(textNode(title))
		head.AppendChild(t)
	}

	var css strings.Builder
	if c.responsive {
		viewport := element(atom.Meta)
		setAttr(viewport, "name", "viewport")
		setAttr(viewport, "content", "width=device-width, initial-scale=1")
		head.AppendChild(viewport)
		css.WriteString(responsiveCSS)
	}
	if c.printStyles {
		css.WriteString(printCSS)
	}
	if css.Len() > 0 {
		style := element(atom.Style)
		style.AppendChild(textNode(css.String()))
		head.AppendChild(style)
	}

	root.AppendChild(head)
	root.AppendChild(body)
	return root
}

func (p *pass) htmlBlocks(parent *html.Node, blocks []model.Block, tc *styles.TableContext) {
	var lists listStack
	for _, b := range blocks {
		if para, ok := b.(*model.Paragraph); ok && p.listElements {
			if m, numbered := p.marker(para); numbered {
				if lists.add(parent, p.htmlListItem(para, tc), m) {
					parent.AppendChild(textNode("\n"))
				}
				continue
			}
		}
		lists = nil

		switch v := b.(type) {
		case *model.Paragraph:
			p.htmlParagraph(parent, v, tc)
		case *model.Table:
			p.htmlTable(parent, v)
		default:
			continue
		}
		parent.AppendChild(textNode("\n"))
	}
}

func (p *pass) htmlParagraph(parent *html.Node, para *model.Paragraph, tc *styles.TableContext) {
	resolved := p.resolver.Paragraph(para, tc)

	tag := atom.P
	if level := p.headingLevel(para, resolved); level > 0 {
		tag = headingAtoms[level-1]
	}
	el := element(tag)
	p.style(el, CSS(resolved, KindParagraph))

	if m, ok := p.marker(para); ok {
		span := element(atom.Span)
		setAttr(span, "class", "marker")
		p.style(span, CSS(p.resolver.Marker(para, tc), KindRun))
		span.AppendChild(textNode(m.Text + htmlSuffix(m.Suffix)))
		el.AppendChild(span)
	}
	p.htmlRuns(el, para, tc)
	parent.AppendChild(el)
}

// htmlListItem renders a numbered paragraph as an li holding its runs. The
// list element carries the numbering, so no marker text is written.
func (p *pass) htmlListItem(para *model.Paragraph, tc *styles.TableContext) *html.Node {
	li := element(atom.Li)
	p.htmlRuns(li, para, tc)
	return li
}

// listOpen is one ol or ul on the nesting path of the current list item.
type listOpen struct {
	list  *html.Node
	level int
	last  *html.Node // most recent li
}

// listStack groups consecutive numbered paragraphs into nested lists.
type listStack []listOpen

// add places li by its marker level. Deeper levels nest inside the
// previous item, shallower ones close lists. It reports whether a new
// top-level list was appended to parent.
func (s *listStack) add(parent, li *html.Node, m numbering.Marker) bool {
	tag := atom.Ol
	if m.Level.Format == numbering.FormatBullet {
		tag = atom.Ul
	}
	level := m.Level.Index

	for len(*s) > 0 {
		top := (*s)[len(*s)-1]
		if top.level < level || (top.level == level && top.list.DataAtom == tag) {
			break
		}
		*s = (*s)[:len(*s)-1]
	}

	if len(*s) > 0 {
		if top := &(*s)[len(*s)-1]; top.level == level {
			top.list.AppendChild(li)
			top.last = li
			return false
		}
	}

	list := element(tag)
	if tag == atom.Ol && m.Value != 1 {
		setAttr(list, "start", strconv.Itoa(m.Value))
	}
	list.AppendChild(li)

	topLevel := len(*s) == 0
	if topLevel {
		parent.AppendChild(list)
	} else {
		(*s)[len(*s)-1].last.AppendChild(list)
	}
	*s = append(*s, listOpen{list: list, level: level, last: li})
	return topLevel
}

func (p *pass) htmlRuns(el *html.Node, para *model.Paragraph, tc *styles.TableContext) {
	var link *html.Node
	for _, run := range para.Runs {
		target := el
		if run.Link != "" {
			if link == nil || attrValue(link, "href") != run.Link {
				link = element(atom.A)
				setAttr(link, "href", run.Link)
				el.AppendChild(link)
			}
			target = link
		} else {
			link = nil
		}
		p.htmlRun(target, run, para, tc)
	}
}

// htmlSuffix separates a marker from the paragraph text. HTML collapses
// tabs, so both tab and space render as one space.
func htmlSuffix(s numbering.Suffix) string {
	if s.Text() == "" {
		return ""
	}
	return " "
}

func (p *pass) htmlRun(parent *html.Node, run *model.Run, para *model.Paragraph, tc *styles.TableContext) {
	if len(run.Items) == 0 {
		return
	}
	resolved := p.resolver.Run(run, para, tc)
	if flag(resolved, "vanish") {
		return
	}

	decls := CSS(resolved, KindRun)
	outer, inner := p.semantic(resolved, &decls)

	container := parent
	if p.styleMode != StyleNone && len(decls) > 0 {
		span := element(atom.Span)
		p.style(span, decls)
		parent.AppendChild(span)
		container = span
	}
	if outer != nil {
		container.AppendChild(outer)
		container = inner
	}

	for _, item := range run.Items {
		switch item.Kind {
		case model.RunText:
			container.AppendChild(textNode(item.Text))
		case model.RunTab:
			container.AppendChild(textNode("\t"))
		case model.RunBreak:
			container.AppendChild(element(atom.Br))
		case model.RunPageBreak:
			br := element(atom.Br)
			setAttr(br, "class", "page-break")
			container.AppendChild(br)
		}
	}
}

// semantic builds the nested strong/em/u/s/sup/sub chain for a run and
// removes the CSS those elements express. It returns the outermost and
// innermost element, both nil when no tag applies.
func (p *pass) semantic(resolved *props.Set, decls *Declarations) (outer, inner *html.Node) {
	if !p.semanticTags {
		return nil, nil
	}
	var tags []atom.Atom
	var drop []string
	if flag(resolved, "b") {
		tags = append(tags, atom.Strong)
		drop = append(drop, "font-weight")
	}
	if flag(resolved, "i") {
		tags = append(tags, atom.Em)
		drop = append(drop, "font-style")
	}
	if u := scalarString(resolved, "u"); u != "" && u != "none" {
		tags = append(tags, atom.U)
		drop = append(drop, "text-decoration")
	}
	if flag(resolved, "strike") || flag(resolved, "dstrike") {
		tags = append(tags, atom.S)
		drop = append(drop, "text-decoration")
	}
	switch scalarString(resolved, "vertAlign") {
	case "superscript":
		tags = append(tags, atom.Sup)
		drop = append(drop, "vertical-align")
	case "subscript":
		tags = append(tags, atom.Sub)
		drop = append(drop, "vertical-align")
	}
	if len(tags) == 0 {
		return nil, nil
	}
	*decls = decls.Without(drop...)

	for _, a := range tags {
		el := element(a)
		if outer == nil {
			outer = el
		} else {
			inner.AppendChild(el)
		}
		inner = el
	}
	return outer, inner
}

func (p *pass) htmlTable(parent *html.Node, t *model.Table) {
	el := element(atom.Table)
	tableProps := p.resolver.Table(t)
	p.style(el, CSS(tableProps, KindTable))

	insideH, insideV := insideBorders(tableProps)
	spans, skip := mergeSpans(t)
	cols := t.ColCount()

	// restart cell open at each grid column
	merged := make(map[int]*html.Node)

	var thead *html.Node
	tbody := element(atom.Tbody)
	for r, row := range t.Rows {
		tr := element(atom.Tr)
		p.style(tr, CSS(p.resolver.Row(t, r), KindRow))

		col := 0
		for _, cell := range row.Cells {
			pos := [2]int{r, col}
			span := cell.Span()
			if skip[pos] {
				// Word shows continuation content inside the merged cell.
				if td := merged[col]; td != nil {
					p.htmlBlocks(td, p.mergedContent(cell.Blocks), tableContext(t, r, col))
				}
				col += span
				continue
			}

			tag := atom.Td
			if row.IsHeader {
				tag = atom.Th
			}
			td := element(tag)
			if span > 1 {
				setAttr(td, "colspan", strconv.Itoa(span))
			}
			rows := spans[pos]
			if rows > 1 {
				setAttr(td, "rowspan", strconv.Itoa(rows))
				merged[col] = td
			} else {
				rows = 1
			}

			var decls Declarations
			if insideH != "" {
				if r > 0 {
					decls.add("border-top", insideH)
				}
				if r+rows < len(t.Rows) {
					decls.add("border-bottom", insideH)
				}
			}
			if insideV != "" {
				if col > 0 {
					decls.add("border-left", insideV)
				}
				if col+span < cols {
					decls.add("border-right", insideV)
				}
			}
			decls = append(decls, CSS(p.resolver.Cell(t, r, col), KindCell)...)
			p.style(td, decls)

			p.htmlBlocks(td, cell.Blocks, tableContext(t, r, col))
			tr.AppendChild(td)
			col += span
		}

		if row.IsHeader && tbody.FirstChild == nil {
			if thead == nil {
				thead = element(atom.Thead)
			}
			thead.AppendChild(tr)
		} else {
			tbody.AppendChild(tr)
		}
	}

	if thead != nil {
		el.AppendChild(thead)
	}
	el.AppendChild(tbody)
	parent.AppendChild(el)
}

// mergedContent drops the empty paragraphs Word leaves in vertically
// merged continuation cells. List paragraphs are kept so their counters
// advance.
func (p *pass) mergedContent(blocks []model.Block) []model.Block {
	var out []model.Block
	for _, b := range blocks {
		if para, ok := b.(*model.Paragraph); ok && para.IsEmpty() {
			if _, numbered := p.resolver.Numbering(para); !numbered {
				continue
			}
		}
		out = append(out, b)
	}
	return out
}

// insideBorders returns the CSS for the table's insideH and insideV
// borders, empty when absent.
func insideBorders(table *props.Set) (h, v string) {
	b, ok := nestedSet(table, "tblBorders")
	if !ok {
		return "", ""
	}
	if val, ok := b.Get("insideH"); ok {
		h = border(borderSet(val))
	}
	if val, ok := b.Get("insideV"); ok {
		v = border(borderSet(val))
	}
	return h, v
}

func (p *pass) style(n *html.Node, d Declarations) {
	if p.styleMode == StyleNone || len(d) == 0 {
		return
	}
	setAttr(n, "style", d.String())
}

// sanitize replaces the children of body with their sanitized form.
func sanitize(body *html.Node) error {
	var buf bytes.Buffer
	for n := body.FirstChild; n != nil; n = n.NextSibling {
		if err := html.Render(&buf, n); err != nil {
			return err
		}
	}

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("style", "class").Globally()
	clean := policy.Sanitize(buf.String())

	nodes, err := html.ParseFragment(strings.NewReader(clean), element(atom.Body))
	if err != nil {
		return err
	}
	for body.FirstChild != nil {
		body.RemoveChild(body.FirstChild)
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}
	return nil
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func setAttr(n *html.Node, key, val string) {
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
