package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// XML namespaces used in DOCX files
const (
	nsW  = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsMC = "http://schemas.openxmlformats.org/markup-compatibility/2006"
)

// Relationship types for the parts this package reads.
const (
	relOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relNumbering      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering"
	relHyperlink      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	relCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relAppProps       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
)

// node is a generic XML element. WordprocessingML formatting is open
// ended, so properties are decoded into this tree rather than into fixed
// structs and converted to property sets afterwards.
type node struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Nodes   []node     `xml:",any"`
	Content string     `xml:",chardata"`
}

// parseXML decodes a part into its root node.
func parseXML(data []byte) (*node, error) {
	var root node
	if err := decodeXML(data, &root); err != nil {
		return nil, fmt.Errorf("decoding XML: %w", err)
	}
	return &root, nil
}

// decodeXML unmarshals a part that may be UTF-16 (detected by its byte
// order mark) or declare a legacy encoding.
func decodeXML(data []byte, v any) error {
	src := transform.NewReader(bytes.NewReader(data), unicode.BOMOverride(transform.Nop))
	d := xml.NewDecoder(src)
	d.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		if strings.HasPrefix(strings.ToLower(label), "utf-16") {
			// already transcoded by the BOM override
			return input, nil
		}
		return charset.NewReaderLabel(label, input)
	}
	return d.Decode(v)
}

// name returns the local element name.
func (n *node) name() string {
	return n.XMLName.Local
}

// attr returns the attribute with the given local name. Namespace
// declarations are never matched.
func (n *node) attr(local string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Name.Local == local && !isNamespaceDecl(a) {
			return a.Value, true
		}
	}
	return "", false
}

// attrNS returns the attribute with the given namespace and local name.
func (n *node) attrNS(space, local string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Name.Local == local && a.Name.Space == space {
			return a.Value, true
		}
	}
	return "", false
}

// val returns the w:val attribute, or "" when absent.
func (n *node) val() string {
	v, _ := n.attr("val")
	return v
}

// child returns the first child element with the given local name.
func (n *node) child(local string) *node {
	if n == nil {
		return nil
	}
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == local {
			return &n.Nodes[i]
		}
	}
	return nil
}

// children returns every child element with the given local name.
func (n *node) children(local string) []*node {
	if n == nil {
		return nil
	}
	var out []*node
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == local {
			out = append(out, &n.Nodes[i])
		}
	}
	return out
}

// elementAttrs returns the attributes that carry data, skipping
// namespace declarations and markup compatibility hints.
func (n *node) elementAttrs() []xml.Attr {
	out := make([]xml.Attr, 0, len(n.Attrs))
	for _, a := range n.Attrs {
		if isNamespaceDecl(a) || a.Name.Space == nsMC {
			continue
		}
		out = append(out, a)
	}
	return out
}

func isNamespaceDecl(a xml.Attr) bool {
	return a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns")
}

// relationship is one entry of a .rels part.
type relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

// relationshipsXML represents _rels/*.rels files
type relationshipsXML struct {
	XMLName       xml.Name       `xml:"Relationships"`
	Relationships []relationship `xml:"Relationship"`
}

// byType returns the target of the first relationship of type t.
func (r *relationshipsXML) byType(t string) (relationship, bool) {
	if r == nil {
		return relationship{}, false
	}
	for _, rel := range r.Relationships {
		if rel.Type == t {
			return rel, true
		}
	}
	return relationship{}, false
}

// byID returns the relationship with the given id.
func (r *relationshipsXML) byID(id string) (relationship, bool) {
	if r == nil {
		return relationship{}, false
	}
	for _, rel := range r.Relationships {
		if rel.ID == id {
			return rel, true
		}
	}
	return relationship{}, false
}

// corePropertiesXML represents docProps/core.xml (Dublin Core metadata)
type corePropertiesXML struct {
	XMLName        xml.Name `xml:"coreProperties"`
	Title          string   `xml:"title"`
	Subject        string   `xml:"subject"`
	Creator        string   `xml:"creator"`
	Keywords       string   `xml:"keywords"`
	Description    string   `xml:"description"`
	LastModifiedBy string   `xml:"lastModifiedBy"`
	Revision       string   `xml:"revision"`
	Created        string   `xml:"created"`
	Modified       string   `xml:"modified"`
	Category       string   `xml:"category"`
}

// appPropertiesXML represents docProps/app.xml
type appPropertiesXML struct {
	XMLName     xml.Name `xml:"Properties"`
	Application string   `xml:"Application"`
	Company     string   `xml:"Company"`
	Template    string   `xml:"Template"`
}

// resolvePart joins a relationship target to the directory of the part
// that owns the relationship. Absolute targets are package rooted.
func resolvePart(base, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	dir := ""
	if i := strings.LastIndex(base, "/"); i >= 0 {
		dir = base[:i+1]
	}
	parts := strings.Split(dir+target, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		switch p {
		case "", ".":
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, p)
		}
	}
	return strings.Join(out, "/")
}

// relsPath returns the relationships part for a part name.
func relsPath(part string) string {
	dir, file := "", part
	if i := strings.LastIndex(part, "/"); i >= 0 {
		dir, file = part[:i+1], part[i+1:]
	}
	return dir + "_rels/" + file + ".rels"
}
