// Package render turns a parsed document into HTML, plain text or
// Markdown using the effective formatting of every node.
//
// A Converter is built once per style and numbering catalog:
//
//	r, _ := docx.Open("report.docx")
//	conv := render.New(r.Styles(), r.Numbering(), render.WithFragment(true))
//	out, err := conv.HTML(r.Document())
//
// Each conversion starts with fresh list counters.
package render
