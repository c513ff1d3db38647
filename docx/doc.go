// Package docx parses WordprocessingML packages (.docx) into the
// document model, style catalog and numbering catalog.
//
// Parsing is eager: Open reads every part it needs and closes the
// archive before returning. Formatting elements are decoded generically
// into property sets keyed by their WordprocessingML element names, so
// attributes this package does not know about still flow through the
// cascade. Only the references the cascade needs structurally (paragraph,
// run and table style ids, numbering references, grid spans, vertical
// merges, header rows) are lifted into typed model fields.
//
// # Basic Usage
//
//	r, err := docx.Open("report.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	doc := r.Document()
//	catalog := r.Styles()
//	lists := r.Numbering()
package docx
