// Package numbering resolves list numbering: the catalog of abstract
// numbering definitions and instances, numeral formatting, and the
// stateful engine that produces list prefixes in document order.
//
// # Engine
//
// An [Engine] tracks one counter per (instance, level) plus the last level
// used by each instance. Create one per document conversion and feed it
// every list paragraph exactly once, in document order:
//
//	eng := numbering.NewEngine(catalog)
//	for _, p := range doc.Paragraphs() {
//	    if p.Numbering != nil {
//	        prefix := eng.NextPrefix(p.Numbering.InstanceID, p.Numbering.Level)
//	        // ...
//	    }
//	}
//
// Calls out of order give wrong restart and increment behaviour; the
// engine cannot detect that. It is not safe for concurrent use.
//
// # Formats
//
// [FormatValue] renders an integer in any supported numeral format and is
// a pure function. Unknown format names render as decimal.
package numbering
