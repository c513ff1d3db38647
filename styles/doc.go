// Package styles provides the style catalog and the property cascade
// resolver that computes the effective formatting of paragraphs, runs,
// tables, rows and cells.
//
// # Cascade
//
// Formatting reaches a node through several layers, lowest precedence
// first:
//
//  1. document defaults for the node kind
//  2. the referenced style and its basedOn ancestors, root first
//  3. the table style's conditional formatting when the node sits in a
//     table region such as the first row or a banded column
//  4. the node's own direct formatting
//
// Runs additionally pick up the run properties of their paragraph's
// style chain before their own character style.
//
//	r := styles.NewResolver(catalog, styles.WithLogger(logger))
//	para := r.Paragraph(p, nil)
//	run := r.Run(p.Runs[0], p, nil)
//
// # Failure handling
//
// A missing style, a missing parent or a cell outside its table simply
// contributes nothing. Cyclic basedOn chains are truncated at the first
// repeated style and reported through the logger at Warn level.
//
// The resolver never mutates the catalog and keeps no state, so it is
// safe to call from multiple goroutines.
package styles
