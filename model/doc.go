// Package model provides the document model consumed by the formatting
// core: an ordered tree of paragraphs, runs and tables, each carrying an
// optional style reference and its own direct property set.
//
// # Document Structure
//
// A [Document] holds metadata and a list of [Block]s in document order.
// The concrete block types are:
//
//   - [Paragraph] - a paragraph with [Run]s and an optional list reference
//   - [Table] - a table of [Row]s and [Cell]s; cells hold nested blocks
//
// Direct formatting is kept as a [props.Set] on every node. Style ids are
// references into a style catalog owned by the caller; the model never
// resolves them itself.
//
// # Lists
//
// A numbered paragraph carries a [NumberingRef] naming a numbering
// instance and a level (0-8). Paragraphs must be presented to a numbering
// engine in the order returned by [Document.Paragraphs].
package model
