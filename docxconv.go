// Package docxconv provides a fluent API for converting Word documents
// (.docx) into HTML, plain text and Markdown, reproducing the formatting
// Word displays.
//
// Basic usage:
//
//	html, warnings, err := docxconv.Open("document.docx").HTML()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", docxconv.FormatWarnings(warnings))
//	}
//
// With options:
//
//	text, _, err := docxconv.Open("report.docx").
//	    TableMode(docxconv.TableASCII).
//	    ParagraphSeparator("\n").
//	    Text()
//
// For advanced use cases, the lower-level docx, styles, numbering and
// render packages are also available.
package docxconv

import (
	"github.com/tsawler/docxconv/docx"
)

// Open returns a Converter for the named file. Nothing is read until a
// terminal operation like HTML() runs.
//
// Example:
//
//	html, warnings, err := docxconv.Open("document.docx").HTML()
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader creates a Converter from an already parsed docx.Reader.
// Parse warnings were logged when the reader was opened and are not
// repeated by terminal operations.
//
// Example:
//
//	r, err := docx.Open("document.docx")
//	if err != nil {
//	    // handle error
//	}
//	md, _, err := docxconv.FromReader(r).Markdown()
func FromReader(r *docx.Reader) *Converter {
	return &Converter{
		reader:  r,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustConvert is a helper that wraps a call to HTML(), Text() or
// Markdown() and panics if the error is non-nil. It discards warnings.
//
// Example:
//
//	text := docxconv.MustConvert(docxconv.Open("document.docx").Text())
func MustConvert[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
