// Package format detects WordprocessingML packages and their variants.
package format

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a word-processing package variant.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX indicates a Word document (.docx).
	DOCX
	// DOCM indicates a macro-enabled Word document (.docm).
	DOCM
	// DOTX indicates a Word template (.dotx).
	DOTX
	// DOTM indicates a macro-enabled Word template (.dotm).
	DOTM
	// DOC indicates a legacy binary Word document, which is recognised
	// only so it can be rejected clearly.
	DOC
)

// Main part content types per variant.
const (
	ctDocument   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ctTemplate   = "application/vnd.openxmlformats-officedocument.wordprocessingml.template.main+xml"
	ctMacroDoc   = "application/vnd.ms-word.document.macroEnabled.main+xml"
	ctMacroTempl = "application/vnd.ms-word.template.macroEnabledTemplate.main+xml"
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case DOCM:
		return "DOCM"
	case DOTX:
		return "DOTX"
	case DOTM:
		return "DOTM"
	case DOC:
		return "DOC"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case DOCX:
		return ".docx"
	case DOCM:
		return ".docm"
	case DOTX:
		return ".dotx"
	case DOTM:
		return ".dotm"
	case DOC:
		return ".doc"
	default:
		return ""
	}
}

// Supported reports whether the format can be converted.
func (f Format) Supported() bool {
	switch f {
	case DOCX, DOCM, DOTX, DOTM:
		return true
	}
	return false
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx":
		return DOCX
	case ".docm":
		return DOCM
	case ".dotx":
		return DOTX
	case ".dotm":
		return DOTM
	case ".doc", ".dot":
		return DOC
	default:
		return Unknown
	}
}

var (
	zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// DetectFromMagic checks file magic bytes to determine format.
// ZIP archives need their contents inspected, so they report Unknown
// here; use DetectFromReader for those.
func DetectFromMagic(data []byte) Format {
	if bytes.HasPrefix(data, oleMagic) {
		return DOC
	}
	return Unknown
}

// DetectFromReader inspects the content to determine format. It can
// tell the WordprocessingML variants apart by the main part content type.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 8)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if bytes.HasPrefix(magic, zipMagic) {
		return detectZIPFormat(r, size)
	}
	return DetectFromMagic(magic), nil
}

// contentTypesXML represents [Content_Types].xml
type contentTypesXML struct {
	XMLName   xml.Name `xml:"Types"`
	Overrides []struct {
		PartName    string `xml:"PartName,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Override"`
}

// detectZIPFormat reads [Content_Types].xml to find the main document
// part. Packages without content types but with word/document.xml are
// treated as DOCX.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	hasDocument := false
	for _, f := range zr.File {
		switch f.Name {
		case "word/document.xml":
			hasDocument = true
		case "[Content_Types].xml":
			rc, err := f.Open()
			if err != nil {
				continue
			}
			var ct contentTypesXML
			err = xml.NewDecoder(rc).Decode(&ct)
			rc.Close()
			if err != nil {
				continue
			}
			for _, o := range ct.Overrides {
				switch o.ContentType {
				case ctDocument:
					return DOCX, nil
				case ctMacroDoc:
					return DOCM, nil
				case ctTemplate:
					return DOTX, nil
				case ctMacroTempl:
					return DOTM, nil
				}
			}
		}
	}

	if hasDocument {
		return DOCX, nil
	}
	return Unknown, nil
}
