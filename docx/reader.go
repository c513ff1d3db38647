package docx

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/tsawler/docxconv/model"
	"github.com/tsawler/docxconv/numbering"
	"github.com/tsawler/docxconv/styles"
)

var (
	// ErrMissingPart is returned when a required package part is absent.
	ErrMissingPart = errors.New("docx: missing required part")
	// ErrNotWordprocessing is returned for packages without a main
	// WordprocessingML document.
	ErrNotWordprocessing = errors.New("docx: not a WordprocessingML package")
)

const defaultMainPart = "word/document.xml"

// Reader holds a fully parsed DOCX package.
type Reader struct {
	document  *model.Document
	styles    *styles.Catalog
	numbering *numbering.Catalog
	logger    *slog.Logger

	files map[string]*zip.File
}

// Option configures a Reader.
type Option func(*Reader)

// WithLogger sets the logger for recoverable parse problems such as a
// malformed optional part.
func WithLogger(l *slog.Logger) Option {
	return func(r *Reader) {
		if l != nil {
			r.logger = l
		}
	}
}

// Open opens and parses a DOCX file.
func Open(filename string, opts ...Option) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	defer zr.Close()
	return newReader(&zr.Reader, opts)
}

// OpenReader parses a DOCX package from r.
func OpenReader(r io.ReaderAt, size int64, opts ...Option) (*Reader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return newReader(zr, opts)
}

func newReader(zr *zip.Reader, opts []Option) (*Reader, error) {
	r := &Reader{
		logger: slog.New(slog.DiscardHandler),
		files:  make(map[string]*zip.File, len(zr.File)),
	}
	for _, opt := range opts {
		opt(r)
	}
	for _, f := range zr.File {
		r.files[f.Name] = f
	}
	if err := r.parse(); err != nil {
		return nil, err
	}
	// parts are read; the archive is not needed past this point
	r.files = nil
	return r, nil
}

func (r *Reader) parse() error {
	if _, ok := r.files["[Content_Types].xml"]; !ok {
		return fmt.Errorf("%w: [Content_Types].xml", ErrMissingPart)
	}

	pkgRels := r.relationships("_rels/.rels")
	main := defaultMainPart
	if rel, ok := pkgRels.byType(relOfficeDocument); ok {
		main = resolvePart("", rel.Target)
	}
	if _, ok := r.files[main]; !ok {
		return fmt.Errorf("%w: %s", ErrMissingPart, main)
	}

	docRels := r.relationships(relsPath(main))

	root, err := r.readXML(main)
	if err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}
	if root.name() != "document" {
		return fmt.Errorf("%w: root element %q", ErrNotWordprocessing, root.name())
	}

	// styles and numbering are optional; a broken part degrades to empty
	var stylesRoot *node
	if part := r.partFor(main, docRels, relStyles, "word/styles.xml"); part != "" {
		if stylesRoot, err = r.readXML(part); err != nil {
			r.logger.Warn("skipping styles part", "part", part, "error", err)
		}
	}
	r.styles = styles.NewCatalog(styles.Defaults{})
	if stylesRoot != nil {
		r.styles = parseStyles(stylesRoot)
	}

	r.numbering = numbering.NewCatalog()
	if part := r.partFor(main, docRels, relNumbering, "word/numbering.xml"); part != "" {
		numRoot, err := r.readXML(part)
		if err != nil {
			r.logger.Warn("skipping numbering part", "part", part, "error", err)
		} else {
			r.numbering = parseNumbering(numRoot, r.logger)
		}
	}
	if stylesRoot != nil {
		linkNumberingStyles(r.numbering, stylesRoot)
	}

	bp := &bodyParser{rels: docRels, logger: r.logger}
	r.document = model.NewDocument()
	r.document.Blocks = bp.parseBlocks(root.child("body"))
	r.document.Metadata = r.metadata(pkgRels)
	return nil
}

// partFor locates the part of a relationship type, preferring the
// document relationships and falling back to the conventional name.
func (r *Reader) partFor(main string, rels *relationshipsXML, relType, fallback string) string {
	if rel, ok := rels.byType(relType); ok {
		if part := resolvePart(main, rel.Target); r.files[part] != nil {
			return part
		}
	}
	if r.files[fallback] != nil {
		return fallback
	}
	return ""
}

// relationships reads a .rels part; a missing or malformed part is empty.
func (r *Reader) relationships(name string) *relationshipsXML {
	rels := &relationshipsXML{}
	data, err := r.read(name)
	if err != nil {
		return rels
	}
	if err := decodeXML(data, rels); err != nil {
		r.logger.Warn("skipping relationships part", "part", name, "error", err)
		return &relationshipsXML{}
	}
	return rels
}

// read returns the content of a part.
func (r *Reader) read(name string) ([]byte, error) {
	f, ok := r.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingPart, name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (r *Reader) readXML(name string) (*node, error) {
	data, err := r.read(name)
	if err != nil {
		return nil, err
	}
	return parseXML(data)
}

// metadata reads the core and extended property parts.
func (r *Reader) metadata(pkgRels *relationshipsXML) model.Metadata {
	meta := model.NewDocument().Metadata

	corePart := "docProps/core.xml"
	if rel, ok := pkgRels.byType(relCoreProps); ok {
		corePart = resolvePart("", rel.Target)
	}
	if data, err := r.read(corePart); err == nil {
		var core corePropertiesXML
		if err := decodeXML(data, &core); err != nil {
			r.logger.Warn("skipping core properties", "part", corePart, "error", err)
		} else {
			meta.Title = core.Title
			meta.Author = core.Creator
			meta.Subject = core.Subject
			if core.Keywords != "" {
				for _, kw := range strings.Split(core.Keywords, ",") {
					if kw = strings.TrimSpace(kw); kw != "" {
						meta.Keywords = append(meta.Keywords, kw)
					}
				}
			}
			meta.CreationDate = parseW3CDate(core.Created)
			meta.ModDate = parseW3CDate(core.Modified)
			setCustom(meta.Custom, "description", core.Description)
			setCustom(meta.Custom, "lastModifiedBy", core.LastModifiedBy)
			setCustom(meta.Custom, "revision", core.Revision)
			setCustom(meta.Custom, "category", core.Category)
		}
	}

	appPart := "docProps/app.xml"
	if rel, ok := pkgRels.byType(relAppProps); ok {
		appPart = resolvePart("", rel.Target)
	}
	if data, err := r.read(appPart); err == nil {
		var app appPropertiesXML
		if err := decodeXML(data, &app); err == nil {
			meta.Creator = app.Application
			setCustom(meta.Custom, "company", app.Company)
			setCustom(meta.Custom, "template", app.Template)
		}
	}
	return meta
}

func setCustom(m map[string]string, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		m[key] = value
	}
}

// parseW3CDate parses the dcterms:W3CDTF dates written by Office.
func parseW3CDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Document returns the parsed document body and metadata.
func (r *Reader) Document() *model.Document {
	return r.document
}

// Styles returns the style catalog. It is empty, never nil, when the
// package has no styles part.
func (r *Reader) Styles() *styles.Catalog {
	return r.styles
}

// Numbering returns the numbering catalog. It is empty, never nil, when
// the package has no numbering part.
func (r *Reader) Numbering() *numbering.Catalog {
	return r.numbering
}

// Metadata returns document metadata.
func (r *Reader) Metadata() model.Metadata {
	return r.document.Metadata
}
