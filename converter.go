package docxconv

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/tsawler/docxconv/docx"
	"github.com/tsawler/docxconv/format"
	"github.com/tsawler/docxconv/model"
	"github.com/tsawler/docxconv/render"
)

// ErrUnsupportedFormat is returned for files that are not WordprocessingML
// packages, including legacy binary .doc files.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// TableMode selects the plain-text table layout.
type TableMode = render.TableMode

const (
	TableAuto  = render.TableAuto
	TableASCII = render.TableASCII
	TableTabs  = render.TableTabs
	TablePlain = render.TablePlain
)

// Converter provides a fluent interface for converting a document.
// Each configuration method returns a new Converter, so partially
// configured converters can be shared and reused.
type Converter struct {
	// Source
	filename string
	reader   *docx.Reader

	options ConvertOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Converter. Options hold no shared slices.
func (c *Converter) clone() *Converter {
	out := *c
	return &out
}

// ============================================================================
// Configuration Methods (return new Converter instance)
// ============================================================================

// WithConfig applies a loaded configuration file. An invalid config
// makes every terminal operation fail.
func (c *Converter) WithConfig(cfg *Config) *Converter {
	out := c.clone()
	if cfg == nil {
		return out
	}
	if err := cfg.Validate(); err != nil {
		out.err = fmt.Errorf("invalid config: %w", err)
		return out
	}
	cfg.apply(&out.options)
	return out
}

// TableMode sets how tables are laid out in plain text.
//
// Example:
//
//	text, _, err := docxconv.Open("report.docx").TableMode(docxconv.TableASCII).Text()
func (c *Converter) TableMode(mode TableMode) *Converter {
	out := c.clone()
	m, err := render.ParseTableMode(string(mode))
	if err != nil {
		out.err = err
		return out
	}
	out.options.tableMode = m
	return out
}

// Fragment renders HTML body content only, without the document shell.
func (c *Converter) Fragment() *Converter {
	out := c.clone()
	out.options.fragment = true
	return out
}

// Title sets the HTML document title. The document's own title is used
// otherwise.
func (c *Converter) Title(title string) *Converter {
	out := c.clone()
	out.options.title = title
	return out
}

// Language sets the lang attribute of the HTML document.
func (c *Converter) Language(lang string) *Converter {
	out := c.clone()
	out.options.language = lang
	return out
}

// NoResponsive leaves the viewport meta tag and body width rules out of
// the HTML head.
func (c *Converter) NoResponsive() *Converter {
	out := c.clone()
	out.options.responsive = false
	return out
}

// PrintStyles adds an @media print block to the HTML head.
func (c *Converter) PrintStyles() *Converter {
	out := c.clone()
	out.options.printStyles = true
	return out
}

// NoStyles drops inline CSS from HTML output.
func (c *Converter) NoStyles() *Converter {
	out := c.clone()
	out.options.styleMode = render.StyleNone
	return out
}

// SemanticTags renders bold, italic and similar run formatting as HTML
// elements instead of CSS.
func (c *Converter) SemanticTags() *Converter {
	out := c.clone()
	out.options.semanticTags = true
	return out
}

// Sanitize passes HTML output through an allow-list sanitizer.
func (c *Converter) Sanitize() *Converter {
	out := c.clone()
	out.options.sanitize = true
	return out
}

// ParagraphSeparator sets the text between blocks in plain text output.
func (c *Converter) ParagraphSeparator(sep string) *Converter {
	out := c.clone()
	out.options.paragraphSeparator = sep
	return out
}

// ExplicitNulls lets cleared properties in direct formatting remove
// values inherited from styles.
func (c *Converter) ExplicitNulls() *Converter {
	out := c.clone()
	out.options.explicitNulls = true
	return out
}

// Logger receives every log record of the conversion, in addition to the
// warnings returned by terminal operations.
func (c *Converter) Logger(l *slog.Logger) *Converter {
	out := c.clone()
	out.options.logger = l
	return out
}

// ============================================================================
// Terminal Operations (execute the conversion and return results)
// ============================================================================

// HTML converts the document to HTML.
//
// Returns the HTML, any warnings encountered during processing, and an
// error if the document could not be read. Warnings indicate non-fatal
// issues (e.g., an unknown style) where conversion succeeded but results
// may be imperfect.
//
// Example:
//
//	html, warnings, err := docxconv.Open("document.docx").Fragment().HTML()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", docxconv.FormatWarnings(warnings))
//	}
func (c *Converter) HTML() (string, []Warning, error) {
	return c.run(func(conv *render.Converter, doc *model.Document) (string, error) {
		return conv.HTML(doc)
	})
}

// Text converts the document to plain text.
//
// Example:
//
//	text, _, err := docxconv.Open("document.docx").Text()
func (c *Converter) Text() (string, []Warning, error) {
	return c.run(func(conv *render.Converter, doc *model.Document) (string, error) {
		return conv.Text(doc)
	})
}

// Markdown converts the document to Markdown.
//
// Example:
//
//	md, _, err := docxconv.Open("document.docx").Markdown()
func (c *Converter) Markdown() (string, []Warning, error) {
	return c.run(func(conv *render.Converter, doc *model.Document) (string, error) {
		return conv.Markdown(doc)
	})
}

// Convert converts to one of FormatHTML, FormatText or FormatMarkdown.
func (c *Converter) Convert(outputFormat string) (string, []Warning, error) {
	switch outputFormat {
	case FormatHTML:
		return c.HTML()
	case FormatText:
		return c.Text()
	case FormatMarkdown:
		return c.Markdown()
	}
	return "", nil, fmt.Errorf("unsupported output format %q", outputFormat)
}

// Document returns the parsed document model.
func (c *Converter) Document() (*model.Document, []Warning, error) {
	coll, logger := c.logging()
	r, err := c.open(logger)
	if err != nil {
		return nil, coll.Warnings(), err
	}
	return r.Document(), coll.Warnings(), nil
}

func (c *Converter) run(fn func(*render.Converter, *model.Document) (string, error)) (string, []Warning, error) {
	coll, logger := c.logging()
	r, err := c.open(logger)
	if err != nil {
		return "", coll.Warnings(), err
	}

	conv := render.New(r.Styles(), r.Numbering(), c.options.renderOptions(logger)...)
	out, err := fn(conv, r.Document())
	if err != nil {
		return "", coll.Warnings(), err
	}
	return out, coll.Warnings(), nil
}

// logging builds the logger for one conversion: a collector for warnings
// in front of the configured logger, if any.
func (c *Converter) logging() (*collector, *slog.Logger) {
	var next slog.Handler
	if c.options.logger != nil {
		next = c.options.logger.Handler()
	}
	coll := newCollector(next)
	return coll, slog.New(coll)
}

// open returns the reader, parsing the file on first use.
func (c *Converter) open(logger *slog.Logger) (*docx.Reader, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.reader != nil {
		return c.reader, nil
	}
	if c.filename == "" {
		return nil, fmt.Errorf("no filename specified")
	}

	f, err := detectFormat(c.filename)
	if err != nil {
		return nil, err
	}
	if !f.Supported() {
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedFormat, c.filename, f)
	}

	r, err := docx.Open(c.filename, docx.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", f, err)
	}
	return r, nil
}

// detectFormat trusts a known extension and sniffs the content otherwise.
func detectFormat(filename string) (format.Format, error) {
	if f := format.Detect(filename); f != format.Unknown {
		return f, nil
	}

	file, err := os.Open(filename)
	if err != nil {
		return format.Unknown, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return format.Unknown, fmt.Errorf("stat file: %w", err)
	}
	return format.DetectFromReader(file, info.Size())
}
