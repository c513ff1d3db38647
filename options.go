package docxconv

import (
	"log/slog"

	"github.com/tsawler/docxconv/render"
)

// ConvertOptions holds configuration for a conversion.
type ConvertOptions struct {
	// HTML document shell
	fragment    bool
	title       string
	language    string
	responsive  bool
	printStyles bool

	// HTML content
	styleMode    render.StyleMode
	semanticTags bool
	sanitize     bool

	// Plain text
	tableMode          render.TableMode
	paragraphSeparator string

	// Cascade
	explicitNulls bool

	logger *slog.Logger
}

// defaultOptions returns the default conversion options.
func defaultOptions() ConvertOptions {
	return ConvertOptions{
		language:           "en",
		responsive:         true,
		styleMode:          render.StyleInline,
		tableMode:          render.TableAuto,
		paragraphSeparator: "\n\n",
	}
}

// renderOptions translates the options for the render package.
func (o ConvertOptions) renderOptions(logger *slog.Logger) []render.Option {
	return []render.Option{
		render.WithLogger(logger),
		render.WithFragment(o.fragment),
		render.WithTitle(o.title),
		render.WithLanguage(o.language),
		render.WithResponsive(o.responsive),
		render.WithPrintStyles(o.printStyles),
		render.WithStyleMode(o.styleMode),
		render.WithSemanticTags(o.semanticTags),
		render.WithSanitize(o.sanitize),
		render.WithTableMode(o.tableMode),
		render.WithParagraphSeparator(o.paragraphSeparator),
		render.WithExplicitNulls(o.explicitNulls),
	}
}
