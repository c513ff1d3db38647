package render

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/tsawler/docxconv/model"
)

// Markdown renders doc as CommonMark with GitHub-style tables. The body is
// rendered to HTML with semantic tags and no inline styles first, and
// numbered paragraphs become ol and ul lists.
func (c *Converter) Markdown(doc *model.Document) (string, error) {
	md := *c
	md.fragment = true
	md.semanticTags = true
	md.styleMode = StyleNone
	md.sanitize = false
	md.listElements = true

	h, err := md.HTML(doc)
	if err != nil {
		return "", err
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	out, err := conv.ConvertString(h)
	if err != nil {
		return "", fmt.Errorf("converting to markdown: %w", err)
	}
	return strings.TrimSpace(out) + "\n", nil
}
