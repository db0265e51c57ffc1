// Package markdown renders Markdown fragments into HTML for query results.
// Insight paragraphs and methodology notes are authored as Markdown and
// converted here before being embedded in a result body.
package markdown

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Service converts Markdown source into an HTML fragment.
type Service interface {
	Render(source string) (string, error)
}

type renderer struct {
	md goldmark.Markdown
}

// NewService creates a Markdown renderer with GFM extensions enabled.
// Raw HTML in the source is omitted from the output, so rendered
// fragments are safe to embed alongside escaped result tables.
func NewService() Service {
	return &renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

func (r *renderer) Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", errors.Wrap(err, "failed to render markdown")
	}
	return buf.String(), nil
}
