// ABOUTME: Converts lesson Markdown to HTML with goldmark and collects the section headings for navigation.
// ABOUTME: Raw HTML in lesson sources is dropped by the renderer, so lesson content cannot inject markup.
package render

import (
	"bytes"
	"context"
	"html/template"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Heading is one section heading of a rendered lesson.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// Document is a rendered lesson body.
type Document struct {
	HTML     template.HTML
	Headings []Heading // level 2 and 3 headings, in document order
}

// Markdown renders lesson sources.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown returns a renderer with GFM tables, strikethrough, task lists,
// footnotes, typographic quotes and generated heading IDs.
func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Footnote,
				extension.Typographer,
			),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

// Render converts source to a Document.
func (m *Markdown) Render(ctx context.Context, source []byte) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	doc := m.md.Parser().Parse(text.NewReader(source))

	var buf bytes.Buffer
	if err := m.md.Renderer().Render(&buf, source, doc); err != nil {
		return Document{}, errors.Wrap(err, "rendering markdown")
	}

	return Document{
		HTML:     template.HTML(buf.String()),
		Headings: collectHeadings(doc, source),
	}, nil
}

func collectHeadings(doc ast.Node, source []byte) []Heading {
	var out []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Level == 2 || h.Level == 3 {
			var id string
			if v, ok := h.AttributeString("id"); ok {
				if b, ok := v.([]byte); ok {
					id = string(b)
				}
			}
			out = append(out, Heading{
				Level: h.Level,
				ID:    id,
				Text:  strings.TrimSpace(plainText(h, source)),
			})
		}
		return ast.WalkSkipChildren, nil
	})
	return out
}

func plainText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
