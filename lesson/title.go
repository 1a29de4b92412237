// ABOUTME: Title extraction chain for lessons: front matter title, then first H1 heading, then slug.
// ABOUTME: Each extractor is total and reports whether it found a title; the chain stops at the first hit.
package lesson

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Source is what a title extractor sees of a lesson file.
type Source struct {
	Slug string
	Meta FrontMatter
	Body []byte
}

// TitleExtractor derives a lesson title from its source.
type TitleExtractor interface {
	ExtractTitle(src Source) (string, bool)
}

// TitleExtractorFunc adapts a function to TitleExtractor.
type TitleExtractorFunc func(src Source) (string, bool)

// ExtractTitle implements TitleExtractor.
func (f TitleExtractorFunc) ExtractTitle(src Source) (string, bool) {
	return f(src)
}

// FrontMatterTitle uses the title declared in front matter.
var FrontMatterTitle = TitleExtractorFunc(func(src Source) (string, bool) {
	title := strings.TrimSpace(src.Meta.Title)
	return title, title != ""
})

// HeadingTitle uses the text of the first level-1 heading in the body.
var HeadingTitle = TitleExtractorFunc(func(src Source) (string, bool) {
	title := firstHeading(src.Body)
	return title, title != ""
})

// SlugTitle falls back to the slug itself.
var SlugTitle = TitleExtractorFunc(func(src Source) (string, bool) {
	return src.Slug, src.Slug != ""
})

// DefaultExtractors returns the standard chain.
func DefaultExtractors() []TitleExtractor {
	return []TitleExtractor{FrontMatterTitle, HeadingTitle, SlugTitle}
}

func extractTitle(chain []TitleExtractor, src Source) string {
	for _, e := range chain {
		if title, ok := e.ExtractTitle(src); ok {
			return title
		}
	}
	return src.Slug
}

var headingParser = goldmark.New().Parser()

// firstHeading returns the plain text of the first H1, or "" if there is none.
func firstHeading(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	doc := headingParser.Parse(text.NewReader(body))

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			title = strings.TrimSpace(inlineText(h, body))
			if title != "" {
				return ast.WalkStop, nil
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return title
}

// inlineText concatenates the literal text under n.
func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
