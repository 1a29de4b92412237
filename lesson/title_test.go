// ABOUTME: Tests for the title extraction chain and H1 heading detection.
// ABOUTME: Covers precedence, inline markup inside headings, and the slug fallback.
package lesson

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTitlePrecedence(t *testing.T) {
	tests := []struct {
		name string
		src  Source
		want string
	}{
		{
			name: "front matter wins over heading",
			src:  Source{Slug: "intro", Meta: FrontMatter{Title: "Dal front matter"}, Body: []byte("# Dal titolo\n")},
			want: "Dal front matter",
		},
		{
			name: "heading when front matter has no title",
			src:  Source{Slug: "intro", Body: []byte("Testo\n\n# Primo titolo\n\n# Secondo\n")},
			want: "Primo titolo",
		},
		{
			name: "blank front matter title is ignored",
			src:  Source{Slug: "intro", Meta: FrontMatter{Title: "   "}, Body: []byte("# Titolo\n")},
			want: "Titolo",
		},
		{
			name: "slug when nothing else",
			src:  Source{Slug: "03-cicli", Body: []byte("## Solo H2\n\ntesto")},
			want: "03-cicli",
		},
		{
			name: "slug for empty body",
			src:  Source{Slug: "vuota"},
			want: "vuota",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractTitle(DefaultExtractors(), tt.src))
		})
	}
}

func TestFirstHeadingInlineMarkup(t *testing.T) {
	body := []byte("# Le *funzioni* in `Go`\n")
	assert.Equal(t, "Le funzioni in Go", firstHeading(body))
}

func TestFirstHeadingSetext(t *testing.T) {
	body := []byte("Puntatori\n=========\n\ntesto\n")
	assert.Equal(t, "Puntatori", firstHeading(body))
}

func TestFirstHeadingIgnoresCodeBlocks(t *testing.T) {
	body := []byte("```\n# non un titolo\n```\n\n# Vero titolo\n")
	assert.Equal(t, "Vero titolo", firstHeading(body))
}

func TestFirstHeadingSkipsEmptyHeading(t *testing.T) {
	body := []byte("#\n\n# Dopo\n")
	assert.Equal(t, "Dopo", firstHeading(body))
}

func TestExtractTitleEmptyChainFallsBackToSlug(t *testing.T) {
	assert.Equal(t, "intro", extractTitle(nil, Source{Slug: "intro"}))
}
