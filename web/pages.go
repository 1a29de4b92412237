// ABOUTME: Builds template data for the home, lesson, and 404 pages from the catalog and rendered Markdown.
// ABOUTME: Shared by the HTTP handlers and the static exporter so both produce identical pages.
package web

import (
	"context"
	"fmt"

	"github.com/habeetat/corso/lesson"
)

func (s *Server) homeData() PageData {
	return s.homePage(s.catalog.List())
}

func (s *Server) homePage(descriptors []lesson.Descriptor) PageData {
	return PageData{
		Site:    s.site,
		Lessons: lesson.Label(descriptors),
	}
}

func (s *Server) notFoundData() PageData {
	return PageData{
		Title: "Pagina non trovata",
		Site:  s.site,
	}
}

// lessonData loads the lesson with the given slug, renders its body, and
// links its neighbours. Unknown slugs return an error wrapping
// lesson.ErrNotFound.
func (s *Server) lessonData(ctx context.Context, slug string) (PageData, error) {
	return s.lessonPage(ctx, s.catalog.Lessons(), slug)
}

func (s *Server) lessonPage(ctx context.Context, lessons []lesson.Lesson, slug string) (PageData, error) {
	idx := -1
	descriptors := make([]lesson.Descriptor, 0, len(lessons))
	for i, l := range lessons {
		descriptors = append(descriptors, l.Descriptor)
		if l.Slug == slug {
			idx = i
		}
	}
	if idx < 0 {
		return PageData{}, fmt.Errorf("slug %q: %w", slug, lesson.ErrNotFound)
	}

	doc, err := s.docs.Render(ctx, lessons[idx].Body)
	if err != nil {
		return PageData{}, fmt.Errorf("rendering lesson %q: %w", slug, err)
	}

	entries := lesson.Label(descriptors)
	data := PageData{
		Title:       entries[idx].Title,
		Site:        s.site,
		Lesson:      &entries[idx],
		Description: lessons[idx].Description,
		Doc:         doc,
	}
	if idx > 0 {
		data.Prev = &entries[idx-1]
	}
	if idx < len(entries)-1 {
		data.Next = &entries[idx+1]
	}
	return data, nil
}
