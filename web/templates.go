// ABOUTME: TemplateEngine loads embedded HTML templates and renders them with Go's html/template.
// ABOUTME: Every page is parsed together with layout.html, which carries the navbar and background chrome.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/habeetat/corso/config"
	"github.com/habeetat/corso/lesson"
	"github.com/habeetat/corso/render"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names.
const (
	pageHome     = "home.html"
	pageLesson   = "lesson.html"
	pageNotFound = "not_found.html"
)

// PageData holds all data passed to templates for rendering.
type PageData struct {
	Title       string
	Site        config.Config
	Lessons     []lesson.Entry // home page listing
	Lesson      *lesson.Entry  // lesson page
	Description string
	Doc         render.Document
	Prev        *lesson.Entry
	Next        *lesson.Entry
}

// TemplateEngine loads and renders embedded HTML templates.
type TemplateEngine struct {
	templates map[string]*template.Template
}

// NewTemplateEngine parses all embedded templates and returns a ready-to-use engine.
func NewTemplateEngine() (*TemplateEngine, error) {
	pages := []string{pageHome, pageLesson, pageNotFound}

	engine := &TemplateEngine{
		templates: make(map[string]*template.Template, len(pages)),
	}

	for _, page := range pages {
		t, err := template.New("layout.html").ParseFS(
			templateFS,
			"templates/layout.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		engine.templates[page] = t
	}

	return engine, nil
}

// Render executes the named template with the given data and writes the result
// to w with the given status code. Nothing is written if execution fails.
func (e *TemplateEngine) Render(w http.ResponseWriter, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := e.RenderTo(&buf, name, data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// RenderTo executes the named template with the given data and writes the
// result to an arbitrary io.Writer. The exporter writes pages this way.
func (e *TemplateEngine) RenderTo(w io.Writer, name string, data any) error {
	t, ok := e.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	return t.ExecuteTemplate(w, "layout.html", data)
}
