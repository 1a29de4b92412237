// ABOUTME: LessonCatalog reads a content directory of Markdown lessons into ordered descriptors.
// ABOUTME: Missing directories and malformed files never fail the listing; bad entries are logged and skipped.
package lesson

import (
	"io/fs"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// DefaultDir is the content directory used when none is configured.
const DefaultDir = "lessons"

// ErrNotFound is returned by Get when no lesson has the requested slug.
var ErrNotFound = errors.New("lesson not found")

// Extensions lists the file extensions recognised as lessons.
var Extensions = []string{".md", ".markdown", ".mdx"}

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._~-]*$`)

// Descriptor identifies one lesson for the homepage listing.
type Descriptor struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// Lesson is a descriptor together with the Markdown body it was read from.
type Lesson struct {
	Descriptor
	Description string
	Path        string // path of the source file inside the catalog filesystem
	Body        []byte // Markdown with any front matter removed
}

// Catalog is the read-only collection of lessons in a content directory.
// Every call re-reads the directory; nothing is cached between calls.
type Catalog struct {
	fs         afero.Fs
	dir        string
	logger     *zap.SugaredLogger
	extractors []TitleExtractor
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithDir sets the content directory.
func WithDir(dir string) Option {
	return func(c *Catalog) {
		if dir != "" {
			c.dir = dir
		}
	}
}

// WithFs sets the filesystem the catalog reads from.
func WithFs(fsys afero.Fs) Option {
	return func(c *Catalog) {
		if fsys != nil {
			c.fs = fsys
		}
	}
}

// WithLogger sets the logger used to report skipped entries.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithExtractors replaces the title extraction chain.
func WithExtractors(extractors ...TitleExtractor) Option {
	return func(c *Catalog) {
		if len(extractors) > 0 {
			c.extractors = extractors
		}
	}
}

// New creates a Catalog reading DefaultDir on the OS filesystem unless
// options say otherwise.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		fs:         afero.NewOsFs(),
		dir:        DefaultDir,
		logger:     zap.NewNop().Sugar(),
		extractors: DefaultExtractors(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dir returns the content directory the catalog reads.
func (c *Catalog) Dir() string {
	return c.dir
}

// List returns the lesson descriptors in lesson order. The result is never
// nil; a missing or empty content directory yields an empty slice.
func (c *Catalog) List() []Descriptor {
	return lo.Map(c.Lessons(), func(l Lesson, _ int) Descriptor {
		return l.Descriptor
	})
}

// Lessons returns every well-formed lesson with its body, in lesson order.
// When two files share a slug the first in filename order wins.
func (c *Catalog) Lessons() []Lesson {
	names := c.entryNames()
	lessons := make([]Lesson, 0, len(names))
	seen := make(map[string]string, len(names))

	for _, name := range names {
		l, err := c.load(name)
		if err != nil {
			c.logger.Warnw("skipping lesson", "file", name, "error", err)
			continue
		}
		if first, dup := seen[l.Slug]; dup {
			c.logger.Warnw("skipping duplicate lesson slug", "file", name, "slug", l.Slug, "kept", first)
			continue
		}
		seen[l.Slug] = name
		lessons = append(lessons, l)
	}

	return lessons
}

// Get returns the lesson with the given slug, or an error wrapping
// ErrNotFound.
func (c *Catalog) Get(slug string) (Lesson, error) {
	for _, l := range c.Lessons() {
		if l.Slug == slug {
			return l, nil
		}
	}
	return Lesson{}, errors.Wrapf(ErrNotFound, "slug %q", slug)
}

// entryNames lists candidate lesson files in lesson order.
func (c *Catalog) entryNames() []string {
	infos, err := afero.ReadDir(c.fs, c.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.logger.Debugw("lesson directory missing", "dir", c.dir)
		} else {
			c.logger.Warnw("reading lesson directory", "dir", c.dir, "error", err)
		}
		return nil
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		name := info.Name()
		if info.IsDir() || isHidden(name) || !hasLessonExt(name) {
			continue
		}
		names = append(names, name)
	}

	slices.SortStableFunc(names, func(a, b string) int {
		if n := compareSlugs(slugOf(a), slugOf(b)); n != 0 {
			return n
		}
		return strings.Compare(a, b)
	})
	return names
}

// load reads and parses a single lesson file.
func (c *Catalog) load(name string) (Lesson, error) {
	slug := slugOf(name)
	if !slugPattern.MatchString(slug) {
		return Lesson{}, errors.Errorf("slug %q is not URL-safe", slug)
	}

	p := filepath.Join(c.dir, name)
	raw, err := afero.ReadFile(c.fs, p)
	if err != nil {
		return Lesson{}, errors.Wrap(err, "reading lesson")
	}

	meta, body, err := splitFrontMatter(raw)
	if err != nil {
		return Lesson{}, err
	}

	src := Source{Slug: slug, Meta: meta, Body: body}
	return Lesson{
		Descriptor: Descriptor{
			Slug:  slug,
			Title: extractTitle(c.extractors, src),
		},
		Description: meta.Description,
		Path:        p,
		Body:        body,
	}, nil
}

func slugOf(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

func hasLessonExt(name string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(name)))
}
