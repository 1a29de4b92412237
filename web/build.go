// ABOUTME: Static export of the course site: every page rendered to HTML files plus assets and a build manifest.
// ABOUTME: Output is assembled in a sibling temp directory and renamed over the target once complete.
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/afero"

	"github.com/habeetat/corso/lesson"
)

// BuildManifest describes one static export.
type BuildManifest struct {
	ID      string         `json:"id"`
	BuiltAt time.Time      `json:"built_at"`
	Course  string         `json:"course"`
	Lessons []lesson.Entry `json:"lessons"`
	Pages   []string       `json:"pages"`
}

// Export renders the whole site into outDir. An existing outDir is replaced
// only after every page has been written successfully.
func (s *Server) Export(ctx context.Context, outDir string) (*BuildManifest, error) {
	if outDir == "" {
		return nil, fmt.Errorf("output directory must not be empty")
	}
	if err := s.checkOutDir(outDir); err != nil {
		return nil, err
	}

	id := ulid.Make()
	tmp := filepath.Clean(outDir) + ".tmp-" + id.String()
	if err := s.fs.MkdirAll(tmp, 0o755); err != nil {
		return nil, fmt.Errorf("creating build directory: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.fs.RemoveAll(tmp)
		}
	}()

	lessons := s.catalog.Lessons()
	descriptors := make([]lesson.Descriptor, 0, len(lessons))
	for _, l := range lessons {
		descriptors = append(descriptors, l.Descriptor)
	}

	manifest := &BuildManifest{
		ID:      id.String(),
		BuiltAt: time.Now().UTC(),
		Course:  s.site.Course,
		Lessons: lesson.Label(descriptors),
	}

	b := &builder{fs: s.fs, root: tmp, manifest: manifest}

	if err := b.page("index.html", s.templates, pageHome, s.homePage(descriptors)); err != nil {
		return nil, err
	}
	for _, l := range lessons {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := s.lessonPage(ctx, lessons, l.Slug)
		if err != nil {
			return nil, err
		}
		if err := b.page(path.Join("lesson", l.Slug, "index.html"), s.templates, pageLesson, data); err != nil {
			return nil, err
		}
	}
	if err := b.page("404.html", s.templates, pageNotFound, s.notFoundData()); err != nil {
		return nil, err
	}

	if err := b.copyEmbedded(StaticFS, "static"); err != nil {
		return nil, fmt.Errorf("copying static assets: %w", err)
	}
	if err := b.copyPublic(s.site.PublicDir); err != nil {
		return nil, fmt.Errorf("copying public files: %w", err)
	}

	raw, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	if err := b.write("manifest.json", raw); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.fs.RemoveAll(outDir); err != nil {
		return nil, fmt.Errorf("removing previous build: %w", err)
	}
	if err := s.fs.Rename(tmp, outDir); err != nil {
		return nil, fmt.Errorf("moving build into place: %w", err)
	}
	committed = true

	s.logger.Infow("site exported", "out", outDir, "build_id", manifest.ID, "lessons", len(lessons), "pages", len(manifest.Pages))
	return manifest, nil
}

// checkOutDir rejects an output directory that is, contains, or sits inside
// the content or public directory, since Export replaces it wholesale.
func (s *Server) checkOutDir(outDir string) error {
	out, err := filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("resolving output directory: %w", err)
	}
	sources := map[string]string{
		"content": s.site.ContentDir,
		"public":  s.site.PublicDir,
	}
	for kind, dir := range sources {
		if dir == "" {
			continue
		}
		src, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("resolving %s directory: %w", kind, err)
		}
		if within(out, src) || within(src, out) {
			return fmt.Errorf("output directory %q overlaps the %s directory %q", outDir, kind, dir)
		}
	}
	return nil
}

// within reports whether path is dir or lies below it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// builder writes files under root and records rendered pages.
type builder struct {
	fs       afero.Fs
	root     string
	manifest *BuildManifest
}

func (b *builder) page(rel string, tmpl *TemplateEngine, name string, data PageData) error {
	var buf bytes.Buffer
	if err := tmpl.RenderTo(&buf, name, data); err != nil {
		return fmt.Errorf("rendering %s: %w", rel, err)
	}
	if err := b.write(rel, buf.Bytes()); err != nil {
		return err
	}
	b.manifest.Pages = append(b.manifest.Pages, rel)
	return nil
}

func (b *builder) write(rel string, data []byte) error {
	dst := filepath.Join(b.root, filepath.FromSlash(rel))
	if err := b.fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", rel, err)
	}
	if err := afero.WriteFile(b.fs, dst, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	return nil
}

// copyEmbedded copies the tree under dir of fsys, keeping dir as the
// top-level output directory.
func (b *builder) copyEmbedded(fsys fs.FS, dir string) error {
	return fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		return b.write(p, data)
	})
}

// copyPublic copies the public directory into the output root. A missing
// public directory is not an error.
func (b *builder) copyPublic(dir string) error {
	if dir == "" {
		return nil
	}
	if _, err := b.fs.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return afero.Walk(b.fs, dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if filepath.Clean(p) == filepath.Clean(b.root) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		data, err := afero.ReadFile(b.fs, p)
		if err != nil {
			return err
		}
		return b.write(filepath.ToSlash(rel), data)
	})
}
