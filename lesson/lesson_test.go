// ABOUTME: Tests for the LessonCatalog listing, ordering, duplicate handling, and failure absorption.
// ABOUTME: Uses an in-memory afero filesystem so fixtures never touch disk.
package lesson

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newFixture(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll(DefaultDir, 0o755))
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fsys, filepath.Join(DefaultDir, name), []byte(content), 0o644))
	}
	return fsys
}

// failingFs refuses to open one file, standing in for an unreadable lesson.
type failingFs struct {
	afero.Fs
	fail string
}

func (f failingFs) Open(name string) (afero.File, error) {
	if filepath.Base(name) == f.fail {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return f.Fs.Open(name)
}

func slugs(ds []Descriptor) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Slug)
	}
	return out
}

func TestListMissingDirectoryIsEmpty(t *testing.T) {
	c := New(WithFs(afero.NewMemMapFs()))

	got := c.List()
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListEmptyDirectory(t *testing.T) {
	c := New(WithFs(newFixture(t, nil)))

	got := c.List()
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListOneDescriptorPerEntry(t *testing.T) {
	fsys := newFixture(t, map[string]string{
		"01-intro.md":     "---\ntitle: Introduzione\n---\nBenvenuti.\n",
		"02-variabili.md": "# Variabili\n\nTesto.\n",
		"03-cicli.md":     "Nessun titolo qui.\n",
	})
	c := New(WithFs(fsys))

	got := c.List()
	assert.Equal(t, []Descriptor{
		{Slug: "01-intro", Title: "Introduzione"},
		{Slug: "02-variabili", Title: "Variabili"},
		{Slug: "03-cicli", Title: "03-cicli"},
	}, got)
}

func TestListNaturalOrder(t *testing.T) {
	fsys := newFixture(t, map[string]string{
		"10-ricorsione.md": "# Ricorsione",
		"2-cicli.md":       "# Cicli",
		"1-intro.md":       "# Intro",
		"appendice-a.md":   "# Appendice A",
	})
	c := New(WithFs(fsys))

	assert.Equal(t, []string{"1-intro", "2-cicli", "10-ricorsione", "appendice-a"}, slugs(c.List()))
}

func TestListIsDeterministic(t *testing.T) {
	fsys := newFixture(t, map[string]string{
		"b.md":   "# B",
		"a.md":   "# A",
		"3-x.md": "# X",
		"c.mdx":  "# C",
	})
	c := New(WithFs(fsys))

	first := c.List()
	second := c.List()
	assert.Equal(t, first, second)
}

func TestListIgnoresNonLessonEntries(t *testing.T) {
	fsys := newFixture(t, map[string]string{
		"intro.md":          "# Intro",
		"notes.txt":         "not a lesson",
		".hidden.md":        "# Hidden",
		"_draft.md":         "# Draft",
		"sub/nested.md":     "# Nested",
		"LOUD.MARKDOWN":     "# Loud",
		"image.png":         "png",
		"esercizi.mdx":      "# Esercizi",
		"capitolo.markdown": "# Capitolo",
	})
	c := New(WithFs(fsys))

	assert.ElementsMatch(t, []string{"intro", "LOUD", "esercizi", "capitolo"}, slugs(c.List()))
}

func TestListSkipsUnreadableEntry(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	fsys := failingFs{
		Fs: newFixture(t, map[string]string{
			"1-a.md": "# A",
			"2-b.md": "# B",
			"3-c.md": "# C",
		}),
		fail: "2-b.md",
	}
	c := New(WithFs(fsys), WithLogger(zap.New(core).Sugar()))

	assert.Equal(t, []string{"1-a", "3-c"}, slugs(c.List()))
	require.Equal(t, 1, logs.FilterMessage("skipping lesson").Len())
}

func TestListSkipsMalformedFrontMatter(t *testing.T) {
	fsys := newFixture(t, map[string]string{
		"1-ok.md":       "---\ntitle: Ok\n---\nbody",
		"2-unclosed.md": "---\ntitle: Never closed\nbody",
		"3-badyaml.md":  "---\ntitle: [unterminated\n---\nbody",
		"4-ok.md":       "# Also ok",
	})
	c := New(WithFs(fsys))

	assert.Equal(t, []Descriptor{
		{Slug: "1-ok", Title: "Ok"},
		{Slug: "4-ok", Title: "Also ok"},
	}, c.List())
}

func TestListSkipsUnsafeSlug(t *testing.T) {
	fsys := newFixture(t, map[string]string{
		"good.md":         "# Good",
		"has space.md":    "# Spaced",
		"questo?forse.md": "# Query",
	})
	c := New(WithFs(fsys))

	assert.Equal(t, []string{"good"}, slugs(c.List()))
}

func TestListDuplicateSlugFirstWins(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	fsys := newFixture(t, map[string]string{
		"intro.markdown": "# From markdown",
		"intro.md":       "# From md",
	})
	c := New(WithFs(fsys), WithLogger(zap.New(core).Sugar()))

	got := c.List()
	require.Len(t, got, 1)
	assert.Equal(t, "From markdown", got[0].Title)
	assert.Equal(t, 1, logs.FilterMessage("skipping duplicate lesson slug").Len())
}

func TestListSlugsUnique(t *testing.T) {
	fsys := newFixture(t, map[string]string{
		"a.md": "# A", "a.mdx": "# A2", "b.md": "# B", "c.md": "# C",
	})
	c := New(WithFs(fsys))

	seen := map[string]bool{}
	for _, d := range c.List() {
		assert.False(t, seen[d.Slug], "duplicate slug %q", d.Slug)
		seen[d.Slug] = true
	}
	assert.Len(t, seen, 3)
}

func TestLessonsCarryBodyWithoutFrontMatter(t *testing.T) {
	fsys := newFixture(t, map[string]string{
		"intro.md": "---\ntitle: Intro\ndescription: Primi passi\n---\n# Ciao\n",
	})
	c := New(WithFs(fsys))

	lessons := c.Lessons()
	require.Len(t, lessons, 1)
	assert.Equal(t, "Primi passi", lessons[0].Description)
	assert.Equal(t, "# Ciao\n", string(lessons[0].Body))
	assert.Equal(t, filepath.Join(DefaultDir, "intro.md"), lessons[0].Path)
}

func TestGet(t *testing.T) {
	fsys := newFixture(t, map[string]string{"intro.md": "# Intro"})
	c := New(WithFs(fsys))

	l, err := c.Get("intro")
	require.NoError(t, err)
	assert.Equal(t, "Intro", l.Title)

	_, err = c.Get("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestWithDir(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "content/corso/intro.md", []byte("# Intro"), 0o644))
	c := New(WithFs(fsys), WithDir("content/corso"))

	assert.Equal(t, "content/corso", c.Dir())
	assert.Equal(t, []string{"intro"}, slugs(c.List()))
}

func TestWithExtractorsReplacesChain(t *testing.T) {
	fsys := newFixture(t, map[string]string{"intro.md": "---\ntitle: Ignored\n---\n"})
	upper := TitleExtractorFunc(func(src Source) (string, bool) {
		return "LEZIONE " + src.Slug, true
	})
	c := New(WithFs(fsys), WithExtractors(upper))

	assert.Equal(t, "LEZIONE intro", c.List()[0].Title)
}

func TestListReadsOSFilesystem(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1-intro.md"), []byte("# Intro"), 0o644))

	c := New(WithDir(dir))
	assert.Equal(t, []Descriptor{{Slug: "1-intro", Title: "Intro"}}, c.List())
}
