// ABOUTME: Shared fixtures for web package tests: a site config and a server over an in-memory filesystem.
package web

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/habeetat/corso/config"
)

func testSite() config.Config {
	site := config.Default()
	site.Course = "Programmazione in Go"
	site.CourseDescription = "Un corso per principianti"
	return site
}

func writeFiles(t *testing.T, fsys afero.Fs, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, name)
		require.NoError(t, fsys.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, afero.WriteFile(fsys, p, []byte(content), 0o644))
	}
}

var fixtureLessons = map[string]string{
	"01-intro.md":       "---\ntitle: Intro\ndescription: Si parte\n---\n## Primi passi\n\nTesto.\n",
	"02-appendice-a.md": "# Appendice A\n\nStrumenti.\n",
	"03-loops.md":       "# Loops\n\n```go\nfor {}\n```\n",
}

func newTestServer(t *testing.T) (*Server, afero.Fs) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	writeFiles(t, fsys, "lessons", fixtureLessons)
	writeFiles(t, fsys, "public", map[string]string{"images/habeetat.png": "png-bytes"})

	srv, err := NewServer(ServerConfig{Site: testSite(), Fs: fsys})
	require.NoError(t, err)
	return srv, fsys
}
