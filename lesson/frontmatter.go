// ABOUTME: Splits an optional YAML front matter block from the top of a lesson file.
// ABOUTME: The block is delimited by "---" lines; a block without a closing delimiter is malformed.
package lesson

import (
	"bytes"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FrontMatter is the metadata a lesson may declare before its body.
type FrontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

var fmDelimiter = []byte("---")

// splitFrontMatter separates front matter from the Markdown body. Files that
// do not start with a delimiter line have no front matter and are returned
// unchanged.
func splitFrontMatter(raw []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter

	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	first, rest, _ := cutLine(raw)
	if !bytes.Equal(bytes.TrimRight(first, " \t\r"), fmDelimiter) {
		return meta, raw, nil
	}

	var block []byte
	remaining := rest
	for {
		line, next, more := cutLine(remaining)
		trimmed := bytes.TrimRight(line, " \t\r")
		if bytes.Equal(trimmed, fmDelimiter) || bytes.Equal(trimmed, []byte("...")) {
			if err := yaml.Unmarshal(block, &meta); err != nil {
				return FrontMatter{}, nil, errors.Wrap(err, "parsing front matter")
			}
			return meta, next, nil
		}
		block = append(block, line...)
		block = append(block, '\n')
		if !more {
			return FrontMatter{}, nil, errors.New("front matter is not closed")
		}
		remaining = next
	}
}

// cutLine returns the first line of b (without its newline), the remainder,
// and whether a newline was found.
func cutLine(b []byte) (line, rest []byte, found bool) {
	return bytes.Cut(b, []byte("\n"))
}
