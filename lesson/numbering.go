// ABOUTME: Homepage labels for lessons: "N. Title" for regular lessons, raw title for appendices.
// ABOUTME: Numbers follow list position, so an appendix still takes its slot and the next lesson skips past it.
package lesson

import (
	"fmt"
	"strings"
)

// AppendixMarker marks a lesson title as an appendix.
const AppendixMarker = "Appendice"

// Entry is a descriptor ready for display in the lesson list.
type Entry struct {
	Descriptor
	Number int    `json:"number,omitempty"` // position in the list; 0 for appendices
	Text   string `json:"text"`
	Href   string `json:"href"`
}

// IsAppendix reports whether the entry is an unnumbered appendix.
func (e Entry) IsAppendix() bool {
	return e.Number == 0
}

// Href returns the page path for a lesson slug.
func Href(slug string) string {
	return "/lesson/" + slug
}

// Label numbers descriptors by their 1-based position. Titles containing
// AppendixMarker are shown verbatim but still occupy their position.
func Label(descriptors []Descriptor) []Entry {
	entries := make([]Entry, 0, len(descriptors))
	for i, d := range descriptors {
		e := Entry{Descriptor: d, Text: d.Title, Href: Href(d.Slug)}
		if !strings.Contains(d.Title, AppendixMarker) {
			e.Number = i + 1
			e.Text = fmt.Sprintf("%d. %s", e.Number, d.Title)
		}
		entries = append(entries, e)
	}
	return entries
}
