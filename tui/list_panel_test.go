// ABOUTME: Tests for the ListPanelModel cursor bounds and scrolling window.
package tui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/habeetat/corso/lesson"
)

func manyEntries(n int) []lesson.Entry {
	ds := make([]lesson.Descriptor, n)
	for i := range ds {
		ds[i] = lesson.Descriptor{Slug: fmt.Sprintf("l%02d", i), Title: fmt.Sprintf("Lezione %02d", i)}
	}
	return lesson.Label(ds)
}

func TestListPanel_SelectedOnEmpty(t *testing.T) {
	m := NewListPanelModel()
	if _, ok := m.Selected(); ok {
		t.Error("Selected() on an empty list should report false")
	}
	m.MoveDown()
	m.End()
	if m.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", m.Cursor())
	}
}

func TestListPanel_ScrollKeepsCursorVisible(t *testing.T) {
	m := NewListPanelModel()
	m.SetSize(60, 8) // five visible rows
	m.SetEntries(manyEntries(20))

	for i := 0; i < 12; i++ {
		m.MoveDown()
	}
	view := m.View()
	if !strings.Contains(view, "> 13. Lezione 12") {
		t.Errorf("cursor row not visible:\n%s", view)
	}
	if strings.Contains(view, "Lezione 00") {
		t.Errorf("first row should have scrolled out:\n%s", view)
	}

	m.Home()
	if !strings.Contains(m.View(), "> 1. Lezione 00") {
		t.Errorf("Home should scroll back to the top:\n%s", m.View())
	}
}

func TestListPanel_SetEntriesClampsCursor(t *testing.T) {
	m := NewListPanelModel()
	m.SetEntries(manyEntries(5))
	m.End()

	m.SetEntries(manyEntries(2))
	if m.Cursor() != 1 {
		t.Errorf("cursor = %d, want 1", m.Cursor())
	}
	e, ok := m.Selected()
	if !ok || e.Slug != "l01" {
		t.Errorf("Selected() = %+v, %v", e, ok)
	}
}

func TestEntryStyle(t *testing.T) {
	numbered := lesson.Entry{Number: 1}
	appendix := lesson.Entry{}

	if got := EntryStyle(numbered, true).GetBold(); !got {
		t.Error("selected rows should be bold")
	}
	if !EntryStyle(appendix, false).GetItalic() {
		t.Error("appendix rows should be italic")
	}
	if EntryStyle(numbered, false).GetItalic() {
		t.Error("numbered rows should not be italic")
	}
}
