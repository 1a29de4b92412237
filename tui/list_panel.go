// ABOUTME: Scrollable lesson list panel showing homepage labels with a movable cursor.
// ABOUTME: Keeps the cursor row visible by sliding a window over the entries.
package tui

import (
	"strings"

	"github.com/habeetat/corso/lesson"
)

// ListPanelModel shows the labelled lessons and tracks the selection.
type ListPanelModel struct {
	entries []lesson.Entry
	cursor  int
	offset  int
	width   int
	height  int
}

// NewListPanelModel creates an empty list panel.
func NewListPanelModel() ListPanelModel {
	return ListPanelModel{width: 40, height: 10}
}

// SetEntries replaces the list contents, keeping the cursor in range.
func (m *ListPanelModel) SetEntries(entries []lesson.Entry) {
	m.entries = entries
	if m.cursor >= len(entries) {
		m.cursor = max(len(entries)-1, 0)
	}
	m.scroll()
}

// Len returns the number of entries.
func (m ListPanelModel) Len() int {
	return len(m.entries)
}

// Cursor returns the index of the selected entry.
func (m ListPanelModel) Cursor() int {
	return m.cursor
}

// Selected returns the entry under the cursor.
func (m ListPanelModel) Selected() (lesson.Entry, bool) {
	if len(m.entries) == 0 {
		return lesson.Entry{}, false
	}
	return m.entries[m.cursor], true
}

// MoveUp moves the cursor one row up, stopping at the first entry.
func (m *ListPanelModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
	m.scroll()
}

// MoveDown moves the cursor one row down, stopping at the last entry.
func (m *ListPanelModel) MoveDown() {
	if m.cursor < len(m.entries)-1 {
		m.cursor++
	}
	m.scroll()
}

// Home jumps to the first entry.
func (m *ListPanelModel) Home() {
	m.cursor = 0
	m.scroll()
}

// End jumps to the last entry.
func (m *ListPanelModel) End() {
	m.cursor = max(len(m.entries)-1, 0)
	m.scroll()
}

// SetSize sets the panel dimensions including its border.
func (m *ListPanelModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.scroll()
}

// rows is the number of entries that fit inside the border below the title.
func (m ListPanelModel) rows() int {
	return max(m.height-3, 1)
}

func (m *ListPanelModel) scroll() {
	rows := m.rows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View renders the panel.
func (m ListPanelModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("LEZIONI"))

	if len(m.entries) == 0 {
		b.WriteString("\n")
		b.WriteString(EmptyStyle.Render("Nessuna lezione disponibile."))
	}

	end := min(m.offset+m.rows(), len(m.entries))
	for i := m.offset; i < end; i++ {
		e := m.entries[i]
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		b.WriteString("\n")
		b.WriteString(EntryStyle(e, i == m.cursor).Render(marker + e.Text))
	}

	return BorderStyle.
		Width(max(m.width-2, 1)).
		Height(max(m.height-2, 1)).
		Render(b.String())
}
