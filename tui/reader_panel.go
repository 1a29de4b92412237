// ABOUTME: Lesson reader panel: shows one lesson's Markdown source in a scrollable bubbles viewport.
// ABOUTME: The title line repeats the homepage label so appendices read the same as on the site.
package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/habeetat/corso/lesson"
)

// ReaderPanelModel displays the source of the open lesson.
type ReaderPanelModel struct {
	entry    lesson.Entry
	viewport viewport.Model
	width    int
	height   int
}

// NewReaderPanelModel creates an empty reader.
func NewReaderPanelModel() ReaderPanelModel {
	return ReaderPanelModel{viewport: viewport.New(80, 10)}
}

// Open shows body under the entry's label, scrolled to the top.
func (m *ReaderPanelModel) Open(entry lesson.Entry, body []byte) {
	m.entry = entry
	m.viewport.SetContent(string(body))
	m.viewport.GotoTop()
}

// Refresh replaces the shown lesson after a reload, keeping the scroll
// position where the new body allows it.
func (m *ReaderPanelModel) Refresh(entry lesson.Entry, body []byte) {
	offset := m.viewport.YOffset
	m.entry = entry
	m.viewport.SetContent(string(body))
	m.viewport.SetYOffset(offset)
}

// Entry returns the lesson currently shown.
func (m ReaderPanelModel) Entry() lesson.Entry {
	return m.entry
}

// SetSize sets the panel dimensions and resizes the viewport inside the
// border and title line.
func (m *ReaderPanelModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = max(w-2, 1)
	m.viewport.Height = max(h-3, 1)
}

// Update forwards scrolling keys to the viewport.
func (m ReaderPanelModel) Update(msg tea.Msg) (ReaderPanelModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the panel.
func (m ReaderPanelModel) View() string {
	rendered := TitleStyle.Render(m.entry.Text) + "\n" + m.viewport.View()
	return BorderStyle.
		Width(max(m.width-2, 1)).
		Height(max(m.height-2, 1)).
		Render(rendered)
}
