// ABOUTME: Single-line status bar for the bottom of the lesson browser.
// ABOUTME: Shows the course name, lesson count, cursor position, and the key hints for the current mode.
package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const (
	listHelp   = "enter apri • r ricarica • q esci"
	readerHelp = "esc indietro • q esci"
)

// StatusBarModel displays browser status in a single line.
type StatusBarModel struct {
	course   string
	total    int
	position int
	reading  bool
	width    int
}

// NewStatusBarModel creates a status bar for the named course.
func NewStatusBarModel(course string) StatusBarModel {
	return StatusBarModel{course: course}
}

// SetTotal updates the lesson count.
func (m *StatusBarModel) SetTotal(n int) {
	m.total = n
}

// SetPosition records the zero-based cursor index.
func (m *StatusBarModel) SetPosition(i int) {
	m.position = i
}

// SetReading switches the key hints between list and reader mode.
func (m *StatusBarModel) SetReading(reading bool) {
	m.reading = reading
}

// SetWidth sets the bar width for rendering.
func (m *StatusBarModel) SetWidth(w int) {
	m.width = w
}

// View renders the status bar as a single styled line.
func (m StatusBarModel) View() string {
	pos := 0
	if m.total > 0 {
		pos = m.position + 1
	}
	help := listHelp
	if m.reading {
		help = readerHelp
	}

	content := fmt.Sprintf("%s | %d/%d lezioni | %s", m.course, pos, m.total, help)
	style := StatusBarStyle.Width(m.width)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Left, style.Render(content))
}
