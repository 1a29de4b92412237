// ABOUTME: Defines lipgloss styles for the lesson browser panels, list rows, and status line.
// ABOUTME: EntryStyle picks the row style for numbered lessons, appendices, and the cursor row.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/habeetat/corso/lesson"
)

var (
	// Panel borders
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4bb9ab"))

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#EF85B4"))

	// List rows
	LessonStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	AppendixStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	SelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4bb9ab")).Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	EmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

// EntryStyle returns the style for a list row.
func EntryStyle(e lesson.Entry, selected bool) lipgloss.Style {
	switch {
	case selected:
		return SelectedStyle
	case e.IsAppendix():
		return AppendixStyle
	default:
		return LessonStyle
	}
}
