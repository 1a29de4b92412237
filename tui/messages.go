// ABOUTME: Bubble Tea message types and commands for the lesson browser.
// ABOUTME: Catalog reads happen inside commands so the update loop never touches the filesystem.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/habeetat/corso/lesson"
)

// LessonSource supplies the lessons shown in the browser.
type LessonSource interface {
	Lessons() []lesson.Lesson
}

// LessonsLoadedMsg carries a fresh read of the catalog.
type LessonsLoadedMsg struct {
	Lessons []lesson.Lesson
}

// LoadLessonsCmd reads the catalog and reports the result as a LessonsLoadedMsg.
func LoadLessonsCmd(src LessonSource) tea.Cmd {
	return func() tea.Msg {
		return LessonsLoadedMsg{Lessons: src.Lessons()}
	}
}
