// ABOUTME: Top-level Bubble Tea AppModel for browsing the course from the terminal.
// ABOUTME: Lists lessons with their homepage labels and opens the selected lesson's source in a reader.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/habeetat/corso/lesson"
)

// Mode is the panel currently shown.
type Mode int

const (
	ModeList Mode = iota
	ModeReader
)

// AppModel composes the list, reader, and status bar.
type AppModel struct {
	source    LessonSource
	lessons   []lesson.Lesson
	list      ListPanelModel
	reader    ReaderPanelModel
	statusBar StatusBarModel

	mode   Mode
	loaded bool
	width  int
	height int
}

// NewAppModel creates an AppModel that reads lessons from src.
func NewAppModel(course string, src LessonSource) AppModel {
	return AppModel{
		source:    src,
		list:      NewListPanelModel(),
		reader:    NewReaderPanelModel(),
		statusBar: NewStatusBarModel(course),
		mode:      ModeList,
	}
}

// Mode returns the panel currently shown.
func (m AppModel) Mode() Mode {
	return m.mode
}

// Init implements tea.Model by loading the catalog.
func (m AppModel) Init() tea.Cmd {
	return LoadLessonsCmd(m.source)
}

// Update implements tea.Model.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case LessonsLoadedMsg:
		return m.handleLoaded(msg)

	case tea.KeyMsg:
		if m.mode == ModeReader {
			return m.handleReaderKey(msg)
		}
		return m.handleListKey(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.width < 30 || m.height < 6 {
		return fmt.Sprintf("Terminal too small (%dx%d). Minimum: 30x6.", m.width, m.height)
	}
	if !m.loaded {
		return "Caricamento lezioni..."
	}

	var b strings.Builder
	if m.mode == ModeReader {
		b.WriteString(m.reader.View())
	} else {
		b.WriteString(m.list.View())
	}
	b.WriteString("\n")
	b.WriteString(m.statusBar.View())
	return b.String()
}

func (m AppModel) handleLoaded(msg LessonsLoadedMsg) (tea.Model, tea.Cmd) {
	m.loaded = true
	m.lessons = msg.Lessons

	descriptors := make([]lesson.Descriptor, 0, len(msg.Lessons))
	for _, l := range msg.Lessons {
		descriptors = append(descriptors, l.Descriptor)
	}
	entries := lesson.Label(descriptors)
	m.list.SetEntries(entries)
	m.statusBar.SetTotal(m.list.Len())
	m.statusBar.SetPosition(m.list.Cursor())

	if m.mode != ModeReader {
		return m, nil
	}
	// The open lesson may have been edited, renumbered, or removed.
	if idx := m.indexOf(m.reader.Entry().Slug); idx >= 0 {
		m.reader.Refresh(entries[idx], m.lessons[idx].Body)
	} else {
		m.mode = ModeList
		m.statusBar.SetReading(false)
	}
	return m, nil
}

func (m AppModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.list.MoveUp()
	case "down", "j":
		m.list.MoveDown()
	case "home", "g":
		m.list.Home()
	case "end", "G":
		m.list.End()
	case "r":
		return m, LoadLessonsCmd(m.source)
	case "enter":
		m.open()
	}
	m.statusBar.SetPosition(m.list.Cursor())
	return m, nil
}

func (m AppModel) handleReaderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace":
		m.mode = ModeList
		m.statusBar.SetReading(false)
		return m, nil
	}
	var cmd tea.Cmd
	m.reader, cmd = m.reader.Update(msg)
	return m, cmd
}

// open switches to the reader for the entry under the cursor.
func (m *AppModel) open() {
	entry, ok := m.list.Selected()
	if !ok {
		return
	}
	idx := m.indexOf(entry.Slug)
	if idx < 0 {
		return
	}
	m.reader.Open(entry, m.lessons[idx].Body)
	m.mode = ModeReader
	m.statusBar.SetReading(true)
}

func (m AppModel) indexOf(slug string) int {
	for i, l := range m.lessons {
		if l.Slug == slug {
			return i
		}
	}
	return -1
}

// layout sizes the panels to fill the terminal above the status bar.
func (m *AppModel) layout() {
	panelHeight := max(m.height-1, 3)
	m.list.SetSize(m.width, panelHeight)
	m.reader.SetSize(m.width, panelHeight)
	m.statusBar.SetWidth(m.width)
}
