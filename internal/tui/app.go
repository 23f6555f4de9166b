package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/comitanigiacomo/kanso-calendar/internal/core/domain"
	"github.com/comitanigiacomo/kanso-calendar/internal/core/services"
)

type mode int

const (
	modeCalendar mode = iota
	modeNote
	modeConfirmReset
	modeConfirmImport
	modeImportPath
)

// Model wires the three services to the terminal. All confirmation prompts
// for the destructive bulk operations live here, as modal states; the
// services are constructed to trust the caller, and this layer only calls
// them once the user has said yes.
type Model struct {
	ctx context.Context

	completions *services.CompletionService
	stats       *services.StatsService
	view        *services.ViewService

	cells  []domain.CalendarCell
	cursor int

	mode          mode
	noteInput     textarea.Model
	pathInput     textinput.Model
	pendingImport []byte

	status    string
	exportDir string

	width  int
	height int
}

func New(ctx context.Context, completions *services.CompletionService, stats *services.StatsService, view *services.ViewService, exportDir string) Model {
	note := textarea.New()
	note.Placeholder = "Notes for this month..."
	note.CharLimit = 2000
	note.SetHeight(5)

	path := textinput.New()
	path.Placeholder = "/path/to/export.json"

	m := Model{
		ctx:         ctx,
		completions: completions,
		stats:       stats,
		view:        view,
		noteInput:   note,
		pathInput:   path,
		exportDir:   exportDir,
	}
	m.reloadGrid()
	m.moveCursorToToday()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) reloadGrid() {
	m.cells = m.view.Cells()
	if m.cursor >= len(m.cells) {
		m.cursor = len(m.cells) - 1
	}
}

// moveCursorToToday puts the cursor on today's cell when today is visible,
// otherwise on the first day of the month.
func (m *Model) moveCursorToToday() {
	today := domain.NewDateKey(time.Now())
	first := -1
	for i, c := range m.cells {
		if !c.IsCurrentMonth {
			continue
		}
		if first == -1 {
			first = i
		}
		if c.Key == today {
			m.cursor = i
			return
		}
	}
	if first >= 0 {
		m.cursor = first
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeNote:
			return m.updateNote(msg)
		case modeConfirmReset:
			return m.updateConfirmReset(msg)
		case modeConfirmImport:
			return m.updateConfirmImport(msg)
		case modeImportPath:
			return m.updateImportPath(msg)
		default:
			return m.updateCalendar(msg)
		}
	}

	return m, nil
}

func (m Model) updateCalendar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < len(m.cells)-1 {
			m.cursor++
		}
	case "up", "k":
		if m.cursor >= 7 {
			m.cursor -= 7
		}
	case "down", "j":
		if m.cursor < len(m.cells)-7 {
			m.cursor += 7
		}

	case "enter", " ":
		// Adjacent-month padding cells are view-only, the same scope the
		// bulk mutations use. Navigate there to edit those days.
		if cell := m.cells[m.cursor]; cell.IsCurrentMonth {
			m.completions.Toggle(m.ctx, cell.Key)
		} else {
			m.status = fmt.Sprintf("%s is outside this month. Switch months to edit it.", cell.Key)
		}

	case "[", "p":
		m.view.PrevMonth(m.ctx)
		m.reloadGrid()
		m.moveCursorToToday()
	case "]", "n":
		m.view.NextMonth(m.ctx)
		m.reloadGrid()
		m.moveCursorToToday()
	case "{":
		m.view.PrevYear(m.ctx)
		m.reloadGrid()
		m.moveCursorToToday()
	case "}":
		m.view.NextYear(m.ctx)
		m.reloadGrid()
		m.moveCursorToToday()
	case "t":
		m.view.GoTo(m.ctx, time.Now())
		m.reloadGrid()
		m.moveCursorToToday()

	case "a":
		if m.completions.MarkAllVisible(m.ctx, m.cells) == services.BulkNothingToDo {
			m.status = "Every day this month is already marked."
		} else {
			m.status = "Marked every day this month."
		}

	case "r":
		m.mode = modeConfirmReset

	case "e":
		m.status = m.doExport()

	case "i":
		m.pathInput.SetValue("")
		m.pathInput.Focus()
		m.mode = modeImportPath
		return m, textinput.Blink

	case "m":
		m.noteInput.SetValue(m.completions.Note(m.view.MonthKey()))
		m.noteInput.Focus()
		m.mode = modeNote
		return m, textarea.Blink

	case "d":
		m.view.ToggleDarkMode(m.ctx)
	}

	return m, nil
}

func (m Model) updateNote(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.completions.SetNote(m.ctx, m.view.MonthKey(), m.noteInput.Value())
		m.noteInput.Blur()
		m.mode = modeCalendar
		m.status = "Note saved."
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	return m, cmd
}

func (m Model) updateConfirmReset(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		switch m.completions.ResetMonth(m.ctx, m.cells) {
		case services.BulkNothingToDo:
			m.status = "Nothing to reset for this month."
		case services.BulkApplied:
			m.status = "Month reset."
		}
	default:
		m.status = "Reset cancelled."
	}
	m.mode = modeCalendar
	return m, nil
}

func (m Model) updateConfirmImport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		_, err := m.completions.Import(m.ctx, m.pendingImport)
		if err != nil {
			m.status = fmt.Sprintf("Import failed: %v", err)
		} else {
			m.reloadGrid()
			m.status = "Import complete."
		}
	default:
		m.status = "Import cancelled."
	}
	m.pendingImport = nil
	m.mode = modeCalendar
	return m, nil
}

func (m Model) updateImportPath(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pathInput.Blur()
		m.mode = modeCalendar
		m.status = "Import cancelled."
		return m, nil

	case "enter":
		m.pathInput.Blur()
		raw, err := os.ReadFile(m.pathInput.Value())
		if err != nil {
			m.mode = modeCalendar
			m.status = fmt.Sprintf("Cannot read file: %v", err)
			return m, nil
		}

		// Validate before asking for the overwrite confirmation, so a bad
		// file fails fast and state stays untouched.
		if _, err := domain.ParseSnapshot(raw); err != nil {
			m.mode = modeCalendar
			m.status = fmt.Sprintf("Import failed: %v", err)
			return m, nil
		}

		m.pendingImport = raw
		m.mode = modeConfirmImport
		return m, nil

	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m *Model) doExport() string {
	raw, err := m.completions.Export()
	if err != nil {
		return fmt.Sprintf("Export failed: %v", err)
	}

	name := fmt.Sprintf("calendar-export-%s.json", time.Now().Format("2006-01-02"))
	path := filepath.Join(m.exportDir, name)
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Sprintf("Export failed: %v", err)
	}
	return fmt.Sprintf("Exported to %s", path)
}
