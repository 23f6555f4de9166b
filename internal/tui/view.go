package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/comitanigiacomo/kanso-calendar/internal/core/domain"
)

type theme struct {
	title     lipgloss.Style
	weekday   lipgloss.Style
	day       lipgloss.Style
	otherDay  lipgloss.Style
	done      lipgloss.Style
	cursor    lipgloss.Style
	today     lipgloss.Style
	statLabel lipgloss.Style
	statValue lipgloss.Style
	status    lipgloss.Style
	help      lipgloss.Style
	prompt    lipgloss.Style
}

func darkTheme() theme {
	return theme{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7AA2F7")),
		weekday:   lipgloss.NewStyle().Foreground(lipgloss.Color("#565F89")),
		day:       lipgloss.NewStyle().Foreground(lipgloss.Color("#C0CAF5")),
		otherDay:  lipgloss.NewStyle().Foreground(lipgloss.Color("#3B4261")),
		done:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9ECE6A")),
		cursor:    lipgloss.NewStyle().Reverse(true),
		today:     lipgloss.NewStyle().Underline(true),
		statLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("#565F89")),
		statValue: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C0CAF5")),
		status:    lipgloss.NewStyle().Foreground(lipgloss.Color("#E0AF68")),
		help:      lipgloss.NewStyle().Foreground(lipgloss.Color("#565F89")),
		prompt:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7768E")),
	}
}

func lightTheme() theme {
	return theme{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2959AA")),
		weekday:   lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
		day:       lipgloss.NewStyle().Foreground(lipgloss.Color("#343B58")),
		otherDay:  lipgloss.NewStyle().Foreground(lipgloss.Color("#C4C8DA")),
		done:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#385F0D")),
		cursor:    lipgloss.NewStyle().Reverse(true),
		today:     lipgloss.NewStyle().Underline(true),
		statLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
		statValue: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#343B58")),
		status:    lipgloss.NewStyle().Foreground(lipgloss.Color("#8F5E15")),
		help:      lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
		prompt:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8C4351")),
	}
}

func (m Model) View() string {
	th := lightTheme()
	if m.view.DarkMode() {
		th = darkTheme()
	}

	var b strings.Builder

	header := time.Date(m.view.Year(), m.view.Month(), 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
	b.WriteString(th.title.Render(header))
	b.WriteString("\n\n")

	b.WriteString(th.weekday.Render(" Su  Mo  Tu  We  Th  Fr  Sa"))
	b.WriteString("\n")
	b.WriteString(m.renderGrid(th))
	b.WriteString("\n")
	b.WriteString(m.renderStats(th))
	b.WriteString("\n")

	if note := m.completions.Note(m.view.MonthKey()); note != "" && m.mode == modeCalendar {
		b.WriteString("\n")
		b.WriteString(th.statLabel.Render("Note: "))
		b.WriteString(firstLine(note))
		b.WriteString("\n")
	}

	switch m.mode {
	case modeNote:
		b.WriteString("\n")
		b.WriteString(m.noteInput.View())
		b.WriteString("\n")
		b.WriteString(th.help.Render("Esc: save and close"))
	case modeConfirmReset:
		b.WriteString("\n")
		b.WriteString(th.prompt.Render("Reset all completions for this month? This cannot be undone. [y/N]"))
	case modeConfirmImport:
		b.WriteString("\n")
		b.WriteString(th.prompt.Render("Importing replaces all current data. Continue? [y/N]"))
	case modeImportPath:
		b.WriteString("\n")
		b.WriteString(th.statLabel.Render("Import file: "))
		b.WriteString(m.pathInput.View())
		b.WriteString("\n")
		b.WriteString(th.help.Render("Enter: load • Esc: cancel"))
	default:
		if m.status != "" {
			b.WriteString("\n")
			b.WriteString(th.status.Render(m.status))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(th.help.Render("←↓↑→ move • Space toggle • [/] month • {/} year • t today"))
		b.WriteString("\n")
		b.WriteString(th.help.Render("a mark all • r reset • m note • e export • i import • d theme • q quit"))
	}

	return b.String()
}

func (m Model) renderGrid(th theme) string {
	todayKey := domain.NewDateKey(time.Now())

	var b strings.Builder
	for i, c := range m.cells {
		label := fmt.Sprintf(" %2d ", c.Date.Day())

		style := th.otherDay
		if c.IsCurrentMonth {
			style = th.day
			if m.completions.Completed(c.Key) {
				style = th.done
			}
		}
		if c.Key == todayKey {
			style = style.Inherit(th.today)
		}
		if i == m.cursor && m.mode == modeCalendar {
			style = style.Inherit(th.cursor)
		}

		b.WriteString(style.Render(label))
		if (i+1)%7 == 0 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderStats(th theme) string {
	stats := m.stats.Compute(domain.StatsInput{
		Completions: m.completions.Completions(),
		Cells:       m.cells,
		Today:       time.Now(),
	})

	parts := []string{
		th.statLabel.Render("Streak: ") + th.statValue.Render(fmt.Sprintf("%d", stats.CurrentStreak)),
		th.statLabel.Render("Longest: ") + th.statValue.Render(fmt.Sprintf("%d", stats.LongestStreak)),
		th.statLabel.Render("Month: ") + th.statValue.Render(fmt.Sprintf("%d/%d (%d%%)",
			stats.CompletedInMonth, stats.TotalDaysInMonth, stats.MonthlyPercentage)),
	}
	return strings.Join(parts, th.statLabel.Render("  •  "))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + "…"
	}
	return s
}
