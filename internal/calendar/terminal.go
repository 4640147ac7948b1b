package calendar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/username/status-calendar/pkg/dateutil"
)

// TerminalRenderer draws the month grid for a terminal. Unlike the tooltip,
// today is highlighted instead of blanked and days outside the month are dimmed.
type TerminalRenderer struct {
	grid *Renderer

	title      lipgloss.Style
	header     lipgloss.Style
	weekNumber lipgloss.Style
	day        lipgloss.Style
	adjacent   lipgloss.Style
	today      lipgloss.Style
}

// NewTerminalRenderer creates a TerminalRenderer on top of grid
func NewTerminalRenderer(grid *Renderer) *TerminalRenderer {
	return &TerminalRenderer{
		grid:       grid,
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Bold(true),
		weekNumber: lipgloss.NewStyle().Faint(true),
		day:        lipgloss.NewStyle(),
		adjacent:   lipgloss.NewStyle().Faint(true),
		today:      lipgloss.NewStyle().Reverse(true).Bold(true),
	}
}

// Render returns the styled month containing today
func (t *TerminalRenderer) Render(today dateutil.CalendarDate) string {
	lines := []string{
		t.title.Render(MonthLabel(today.Year, today.Month)),
		t.title.Render(WeekLabel(today)),
		t.header.Render(t.grid.Header()),
	}

	for _, row := range t.grid.Month(today, today.Year, today.Month) {
		var line strings.Builder
		for _, cell := range row {
			line.WriteString(t.renderCell(cell, today))
		}
		lines = append(lines, line.String())
	}

	return strings.Join(lines, "\n")
}

func (t *TerminalRenderer) renderCell(cell Cell, today dateutil.CalendarDate) string {
	switch cell.Kind {
	case CellWeekNumber:
		return t.weekNumber.Render(cell.String())
	case CellToday:
		number := dayNumber(cell.Date.Day)
		return PadLeft("", CellWidth-len(number), ' ') + t.today.Render(number)
	}
	if cell.Date.Year != today.Year || cell.Date.Month != today.Month {
		return t.adjacent.Render(cell.String())
	}
	return t.day.Render(cell.String())
}
