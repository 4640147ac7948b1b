package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/username/status-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

// Weekdays is the Monday-first header table
var Weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Renderer lays out a month as a fixed-width text grid
type Renderer struct {
	showWeekNumbers bool
	logger          *zap.Logger
}

// NewRenderer creates a new Renderer
func NewRenderer(showWeekNumbers bool, logger *zap.Logger) *Renderer {
	return &Renderer{
		showWeekNumbers: showWeekNumbers,
		logger:          logger,
	}
}

// RowCount returns the number of Monday-first weeks the month touches.
// Equals the ISO week of the last day minus the ISO week of the first day
// plus one, without breaking when ISO numbering wraps at the year boundary.
func RowCount(year int, month time.Month) int {
	first := dateutil.CalendarDate{Year: year, Month: month, Day: 1}
	offset := first.Weekday() - 1
	return (offset + dateutil.DaysInMonth(year, month) + 6) / 7
}

// WeekStarts returns the weekStart of every row of the month: day 1 advanced
// by a week per row, rolling over to day 1 of the next month.
func WeekStarts(year int, month time.Month) []dateutil.CalendarDate {
	rows := RowCount(year, month)
	starts := make([]dateutil.CalendarDate, 0, rows)
	start := dateutil.CalendarDate{Year: year, Month: month, Day: 1}
	for i := 0; i < rows; i++ {
		starts = append(starts, start)
		start = start.AdvanceWeek()
	}
	return starts
}

// Month returns the cells of every row of the given month
func (r *Renderer) Month(today dateutil.CalendarDate, year int, month time.Month) [][]Cell {
	starts := WeekStarts(year, month)
	rows := make([][]Cell, 0, len(starts))
	for _, start := range starts {
		prevYear, prevMonth := dateutil.PrevMonth(start.Year, start.Month)
		prevMonthDays := dateutil.DaysInMonth(prevYear, prevMonth)
		rows = append(rows, WeekCells(today, start, prevMonthDays, r.showWeekNumbers))
	}
	return rows
}

// Rows renders every week of the month, one line per week
func (r *Renderer) Rows(today dateutil.CalendarDate, year int, month time.Month) []string {
	rows := r.Month(today, year, month)
	lines := make([]string, 0, len(rows))
	for _, cells := range rows {
		lines = append(lines, joinCells(cells))
	}
	return lines
}

// Header returns the weekday header, with a blank gutter over the week
// number column when week numbers are shown
func (r *Renderer) Header() string {
	var line strings.Builder
	if r.showWeekNumbers {
		line.WriteString(PadLeft("", CellWidth, ' '))
	}
	for _, name := range Weekdays {
		line.WriteString(PadLeft(name, CellWidth, ' '))
	}
	return line.String()
}

// MonthLabel returns " <Month> <year>"
func MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf(" %s %d", month, year)
}

// WeekLabel returns "Week #NN" for the ISO week of date
func WeekLabel(date dateutil.CalendarDate) string {
	return fmt.Sprintf("Week #%02d", date.ISOWeek())
}

// Tooltip renders the month containing today: month label, week label,
// weekday header and one row per week, newline separated
func (r *Renderer) Tooltip(today dateutil.CalendarDate) string {
	rows := r.Rows(today, today.Year, today.Month)

	lines := make([]string, 0, len(rows)+3)
	lines = append(lines, MonthLabel(today.Year, today.Month), WeekLabel(today), r.Header())
	lines = append(lines, rows...)

	r.logger.Debug("Calendar rendered",
		zap.Stringer("today", today),
		zap.Int("rows", len(rows)),
		zap.Bool("week_numbers", r.showWeekNumbers))

	return strings.Join(lines, "\n")
}
