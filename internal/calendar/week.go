package calendar

import (
	"fmt"
	"strings"

	"github.com/username/status-calendar/pkg/dateutil"
)

// WeekCells lays out the ISO week containing weekStart.
//
// weekStart is the first day of the week that falls inside its own month (day
// 1 for a week that begins in the previous month). prevMonthDays is the length
// of the month before weekStart's month and is used to number the tail of the
// previous month. Days running past the end of weekStart's month restart at 1.
// The cell whose date equals today is blanked.
//
// Out-of-range inputs are programming errors and panic.
func WeekCells(today, weekStart dateutil.CalendarDate, prevMonthDays int, showWeekNumber bool) []Cell {
	monthDays := dateutil.DaysInMonth(weekStart.Year, weekStart.Month)
	if weekStart.Day < 1 || weekStart.Day > monthDays {
		panic(fmt.Sprintf("calendar: week start %v is not a valid date", weekStart))
	}

	cells := make([]Cell, 0, 8)
	if showWeekNumber {
		cells = append(cells, weekNumberCell(weekStart.ISOWeek()))
	}

	weekday := weekStart.Weekday()
	day := weekStart.Day

	beginWeek := day - weekday + 1
	if beginWeek <= 0 {
		if prevMonthDays < 28 || prevMonthDays > 31 {
			panic(fmt.Sprintf("calendar: previous month length %d out of range", prevMonthDays))
		}
		beginWeek += prevMonthDays
	}
	endWeek := day + (7 - weekday) + 1

	// Week begins in the previous month
	if beginWeek > endWeek {
		prevYear, prevMonth := dateutil.PrevMonth(weekStart.Year, weekStart.Month)
		for i := beginWeek; i <= prevMonthDays; i++ {
			cells = append(cells, dayCell(today, dateutil.CalendarDate{Year: prevYear, Month: prevMonth, Day: i}))
		}
		for i := 1; i < endWeek; i++ {
			cells = append(cells, dayCell(today, dateutil.CalendarDate{Year: weekStart.Year, Month: weekStart.Month, Day: i}))
		}
		return cells
	}

	nextYear, nextMonth := dateutil.NextMonth(weekStart.Year, weekStart.Month)
	for i := beginWeek; i < endWeek; i++ {
		date := dateutil.CalendarDate{Year: weekStart.Year, Month: weekStart.Month, Day: i}
		if i > monthDays {
			date = dateutil.CalendarDate{Year: nextYear, Month: nextMonth, Day: i - monthDays}
		}
		cells = append(cells, dayCell(today, date))
	}
	return cells
}

// BuildWeekRow renders the week containing weekStart as one fixed-width line
// without a trailing newline. See WeekCells for the meaning of the arguments.
func BuildWeekRow(today, weekStart dateutil.CalendarDate, prevMonthDays int, showWeekNumber bool) string {
	return joinCells(WeekCells(today, weekStart, prevMonthDays, showWeekNumber))
}

// joinCells renders a row of cells as one fixed-width line
func joinCells(cells []Cell) string {
	var line strings.Builder
	for _, cell := range cells {
		line.WriteString(cell.String())
	}
	return line.String()
}
