package calendar

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/username/status-calendar/pkg/dateutil"
)

// CellWidth is the fixed width of every rendered cell, week number included
const CellWidth = 7

// CellKind tells how a cell is rendered
type CellKind int

const (
	// CellWeekNumber is the optional leading ISO week label
	CellWeekNumber CellKind = iota + 1
	// CellDay is a zero-padded two digit day number
	CellDay
	// CellToday is the cell for the reference date, rendered blank
	CellToday
)

// Cell is one slot of a week row.
//
// Text policy:
//   - CellWeekNumber: "#0N" below week 10, the bare number otherwise
//   - CellDay: day number zero-padded to two digits
//   - CellToday: a single space
//
// String right-aligns Text to CellWidth with spaces.
type Cell struct {
	Kind CellKind
	Date dateutil.CalendarDate // zero for CellWeekNumber
	Week int                   // set for CellWeekNumber
	Text string
}

func (c Cell) String() string {
	return PadLeft(c.Text, CellWidth, ' ')
}

// PadLeft right-aligns s in a field of width runes using fill.
// Strings already at least width long are returned unchanged.
func PadLeft(s string, width int, fill rune) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return strings.Repeat(string(fill), width-n) + s
}

func weekNumberCell(week int) Cell {
	text := strconv.Itoa(week)
	if week < 10 {
		text = "#" + PadLeft(text, 2, '0')
	}
	return Cell{Kind: CellWeekNumber, Week: week, Text: text}
}

func dayCell(today, date dateutil.CalendarDate) Cell {
	if date == today {
		return Cell{Kind: CellToday, Date: date, Text: " "}
	}
	return Cell{Kind: CellDay, Date: date, Text: dayNumber(date.Day)}
}

func dayNumber(day int) string {
	return PadLeft(strconv.Itoa(day), 2, '0')
}
