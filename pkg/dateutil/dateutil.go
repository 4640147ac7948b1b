package dateutil

import (
	"fmt"
	"time"
)

// CalendarDate is a plain year/month/day value with no time-of-day or zone
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// FromTime returns the calendar date of t in t's own location
func FromTime(t time.Time) CalendarDate {
	year, month, day := t.Date()
	return CalendarDate{Year: year, Month: month, Day: day}
}

// Time returns midnight of the date in the given location
func (d CalendarDate) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Weekday returns the ISO weekday of the date (Monday=1 .. Sunday=7)
func (d CalendarDate) Weekday() int {
	return ISOWeekday(d.Time(time.UTC))
}

// ISOWeek returns the ISO 8601 week number of the date
func (d CalendarDate) ISOWeek() int {
	_, week := GetWeekNumber(d.Time(time.UTC))
	return week
}

// AdvanceWeek moves the date 7 days forward inside its month. When the result
// runs past the end of the month it resets to day 1 of the next month, and
// December rolls over into January of the next year.
func (d CalendarDate) AdvanceWeek() CalendarDate {
	next := CalendarDate{Year: d.Year, Month: d.Month, Day: d.Day + 7}
	if next.Day > DaysInMonth(next.Year, next.Month) {
		next.Year, next.Month = NextMonth(next.Year, next.Month)
		next.Day = 1
	}
	return next
}

// IsLeapYear reports whether year is a Gregorian leap year
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInMonth returns the number of days in the given month.
// Panics if month is outside January..December: callers normalize
// month wraparound with PrevMonth/NextMonth first.
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.January, time.March, time.May, time.July, time.August, time.October, time.December:
		return 31
	case time.April, time.June, time.September, time.November:
		return 30
	}
	panic(fmt.Sprintf("dateutil: month %d out of range", month))
}

// PrevMonth returns the month before (year, month), carrying into the previous year
func PrevMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// NextMonth returns the month after (year, month), carrying into the next year
func NextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// ISOWeekday returns the weekday with Monday=1 .. Sunday=7
func ISOWeekday(date time.Time) int {
	weekday := int(date.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday = 7
	}
	return weekday
}

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// NextMidnight returns the start of the day after date
func NextMidnight(date time.Time) time.Time {
	return StartOfDay(date).AddDate(0, 0, 1)
}

// GetWeekNumber returns the ISO week number for the given date
func GetWeekNumber(date time.Time) (year int, week int) {
	year, week = date.ISOWeek()
	return
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// ParseDate parses date string in various formats, in the local zone
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		"2006-01-02",
		"02.01.2006",
		"2006-01-02T15:04:05",
	}

	for _, format := range formats {
		if t, err := time.ParseInLocation(format, dateStr, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", dateStr)
}
