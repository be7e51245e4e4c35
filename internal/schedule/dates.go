package schedule

import (
	"errors"
	"fmt"
	"time"
)

// Parsing errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidClockFormat = errors.New("time must be in HH:MM format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// ParseDate parses a YYYY-MM-DD date in loc. Empty input means today.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return TruncateToDay(time.Now().In(loc)), nil
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// ParseClock parses HH:MM on day. "24:00" is accepted as the next midnight.
func ParseClock(day time.Time, s string) (time.Time, error) {
	if s == "24:00" {
		return TruncateToDay(day).AddDate(0, 0, 1), nil
	}
	if len(s) != 5 {
		return time.Time{}, ErrInvalidClockFormat
	}
	c, err := time.Parse(clockLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidClockFormat
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, c.Hour(), c.Minute(), 0, 0, day.Location()), nil
}

// ParseDateRange parses an inclusive date range. An empty end defaults to
// start.
func ParseDateRange(start, end string, loc *time.Location) (from, to time.Time, err error) {
	from, err = ParseDate(start, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start date: %w", err)
	}
	if end == "" {
		return from, from, nil
	}
	to, err = ParseDate(end, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end date: %w", err)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, ErrEndDateBeforeStart
	}
	return from, to, nil
}

// TruncateToDay returns t with the clock set to midnight.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekStart returns the Monday of the ISO week containing t.
func WeekStart(t time.Time) time.Time {
	t = TruncateToDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

// FormatClock formats t as HH:MM.
func FormatClock(t time.Time) string {
	return t.Format(clockLayout)
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
