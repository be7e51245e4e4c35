package gridtime

import "time"

// GridRange pairs a start and end time with their grid rows.
type GridRange struct {
	NearestGridY        float64
	NearestGridTimeY    time.Time
	NearestGridEndY     float64
	NearestGridEndTimeY time.Time
}

// DragGridRange converts a start/end pair into grid rows. When end falls on a
// later calendar day than start, the end row is pinned to the grid's bottom
// edge so cross-midnight ranges never extend into the next day's rows.
func DragGridRange(start, end time.Time, opts Options) GridRange {
	r := GridRange{
		NearestGridY:        opts.TimeToRow(start),
		NearestGridTimeY:    start,
		NearestGridEndY:     opts.TimeToRow(end),
		NearestGridEndTimeY: end,
	}
	if DaysBetween(start, end) >= 1 {
		r.NearestGridEndY = float64(opts.HourSpan())
	}
	return r
}

// RangeForDay returns the clamp window a drag cannot exceed within the day
// containing date: hourStart:00:00 through (hourEnd-1):59:59.
func RangeForDay(date time.Time, opts Options) GridRange {
	y, m, d := date.Date()
	loc := date.Location()
	start := time.Date(y, m, d, opts.HourStart, 0, 0, 0, loc)
	end := time.Date(y, m, d, opts.HourEnd-1, 59, 59, 0, loc)
	return DragGridRange(start, end, opts)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfNextDay returns midnight of the day after t.
func StartOfNextDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of calendar days from a to b.
// It is negative when b is on an earlier day.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// ClampTime limits t to the closed interval [lo, hi].
func ClampTime(t, lo, hi time.Time) time.Time {
	if t.Before(lo) {
		return lo
	}
	if t.After(hi) {
		return hi
	}
	return t
}
