package tui

import (
	"math"
	"time"

	"github.com/javiermolinar/timegrid/internal/gridtime"
	"github.com/javiermolinar/timegrid/internal/interaction"
	"github.com/javiermolinar/timegrid/internal/pointer"
	"github.com/javiermolinar/timegrid/internal/schedule"
)

// Screen chrome around the grid body.
const (
	headerLines = 2 // title bar and day headers
	footerLines = 2 // status and help
	gutterWidth = 6 // "HH:MM "
	minColWidth = 6
	minBodyH    = 4
)

// Layout maps terminal cells to grid columns. It implements
// interaction.Grid: each day column is a gridtime.View whose height is the
// number of body lines, so pointer offsets are measured in lines.
type Layout struct {
	width, height int
	start         time.Time
	days          int
	opts          gridtime.Options

	colWidth int
	bodyH    int
	columns  interaction.Columns
}

// NewLayout returns a layout for days columns starting at start.
func NewLayout(opts gridtime.Options, start time.Time, days int) *Layout {
	l := &Layout{opts: opts, start: schedule.TruncateToDay(start), days: days}
	l.rebuild()
	return l
}

// Resize applies a new terminal size.
func (l *Layout) Resize(width, height int) {
	l.width, l.height = width, height
	l.rebuild()
}

// SetStart moves the first column to the day containing t.
func (l *Layout) SetStart(t time.Time) {
	l.start = schedule.TruncateToDay(t)
	l.rebuild()
}

// Start returns the first column's date.
func (l *Layout) Start() time.Time { return l.start }

// End returns the last column's date.
func (l *Layout) End() time.Time { return l.start.AddDate(0, 0, l.days-1) }

// DayCount returns the number of columns.
func (l *Layout) DayCount() int { return l.days }

// Options returns the grid options.
func (l *Layout) Options() gridtime.Options { return l.opts }

// BodyHeight returns the number of grid lines.
func (l *Layout) BodyHeight() int { return l.bodyH }

// ColWidth returns the width of one day column including its separator.
func (l *Layout) ColWidth() int { return l.colWidth }

// Day implements interaction.Grid.
func (l *Layout) Day(index int) (gridtime.View, bool) { return l.columns.Day(index) }

// Days implements interaction.Grid.
func (l *Layout) Days() []gridtime.View { return l.columns.Days() }

func (l *Layout) rebuild() {
	l.bodyH = max(l.height-headerLines-footerLines, minBodyH)
	l.colWidth = max((l.width-gutterWidth)/max(l.days, 1), minColWidth)

	l.columns = make(interaction.Columns, l.days)
	for i := range l.columns {
		l.columns[i] = gridtime.View{
			Index:   i,
			Date:    l.start.AddDate(0, 0, i),
			Height:  float64(l.bodyH),
			Options: l.opts,
		}
	}
}

// rowsPerLine returns how many grid rows (hours) one body line covers.
func (l *Layout) rowsPerLine() float64 {
	return float64(l.opts.HourSpan()) / float64(l.bodyH)
}

// LineTime returns the time at the top of body line on column day.
func (l *Layout) LineTime(day, line int) time.Time {
	date := l.start.AddDate(0, 0, day)
	hours := float64(l.opts.HourStart) + float64(line)*l.rowsPerLine()
	return date.Add(time.Duration(hours * float64(time.Hour)))
}

// Segment returns the body lines [first, last] r occupies on column day, and
// whether r's start and end edges fall inside that column.
func (l *Layout) Segment(day int, r schedule.Range) (first, last int, hasTop, hasBottom, ok bool) {
	top := l.LineTime(day, 0)
	bottom := l.LineTime(day, l.bodyH)
	if !r.Start.Before(bottom) || !r.End.After(top) {
		return 0, 0, false, false, false
	}

	per := l.rowsPerLine()
	startRow := math.Max(r.Start.Sub(top).Hours(), 0)
	endRow := math.Min(r.End.Sub(top).Hours(), float64(l.opts.HourSpan()))

	first = int(math.Floor(startRow/per + 1e-9))
	last = int(math.Ceil(endRow/per-1e-9)) - 1
	first = min(max(first, 0), l.bodyH-1)
	last = min(max(last, first), l.bodyH-1)

	hasTop = !r.Start.Before(top)
	hasBottom = !r.End.After(bottom)
	return first, last, hasTop, hasBottom, true
}

// ColumnAt returns the column under terminal x.
func (l *Layout) ColumnAt(x int) (int, bool) {
	if x < gutterWidth {
		return 0, false
	}
	day := (x - gutterWidth) / l.colWidth
	if day >= l.days {
		return 0, false
	}
	return day, true
}

// LineAt returns the body line under terminal y.
func (l *Layout) LineAt(y int) (int, bool) {
	line := y - headerLines
	if line < 0 || line >= l.bodyH {
		return 0, false
	}
	return line, true
}

// PointerY converts terminal y to a view offset at the middle of its line,
// clamped to the body.
func (l *Layout) PointerY(y int) float64 {
	line := min(max(y-headerLines, 0), l.bodyH-1)
	return float64(line) + 0.5
}

// HitTest resolves the cell at (x, y) to a pointer target. Blocks expose a
// top handle on their first line and a bottom handle on their last; a block
// on a single line only exposes the bottom handle.
func (l *Layout) HitTest(x, y int, store *schedule.Collection) (pointer.Target, bool) {
	day, okX := l.ColumnAt(x)
	line, okY := l.LineAt(y)
	if !okX || !okY {
		return pointer.None, false
	}

	target := pointer.Target{Kind: pointer.KindDayColumn, Day: day}
	if store == nil {
		return target, true
	}

	date := l.start.AddDate(0, 0, day)
	for _, s := range store.Between(date, date.AddDate(0, 0, 1)) {
		first, last, hasTop, hasBottom, ok := l.Segment(day, s.Range())
		if !ok || line < first || line > last {
			continue
		}
		target.ScheduleID = s.ID
		switch {
		case line == last && hasBottom:
			target.Kind = pointer.KindBottomHandle
		case line == first && hasTop:
			target.Kind = pointer.KindTopHandle
		default:
			target.Kind = pointer.KindScheduleBlock
		}
		return target, true
	}
	return target, true
}
