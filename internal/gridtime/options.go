// Package gridtime maps pointer offsets and wall-clock times to fractional
// time-grid rows and back. A grid row is the number of hours since the view's
// first visible hour; fractions are snapped to a per-view breakpoint table.
package gridtime

import (
	"errors"
	"fmt"
	"time"
)

// Options validation errors.
var (
	ErrInvalidHourRange  = errors.New("hour_start must be before hour_end, within 0..24")
	ErrInvalidMinuteCell = errors.New("minute_cell must be between 1 and 60")
	ErrInvalidSnapTable  = errors.New("ratio_hour_grid_y must start at 0 and ascend below 1")
)

const (
	// DefaultMinuteCell is the default snapping granularity in minutes.
	DefaultMinuteCell = 30
	// HoursPerDay is the number of rows a full-day grid spans.
	HoursPerDay = 24
)

// Options holds the per-view grid configuration. Values are immutable for the
// lifetime of a view.
type Options struct {
	HourStart      int       // First visible hour (inclusive)
	HourEnd        int       // Last visible hour (exclusive)
	MinuteCell     int       // Snapping granularity in minutes
	RatioHourGridY []float64 // Fractional-hour breakpoints, e.g. [0, 0.5]
}

// DefaultOptions returns a full-day grid snapping to half hours.
func DefaultOptions() Options {
	return Options{
		HourStart:      0,
		HourEnd:        HoursPerDay,
		MinuteCell:     DefaultMinuteCell,
		RatioHourGridY: []float64{0, 0.5},
	}
}

// Validate checks the options invariants.
func (o Options) Validate() error {
	if o.HourStart < 0 || o.HourEnd > HoursPerDay || o.HourStart >= o.HourEnd {
		return fmt.Errorf("%w (got %d..%d)", ErrInvalidHourRange, o.HourStart, o.HourEnd)
	}
	if o.MinuteCell <= 0 || o.MinuteCell > 60 {
		return fmt.Errorf("%w (got %d)", ErrInvalidMinuteCell, o.MinuteCell)
	}
	if len(o.RatioHourGridY) == 0 || o.RatioHourGridY[0] != 0 {
		return ErrInvalidSnapTable
	}
	for i := 1; i < len(o.RatioHourGridY); i++ {
		prev, cur := o.RatioHourGridY[i-1], o.RatioHourGridY[i]
		if cur <= prev || cur >= 1 {
			return ErrInvalidSnapTable
		}
	}
	return nil
}

// HourSpan returns the number of hours the grid displays.
func (o Options) HourSpan() int {
	return o.HourEnd - o.HourStart
}

// CellHours returns one snap unit expressed in grid rows.
func (o Options) CellHours() float64 {
	return float64(o.MinuteCell) / 60
}

// CellDuration returns one snap unit as a duration.
func (o Options) CellDuration() time.Duration {
	return time.Duration(o.MinuteCell) * time.Minute
}

// TimeToRow converts a wall-clock time to a grid row under these options.
func (o Options) TimeToRow(t time.Time) float64 {
	return TimeToGridRow(t, o.HourStart, o.MinuteCell, o.RatioHourGridY)
}
