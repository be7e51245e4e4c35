package gridtime

import (
	"math"
	"time"
)

// SnapMode selects how a fractional row is snapped to the breakpoint table.
type SnapMode int

const (
	// SnapNone picks the nearest breakpoint by absolute distance.
	SnapNone SnapMode = iota
	// SnapTop picks the largest breakpoint strictly below the fraction.
	// Used when grabbing a start edge.
	SnapTop
	// SnapBottom picks the smallest breakpoint at or above the fraction,
	// rolling over to the next whole hour. Used for end edges and hover.
	SnapBottom
)

// String returns the mode name.
func (m SnapMode) String() string {
	switch m {
	case SnapTop:
		return "top"
	case SnapBottom:
		return "bottom"
	default:
		return "none"
	}
}

// HourFraction returns the snapped fractional-hour value for minutes.
// When minutes/minuteCell is an exact index into table the table entry is
// returned; otherwise minutes/60 rounded to two decimals.
func HourFraction(minutes, minuteCell int, table []float64) float64 {
	if minuteCell > 0 && minutes%minuteCell == 0 {
		idx := minutes / minuteCell
		if idx >= 0 && idx < len(table) {
			return table[idx]
		}
	}
	return round2(float64(minutes) / 60)
}

// TimeToGridRow converts a wall-clock time to a grid row.
func TimeToGridRow(t time.Time, hourStart, minuteCell int, table []float64) float64 {
	return float64(t.Hour()-hourStart) + HourFraction(t.Minute(), minuteCell, table)
}

// PixelToGridRow converts a pixel offset within a view of viewHeight pixels
// spanning hourSpan hours into a snapped grid row.
func PixelToGridRow(pixelY, viewHeight, hourSpan float64, mode SnapMode, table []float64) float64 {
	if viewHeight <= 0 {
		return 0
	}
	row := pixelY * hourSpan / viewHeight
	floored := math.Floor(row)
	return floored + snapFraction(row-floored, mode, table)
}

// UnsnappedRow returns the raw linear row for a pixel offset.
func UnsnappedRow(pixelY, viewHeight, hourSpan float64) float64 {
	if viewHeight <= 0 {
		return 0
	}
	return pixelY * hourSpan / viewHeight
}

func snapFraction(frac float64, mode SnapMode, table []float64) float64 {
	switch mode {
	case SnapTop:
		snapped := 0.0
		for _, bp := range table {
			if bp < frac && bp > snapped {
				snapped = bp
			}
		}
		return snapped
	case SnapBottom:
		snapped := 1.0
		for _, bp := range table {
			if bp >= frac && bp < snapped {
				snapped = bp
			}
		}
		return snapped
	default:
		return nearest(frac, table)
	}
}

// nearest returns the table entry closest to v. Ties go to the lower entry.
func nearest(v float64, table []float64) float64 {
	if len(table) == 0 {
		return v
	}
	best := table[0]
	bestDist := math.Abs(v - best)
	for _, bp := range table[1:] {
		d := math.Abs(v - bp)
		if d < bestDist || (d == bestDist && bp < best) {
			best, bestDist = bp, d
		}
	}
	return best
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// hoursToDuration converts fractional hours to a whole-minute duration.
func hoursToDuration(h float64) time.Duration {
	return time.Duration(math.Round(h*60)) * time.Minute
}
