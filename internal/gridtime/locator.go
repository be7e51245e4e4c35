package gridtime

import "time"

// View describes one rendered day column: its date, its pixel height and the
// grid options it was laid out with.
type View struct {
	Index   int       // Column index within the rendered grid
	Date    time.Time // Any time on the column's day
	Height  float64   // Container height in pixels (or terminal cells)
	Options Options
}

// Position is the common payload computed for every pointer sample.
type Position struct {
	MouseY           float64   // Pointer offset within the view container
	GridY            float64   // Unsnapped grid row
	TimeY            time.Time // Time at the unsnapped row
	NearestGridY     float64   // Snapped grid row
	NearestGridTimeY time.Time // Time at the snapped row
}

// Locator converts pointer offsets into positions for a single view. It is
// captured once per drag session and reused for every sample in that session,
// so a later layout change does not move the session's reference frame.
type Locator struct {
	view View
	mode SnapMode
}

// NewLocator captures view and mode.
func NewLocator(view View, mode SnapMode) Locator {
	view.Date = StartOfDay(view.Date)
	opts := view.Options
	opts.RatioHourGridY = append([]float64(nil), view.Options.RatioHourGridY...)
	view.Options = opts
	return Locator{view: view, mode: mode}
}

// View returns the captured view.
func (l Locator) View() View {
	return l.view
}

// Mode returns the snap mode.
func (l Locator) Mode() SnapMode {
	return l.mode
}

// Locate maps a pointer offset to a Position.
func (l Locator) Locate(pointerY float64) Position {
	opts := l.view.Options
	span := float64(opts.HourSpan())
	gridY := UnsnappedRow(pointerY, l.view.Height, span)
	nearest := PixelToGridRow(pointerY, l.view.Height, span, l.mode, opts.RatioHourGridY)

	return Position{
		MouseY:           pointerY,
		GridY:            gridY,
		TimeY:            l.view.Date.Add(hoursToDuration(gridY + float64(opts.HourStart))),
		NearestGridY:     nearest,
		NearestGridTimeY: l.RowTime(nearest),
	}
}

// RowTime converts a grid row back to a timestamp on the view's day. The
// bottom edge of the grid maps to one second before it, keeping the result on
// the same day when hourEnd is 24.
func (l Locator) RowTime(row float64) time.Time {
	opts := l.view.Options
	t := l.view.Date.Add(hoursToDuration(row + float64(opts.HourStart)))
	if row == float64(opts.HourSpan()) {
		t = t.Add(-time.Second)
	}
	return t
}

// PositionAt builds a Position for an already-snapped row, keeping the
// pointer fields of base.
func (l Locator) PositionAt(base Position, row float64) Position {
	base.NearestGridY = row
	base.NearestGridTimeY = l.RowTime(row)
	return base
}
