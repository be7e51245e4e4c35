package gridtime

import (
	"testing"
	"time"
)

func testView(height float64) View {
	return View{
		Index:   2,
		Date:    time.Date(2025, 3, 12, 15, 45, 0, 0, time.UTC),
		Height:  height,
		Options: DefaultOptions(),
	}
}

func TestLocator_Locate(t *testing.T) {
	loc := NewLocator(testView(240), SnapBottom)
	pos := loc.Locate(92.5)

	if pos.MouseY != 92.5 {
		t.Errorf("MouseY = %v", pos.MouseY)
	}
	if pos.GridY != 9.25 {
		t.Errorf("GridY = %v, want 9.25", pos.GridY)
	}
	if pos.NearestGridY != 9.5 {
		t.Errorf("NearestGridY = %v, want 9.5", pos.NearestGridY)
	}
	wantTime := time.Date(2025, 3, 12, 9, 15, 0, 0, time.UTC)
	if !pos.TimeY.Equal(wantTime) {
		t.Errorf("TimeY = %v, want %v", pos.TimeY, wantTime)
	}
	wantNearest := time.Date(2025, 3, 12, 9, 30, 0, 0, time.UTC)
	if !pos.NearestGridTimeY.Equal(wantNearest) {
		t.Errorf("NearestGridTimeY = %v, want %v", pos.NearestGridTimeY, wantNearest)
	}
}

func TestLocator_HourStartOffset(t *testing.T) {
	view := testView(100)
	view.Options.HourStart = 8
	view.Options.HourEnd = 18
	loc := NewLocator(view, SnapTop)

	pos := loc.Locate(25) // 2.5 rows into a 10 hour span
	if pos.GridY != 2.5 {
		t.Fatalf("GridY = %v, want 2.5", pos.GridY)
	}
	if pos.TimeY.Hour() != 10 || pos.TimeY.Minute() != 30 {
		t.Errorf("TimeY = %v, want 10:30", pos.TimeY)
	}
	if pos.NearestGridY != 2 {
		t.Errorf("NearestGridY = %v, want 2", pos.NearestGridY)
	}
}

func TestLocator_RowTimeBottomEdge(t *testing.T) {
	loc := NewLocator(testView(240), SnapBottom)
	got := loc.RowTime(24)
	want := time.Date(2025, 3, 12, 23, 59, 59, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("RowTime(24) = %v, want %v", got, want)
	}
}

func TestLocator_SnapshotIsolation(t *testing.T) {
	view := testView(240)
	loc := NewLocator(view, SnapNone)
	view.Options.RatioHourGridY[1] = 0.75

	if got := loc.View().Options.RatioHourGridY[1]; got != 0.5 {
		t.Errorf("captured table changed to %v", got)
	}
	if !loc.View().Date.Equal(time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date not normalized: %v", loc.View().Date)
	}
}

func TestLocator_PositionAt(t *testing.T) {
	loc := NewLocator(testView(240), SnapNone)
	base := loc.Locate(100)
	moved := loc.PositionAt(base, 12.5)

	if moved.MouseY != base.MouseY || moved.GridY != base.GridY {
		t.Errorf("pointer fields changed")
	}
	if moved.NearestGridY != 12.5 {
		t.Errorf("NearestGridY = %v", moved.NearestGridY)
	}
	if moved.NearestGridTimeY.Hour() != 12 || moved.NearestGridTimeY.Minute() != 30 {
		t.Errorf("NearestGridTimeY = %v", moved.NearestGridTimeY)
	}
}
