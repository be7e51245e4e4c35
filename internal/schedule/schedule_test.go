package schedule

import (
	"errors"
	"testing"
	"time"
)

func at(h, m int) time.Time {
	return time.Date(2025, 3, 10, h, m, 0, 0, time.UTC)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{"valid", "Standup", at(9, 0), at(9, 30), nil},
		{"trims title", "  Review  ", at(9, 0), at(10, 0), nil},
		{"empty title", "   ", at(9, 0), at(9, 30), ErrEmptyTitle},
		{"zero length", "x", at(9, 0), at(9, 0), ErrEndBeforeStart},
		{"inverted", "x", at(10, 0), at(9, 0), ErrEndBeforeStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.title, tt.start, tt.end)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.ID == "" {
				t.Error("ID should be set")
			}
			if s.Resizable {
				t.Error("new schedules must not block resizing")
			}
		})
	}

	a, _ := New("a", at(9, 0), at(10, 0))
	b, _ := New("b", at(9, 0), at(10, 0))
	if a.ID == b.ID {
		t.Error("ids should be unique")
	}
}

func TestRange(t *testing.T) {
	r := NewRange(at(11, 0), at(9, 0))
	if !r.Start.Equal(at(9, 0)) || !r.End.Equal(at(11, 0)) {
		t.Fatalf("NewRange did not order endpoints: %+v", r)
	}
	if r.Duration() != 2*time.Hour {
		t.Errorf("Duration() = %v", r.Duration())
	}

	tests := []struct {
		name string
		o    Range
		want bool
	}{
		{"inside", Range{at(9, 30), at(10, 0)}, true},
		{"touching end", Range{at(11, 0), at(12, 0)}, false},
		{"touching start", Range{at(8, 0), at(9, 0)}, false},
		{"straddling", Range{at(10, 30), at(11, 30)}, true},
		{"disjoint", Range{at(12, 0), at(13, 0)}, false},
	}
	for _, tt := range tests {
		if got := r.Overlaps(tt.o); got != tt.want {
			t.Errorf("%s: Overlaps = %v, want %v", tt.name, got, tt.want)
		}
	}

	if !r.Contains(at(9, 0)) || r.Contains(at(11, 0)) {
		t.Error("Contains should be half-open")
	}
}

func TestDiffAndApply(t *testing.T) {
	s := &Schedule{ID: "a", Title: "a", Start: at(9, 0), End: at(10, 0)}

	same := Diff(s, s.Range())
	if !same.Empty() {
		t.Errorf("Diff of identical range = %+v, want empty", same)
	}

	c := Diff(s, Range{Start: at(9, 0), End: at(11, 30)})
	if c.Start != nil {
		t.Error("Start should be unchanged")
	}
	if c.End == nil || !c.End.Equal(at(11, 30)) {
		t.Fatalf("End change = %v", c.End)
	}

	updated, err := c.Apply(s)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !updated.End.Equal(at(11, 30)) {
		t.Errorf("updated end = %v", updated.End)
	}
	if !s.End.Equal(at(10, 0)) {
		t.Error("Apply must not mutate the original")
	}

	bad := Changes{Start: ptr(at(12, 0))}
	if _, err := bad.Apply(s); !errors.Is(err, ErrEndBeforeStart) {
		t.Errorf("Apply inverted = %v, want ErrEndBeforeStart", err)
	}
}

func ptr(t time.Time) *time.Time { return &t }

func TestCollection(t *testing.T) {
	a := &Schedule{ID: "a", Title: "a", Start: at(13, 0), End: at(14, 0)}
	b := &Schedule{ID: "b", Title: "b", Start: at(9, 0), End: at(10, 0)}
	c := NewCollection(a, b)

	if c.Len() != 2 {
		t.Fatalf("Len() = %d", c.Len())
	}
	all := c.All()
	if all[0].ID != "b" || all[1].ID != "a" {
		t.Errorf("All() not ordered by start: %s, %s", all[0].ID, all[1].ID)
	}

	if err := c.Add(&Schedule{ID: "a"}); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("Add duplicate = %v", err)
	}

	if _, err := c.Update("missing", Changes{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update missing = %v", err)
	}
	updated, err := c.Update("b", Changes{End: ptr(at(11, 0))})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := c.Get("b")
	if got != updated || !got.End.Equal(at(11, 0)) {
		t.Errorf("Get after Update = %+v", got)
	}

	if !c.Overlapping(Range{at(10, 30), at(10, 45)}, "") {
		t.Error("10:30 should overlap the extended b")
	}
	if c.Overlapping(Range{at(10, 30), at(10, 45)}, "b") {
		t.Error("excluded id should not count")
	}

	between := c.Between(at(12, 0), at(15, 0))
	if len(between) != 1 || between[0].ID != "a" {
		t.Errorf("Between = %v", between)
	}

	next, ok := c.NextStartAfter(at(11, 0), "")
	if !ok || !next.Equal(at(13, 0)) {
		t.Errorf("NextStartAfter = %v, %v", next, ok)
	}
	if _, ok := c.NextStartAfter(at(13, 0), ""); ok {
		t.Error("no schedule starts after 13:00")
	}

	prev, ok := c.PrevEndBefore(at(13, 0), "a")
	if !ok || !prev.Equal(at(11, 0)) {
		t.Errorf("PrevEndBefore = %v, %v", prev, ok)
	}
	if _, ok := c.PrevEndBefore(at(10, 0), ""); ok {
		t.Error("no schedule ends before 10:00")
	}

	if !c.Remove("a") || c.Remove("a") {
		t.Error("Remove should report existence")
	}
}

func TestParseClock(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	got, err := ParseClock(day, "09:45")
	if err != nil || !got.Equal(at(9, 45)) {
		t.Errorf("ParseClock 09:45 = %v, %v", got, err)
	}
	got, err = ParseClock(day, "24:00")
	if err != nil || !got.Equal(day.AddDate(0, 0, 1)) {
		t.Errorf("ParseClock 24:00 = %v, %v", got, err)
	}
	for _, bad := range []string{"9:45", "25:00", "aa:bb", ""} {
		if _, err := ParseClock(day, bad); !errors.Is(err, ErrInvalidClockFormat) {
			t.Errorf("ParseClock(%q) = %v", bad, err)
		}
	}
}

func TestParseDateRange(t *testing.T) {
	from, to, err := ParseDateRange("2025-03-10", "", time.UTC)
	if err != nil || !from.Equal(to) {
		t.Fatalf("single day = %v %v %v", from, to, err)
	}

	_, _, err = ParseDateRange("2025-03-10", "2025-03-09", time.UTC)
	if !errors.Is(err, ErrEndDateBeforeStart) {
		t.Errorf("inverted = %v", err)
	}

	_, _, err = ParseDateRange("03/10/2025", "", time.UTC)
	if !errors.Is(err, ErrInvalidDateFormat) {
		t.Errorf("bad format = %v", err)
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		in   time.Time
		want time.Time
	}{
		{time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
		{time.Date(2025, 3, 16, 8, 0, 0, 0, time.UTC), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
		{time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		if got := WeekStart(tt.in); !got.Equal(tt.want) {
			t.Errorf("WeekStart(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
