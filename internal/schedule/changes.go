package schedule

import "time"

// Changes is a field-level diff of a schedule's time range. A nil field is
// unchanged.
type Changes struct {
	Start *time.Time
	End   *time.Time
}

// Diff compares s against a proposed range and returns the fields that differ.
func Diff(s *Schedule, r Range) Changes {
	var c Changes
	if !s.Start.Equal(r.Start) {
		start := r.Start
		c.Start = &start
	}
	if !s.End.Equal(r.End) {
		end := r.End
		c.End = &end
	}
	return c
}

// Empty reports whether no field changed.
func (c Changes) Empty() bool {
	return c.Start == nil && c.End == nil
}

// Apply returns a copy of s with the changes applied.
func (c Changes) Apply(s *Schedule) (*Schedule, error) {
	out := s.Clone()
	if c.Start != nil {
		out.Start = *c.Start
	}
	if c.End != nil {
		out.End = *c.End
	}
	if !out.End.After(out.Start) {
		return nil, ErrEndBeforeStart
	}
	return out, nil
}
