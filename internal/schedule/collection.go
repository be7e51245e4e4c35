package schedule

import (
	"fmt"
	"sort"
	"time"
)

// Collection is a keyed in-memory set of schedules. Get returns the stored
// pointer; callers must go through Update to change times so the collection
// stays the single source of truth for the controllers.
//
// Collection is not safe for concurrent use.
type Collection struct {
	items map[string]*Schedule
}

// NewCollection returns a collection holding schedules.
func NewCollection(schedules ...*Schedule) *Collection {
	c := &Collection{items: make(map[string]*Schedule, len(schedules))}
	for _, s := range schedules {
		c.items[s.ID] = s
	}
	return c
}

// Len returns the number of schedules.
func (c *Collection) Len() int {
	return len(c.items)
}

// Get returns the schedule with id.
func (c *Collection) Get(id string) (*Schedule, bool) {
	s, ok := c.items[id]
	return s, ok
}

// Add inserts s. It fails if the id is already present.
func (c *Collection) Add(s *Schedule) error {
	if _, ok := c.items[s.ID]; ok {
		return fmt.Errorf("adding %s: %w", s.ID, ErrDuplicateID)
	}
	c.items[s.ID] = s
	return nil
}

// Update applies changes to the schedule with id and returns the result.
func (c *Collection) Update(id string, changes Changes) (*Schedule, error) {
	s, ok := c.items[id]
	if !ok {
		return nil, fmt.Errorf("updating %s: %w", id, ErrNotFound)
	}
	updated, err := changes.Apply(s)
	if err != nil {
		return nil, fmt.Errorf("updating %s: %w", id, err)
	}
	c.items[id] = updated
	return updated, nil
}

// Remove deletes the schedule with id and reports whether it existed.
func (c *Collection) Remove(id string) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	return true
}

// Replace swaps the whole contents for schedules.
func (c *Collection) Replace(schedules []*Schedule) {
	c.items = make(map[string]*Schedule, len(schedules))
	for _, s := range schedules {
		c.items[s.ID] = s
	}
}

// All returns every schedule ordered by start time, then id.
func (c *Collection) All() []*Schedule {
	out := make([]*Schedule, 0, len(c.items))
	for _, s := range c.items {
		out = append(out, s)
	}
	sortSchedules(out)
	return out
}

// Between returns the schedules overlapping [from, to), ordered by start.
func (c *Collection) Between(from, to time.Time) []*Schedule {
	window := Range{Start: from, End: to}
	var out []*Schedule
	for _, s := range c.items {
		if s.Range().Overlaps(window) {
			out = append(out, s)
		}
	}
	sortSchedules(out)
	return out
}

// Overlapping reports whether r overlaps any schedule other than excludeID.
func (c *Collection) Overlapping(r Range, excludeID string) bool {
	for id, s := range c.items {
		if id == excludeID {
			continue
		}
		if s.Range().Overlaps(r) {
			return true
		}
	}
	return false
}

// NextStartAfter returns the earliest schedule start strictly after t on the
// same calendar day, excluding excludeID.
func (c *Collection) NextStartAfter(t time.Time, excludeID string) (time.Time, bool) {
	var best time.Time
	found := false
	y, m, d := t.Date()
	for id, s := range c.items {
		if id == excludeID || !s.Start.After(t) {
			continue
		}
		sy, sm, sd := s.Start.Date()
		if sy != y || sm != m || sd != d {
			continue
		}
		if !found || s.Start.Before(best) {
			best, found = s.Start, true
		}
	}
	return best, found
}

// PrevEndBefore returns the latest schedule end at or before t, not earlier
// than the start of t's day, excluding excludeID.
func (c *Collection) PrevEndBefore(t time.Time, excludeID string) (time.Time, bool) {
	var best time.Time
	found := false
	dayStart := TruncateToDay(t)
	for id, s := range c.items {
		if id == excludeID || s.End.After(t) || s.End.Before(dayStart) {
			continue
		}
		if !found || s.End.After(best) {
			best, found = s.End, true
		}
	}
	return best, found
}

func sortSchedules(s []*Schedule) {
	sort.Slice(s, func(i, j int) bool {
		if !s[i].Start.Equal(s[j].Start) {
			return s[i].Start.Before(s[j].Start)
		}
		return s[i].ID < s[j].ID
	})
}
