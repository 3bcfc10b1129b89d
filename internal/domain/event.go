package domain

import "time"

// Event is a named happening with a scheduled date. Names are unique across
// all events.
type Event struct {
	ID   int64
	Name string
	Date time.Time
}

// HasHappened reports whether the event date is strictly before now.
func (e Event) HasHappened(now time.Time) bool {
	return e.Date.Before(now)
}
