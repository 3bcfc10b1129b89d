package domain

import "time"

// Ticket is an admission record for one event, redeemable once.
type Ticket struct {
	ID      int64
	Code    string
	Owner   string
	EventID int64
	Used    bool
}

// CanBeUsed reports whether the ticket may move from unused to used for the
// given parent event at now.
func (t Ticket) CanBeUsed(event Event, now time.Time) bool {
	return !t.Used && !event.HasHappened(now)
}
