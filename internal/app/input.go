package app

import (
	"time"

	"github.com/cimillas/event-tickets/internal/domain"
)

// Accepted date formats, tried in order.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// EventInput is the payload for creating or replacing an event.
type EventInput struct {
	Name string
	Date string
}

// Validate checks the payload without touching the store.
func (in EventInput) Validate() error {
	_, err := in.event()
	return err
}

func (in EventInput) event() (domain.Event, error) {
	if in.Name == "" {
		return domain.Event{}, domain.Invalid(`"name" is required`)
	}
	if in.Date == "" {
		return domain.Event{}, domain.Invalid(`"date" is required`)
	}
	date, ok := parseDate(in.Date)
	if !ok {
		return domain.Event{}, domain.Invalid(`"date" must be a valid date`)
	}
	return domain.Event{Name: in.Name, Date: date}, nil
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// TicketInput is the payload for issuing a ticket.
type TicketInput struct {
	Code    string
	Owner   string
	EventID int64
}

func (in TicketInput) Validate() error {
	if in.Code == "" {
		return domain.Invalid(`"code" is required`)
	}
	if in.Owner == "" {
		return domain.Invalid(`"owner" is required`)
	}
	if in.EventID <= 0 {
		return domain.Invalid(`"eventId" must be a positive integer`)
	}
	return nil
}
