package app

import (
	"context"
	"sort"
	"time"

	"github.com/cimillas/event-tickets/internal/domain"
)

// memRepo is an in-memory store satisfying both repository contracts.
type memRepo struct {
	events  map[int64]domain.Event
	tickets map[int64]domain.Ticket
	nextID  int64

	createEventErr  error
	createTicketErr error
	markUsedErr     error

	calls int
}

func newMemRepo() *memRepo {
	return &memRepo{
		events:  map[int64]domain.Event{},
		tickets: map[int64]domain.Ticket{},
	}
}

func (m *memRepo) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *memRepo) ListEvents(ctx context.Context) ([]domain.Event, error) {
	m.calls++
	var out []domain.Event
	for _, e := range m.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRepo) GetEvent(ctx context.Context, id int64) (domain.Event, error) {
	m.calls++
	e, ok := m.events[id]
	if !ok {
		return domain.Event{}, domain.ErrEventNotFound
	}
	return e, nil
}

func (m *memRepo) FindEventByName(ctx context.Context, name string) (*domain.Event, error) {
	m.calls++
	for _, e := range m.events {
		if e.Name == name {
			e := e
			return &e, nil
		}
	}
	return nil, nil
}

func (m *memRepo) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	m.calls++
	if m.createEventErr != nil {
		return domain.Event{}, m.createEventErr
	}
	event.ID = m.id()
	m.events[event.ID] = event
	return event, nil
}

func (m *memRepo) UpdateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	m.calls++
	if _, ok := m.events[event.ID]; !ok {
		return domain.Event{}, domain.ErrEventNotFound
	}
	m.events[event.ID] = event
	return event, nil
}

func (m *memRepo) DeleteEvent(ctx context.Context, id int64) error {
	m.calls++
	if _, ok := m.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(m.events, id)
	for tid, t := range m.tickets {
		if t.EventID == id {
			delete(m.tickets, tid)
		}
	}
	return nil
}

func (m *memRepo) ListTicketsByEvent(ctx context.Context, eventID int64) ([]domain.Ticket, error) {
	m.calls++
	var out []domain.Ticket
	for _, t := range m.tickets {
		if t.EventID == eventID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRepo) GetTicketForUpdate(ctx context.Context, id int64) (domain.Ticket, error) {
	m.calls++
	t, ok := m.tickets[id]
	if !ok {
		return domain.Ticket{}, domain.ErrTicketNotFound
	}
	return t, nil
}

func (m *memRepo) CreateTicket(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	m.calls++
	if m.createTicketErr != nil {
		return domain.Ticket{}, m.createTicketErr
	}
	ticket.ID = m.id()
	m.tickets[ticket.ID] = ticket
	return ticket, nil
}

func (m *memRepo) MarkTicketUsed(ctx context.Context, id int64) error {
	m.calls++
	if m.markUsedErr != nil {
		return m.markUsedErr
	}
	t := m.tickets[id]
	if t.Used {
		return domain.ErrTicketAlreadyUsed
	}
	t.Used = true
	m.tickets[id] = t
	return nil
}

func (m *memRepo) addEvent(name string, date time.Time) domain.Event {
	e := domain.Event{ID: m.id(), Name: name, Date: date}
	m.events[e.ID] = e
	return e
}

func (m *memRepo) addTicket(eventID int64, used bool) domain.Ticket {
	t := domain.Ticket{ID: m.id(), Code: "A-1", Owner: "Ada", EventID: eventID, Used: used}
	m.tickets[t.ID] = t
	return t
}
