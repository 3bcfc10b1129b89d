package app

import (
	"context"
	"errors"

	"github.com/cimillas/event-tickets/internal/domain"
)

type EventRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	ListEvents(ctx context.Context) ([]domain.Event, error)
	GetEvent(ctx context.Context, id int64) (domain.Event, error)
	FindEventByName(ctx context.Context, name string) (*domain.Event, error)
	CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	UpdateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
}

type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{repo: repo}
}

func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []domain.Event{}
	}
	return events, nil
}

func (s *EventService) Get(ctx context.Context, id int64) (domain.Event, error) {
	event, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return domain.Event{}, domain.EventNotFound(id)
		}
		return domain.Event{}, err
	}
	return event, nil
}

// Create registers a new event. The name pre-check gives the specific
// conflict message; the unique index on events.name catches the race.
func (s *EventService) Create(ctx context.Context, in EventInput) (domain.Event, error) {
	event, err := in.event()
	if err != nil {
		return domain.Event{}, err
	}

	existing, err := s.repo.FindEventByName(ctx, event.Name)
	if err != nil {
		return domain.Event{}, err
	}
	if existing != nil {
		return domain.Event{}, domain.EventNameTaken(event.Name)
	}

	created, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		if errors.Is(err, domain.ErrEventNameTaken) {
			return domain.Event{}, domain.EventNameTaken(event.Name)
		}
		return domain.Event{}, err
	}
	return created, nil
}

// Update replaces name and date of an existing event. Validation runs
// before the lookup, so a malformed payload never reports not found.
func (s *EventService) Update(ctx context.Context, id int64, in EventInput) (domain.Event, error) {
	event, err := in.event()
	if err != nil {
		return domain.Event{}, err
	}
	event.ID = id

	var result domain.Event
	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetEvent(txCtx, id); err != nil {
			return err
		}

		existing, err := s.repo.FindEventByName(txCtx, event.Name)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != id {
			return domain.ErrEventNameTaken
		}

		result, err = s.repo.UpdateEvent(txCtx, event)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEventNotFound):
			return domain.Event{}, domain.EventNotFound(id)
		case errors.Is(err, domain.ErrEventNameTaken):
			return domain.Event{}, domain.EventNameTaken(event.Name)
		default:
			return domain.Event{}, err
		}
	}
	return result, nil
}

// Delete removes the event; its tickets are removed by the store cascade.
func (s *EventService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return domain.EventNotFound(id)
		}
		return err
	}
	return nil
}
