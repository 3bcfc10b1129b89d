package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cimillas/event-tickets/internal/domain"
)

type EventRepository struct {
	store *Store
}

func NewEventRepository(store *Store) *EventRepository {
	return &EventRepository{store: store}
}

func (r *EventRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.store.withTx(ctx, fn)
}

func (r *EventRepository) ListEvents(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.store.query(ctx, `SELECT id, name, date FROM events ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var event domain.Event
		if err := rows.Scan(&event.ID, &event.Name, &event.Date); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

func (r *EventRepository) GetEvent(ctx context.Context, id int64) (domain.Event, error) {
	return r.store.getEvent(ctx, id)
}

func (r *EventRepository) FindEventByName(ctx context.Context, name string) (*domain.Event, error) {
	var event domain.Event
	err := r.store.queryRow(ctx, `SELECT id, name, date FROM events WHERE name = ?`, name).
		Scan(&event.ID, &event.Name, &event.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find event by name: %w", err)
	}
	return &event, nil
}

func (r *EventRepository) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	event.Date = event.Date.UTC()
	res, err := r.store.exec(ctx, `INSERT INTO events (name, date) VALUES (?, ?)`, event.Name, event.Date)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Event{}, domain.ErrEventNameTaken
		}
		return domain.Event{}, fmt.Errorf("create event: %w", err)
	}
	event.ID, err = res.LastInsertId()
	if err != nil {
		return domain.Event{}, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (r *EventRepository) UpdateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	event.Date = event.Date.UTC()
	res, err := r.store.exec(ctx, `UPDATE events SET name = ?, date = ? WHERE id = ?`, event.Name, event.Date, event.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Event{}, domain.ErrEventNameTaken
		}
		return domain.Event{}, fmt.Errorf("update event: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return domain.Event{}, fmt.Errorf("update event: %w", err)
	} else if n == 0 {
		return domain.Event{}, domain.ErrEventNotFound
	}
	return event, nil
}

// DeleteEvent relies on tickets.event_id ON DELETE CASCADE.
func (r *EventRepository) DeleteEvent(ctx context.Context, id int64) error {
	res, err := r.store.exec(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("delete event: %w", err)
	} else if n == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (s *Store) getEvent(ctx context.Context, id int64) (domain.Event, error) {
	var event domain.Event
	err := s.queryRow(ctx, `SELECT id, name, date FROM events WHERE id = ?`, id).
		Scan(&event.ID, &event.Name, &event.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}
