package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/cimillas/event-tickets/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository struct {
	db
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db{pool: pool}}
}

func (r *EventRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *EventRepository) ListEvents(ctx context.Context) ([]domain.Event, error) {
	const query = `
SELECT id, name, date
FROM events
ORDER BY id ASC`
	rows, err := r.query(ctx, query)
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
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate events: %w", rows.Err())
	}
	return events, nil
}

func (r *EventRepository) GetEvent(ctx context.Context, id int64) (domain.Event, error) {
	return r.getEvent(ctx, id)
}

func (r *EventRepository) FindEventByName(ctx context.Context, name string) (*domain.Event, error) {
	const query = `SELECT id, name, date FROM events WHERE name = $1`

	var event domain.Event
	err := r.queryRow(ctx, query, name).Scan(&event.ID, &event.Name, &event.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find event by name: %w", err)
	}
	return &event, nil
}

func (r *EventRepository) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	const stmt = `
INSERT INTO events (name, date)
VALUES ($1, $2)
RETURNING id, name, date`

	var created domain.Event
	err := r.queryRow(ctx, stmt, event.Name, event.Date).Scan(&created.ID, &created.Name, &created.Date)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Event{}, domain.ErrEventNameTaken
		}
		return domain.Event{}, fmt.Errorf("create event: %w", err)
	}
	return created, nil
}

func (r *EventRepository) UpdateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	const stmt = `
UPDATE events SET name = $2, date = $3
WHERE id = $1
RETURNING id, name, date`

	var updated domain.Event
	err := r.queryRow(ctx, stmt, event.ID, event.Name, event.Date).Scan(&updated.ID, &updated.Name, &updated.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Event{}, domain.ErrEventNotFound
		}
		if isUniqueViolation(err) {
			return domain.Event{}, domain.ErrEventNameTaken
		}
		return domain.Event{}, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

// DeleteEvent relies on tickets.event_id ON DELETE CASCADE.
func (r *EventRepository) DeleteEvent(ctx context.Context, id int64) error {
	tag, err := r.exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (d db) getEvent(ctx context.Context, id int64) (domain.Event, error) {
	const query = `SELECT id, name, date FROM events WHERE id = $1`

	var event domain.Event
	err := d.queryRow(ctx, query, id).Scan(&event.ID, &event.Name, &event.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}
