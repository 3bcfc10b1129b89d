package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/cimillas/event-tickets/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepository struct {
	db
}

func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{db: db{pool: pool}}
}

func (r *TicketRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *TicketRepository) GetEvent(ctx context.Context, id int64) (domain.Event, error) {
	return r.getEvent(ctx, id)
}

func (r *TicketRepository) ListTicketsByEvent(ctx context.Context, eventID int64) ([]domain.Ticket, error) {
	const query = `
SELECT id, code, owner, event_id, used
FROM tickets
WHERE event_id = $1
ORDER BY id ASC`
	rows, err := r.query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		var t domain.Ticket
		if err := rows.Scan(&t.ID, &t.Code, &t.Owner, &t.EventID, &t.Used); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate tickets: %w", rows.Err())
	}
	return tickets, nil
}

func (r *TicketRepository) GetTicketForUpdate(ctx context.Context, id int64) (domain.Ticket, error) {
	const query = `
SELECT id, code, owner, event_id, used
FROM tickets
WHERE id = $1
FOR UPDATE`

	var t domain.Ticket
	err := r.queryRow(ctx, query, id).Scan(&t.ID, &t.Code, &t.Owner, &t.EventID, &t.Used)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Ticket{}, domain.ErrTicketNotFound
		}
		return domain.Ticket{}, fmt.Errorf("get ticket: %w", err)
	}
	return t, nil
}

func (r *TicketRepository) CreateTicket(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	const stmt = `
INSERT INTO tickets (code, owner, event_id, used)
VALUES ($1, $2, $3, $4)
RETURNING id, code, owner, event_id, used`

	var t domain.Ticket
	err := r.queryRow(ctx, stmt, ticket.Code, ticket.Owner, ticket.EventID, ticket.Used).
		Scan(&t.ID, &t.Code, &t.Owner, &t.EventID, &t.Used)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Ticket{}, domain.ErrEventNotFound
		}
		return domain.Ticket{}, fmt.Errorf("create ticket: %w", err)
	}
	return t, nil
}

func (r *TicketRepository) MarkTicketUsed(ctx context.Context, id int64) error {
	const stmt = `UPDATE tickets SET used = TRUE WHERE id = $1 AND used = FALSE`

	tag, err := r.exec(ctx, stmt, id)
	if err != nil {
		return fmt.Errorf("mark ticket used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTicketAlreadyUsed
	}
	return nil
}
