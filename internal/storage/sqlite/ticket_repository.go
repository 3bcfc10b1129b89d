package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cimillas/event-tickets/internal/domain"
)

type TicketRepository struct {
	store *Store
}

func NewTicketRepository(store *Store) *TicketRepository {
	return &TicketRepository{store: store}
}

func (r *TicketRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.store.withTx(ctx, fn)
}

func (r *TicketRepository) GetEvent(ctx context.Context, id int64) (domain.Event, error) {
	return r.store.getEvent(ctx, id)
}

func (r *TicketRepository) ListTicketsByEvent(ctx context.Context, eventID int64) ([]domain.Ticket, error) {
	const query = `
SELECT id, code, owner, event_id, used
FROM tickets
WHERE event_id = ?
ORDER BY id ASC`
	rows, err := r.store.query(ctx, query, eventID)
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tickets: %w", err)
	}
	return tickets, nil
}

// GetTicketForUpdate is a plain read: the single connection already
// serializes transactions.
func (r *TicketRepository) GetTicketForUpdate(ctx context.Context, id int64) (domain.Ticket, error) {
	var t domain.Ticket
	err := r.store.queryRow(ctx, `SELECT id, code, owner, event_id, used FROM tickets WHERE id = ?`, id).
		Scan(&t.ID, &t.Code, &t.Owner, &t.EventID, &t.Used)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Ticket{}, domain.ErrTicketNotFound
		}
		return domain.Ticket{}, fmt.Errorf("get ticket: %w", err)
	}
	return t, nil
}

func (r *TicketRepository) CreateTicket(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	res, err := r.store.exec(ctx,
		`INSERT INTO tickets (code, owner, event_id, used) VALUES (?, ?, ?, ?)`,
		ticket.Code, ticket.Owner, ticket.EventID, ticket.Used,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Ticket{}, domain.ErrEventNotFound
		}
		return domain.Ticket{}, fmt.Errorf("create ticket: %w", err)
	}
	ticket.ID, err = res.LastInsertId()
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("create ticket: %w", err)
	}
	return ticket, nil
}

func (r *TicketRepository) MarkTicketUsed(ctx context.Context, id int64) error {
	res, err := r.store.exec(ctx, `UPDATE tickets SET used = 1 WHERE id = ? AND used = 0`, id)
	if err != nil {
		return fmt.Errorf("mark ticket used: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("mark ticket used: %w", err)
	} else if n == 0 {
		return domain.ErrTicketAlreadyUsed
	}
	return nil
}
