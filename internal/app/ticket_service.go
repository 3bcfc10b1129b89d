package app

import (
	"context"
	"errors"

	"github.com/cimillas/event-tickets/internal/clock"
	"github.com/cimillas/event-tickets/internal/domain"
)

type TicketRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetEvent(ctx context.Context, id int64) (domain.Event, error)
	ListTicketsByEvent(ctx context.Context, eventID int64) ([]domain.Ticket, error)
	GetTicketForUpdate(ctx context.Context, id int64) (domain.Ticket, error)
	CreateTicket(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error)
	// MarkTicketUsed flips used to true only if it is currently false and
	// returns ErrTicketAlreadyUsed otherwise.
	MarkTicketUsed(ctx context.Context, id int64) error
}

type TicketService struct {
	repo  TicketRepository
	clock clock.Clock
}

func NewTicketService(repo TicketRepository, clk clock.Clock) *TicketService {
	return &TicketService{
		repo:  repo,
		clock: clk,
	}
}

// ListByEvent never fails for a missing event; it returns no tickets.
func (s *TicketService) ListByEvent(ctx context.Context, eventID int64) ([]domain.Ticket, error) {
	tickets, err := s.repo.ListTicketsByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if tickets == nil {
		tickets = []domain.Ticket{}
	}
	return tickets, nil
}

func (s *TicketService) Create(ctx context.Context, in TicketInput) (domain.Ticket, error) {
	if err := in.Validate(); err != nil {
		return domain.Ticket{}, err
	}

	event, err := s.repo.GetEvent(ctx, in.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return domain.Ticket{}, domain.EventNotFound(in.EventID)
		}
		return domain.Ticket{}, err
	}
	if event.HasHappened(s.clock.Now()) {
		return domain.Ticket{}, domain.ErrEventAlreadyHappened
	}

	ticket, err := s.repo.CreateTicket(ctx, domain.Ticket{
		Code:    in.Code,
		Owner:   in.Owner,
		EventID: in.EventID,
		Used:    false,
	})
	if err != nil {
		// The event can be deleted between the lookup and the insert.
		if errors.Is(err, domain.ErrEventNotFound) {
			return domain.Ticket{}, domain.EventNotFound(in.EventID)
		}
		return domain.Ticket{}, err
	}
	return ticket, nil
}

// MarkUsed redeems a ticket. Expired events and already used tickets fail
// with the same error.
func (s *TicketService) MarkUsed(ctx context.Context, id int64) error {
	now := s.clock.Now()

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		ticket, err := s.repo.GetTicketForUpdate(txCtx, id)
		if err != nil {
			return err
		}

		event, err := s.repo.GetEvent(txCtx, ticket.EventID)
		if err != nil {
			return err
		}
		if !ticket.CanBeUsed(event, now) {
			return domain.ErrTicketAlreadyUsed
		}

		return s.repo.MarkTicketUsed(txCtx, id)
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTicketNotFound), errors.Is(err, domain.ErrEventNotFound):
			// A ticket never outlives its event.
			return domain.TicketNotFound(id)
		case errors.Is(err, domain.ErrTicketAlreadyUsed):
			return domain.ErrTicketNotUsable
		default:
			return err
		}
	}
	return nil
}
