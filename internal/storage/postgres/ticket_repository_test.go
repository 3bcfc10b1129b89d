package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cimillas/event-tickets/internal/domain"
	"github.com/cimillas/event-tickets/internal/testutil"
)

func TestTicketRepository_CreateAndList(t *testing.T) {
	pool := testutil.NewTestPool(t)
	testutil.ApplyMigrations(t, context.Background(), pool)
	repo := NewTicketRepository(pool)

	ctx := context.Background()
	testutil.TruncateAll(t, ctx, pool)

	eventID := testutil.InsertEvent(t, ctx, pool, testutil.EventName(), time.Now().Add(24*time.Hour))
	created, err := repo.CreateTicket(ctx, domain.Ticket{Code: "A-1", Owner: "Ada", EventID: eventID})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.Used)

	tickets, err := repo.ListTicketsByEvent(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, created, tickets[0])

	none, err := repo.ListTicketsByEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTicketRepository_CreateTicket_MissingEvent(t *testing.T) {
	pool := testutil.NewTestPool(t)
	testutil.ApplyMigrations(t, context.Background(), pool)
	repo := NewTicketRepository(pool)

	ctx := context.Background()
	testutil.TruncateAll(t, ctx, pool)

	_, err := repo.CreateTicket(ctx, domain.Ticket{Code: "A-1", Owner: "Ada", EventID: 9999})
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestTicketRepository_MarkTicketUsed_Once(t *testing.T) {
	pool := testutil.NewTestPool(t)
	testutil.ApplyMigrations(t, context.Background(), pool)
	repo := NewTicketRepository(pool)

	ctx := context.Background()
	testutil.TruncateAll(t, ctx, pool)

	eventID := testutil.InsertEvent(t, ctx, pool, testutil.EventName(), time.Now().Add(24*time.Hour))
	ticketID := testutil.InsertTicket(t, ctx, pool, eventID, false)

	err := repo.WithTx(ctx, func(txCtx context.Context) error {
		ticket, err := repo.GetTicketForUpdate(txCtx, ticketID)
		if err != nil {
			return err
		}
		assert.False(t, ticket.Used)
		return repo.MarkTicketUsed(txCtx, ticketID)
	})
	require.NoError(t, err)

	assert.ErrorIs(t, repo.MarkTicketUsed(ctx, ticketID), domain.ErrTicketAlreadyUsed)

	ticket, err := repo.GetTicketForUpdate(ctx, ticketID)
	require.NoError(t, err)
	assert.True(t, ticket.Used)

	_, err = repo.GetTicketForUpdate(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
}
