package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cimillas/event-tickets/internal/clock"
	"github.com/cimillas/event-tickets/internal/domain"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func TestTicketService_Create(t *testing.T) {
	repo := newMemRepo()
	event := repo.addEvent("Conf", testNow.Add(24*time.Hour))
	svc := NewTicketService(repo, clock.NewFixed(testNow))

	got, err := svc.Create(context.Background(), TicketInput{Code: "A-1", Owner: "Ada", EventID: event.ID})
	require.NoError(t, err)
	assert.NotZero(t, got.ID)
	assert.False(t, got.Used)
	assert.Equal(t, event.ID, got.EventID)
}

func TestTicketService_Create_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   TicketInput
	}{
		{name: "missing code", in: TicketInput{Owner: "Ada", EventID: 1}},
		{name: "missing owner", in: TicketInput{Code: "A-1", EventID: 1}},
		{name: "missing event", in: TicketInput{Code: "A-1", Owner: "Ada"}},
		{name: "negative event", in: TicketInput{Code: "A-1", Owner: "Ada", EventID: -3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemRepo()
			svc := NewTicketService(repo, clock.NewFixed(testNow))

			_, err := svc.Create(context.Background(), tt.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Zero(t, repo.calls)
		})
	}
}

func TestTicketService_Create_EventNotFound(t *testing.T) {
	svc := NewTicketService(newMemRepo(), clock.NewFixed(testNow))

	_, err := svc.Create(context.Background(), TicketInput{Code: "A-1", Owner: "Ada", EventID: 9999})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "Event with id 9999 not found.")
}

func TestTicketService_Create_EventDeletedConcurrently(t *testing.T) {
	repo := newMemRepo()
	event := repo.addEvent("Conf", testNow.Add(time.Hour))
	repo.createTicketErr = domain.ErrEventNotFound
	svc := NewTicketService(repo, clock.NewFixed(testNow))

	_, err := svc.Create(context.Background(), TicketInput{Code: "A-1", Owner: "Ada", EventID: event.ID})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "Event with id 1 not found.")
}

func TestTicketService_Create_PastEvent(t *testing.T) {
	repo := newMemRepo()
	event := repo.addEvent("past-event", testNow.Add(-24*time.Hour))
	svc := NewTicketService(repo, clock.NewFixed(testNow))

	_, err := svc.Create(context.Background(), TicketInput{Code: "A-1", Owner: "Ada", EventID: event.ID})
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.EqualError(t, err, "The event has already happened.")
	assert.Empty(t, repo.tickets, "no ticket may be persisted")
}

func TestTicketService_Create_EventAtNowIsNotPast(t *testing.T) {
	repo := newMemRepo()
	event := repo.addEvent("Conf", testNow)
	svc := NewTicketService(repo, clock.NewFixed(testNow))

	_, err := svc.Create(context.Background(), TicketInput{Code: "A-1", Owner: "Ada", EventID: event.ID})
	assert.NoError(t, err)
}

func TestTicketService_ListByEvent(t *testing.T) {
	repo := newMemRepo()
	event := repo.addEvent("Conf", testNow.Add(time.Hour))
	other := repo.addEvent("Meetup", testNow.Add(time.Hour))
	first := repo.addTicket(event.ID, false)
	repo.addTicket(other.ID, false)
	svc := NewTicketService(repo, clock.NewFixed(testNow))

	tickets, err := svc.ListByEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Ticket{first}, tickets)

	none, err := svc.ListByEvent(context.Background(), 9999)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestTicketService_MarkUsed_OnlyOnce(t *testing.T) {
	repo := newMemRepo()
	event := repo.addEvent("Conf", testNow.Add(24*time.Hour))
	ticket := repo.addTicket(event.ID, false)
	svc := NewTicketService(repo, clock.NewFixed(testNow))
	ctx := context.Background()

	require.NoError(t, svc.MarkUsed(ctx, ticket.ID))
	assert.True(t, repo.tickets[ticket.ID].Used)

	err := svc.MarkUsed(ctx, ticket.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.EqualError(t, err, "The event has already happened or ticket was already used.")
	assert.True(t, repo.tickets[ticket.ID].Used, "used never goes back to false")
}

func TestTicketService_MarkUsed_AfterEventHappened(t *testing.T) {
	repo := newMemRepo()
	event := repo.addEvent("Conf", testNow.Add(time.Hour))
	ticket := repo.addTicket(event.ID, false)
	clk := clock.NewManual(testNow)
	svc := NewTicketService(repo, clk)

	clk.Advance(2 * time.Hour)

	err := svc.MarkUsed(context.Background(), ticket.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.EqualError(t, err, "The event has already happened or ticket was already used.")
	assert.False(t, repo.tickets[ticket.ID].Used)
}

func TestTicketService_MarkUsed_LostRace(t *testing.T) {
	repo := newMemRepo()
	event := repo.addEvent("Conf", testNow.Add(time.Hour))
	ticket := repo.addTicket(event.ID, false)
	repo.markUsedErr = domain.ErrTicketAlreadyUsed
	svc := NewTicketService(repo, clock.NewFixed(testNow))

	err := svc.MarkUsed(context.Background(), ticket.ID)
	assert.ErrorIs(t, err, domain.ErrTicketNotUsable)
}

func TestTicketService_MarkUsed_NotFound(t *testing.T) {
	svc := NewTicketService(newMemRepo(), clock.NewFixed(testNow))

	err := svc.MarkUsed(context.Background(), 9999)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "Ticket with id 9999 not found.")
}
