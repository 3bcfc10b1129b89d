package http

import (
	"context"
	"net/http"

	"github.com/cimillas/event-tickets/internal/app"
	"github.com/cimillas/event-tickets/internal/domain"
)

// TicketService is the ticket rule engine as seen by the handlers.
type TicketService interface {
	ListByEvent(ctx context.Context, eventID int64) ([]domain.Ticket, error)
	Create(ctx context.Context, in app.TicketInput) (domain.Ticket, error)
	MarkUsed(ctx context.Context, id int64) error
}

// HandleListTickets serves GET /tickets/{eventId}. It never answers 404:
// an unknown or malformed event id simply has no tickets.
func HandleListTickets(svc TicketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, _, ok := pathID(r, "eventId")
		if !ok {
			writeJSON(w, http.StatusOK, []ticketResponse{})
			return
		}

		tickets, err := svc.ListByEvent(r.Context(), eventID)
		if err != nil {
			writeServiceError(w, r, err, http.StatusUnprocessableEntity)
			return
		}
		resp := make([]ticketResponse, 0, len(tickets))
		for _, ticket := range tickets {
			resp = append(resp, newTicketResponse(ticket))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleCreateTicket serves POST /tickets.
func HandleCreateTicket(svc TicketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ticketRequest
		if err := decodeJSON(r, &req); err != nil {
			writeServiceError(w, r, err, http.StatusUnprocessableEntity)
			return
		}

		ticket, err := svc.Create(r.Context(), app.TicketInput{
			Code:    req.Code,
			Owner:   req.Owner,
			EventID: req.EventID,
		})
		if err != nil {
			writeServiceError(w, r, err, http.StatusUnprocessableEntity)
			return
		}
		writeJSON(w, http.StatusCreated, newTicketResponse(ticket))
	}
}

// HandleUseTicket serves PUT /tickets/use/{id}.
func HandleUseTicket(svc TicketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, raw, ok := pathID(r, "id")
		if !ok {
			writeServiceError(w, r, domain.TicketNotFound(raw), http.StatusNotFound)
			return
		}
		if err := svc.MarkUsed(r.Context(), id); err != nil {
			writeServiceError(w, r, err, http.StatusUnprocessableEntity)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type ticketRequest struct {
	Code    string `json:"code"`
	Owner   string `json:"owner"`
	EventID int64  `json:"eventId"`
}

type ticketResponse struct {
	ID      int64  `json:"id"`
	Code    string `json:"code"`
	Owner   string `json:"owner"`
	EventID int64  `json:"eventId"`
	Used    bool   `json:"used"`
}

func newTicketResponse(ticket domain.Ticket) ticketResponse {
	return ticketResponse{
		ID:      ticket.ID,
		Code:    ticket.Code,
		Owner:   ticket.Owner,
		EventID: ticket.EventID,
		Used:    ticket.Used,
	}
}
