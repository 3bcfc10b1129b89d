package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cimillas/event-tickets/internal/app"
	"github.com/cimillas/event-tickets/internal/domain"
)

// isoTime matches JavaScript's Date.prototype.toISOString.
const isoTime = "2006-01-02T15:04:05.000Z07:00"

// EventService is the event rule engine as seen by the handlers.
type EventService interface {
	List(ctx context.Context) ([]domain.Event, error)
	Get(ctx context.Context, id int64) (domain.Event, error)
	Create(ctx context.Context, in app.EventInput) (domain.Event, error)
	Update(ctx context.Context, id int64, in app.EventInput) (domain.Event, error)
	Delete(ctx context.Context, id int64) error
}

// HandleListEvents serves GET /events.
func HandleListEvents(svc EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := svc.List(r.Context())
		if err != nil {
			writeServiceError(w, r, err, http.StatusUnprocessableEntity)
			return
		}
		resp := make([]eventResponse, 0, len(events))
		for _, event := range events {
			resp = append(resp, newEventResponse(event))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleGetEvent serves GET /events/{id}.
func HandleGetEvent(svc EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, raw, ok := pathID(r, "id")
		if !ok {
			writeServiceError(w, r, domain.EventNotFound(raw), http.StatusNotFound)
			return
		}
		event, err := svc.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, http.StatusUnprocessableEntity)
			return
		}
		writeJSON(w, http.StatusOK, newEventResponse(event))
	}
}

// HandleCreateEvent serves POST /events. Malformed bodies answer 404 on
// this route, unlike PUT which answers 422; existing clients depend on it.
func HandleCreateEvent(svc EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req eventRequest
		if err := decodeJSON(r, &req); err != nil {
			writeServiceError(w, r, err, http.StatusNotFound)
			return
		}

		event, err := svc.Create(r.Context(), req.input())
		if err != nil {
			writeServiceError(w, r, err, http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusCreated, newEventResponse(event))
	}
}

// HandleUpdateEvent serves PUT /events/{id}. The body is validated before
// the id is looked up.
func HandleUpdateEvent(svc EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req eventRequest
		if err := decodeJSON(r, &req); err != nil {
			writeServiceError(w, r, err, http.StatusUnprocessableEntity)
			return
		}
		in := req.input()

		id, raw, ok := pathID(r, "id")
		if !ok {
			err := in.Validate()
			if err == nil {
				err = domain.EventNotFound(raw)
			}
			writeServiceError(w, r, err, http.StatusUnprocessableEntity)
			return
		}

		event, err := svc.Update(r.Context(), id, in)
		if err != nil {
			writeServiceError(w, r, err, http.StatusUnprocessableEntity)
			return
		}
		writeJSON(w, http.StatusOK, newEventResponse(event))
	}
}

// HandleDeleteEvent serves DELETE /events/{id}.
func HandleDeleteEvent(svc EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, raw, ok := pathID(r, "id")
		if !ok {
			writeServiceError(w, r, domain.EventNotFound(raw), http.StatusNotFound)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			writeServiceError(w, r, err, http.StatusUnprocessableEntity)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type eventRequest struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

func (r eventRequest) input() app.EventInput {
	return app.EventInput{Name: r.Name, Date: r.Date}
}

type eventResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
}

func newEventResponse(event domain.Event) eventResponse {
	return eventResponse{
		ID:   event.ID,
		Name: event.Name,
		Date: formatTime(event.Date),
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(isoTime)
}
