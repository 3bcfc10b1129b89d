package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterConfig holds what NewRouter wires together.
type RouterConfig struct {
	Events         EventService
	Tickets        TicketService
	Store          Pinger
	Logger         *slog.Logger
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// NewRouter builds the full API handler.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(CORS(cfg.CORSOrigins))
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	r.NotFound(NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(MethodNotAllowedHandler().ServeHTTP)

	r.Get("/health", HealthHandler(cfg.Store))

	r.Route("/events", func(r chi.Router) {
		r.Get("/", HandleListEvents(cfg.Events))
		r.Post("/", HandleCreateEvent(cfg.Events))
		r.Get("/{id}", HandleGetEvent(cfg.Events))
		r.Put("/{id}", HandleUpdateEvent(cfg.Events))
		r.Delete("/{id}", HandleDeleteEvent(cfg.Events))
	})

	r.Route("/tickets", func(r chi.Router) {
		r.Post("/", HandleCreateTicket(cfg.Tickets))
		r.Get("/{eventId}", HandleListTickets(cfg.Tickets))
		r.Put("/use/{id}", HandleUseTicket(cfg.Tickets))
	})

	return r
}
