package http

import (
	"context"
	stdhttp "net/http"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness, and store reachability when a pinger is
// given.
func HealthHandler(p Pinger) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		if p != nil {
			if err := p.Ping(r.Context()); err != nil {
				loggerFrom(r.Context()).Warn("health check failed", "error", err)
				writeError(w, stdhttp.StatusServiceUnavailable, codeUnavailable, "store unavailable")
				return
			}
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(stdhttp.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
