package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// pathID returns the named path parameter as a positive id. ok is false
// when the raw text is not one; callers treat that as a missing record.
func pathID(r *http.Request, name string) (id int64, raw string, ok bool) {
	raw = chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, raw, false
	}
	return id, raw, true
}
