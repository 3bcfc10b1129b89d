package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"

	"github.com/cimillas/event-tickets/internal/domain"
)

const (
	codeMethodNotAllowed = "method_not_allowed"
	codeNotFound         = "not_found"
	codeForbidden        = "forbidden"
	codeUnavailable      = "unavailable"
	codeInternalError    = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeError writes the JSON envelope used for infrastructure failures.
func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeMessage writes a rule failure as the bare message, no trailing
// newline.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}

// writeServiceError maps a rule engine error to its status. invalidStatus
// is the route's status for malformed input.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, invalidStatus int) {
	var status int
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = invalidStatus
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	default:
		loggerFrom(r.Context()).Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		return
	}
	writeMessage(w, status, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a single JSON object into dst. Any failure is reported
// as invalid input.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return domain.Invalid(`"%s" must be a %s`, typeErr.Field, jsonKind(typeErr))
		}
		return domain.Invalid("invalid request body")
	}
	return nil
}

func jsonKind(err *json.UnmarshalTypeError) string {
	switch err.Type.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int64:
		return "number"
	default:
		return err.Type.String()
	}
}
