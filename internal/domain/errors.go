package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every rule failure wraps exactly one of these.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
)

// Store-level errors returned by repositories.
var (
	ErrEventNotFound     = fmt.Errorf("event %w", ErrNotFound)
	ErrTicketNotFound    = fmt.Errorf("ticket %w", ErrNotFound)
	ErrEventNameTaken    = fmt.Errorf("event name %w", ErrConflict)
	ErrTicketAlreadyUsed = fmt.Errorf("ticket already used: %w", ErrForbidden)
)

// Error is a rule failure carrying the message shown to API clients.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

var (
	ErrEventAlreadyHappened = &Error{kind: ErrForbidden, msg: "The event has already happened."}
	ErrTicketNotUsable      = &Error{kind: ErrForbidden, msg: "The event has already happened or ticket was already used."}
)

// Invalid returns a validation failure with the given message.
func Invalid(format string, args ...any) error {
	return &Error{kind: ErrInvalidInput, msg: fmt.Sprintf(format, args...)}
}

// EventNotFound takes any id representation so that unparsable path ids can
// be echoed back verbatim.
func EventNotFound(id any) error {
	return &Error{kind: ErrNotFound, msg: fmt.Sprintf("Event with id %v not found.", id)}
}

func TicketNotFound(id any) error {
	return &Error{kind: ErrNotFound, msg: fmt.Sprintf("Ticket with id %v not found.", id)}
}

func EventNameTaken(name string) error {
	return &Error{kind: ErrConflict, msg: fmt.Sprintf("Event with name %s already registered.", name)}
}
