package adapter

import (
	"errors"
	"fmt"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrUnprocessable       = errors.New("unprocessable entity")
	ErrInternalServerError = errors.New("internal server error")
)

// APIError carries the HTTP status and the server's "detail" message of a
// failed request. Unwrap yields the matching sentinel so that callers can use
// [errors.Is] without inspecting status codes.
type APIError struct {
	Status int
	Detail string

	sentinel error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Status, e.Detail)
}

func (e *APIError) Unwrap() error {
	return e.sentinel
}
