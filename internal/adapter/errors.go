package adapter

import (
	"errors"
	"fmt"
)

// Sentinels for the HTTP statuses the server uses. Every error returned for
// a non-2xx response wraps exactly one of them.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrUnexpectedStatus    = errors.New("unexpected status")
)

// ResponseError carries the decoded error body of a failed request.
type ResponseError struct {
	Kind    error
	Status  int
	Message string

	// Fields holds per-field validation reasons, when the server sent any.
	Fields map[string]string
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Message)
}

func (e *ResponseError) Unwrap() error {
	return e.Kind
}
