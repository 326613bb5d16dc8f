package domain

import "errors"

// Sentinel errors shared across services and mapped to HTTP status codes by controllers.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
)
