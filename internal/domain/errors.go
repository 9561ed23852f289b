package domain

import "errors"

// Error taxonomy for the booking flows. Services wrap these with context;
// the HTTP layer maps them to status codes with errors.Is.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidInput    = errors.New("invalid input")
	ErrPersistence     = errors.New("data store failure")
)
