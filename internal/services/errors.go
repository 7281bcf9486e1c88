package services

import "errors"

// Sentinel errors the handlers map onto HTTP statuses. Services wrap
// these with fmt.Errorf("...: %w", Err...) to add context.
var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrAlreadyCompleted = errors.New("session already submitted")
	ErrAlreadyExists    = errors.New("already exists")
	ErrInvalidInput     = errors.New("invalid input")
)
