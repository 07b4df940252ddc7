package apperrors

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrNoActiveTimer    = errors.New("no active timer")
	ErrStepCompleted    = errors.New("step already completed")
	ErrInsufficientBank = errors.New("insufficient time bank")
	ErrMalformedArchive = errors.New("malformed archive")
)
