package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrScheduleInvalid marks a schedule that failed integrity
	// validation. It is fatal for the cup instance: standings must never
	// be computed from a schedule carrying this error.
	ErrScheduleInvalid = errors.New("schedule failed integrity validation")
)
