package usecase

import "errors"

// Sentinels returned by the services. Callers match them with errors.Is; the
// wrapped message carries the detail.
var (
	// ErrInvalidInput marks malformed CSV, unusable tables and bad arguments.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks an unknown dataset or a team without matches.
	ErrNotFound = errors.New("resource not found")
	// ErrDependencyUnavailable marks storage that is down or behind an open
	// circuit breaker.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
