package domain

import perr "linetrack/internal/platform/errors"

var (
	// ErrInvalidIndex is returned when a queue position does not exist
	ErrInvalidIndex = perr.New(perr.ErrorCodeNotFound, "queue index out of range")

	// ErrMalformedState marks a persisted document that could not be decoded
	ErrMalformedState = perr.New(perr.ErrorCodeStorage, "malformed production state")
)
