package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidResponse marks an answer whose shape does not fit its question:
	// a tag that disagrees with the question type or an option id the question
	// does not declare. Scoring never returns it; such answers score 0.0.
	ErrInvalidResponse = errors.New("invalid response")
)
