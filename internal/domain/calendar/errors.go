package calendar

import "errors"

var (
	// ErrMissingFields indicates an event without the required title or time.
	ErrMissingFields = errors.New("event title and time are required")
	// ErrNotFound indicates no event exists with the given id.
	ErrNotFound = errors.New("event not found")
)
