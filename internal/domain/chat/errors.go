package chat

import "errors"

var (
	// ErrEmptyMessage indicates a message with no text.
	ErrEmptyMessage = errors.New("message cannot be empty")
	// ErrMissingClient indicates a thread operation without a client email.
	ErrMissingClient = errors.New("client email is required")
)
