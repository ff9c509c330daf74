package identity

import "errors"

var (
	// ErrNotFound indicates no account exists for the given email.
	ErrNotFound = errors.New("account not found")
)
