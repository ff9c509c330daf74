package invitation

import "errors"

var (
	// ErrInvalidEmail indicates a missing or malformed invitation address.
	ErrInvalidEmail = errors.New("invalid invitation email")
	// ErrActiveExists indicates a non-revoked invitation already exists for
	// the address.
	ErrActiveExists = errors.New("an active invitation already exists for this email")
	// ErrNotFound indicates no invitation exists with the given id.
	ErrNotFound = errors.New("invitation not found")
)
