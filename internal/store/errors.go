package store

import "fmt"

// WriteError wraps a backend failure while persisting a key. Callers surface
// it as a non-fatal "could not save" notification and leave previous state
// intact.
type WriteError struct {
	Key string
	Err error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("saving %q: %v", e.Key, e.Err)
}

// Unwrap exposes the underlying backend error.
func (e *WriteError) Unwrap() error {
	return e.Err
}
