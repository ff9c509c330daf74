package auth

import "errors"

var (
	// ErrInvalidCredentials indicates the email/password pair matched no account.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken indicates an account already exists for the email.
	ErrEmailTaken = errors.New("email already exists")
	// ErrInvalidInput indicates a missing or malformed signup field.
	ErrInvalidInput = errors.New("invalid signup input")
	// ErrNotAuthenticated indicates the operation requires an active session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrForbidden indicates the acting session lacks the required role.
	ErrForbidden = errors.New("forbidden")
	// ErrPasswordMismatch indicates the current password check failed.
	ErrPasswordMismatch = errors.New("current password is incorrect")
)
