package common

import "errors"

var (
	// Identity lookup and authentication.
	ErrNotFound          = errors.New("not found")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrAccountSuspended  = errors.New("account suspended")

	// Directory integrity.
	ErrDuplicateEmail   = errors.New("duplicate email")
	ErrAlreadyExists    = errors.New("already exists")
	ErrProtectedAccount = errors.New("protected account")

	// Caller-side input checks. The identity core itself never returns it.
	ErrValidation = errors.New("validation error")

	// Operations on the active account while logged out.
	ErrNoSession = errors.New("no active session")
)
