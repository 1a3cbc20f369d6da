// Package cryptox hashes account passwords at rest.
package cryptox

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmptyPassword is returned when hashing an empty password.
	ErrEmptyPassword = errors.New("empty password")
	// ErrMismatchedPassword is returned when a password does not match its hash.
	ErrMismatchedPassword = errors.New("password does not match")
	// ErrPasswordTooLong is returned for passwords over MaxPasswordBytes.
	ErrPasswordTooLong = errors.New("password too long")
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

// DefaultCost is the bcrypt cost used when none is configured.
const DefaultCost = bcrypt.DefaultCost

// HashPassword returns the bcrypt hash of password. Costs outside bcrypt's
// accepted range fall back to DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// ComparePassword reports whether password matches hash. A mismatch yields
// ErrMismatchedPassword; malformed hashes yield bcrypt's own error.
func ComparePassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedPassword
		}
		return err
	}
	return nil
}
