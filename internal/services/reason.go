package services

import (
	"errors"

	"github.com/dmitrijs2005/inodesk/internal/common"
)

// Reason turns a service error into the message shown to the user.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, common.ErrNotFound):
		return "Profile not found."
	case errors.Is(err, common.ErrInvalidCredential):
		return "Incorrect password."
	case errors.Is(err, common.ErrAccountSuspended):
		return "Account suspended."
	case errors.Is(err, common.ErrDuplicateEmail):
		return "Email already used."
	case errors.Is(err, common.ErrProtectedAccount):
		return "Admin accounts cannot be removed."
	case errors.Is(err, common.ErrNoSession):
		return "Please log in first."
	case errors.Is(err, common.ErrValidation):
		return err.Error()
	default:
		return "Something went wrong: " + err.Error()
	}
}
