// Package cli implements the interactive inodesk shell.
//
// The shell is a read–eval–print loop over services.IdentityService. Every
// command that accepts user data runs the checks from package validation
// before calling the service; service failures are rendered with
// services.Reason. Admin commands are only offered to admin sessions.
package cli
