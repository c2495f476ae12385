// Package login provides HTTP handlers and helpers for user authentication.
//
// The error values double as message ids of the login page.
package login

import "errors"

var (
	// ErrInvalidFormData is returned when the submitted login form cannot be parsed
	// or fails validation.
	ErrInvalidFormData = errors.New("invalidform")

	// ErrInvalidCredentials is returned for unknown users, wrong passwords and
	// disabled accounts alike.
	ErrInvalidCredentials = errors.New("invalidlogin")

	// ErrInternalServerError is returned for unexpected failures during the login
	// process.
	ErrInternalServerError = errors.New("internalerror")
)
