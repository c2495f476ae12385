package auth

import "errors"

var (
	// ErrUserNameOrEmailExists is returned when creating a user whose username or email is taken.
	ErrUserNameOrEmailExists = errors.New("user with username or email already exists")

	// ErrUserAccountDisabled is returned when a disabled account tries to log in.
	ErrUserAccountDisabled = errors.New("user account is disabled")

	// ErrInvalidPassword is returned for a wrong password.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrUserNotFound is returned when a user cannot be found.
	ErrUserNotFound = errors.New("user not found")
)
