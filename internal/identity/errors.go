package identity

import "errors"

// Provider errors. The message text is returned to API callers verbatim.
var (
	ErrEmailExists     = errors.New("The email address is already in use by another account.")
	ErrInvalidEmail    = errors.New("The email address is improperly formatted.")
	ErrWeakPassword    = errors.New("The password must be a string with at least 6 characters.")
	ErrUserNotFound    = errors.New("There is no user record corresponding to the provided identifier.")
	ErrInvalidPassword = errors.New("The password is invalid.")
)
