package repository

import "errors"

var (
	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailAlreadyExists is returned when a user with the same email already exists
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrChatNotFound is returned when a chat does not exist or belongs
	// to another user. The two cases are deliberately indistinguishable.
	ErrChatNotFound = errors.New("chat not found")
	// ErrPreferencesNotFound is returned when a user has no preferences row
	ErrPreferencesNotFound = errors.New("preferences not found")
)
