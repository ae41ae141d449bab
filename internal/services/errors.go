package services

import "errors"

// Service-level error taxonomy. Handlers map these onto HTTP status
// codes with errors.Is
var (
	// ErrNameTaken is returned when registering a user whose name already exists
	ErrNameTaken = errors.New("user name already exists")

	// ErrUserNotFound is returned when the referenced user does not exist
	ErrUserNotFound = errors.New("user not found")

	// ErrRecordNotFound is returned when the referenced audio record does
	// not exist or is not owned by the requesting user
	ErrRecordNotFound = errors.New("audio record not found")

	// ErrInvalidCredentials is returned when the supplied user id and token
	// do not match a stored user
	ErrInvalidCredentials = errors.New("invalid user id or token")

	// ErrStorage is returned when writing or reading an audio file fails
	ErrStorage = errors.New("storage failure")

	// ErrConversion is returned when the external transcoder fails
	ErrConversion = errors.New("conversion failure")
)
