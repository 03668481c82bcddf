package common

import "errors"

var (

	// journal engine errors
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidEntry  = errors.New("invalid journal entry")
	ErrEntryNotFound = errors.New("journal entry not found")

	// user / auth errors
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("incorrect name or password")
	ErrInvalidToken           = errors.New("invalid token")
)
