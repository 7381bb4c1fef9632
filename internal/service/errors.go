package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidCredentials  = errors.New("invalid credentials")

	// ErrSessionUnauthorized is the single sentinel every token, lookup or
	// rotation failure collapses into. The transport layer maps it to one
	// uniform 401 body so callers cannot probe which check failed.
	ErrSessionUnauthorized = errors.New("session unauthorized")
)
