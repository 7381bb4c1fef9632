package adapter

import "errors"

var (
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrProviderUnreachable = errors.New("avatar provider unreachable")
)
