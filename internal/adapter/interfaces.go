package adapter

import "context"

// AvatarProvider derives a default avatar URL for an email address.
//
// Implementations must be safe for concurrent use. Callers treat failures as
// non-fatal: an account without an avatar is always acceptable.
type AvatarProvider interface {
	// AvatarURL returns a deterministic avatar URL for the given email
	// address, verifying that the backing image service is reachable.
	AvatarURL(ctx context.Context, email string) (string, error)
}
