package service

import (
	"context"

	"github.com/okoval/notekeeper/models"
)

// SessionService owns the whole session lifecycle: account creation,
// credential verification, token issuance, rotation and revocation.
type SessionService interface {
	// Register creates an account from the credentials, issues a token pair
	// and persists the refresh token.
	Register(ctx context.Context, creds models.Credentials) (models.User, models.TokenPair, error)

	// Login verifies the credentials, issues a fresh token pair and persists
	// the refresh token, replacing any previous session.
	Login(ctx context.Context, creds models.Credentials) (models.User, models.TokenPair, error)

	// Refresh exchanges a presented refresh token for a new pair, rotating
	// the persisted token atomically.
	Refresh(ctx context.Context, presented string) (models.User, models.TokenPair, error)

	// Logout clears the persisted refresh token. Best effort: it never
	// reports failure.
	Logout(ctx context.Context, presented string)

	// Authenticate resolves an access token to its user.
	Authenticate(ctx context.Context, accessToken string) (models.User, error)

	// IssuePair generates an access/refresh token pair for the subject
	// without touching persistence.
	IssuePair(ctx context.Context, email string) (models.TokenPair, error)
}

// NoteService provides validated, owner-scoped access to notes.
type NoteService interface {
	CreateNote(ctx context.Context, userID int64, payload models.NotePayload) (models.Note, error)
	GetNote(ctx context.Context, noteID, userID int64) (models.Note, error)
	DeleteNote(ctx context.Context, noteID, userID int64) (models.Note, error)
	ListNotes(ctx context.Context, userID int64, req models.NotesPageRequest) (models.NotesPage, error)
}

// ProfileService handles mutations of the authenticated user's own profile.
type ProfileService interface {
	UpdateProfile(ctx context.Context, user models.User, update models.ProfileUpdate) (models.User, error)
}
