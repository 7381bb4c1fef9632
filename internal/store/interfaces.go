package store

import (
	"context"

	"github.com/okoval/notekeeper/models"
)

// UserRepository is the persistence contract for user accounts and their
// single refresh credential.
type UserRepository interface {
	// CreateUser persists a new account and returns it with server-assigned
	// fields populated. A duplicate email yields ErrEmailAlreadyExists.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail returns the account with the given email or
	// ErrNoUserWasFound.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// UpdateProfile commits the mutable profile fields (username, avatar)
	// of the given user.
	UpdateProfile(ctx context.Context, user models.User) (models.User, error)

	// SetRefreshToken overwrites the persisted refresh token for the user.
	// Passing nil clears it, ending the server-side session.
	SetRefreshToken(ctx context.Context, userID int64, token *string) error

	// RotateRefreshToken atomically replaces the persisted refresh token
	// with next, but only if the currently persisted value equals presented.
	// When the compare fails because the token was already rotated, reused
	// or cleared, the persisted value is wiped and ErrRefreshTokenMismatch
	// is returned. At most one of any number of
	// concurrent calls presenting the same token can succeed.
	RotateRefreshToken(ctx context.Context, userID int64, presented, next string) error

	// ListActiveRefreshTokens returns (user_id, refresh_token) pairs for
	// every user with a persisted refresh token. Used by the sweeper.
	ListActiveRefreshTokens(ctx context.Context) ([]models.User, error)
}

// NoteRepository is the persistence contract for user-owned notes. Every
// operation is scoped by the owning user's ID.
type NoteRepository interface {
	// CreateNote persists a new note and returns it with server-assigned
	// fields populated.
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)

	// GetNote returns the note with the given ID owned by userID, or
	// ErrNoteNotFound.
	GetNote(ctx context.Context, noteID, userID int64) (models.Note, error)

	// DeleteNote removes the note with the given ID owned by userID and
	// returns the deleted record, or ErrNoteNotFound.
	DeleteNote(ctx context.Context, noteID, userID int64) (models.Note, error)

	// GetNotesPage returns one page of the user's notes matching the request
	// filters, newest first, along with the total number of pages.
	GetNotesPage(ctx context.Context, userID int64, req models.NotesPageRequest) ([]models.Note, int, error)
}
