package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Email is the unique user identifier used during authentication and as
	// the "sub" claim of every issued token.
	Email string `json:"email"`

	// Username is the display name of the user. It defaults to Email at
	// registration time and may be changed later through the profile API.
	Username string `json:"username"`

	// Password stores the bcrypt hash of the user's password.
	// This value MUST be a hash, never plaintext, and is never serialized.
	Password string `json:"-"`

	// Avatar is the URL of the user's avatar image, if any.
	Avatar string `json:"avatar"`

	// RefreshToken is the single currently valid refresh credential for this
	// user, or nil when no session is active. Every login, refresh, and
	// logout mutates this field.
	RefreshToken *string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Summary returns the non-sensitive projection of the user that is safe to
// return from authentication and profile endpoints.
func (u User) Summary() UserSummary {
	return UserSummary{
		Username: u.Username,
		Email:    u.Email,
		Avatar:   u.Avatar,
	}
}
