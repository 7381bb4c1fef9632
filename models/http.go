package models

// Credentials is the request body of the signup and login endpoints.
type Credentials struct {
	// Email identifies the account. Required.
	Email string `json:"email"`

	// Password is the plaintext password supplied by the client. Required.
	// It is hashed immediately at the service boundary and never stored.
	Password string `json:"password"`

	// Username is an optional display name; signup defaults it to Email.
	Username string `json:"username,omitempty"`
}

// NotePayload is the request body for creating a note.
type NotePayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Tag     string `json:"tag"`
}

// ProfileUpdate is the request body of PATCH /api/users/me. Zero-valued
// fields are left untouched.
type ProfileUpdate struct {
	// Username replaces the display name when non-empty.
	Username string `json:"username,omitempty"`

	// RefreshAvatar requests the avatar URL to be rebuilt through the
	// avatar provider. A provider failure leaves the stored avatar as is.
	RefreshAvatar bool `json:"refresh_avatar,omitempty"`
}

// NotesPageRequest carries the parsed and defaulted query parameters of the
// notes listing endpoint.
type NotesPageRequest struct {
	// Page is 1-based. Values below 1 are rejected at the handler.
	Page int

	// PerPage is clamped to [1, 100] at the handler; defaults to 12.
	PerPage int

	// Search filters notes whose title or content contains the value,
	// case-insensitively. Empty means no text filter.
	Search string

	// Tag filters notes by exact tag. Empty or "All" means no tag filter.
	Tag string
}
