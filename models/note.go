package models

import "time"

// Field length limits enforced by the notes schema and mirrored by the
// service-level validation.
const (
	NoteTitleMaxLen   = 50
	NoteContentMaxLen = 150
	NoteTagMaxLen     = 50
)

// Note is a single owned content record. Notes are always scoped to the user
// who created them; the storage layer filters every query by UserID.
type Note struct {
	// ID is the internal unique identifier of the note.
	ID int64 `json:"id"`

	// Title is a short heading, at most NoteTitleMaxLen characters.
	Title string `json:"title"`

	// Content is the body of the note, at most NoteContentMaxLen characters.
	Content string `json:"content"`

	// Tag is a single free-form label, at most NoteTagMaxLen characters.
	Tag string `json:"tag"`

	// CreatedAt is the timestamp when the note was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the most recent modification.
	UpdatedAt time.Time `json:"updated_at"`

	// UserID is the identifier of the owning user. It is not serialized;
	// ownership is implied by the authenticated request context.
	UserID int64 `json:"-"`
}

// TableName returns the name of the database table
// associated with the Note model.
func (n Note) TableName() string {
	return "notes"
}
