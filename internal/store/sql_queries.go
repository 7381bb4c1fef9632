package store

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/okoval/notekeeper/models"
)

const (
	createUser = `INSERT INTO users (email, username, password, avatar)
    VALUES ($1, $2, $3, $4)
    RETURNING user_id, email, username, password, COALESCE(avatar, ''), refresh_token, created_at;`

	findUserByEmail = `SELECT user_id, email, username, password, COALESCE(avatar, ''), refresh_token, created_at
    FROM users
    WHERE email = $1;`

	updateUserProfile = `UPDATE users
    SET username = $2, avatar = $3
    WHERE user_id = $1
    RETURNING user_id, email, username, password, COALESCE(avatar, ''), refresh_token, created_at;`

	setRefreshToken = `UPDATE users
    SET refresh_token = $2
    WHERE user_id = $1;`

	// Compare-and-rotate in a single statement: the WHERE clause makes the
	// swap conditional on the persisted value, so concurrent refreshes with
	// the same token can produce at most one affected row.
	rotateRefreshToken = `UPDATE users
    SET refresh_token = $3
    WHERE user_id = $1 AND refresh_token = $2;`

	clearRefreshToken = `UPDATE users
    SET refresh_token = NULL
    WHERE user_id = $1;`

	listActiveRefreshTokens = `SELECT user_id, refresh_token
    FROM users
    WHERE refresh_token IS NOT NULL;`

	createNote = `INSERT INTO notes (title, content, tag, user_id)
    VALUES ($1, $2, $3, $4)
    RETURNING id, title, content, tag, created_at, updated_at, user_id;`

	findNote = `SELECT id, title, content, tag, created_at, updated_at, user_id
    FROM notes
    WHERE id = $1 AND user_id = $2;`

	deleteNote = `DELETE FROM notes
    WHERE id = $1 AND user_id = $2
    RETURNING id, title, content, tag, created_at, updated_at, user_id;`
)

var statementBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// notesPageFilters translates the listing request into the WHERE conjuncts
// shared by the page query and the count query.
func notesPageFilters(userID int64, req models.NotesPageRequest) []sq.Sqlizer {
	filters := []sq.Sqlizer{sq.Eq{"user_id": userID}}

	if req.Tag != "" {
		filters = append(filters, sq.Eq{"tag": req.Tag})
	}

	if req.Search != "" {
		like := "%" + req.Search + "%"
		filters = append(filters, sq.Or{
			sq.ILike{"title": like},
			sq.ILike{"content": like},
		})
	}

	return filters
}

// buildNotesPageQuery produces the paged SELECT for the notes listing,
// ordered newest first.
func buildNotesPageQuery(userID int64, req models.NotesPageRequest) (string, []any, error) {
	builder := statementBuilder.
		Select("id", "title", "content", "tag", "created_at", "updated_at", "user_id").
		From("notes")

	for _, filter := range notesPageFilters(userID, req) {
		builder = builder.Where(filter)
	}

	return builder.
		OrderBy("created_at DESC").
		Offset(uint64((req.Page - 1) * req.PerPage)).
		Limit(uint64(req.PerPage)).
		ToSql()
}

// buildNotesCountQuery produces the matching COUNT(*) for the same filters.
func buildNotesCountQuery(userID int64, req models.NotesPageRequest) (string, []any, error) {
	builder := statementBuilder.
		Select("COUNT(*)").
		From("notes")

	for _, filter := range notesPageFilters(userID, req) {
		builder = builder.Where(filter)
	}

	return builder.ToSql()
}
