package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/okoval/notekeeper/internal/logger"
	"github.com/okoval/notekeeper/models"
)

// noteRepository is the PostgreSQL-backed implementation of [NoteRepository].
// Every query is filtered by the owning user's ID so that notes of other
// users are indistinguishable from nonexistent ones.
type noteRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection and logger.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		db:     db,
		logger: logger,
	}
}

// CreateNote persists a new note and returns the canonical database
// representation with server-assigned fields (ID, CreatedAt, UpdatedAt).
func (r *noteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createNote, note.Title, note.Content, note.Tag, note.UserID)

	if err := row.Scan(&note.ID, &note.Title, &note.Content, &note.Tag, &note.CreatedAt, &note.UpdatedAt, &note.UserID); err != nil {
		log.Err(err).Str("func", "*noteRepository.CreateNote").Int64("user_id", note.UserID).Msg("error: note insert failed")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return note, nil
}

// GetNote retrieves a single note by ID, scoped to its owner.
//
// [sql.ErrNoRows], including the case of a note owned by someone else,
// maps to [ErrNoteNotFound].
func (r *noteRepository) GetNote(ctx context.Context, noteID, userID int64) (models.Note, error) {
	log := logger.FromContext(ctx)

	var note models.Note
	row := r.db.QueryRowContext(ctx, findNote, noteID, userID)

	if err := row.Scan(&note.ID, &note.Title, &note.Content, &note.Tag, &note.CreatedAt, &note.UpdatedAt, &note.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).Str("func", "*noteRepository.GetNote").Int64("note_id", noteID).Int64("user_id", userID).Msg("error: note lookup failed")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return note, nil
}

// DeleteNote removes a note by ID, scoped to its owner, and returns the
// deleted record via the RETURNING clause.
func (r *noteRepository) DeleteNote(ctx context.Context, noteID, userID int64) (models.Note, error) {
	log := logger.FromContext(ctx)

	var note models.Note
	row := r.db.QueryRowContext(ctx, deleteNote, noteID, userID)

	if err := row.Scan(&note.ID, &note.Title, &note.Content, &note.Tag, &note.CreatedAt, &note.UpdatedAt, &note.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).Str("func", "*noteRepository.DeleteNote").Int64("note_id", noteID).Int64("user_id", userID).Msg("error: note delete failed")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return note, nil
}

// GetNotesPage runs the filtered count and page queries built with squirrel
// and returns one page of notes plus the total page count.
func (r *noteRepository) GetNotesPage(ctx context.Context, userID int64, req models.NotesPageRequest) ([]models.Note, int, error) {
	log := logger.FromContext(ctx)

	countQuery, countArgs, err := buildNotesCountQuery(userID, req)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.GetNotesPage").Int64("user_id", userID).Msg("failed to build count query")
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*noteRepository.GetNotesPage").Int64("user_id", userID).Msg("failed to count notes")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	pageQuery, pageArgs, err := buildNotesPageQuery(userID, req)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.GetNotesPage").Int64("user_id", userID).Msg("failed to build page query")
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, pageQuery, pageArgs...)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.GetNotesPage").Int64("user_id", userID).Msg("failed to execute page query")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0, req.PerPage)
	for rows.Next() {
		var note models.Note
		if err := rows.Scan(&note.ID, &note.Title, &note.Content, &note.Tag, &note.CreatedAt, &note.UpdatedAt, &note.UserID); err != nil {
			log.Err(err).Str("func", "*noteRepository.GetNotesPage").Int64("user_id", userID).Msg("failed to scan note row")
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	totalPages := 1
	if req.PerPage > 0 {
		totalPages = (total + req.PerPage - 1) / req.PerPage
	}

	return notes, totalPages, nil
}
