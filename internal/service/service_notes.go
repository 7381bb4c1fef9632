package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/okoval/notekeeper/internal/logger"
	"github.com/okoval/notekeeper/internal/store"
	"github.com/okoval/notekeeper/models"
)

const (
	notesPerPageDefault = 12
	notesPerPageMax     = 100

	// the client sends "All" when no tag filter is selected
	notesTagAll = "All"
)

// noteService is the concrete implementation of [NoteService]. It enforces
// field limits and listing defaults before delegating to the repository;
// ownership scoping itself lives in the SQL.
type noteService struct {
	noteRepository store.NoteRepository
	logger         *logger.Logger
}

// NewNoteService constructs a [NoteService] backed by the given repository.
func NewNoteService(noteRepository store.NoteRepository, logger *logger.Logger) NoteService {
	return &noteService{
		noteRepository: noteRepository,
		logger:         logger,
	}
}

// CreateNote implements [NoteService].
//
// Returns [ErrInvalidDataProvided] when the title is empty or any field
// exceeds its column limit.
func (n *noteService) CreateNote(ctx context.Context, userID int64, payload models.NotePayload) (models.Note, error) {
	log := logger.FromContext(ctx)

	if err := validateNotePayload(payload); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("invalid note payload")
		return models.Note{}, err
	}

	note, err := n.noteRepository.CreateNote(ctx, models.Note{
		Title:   payload.Title,
		Content: payload.Content,
		Tag:     payload.Tag,
		UserID:  userID,
	})
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("note creation ended with error")
		return models.Note{}, fmt.Errorf("note creation ended with error: %w", err)
	}

	return note, nil
}

// GetNote implements [NoteService].
func (n *noteService) GetNote(ctx context.Context, noteID, userID int64) (models.Note, error) {
	note, err := n.noteRepository.GetNote(ctx, noteID, userID)
	if err != nil {
		return models.Note{}, fmt.Errorf("note lookup ended with error: %w", err)
	}

	return note, nil
}

// DeleteNote implements [NoteService]. The deleted note is returned to the
// caller so the client can render an undo affordance.
func (n *noteService) DeleteNote(ctx context.Context, noteID, userID int64) (models.Note, error) {
	note, err := n.noteRepository.DeleteNote(ctx, noteID, userID)
	if err != nil {
		return models.Note{}, fmt.Errorf("note deletion ended with error: %w", err)
	}

	return note, nil
}

// ListNotes implements [NoteService]. The request is normalised before it
// reaches SQL: page defaults to 1, perPage to 12 (capped at 100), and the
// "All" tag means no tag filter.
func (n *noteService) ListNotes(ctx context.Context, userID int64, req models.NotesPageRequest) (models.NotesPage, error) {
	log := logger.FromContext(ctx)

	req = normalizePageRequest(req)

	notes, totalPages, err := n.noteRepository.GetNotesPage(ctx, userID, req)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("notes listing ended with error")
		return models.NotesPage{}, fmt.Errorf("notes listing ended with error: %w", err)
	}

	return models.NotesPage{Notes: notes, TotalPages: totalPages}, nil
}

func validateNotePayload(payload models.NotePayload) error {
	if strings.TrimSpace(payload.Title) == "" {
		return ErrInvalidDataProvided
	}
	if len(payload.Title) > models.NoteTitleMaxLen {
		return ErrInvalidDataProvided
	}
	if len(payload.Content) > models.NoteContentMaxLen {
		return ErrInvalidDataProvided
	}
	if len(payload.Tag) > models.NoteTagMaxLen {
		return ErrInvalidDataProvided
	}
	return nil
}

func normalizePageRequest(req models.NotesPageRequest) models.NotesPageRequest {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 {
		req.PerPage = notesPerPageDefault
	}
	if req.PerPage > notesPerPageMax {
		req.PerPage = notesPerPageMax
	}
	if req.Tag == notesTagAll {
		req.Tag = ""
	}
	return req
}
