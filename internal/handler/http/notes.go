package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/okoval/notekeeper/internal/logger"
	"github.com/okoval/notekeeper/internal/service"
	"github.com/okoval/notekeeper/internal/store"
	"github.com/okoval/notekeeper/internal/utils"
	"github.com/okoval/notekeeper/models"
)

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	req := models.NotesPageRequest{
		Page:    queryInt(r, "page"),
		PerPage: queryInt(r, "perPage"),
		Search:  r.URL.Query().Get("search"),
		Tag:     r.URL.Query().Get("tag"),
	}

	page, err := h.services.NoteService.ListNotes(ctx, user.UserID, req)
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during notes listing")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, page, http.StatusOK)
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	noteID, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}

	note, err := h.services.NoteService.GetNote(ctx, noteID, user.UserID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoteNotFound):
			http.Error(w, "note not found", http.StatusNotFound)
			return
		default:
			log.Err(err).Int64("note_id", noteID).Msg("unexpected error occurred during note lookup")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var payload models.NotePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	note, err := h.services.NoteService.CreateNote(ctx, user.UserID, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid note data provided")
			http.Error(w, "invalid note data provided", http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during note creation")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, note, http.StatusCreated)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	noteID, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}

	note, err := h.services.NoteService.DeleteNote(ctx, noteID, user.UserID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoteNotFound):
			http.Error(w, "note not found", http.StatusNotFound)
			return
		default:
			log.Err(err).Int64("note_id", noteID).Msg("unexpected error occurred during note deletion")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

// queryInt parses an integer query parameter, returning 0 when the parameter
// is absent or malformed; defaults are applied in the service layer.
func queryInt(r *http.Request, name string) int {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return value
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
