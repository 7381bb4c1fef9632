package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okoval/notekeeper/internal/service"
	"github.com/okoval/notekeeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock ProfileService
// ─────────────────────────────────────────────

type mockProfileService struct {
	updateProfileFn func(ctx context.Context, user models.User, update models.ProfileUpdate) (models.User, error)
}

func (m *mockProfileService) UpdateProfile(ctx context.Context, user models.User, update models.ProfileUpdate) (models.User, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, user, update)
	}
	return user, nil
}

func newHandlerWithProfile(t *testing.T, profile service.ProfileService) *Handler {
	t.Helper()
	return newTestHandler(t, &service.Services{ProfileService: profile})
}

// ─────────────────────────────────────────────
// me
// ─────────────────────────────────────────────

func TestMe_ReturnsSummary(t *testing.T) {
	h := newHandlerWithProfile(t, &mockProfileService{})

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req = withUser(req, stubUser)
	rec := httptest.NewRecorder()

	h.me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var summary models.UserSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, "alice@example.com", summary.Email)
	assert.Equal(t, "alice", summary.Username)
	assert.NotEmpty(t, summary.Avatar)
}

func TestMe_NoUserInContext(t *testing.T) {
	h := newHandlerWithProfile(t, &mockProfileService{})

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	rec := httptest.NewRecorder()

	h.me(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ─────────────────────────────────────────────
// updateMe
// ─────────────────────────────────────────────

func TestUpdateMe_Success(t *testing.T) {
	profile := &mockProfileService{
		updateProfileFn: func(_ context.Context, user models.User, update models.ProfileUpdate) (models.User, error) {
			assert.Equal(t, "alice2", update.Username)
			assert.True(t, update.RefreshAvatar)
			user.Username = update.Username
			return user, nil
		},
	}
	h := newHandlerWithProfile(t, profile)

	req := httptest.NewRequest(http.MethodPatch, "/api/users/me",
		strings.NewReader(`{"username":"alice2","refresh_avatar":true}`))
	req = withUser(req, stubUser)
	rec := httptest.NewRecorder()

	h.updateMe(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var summary models.UserSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, "alice2", summary.Username)
}

func TestUpdateMe_InvalidJSON(t *testing.T) {
	h := newHandlerWithProfile(t, &mockProfileService{})

	req := httptest.NewRequest(http.MethodPatch, "/api/users/me", strings.NewReader("{broken"))
	req = withUser(req, stubUser)
	rec := httptest.NewRecorder()

	h.updateMe(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateMe_ServiceError(t *testing.T) {
	profile := &mockProfileService{
		updateProfileFn: func(context.Context, models.User, models.ProfileUpdate) (models.User, error) {
			return models.User{}, errors.New("db down")
		},
	}
	h := newHandlerWithProfile(t, profile)

	req := httptest.NewRequest(http.MethodPatch, "/api/users/me", strings.NewReader(`{"username":"x"}`))
	req = withUser(req, stubUser)
	rec := httptest.NewRecorder()

	h.updateMe(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
