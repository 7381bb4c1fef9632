package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okoval/notekeeper/internal/service"
	"github.com/okoval/notekeeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouterHandler(t *testing.T) *Handler {
	t.Helper()
	return newTestHandler(t, &service.Services{
		SessionService: &mockSessionService{
			authenticateFn: func(_ context.Context, token string) (models.User, error) {
				if token == "valid.access.token" {
					return stubUser, nil
				}
				return models.User{}, service.ErrSessionUnauthorized
			},
		},
		NoteService:    &mockNoteService{},
		ProfileService: &mockProfileService{},
	})
}

func TestRoutes_GuardedRoutesRequireAuth(t *testing.T) {
	router := newTestRouterHandler(t).Init()

	guarded := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/notes"},
		{http.MethodPost, "/api/notes"},
		{http.MethodGet, "/api/notes/5"},
		{http.MethodDelete, "/api/notes/5"},
		{http.MethodGet, "/api/users/me"},
		{http.MethodPatch, "/api/users/me"},
	}

	for _, route := range guarded {
		req := httptest.NewRequest(route.method, route.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}
}

func TestRoutes_GuardedRouteWithValidCookie(t *testing.T) {
	router := newTestRouterHandler(t).Init()

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: "valid.access.token"})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

// An unsupported method on a known route answers 404, not 405.
func TestRoutes_UnknownMethodHidesRoute(t *testing.T) {
	router := newTestRouterHandler(t).Init()

	req := httptest.NewRequest(http.MethodDelete, "/api/auth/signup", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutes_UnknownPath(t *testing.T) {
	router := newTestRouterHandler(t).Init()

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutes_TraceIDHeaderSet(t *testing.T) {
	router := newTestRouterHandler(t).Init()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestRoutes_TraceIDHeaderPropagated(t *testing.T) {
	router := newTestRouterHandler(t).Init()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set(traceIDHeader, "trace-from-client")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, "trace-from-client", rec.Header().Get(traceIDHeader))
}
