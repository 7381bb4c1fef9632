package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okoval/notekeeper/internal/config"
	"github.com/okoval/notekeeper/internal/logger"
	"github.com/okoval/notekeeper/internal/service"
	"github.com/okoval/notekeeper/internal/store"
	"github.com/okoval/notekeeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock SessionService
// ─────────────────────────────────────────────

// mockSessionService implements service.SessionService for unit tests.
// Each method field can be overridden per test case.
type mockSessionService struct {
	registerFn     func(ctx context.Context, creds models.Credentials) (models.User, models.TokenPair, error)
	loginFn        func(ctx context.Context, creds models.Credentials) (models.User, models.TokenPair, error)
	refreshFn      func(ctx context.Context, presented string) (models.User, models.TokenPair, error)
	logoutFn       func(ctx context.Context, presented string)
	authenticateFn func(ctx context.Context, accessToken string) (models.User, error)
	issuePairFn    func(ctx context.Context, email string) (models.TokenPair, error)
}

func (m *mockSessionService) Register(ctx context.Context, creds models.Credentials) (models.User, models.TokenPair, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, creds)
	}
	return models.User{}, models.TokenPair{}, nil
}

func (m *mockSessionService) Login(ctx context.Context, creds models.Credentials) (models.User, models.TokenPair, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, creds)
	}
	return models.User{}, models.TokenPair{}, nil
}

func (m *mockSessionService) Refresh(ctx context.Context, presented string) (models.User, models.TokenPair, error) {
	if m.refreshFn != nil {
		return m.refreshFn(ctx, presented)
	}
	return models.User{}, models.TokenPair{}, service.ErrSessionUnauthorized
}

func (m *mockSessionService) Logout(ctx context.Context, presented string) {
	if m.logoutFn != nil {
		m.logoutFn(ctx, presented)
	}
}

func (m *mockSessionService) Authenticate(ctx context.Context, accessToken string) (models.User, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, accessToken)
	}
	return models.User{}, service.ErrSessionUnauthorized
}

func (m *mockSessionService) IssuePair(ctx context.Context, email string) (models.TokenPair, error) {
	if m.issuePairFn != nil {
		return m.issuePairFn(ctx, email)
	}
	return models.TokenPair{}, nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func testHandlerAuthConfig() config.Auth {
	return config.Auth{
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 168 * time.Hour,
	}
}

// newTestHandler builds a Handler with the given service mocks.
func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()
	return NewHandler(svcs, testHandlerAuthConfig(), logger.Nop())
}

func newHandlerWithSession(t *testing.T, session service.SessionService) *Handler {
	t.Helper()
	return newTestHandler(t, &service.Services{SessionService: session})
}

// credsBody serialises credentials to a JSON request body string.
func credsBody(t *testing.T, c models.Credentials) string {
	t.Helper()
	b, err := json.Marshal(c)
	require.NoError(t, err)
	return string(b)
}

// cookieByName returns the named Set-Cookie entry from the recorded
// response, or nil.
func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func requireAuthCookies(t *testing.T, rec *httptest.ResponseRecorder, pair models.TokenPair) {
	t.Helper()

	access := cookieByName(rec, accessTokenCookie)
	require.NotNil(t, access, "access token cookie missing")
	assert.Equal(t, pair.AccessToken, access.Value)
	assert.True(t, access.HttpOnly)
	assert.True(t, access.Secure)
	assert.Equal(t, "/", access.Path)
	assert.Equal(t, http.SameSiteNoneMode, access.SameSite)
	assert.Equal(t, int((15 * time.Minute).Seconds()), access.MaxAge)

	refresh := cookieByName(rec, refreshTokenCookie)
	require.NotNil(t, refresh, "refresh token cookie missing")
	assert.Equal(t, pair.RefreshToken, refresh.Value)
	assert.True(t, refresh.HttpOnly)
	assert.Equal(t, int((168 * time.Hour).Seconds()), refresh.MaxAge)
}

// stubPair is a convenience fixture used across multiple tests.
var stubPair = models.TokenPair{
	AccessToken:  "signed.access.token",
	RefreshToken: "signed.refresh.token",
}

var stubUser = models.User{
	UserID:   1,
	Email:    "alice@example.com",
	Username: "alice",
	Avatar:   "https://www.gravatar.com/avatar/alice",
}

// ─────────────────────────────────────────────
// signup
// ─────────────────────────────────────────────

func TestSignup_Success(t *testing.T) {
	session := &mockSessionService{
		registerFn: func(_ context.Context, creds models.Credentials) (models.User, models.TokenPair, error) {
			assert.Equal(t, "alice@example.com", creds.Email)
			return stubUser, stubPair, nil
		},
	}
	h := newHandlerWithSession(t, session)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup",
		strings.NewReader(credsBody(t, models.Credentials{Email: "alice@example.com", Password: "s3cret"})))
	rec := httptest.NewRecorder()

	h.signup(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	requireAuthCookies(t, rec, stubPair)

	var summary models.UserSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, "alice@example.com", summary.Email)
	assert.Equal(t, "alice", summary.Username)

	// the password hash must never leak into the response
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestSignup_InvalidJSON(t *testing.T) {
	h := newHandlerWithSession(t, &mockSessionService{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader("{invalid json}"))
	rec := httptest.NewRecorder()

	h.signup(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignup_InvalidData(t *testing.T) {
	session := &mockSessionService{
		registerFn: func(context.Context, models.Credentials) (models.User, models.TokenPair, error) {
			return models.User{}, models.TokenPair{}, service.ErrInvalidDataProvided
		},
	}
	h := newHandlerWithSession(t, session)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup",
		strings.NewReader(credsBody(t, models.Credentials{})))
	rec := httptest.NewRecorder()

	h.signup(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	session := &mockSessionService{
		registerFn: func(context.Context, models.Credentials) (models.User, models.TokenPair, error) {
			return models.User{}, models.TokenPair{}, store.ErrEmailAlreadyExists
		},
	}
	h := newHandlerWithSession(t, session)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup",
		strings.NewReader(credsBody(t, models.Credentials{Email: "alice@example.com", Password: "x"})))
	rec := httptest.NewRecorder()

	h.signup(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin_SuccessSetsCookies(t *testing.T) {
	session := &mockSessionService{
		loginFn: func(context.Context, models.Credentials) (models.User, models.TokenPair, error) {
			return stubUser, stubPair, nil
		},
	}
	h := newHandlerWithSession(t, session)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(credsBody(t, models.Credentials{Email: "alice@example.com", Password: "s3cret"})))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	requireAuthCookies(t, rec, stubPair)
}

func TestLogin_BadCredentials(t *testing.T) {
	session := &mockSessionService{
		loginFn: func(context.Context, models.Credentials) (models.User, models.TokenPair, error) {
			return models.User{}, models.TokenPair{}, service.ErrInvalidCredentials
		},
	}
	h := newHandlerWithSession(t, session)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(credsBody(t, models.Credentials{Email: "alice@example.com", Password: "wrong"})))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, cookieByName(rec, accessTokenCookie))
}

// ─────────────────────────────────────────────
// logout
// ─────────────────────────────────────────────

func TestLogout_ClearsCookies(t *testing.T) {
	var loggedOutWith string
	session := &mockSessionService{
		logoutFn: func(_ context.Context, presented string) {
			loggedOutWith = presented
		},
	}
	h := newHandlerWithSession(t, session)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: refreshTokenCookie, Value: "the.refresh.token"})
	rec := httptest.NewRecorder()

	h.logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "the.refresh.token", loggedOutWith)

	access := cookieByName(rec, accessTokenCookie)
	require.NotNil(t, access)
	assert.Empty(t, access.Value)
	assert.Negative(t, access.MaxAge)

	refresh := cookieByName(rec, refreshTokenCookie)
	require.NotNil(t, refresh)
	assert.Empty(t, refresh.Value)
	assert.Negative(t, refresh.MaxAge)
}

// A logout with no cookie at all still answers 200 and clears cookies.
func TestLogout_WithoutCookie(t *testing.T) {
	h := newHandlerWithSession(t, &mockSessionService{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()

	h.logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, cookieByName(rec, accessTokenCookie))
}

// ─────────────────────────────────────────────
// refresh
// ─────────────────────────────────────────────

func TestRefreshToken_SuccessRotatesCookies(t *testing.T) {
	rotated := models.TokenPair{AccessToken: "next.access", RefreshToken: "next.refresh"}
	session := &mockSessionService{
		refreshFn: func(_ context.Context, presented string) (models.User, models.TokenPair, error) {
			assert.Equal(t, "current.refresh", presented)
			return stubUser, rotated, nil
		},
	}
	h := newHandlerWithSession(t, session)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/refresh_token", nil)
	req.AddCookie(&http.Cookie{Name: refreshTokenCookie, Value: "current.refresh"})
	rec := httptest.NewRecorder()

	h.refreshToken(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	requireAuthCookies(t, rec, rotated)
}

func TestRefreshToken_MissingCookie(t *testing.T) {
	h := newHandlerWithSession(t, &mockSessionService{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/refresh_token", nil)
	rec := httptest.NewRecorder()

	h.refreshToken(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshToken_Rejected(t *testing.T) {
	session := &mockSessionService{
		refreshFn: func(context.Context, string) (models.User, models.TokenPair, error) {
			return models.User{}, models.TokenPair{}, service.ErrSessionUnauthorized
		},
	}
	h := newHandlerWithSession(t, session)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/refresh_token", nil)
	req.AddCookie(&http.Cookie{Name: refreshTokenCookie, Value: "stale.refresh"})
	rec := httptest.NewRecorder()

	h.refreshToken(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, cookieByName(rec, accessTokenCookie))
}
