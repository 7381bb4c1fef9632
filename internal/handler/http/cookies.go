package http

import (
	"net/http"

	"github.com/okoval/notekeeper/models"
)

// Cookie names used to carry the token pair. The client never reads them:
// both are http-only and travel back automatically on every request.
const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

func newAuthCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

// setAuthCookies attaches both halves of the pair to the response, each with
// a Max-Age matching its token's lifetime.
func (h *Handler) setAuthCookies(w http.ResponseWriter, pair models.TokenPair) {
	http.SetCookie(w, newAuthCookie(accessTokenCookie, pair.AccessToken, int(h.authCfg.AccessTokenTTL.Seconds())))
	http.SetCookie(w, newAuthCookie(refreshTokenCookie, pair.RefreshToken, int(h.authCfg.RefreshTokenTTL.Seconds())))
}

// clearAuthCookies expires both cookies immediately.
func (h *Handler) clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, newAuthCookie(accessTokenCookie, "", -1))
	http.SetCookie(w, newAuthCookie(refreshTokenCookie, "", -1))
}
