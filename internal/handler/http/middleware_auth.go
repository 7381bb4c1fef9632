package http

import (
	"context"
	"net/http"

	"github.com/okoval/notekeeper/internal/logger"
	"github.com/okoval/notekeeper/internal/utils"
)

// auth is an HTTP middleware enforcing cookie-based authentication.
//
// It extracts the access-token cookie, resolves it to a user via
// [service.SessionService.Authenticate], and on success stores the resolved
// [models.User] in the request context under [utils.UserCtxKey] before
// delegating to the next handler.
//
// Every failure (missing cookie, undecodable token, wrong scope, unknown
// subject) produces the same 401 response, so an unauthenticated caller
// cannot tell which check rejected it. The distinction is still logged via
// the context-scoped logger for operators.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		cookie, err := r.Cookie(accessTokenCookie)
		if err != nil {
			log.Debug().Msg("request without access token cookie")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		user, err := h.services.SessionService.Authenticate(ctx, cookie.Value)
		if err != nil {
			log.Debug().Err(err).Msg("access token rejected")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		// Store the authenticated user in the context so that downstream
		// handlers can retrieve it without re-parsing the token.
		ctx = context.WithValue(ctx, utils.UserCtxKey, &user)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
