package models

import "github.com/golang-jwt/jwt/v5"

// Token scopes. A token is usable only at endpoints expecting its scope:
// access tokens authorize per-request actions, refresh tokens are consumed
// exclusively by the refresh endpoint to mint new pairs.
const (
	ScopeAccessToken  = "access_token"
	ScopeRefreshToken = "refresh_token"
)

// TokenClaims is the claim set carried by every issued token: the standard
// registered claims (sub = user email, iat, exp) plus the scope restricting
// the token's purpose.
type TokenClaims struct {
	jwt.RegisteredClaims

	// Scope is either ScopeAccessToken or ScopeRefreshToken.
	Scope string `json:"scope"`
}

// TokenPair couples the two credentials issued together on every
// session-establishing event (signup, login, refresh).
type TokenPair struct {
	// AccessToken is the short-lived credential placed in the accessToken
	// cookie and checked by the auth guard on every request.
	AccessToken string `json:"access_token"`

	// RefreshToken is the long-lived credential placed in the refreshToken
	// cookie. Its value is also persisted on the user record; only the
	// persisted instance is valid.
	RefreshToken string `json:"refresh_token"`
}
