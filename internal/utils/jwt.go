package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/okoval/notekeeper/models"
)

// Sentinel errors returned by the token codec. Callers match against them
// with [errors.Is]; the HTTP layer is expected to collapse all of them into
// a uniform 401 so that the failing check is not observable from outside.
var (
	// ErrTokenInvalid is returned when the token is malformed, carries an
	// unexpected signing method, or its signature does not verify.
	ErrTokenInvalid = errors.New("token is invalid")

	// ErrTokenExpired is returned when the current time is at or past the
	// token's expiry instant. Expiry is exclusive: a token is valid strictly
	// before its exp claim.
	ErrTokenExpired = errors.New("token is expired")

	// ErrTokenScopeMismatch is returned when the token decodes correctly but
	// its scope claim does not equal the scope the caller expects.
	ErrTokenScopeMismatch = errors.New("token scope mismatch")

	// ErrUnsupportedAlgorithm is returned by ResolveSigningMethod for any
	// algorithm name outside the HS256/HS512 allow-list. It is a startup
	// configuration error, never a request-time one.
	ErrUnsupportedAlgorithm = errors.New("unsupported signing algorithm")
)

// ResolveSigningMethod maps a configured algorithm name to its HMAC signing
// method. Only HS256 and HS512 are accepted; any other value yields
// ErrUnsupportedAlgorithm so that misconfiguration fails at process start.
func ResolveSigningMethod(name string) (*jwt.SigningMethodHMAC, error) {
	switch name {
	case "HS256":
		return jwt.SigningMethodHS256, nil
	case "HS512":
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
	}
}

// GenerateScopedToken creates a signed JWT carrying the given subject and
// scope, valid for ttl from now.
//
// The token includes the following claims:
//   - Subject   (sub): the user email the token is issued for
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus ttl
//   - ID        (jti): a random UUID, so two tokens issued within the same
//     second for the same subject and scope are still distinct
//   - scope:           either models.ScopeAccessToken or models.ScopeRefreshToken
//
// All parameters are required. Returns an error if any of them are empty or zero.
func GenerateScopedToken(subject, scope string, ttl time.Duration, signKey string, method *jwt.SigningMethodHMAC) (string, error) {
	if subject == "" || scope == "" || ttl == 0 || signKey == "" || method == nil {
		return "", errors.New("invalid params for generating JWT token")
	}

	now := time.Now()
	claims := models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		Scope: scope,
	}

	tokenString, err := jwt.NewWithClaims(method, claims).SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return tokenString, nil
}

// ValidateAndParseScopedToken verifies the given JWT string and extracts its
// claims.
//
// Validation includes:
//   - Signature verification using the provided sign key, with the signing
//     method pinned to the configured HMAC variant
//   - An explicit, exclusive expiry check (current time must be strictly
//     before exp) on top of the library's own check, so boundary behavior is
//     deterministic regardless of codec leeway
//   - Scope claim comparison against expectedScope
//
// On failure one of ErrTokenExpired, ErrTokenScopeMismatch, or
// ErrTokenInvalid is returned; callers must not surface the distinction to
// unauthenticated clients.
func ValidateAndParseScopedToken(tokenString, expectedScope, signKey string, method *jwt.SigningMethodHMAC) (models.TokenClaims, error) {
	var claims models.TokenClaims

	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithValidMethods([]string{method.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.TokenClaims{}, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}
		return models.TokenClaims{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	if claims.ExpiresAt == nil {
		return models.TokenClaims{}, fmt.Errorf("%w: missing exp claim", ErrTokenInvalid)
	}
	if !time.Now().Before(claims.ExpiresAt.Time) {
		return models.TokenClaims{}, ErrTokenExpired
	}

	if claims.Scope != expectedScope {
		return models.TokenClaims{}, fmt.Errorf("%w: expected %q", ErrTokenScopeMismatch, expectedScope)
	}

	if claims.Subject == "" {
		return models.TokenClaims{}, fmt.Errorf("%w: empty subject", ErrTokenInvalid)
	}

	return claims, nil
}
