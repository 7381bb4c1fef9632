package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/okoval/notekeeper/internal/adapter"
	"github.com/okoval/notekeeper/internal/config"
	"github.com/okoval/notekeeper/internal/logger"
	"github.com/okoval/notekeeper/internal/store"
	"github.com/okoval/notekeeper/internal/utils"
	"github.com/okoval/notekeeper/models"
)

// sessionService is the concrete implementation of [SessionService].
//
// It keeps exactly one refresh token per user: login and signup overwrite
// the persisted token, refresh rotates it with a compare-and-swap, and any
// mismatch invalidates the whole session chain.
type sessionService struct {
	// userRepository is the data-access layer used to create, look up and
	// mutate user records.
	userRepository store.UserRepository

	// avatars derives the default avatar URL at signup. Any failure is
	// swallowed: accounts without an avatar are acceptable.
	avatars adapter.AvatarProvider

	// signKey is the HMAC secret used to sign and verify every token.
	signKey string

	// signMethod is the resolved HMAC signing method, one of HS256/HS512.
	// Resolved once at construction; requests never see an invalid value.
	signMethod *jwt.SigningMethodHMAC

	// accessTokenTTL and refreshTokenTTL control the lifetimes of the two
	// halves of an issued pair.
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewSessionService constructs a [SessionService] wired to the given
// repository and avatar provider, with token parameters from cfg.
//
// Returns an error if cfg.TokenAlgorithm is outside the HS256/HS512
// allow-list, so a misconfigured secret scheme fails at startup rather than
// on the first request.
func NewSessionService(userRepository store.UserRepository, avatars adapter.AvatarProvider, cfg config.Auth, logger *logger.Logger) (SessionService, error) {
	method, err := utils.ResolveSigningMethod(cfg.TokenAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("resolving token algorithm: %w", err)
	}

	return &sessionService{
		userRepository:  userRepository,
		avatars:         avatars,
		signKey:         cfg.TokenSignKey,
		signMethod:      method,
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
		logger:          logger,
	}, nil
}

// IssuePair implements [SessionService]. Both tokens carry the email as their
// subject; they differ only in scope and lifetime.
func (s *sessionService) IssuePair(ctx context.Context, email string) (models.TokenPair, error) {
	access, err := utils.GenerateScopedToken(email, models.ScopeAccessToken, s.accessTokenTTL, s.signKey, s.signMethod)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("generating access token: %w", err)
	}

	refresh, err := utils.GenerateScopedToken(email, models.ScopeRefreshToken, s.refreshTokenTTL, s.signKey, s.signMethod)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("generating refresh token: %w", err)
	}

	return models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Register implements [SessionService]. It creates the account, derives the
// default avatar, issues the first token pair and persists its refresh half.
//
// Returns:
//   - [ErrInvalidDataProvided] on a missing or malformed email/password.
//   - [store.ErrEmailAlreadyExists] when the email is taken.
func (s *sessionService) Register(ctx context.Context, creds models.Credentials) (models.User, models.TokenPair, error) {
	log := logger.FromContext(ctx)

	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" || !strings.Contains(email, "@") || creds.Password == "" {
		log.Error().Str("email", email).Msg("invalid signup data provided")
		return models.User{}, models.TokenPair{}, ErrInvalidDataProvided
	}

	hash, err := utils.HashPassword(creds.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, models.TokenPair{}, fmt.Errorf("hashing password: %w", err)
	}

	username := creds.Username
	if username == "" {
		username = email
	}

	avatar := ""
	if avatarURL, avatarErr := s.avatars.AvatarURL(ctx, email); avatarErr != nil {
		log.Warn().Err(avatarErr).Str("email", email).Msg("default avatar unavailable, continuing without one")
	} else {
		avatar = avatarURL
	}

	user, err := s.userRepository.CreateUser(ctx, models.User{
		Email:    email,
		Username: username,
		Password: hash,
		Avatar:   avatar,
	})
	if err != nil {
		log.Err(err).Str("email", email).Msg("user creation ended with error")
		return models.User{}, models.TokenPair{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	pair, err := s.startSession(ctx, user)
	if err != nil {
		return models.User{}, models.TokenPair{}, err
	}

	return user, pair, nil
}

// Login implements [SessionService]. An unknown email and a wrong password
// are indistinguishable to the caller.
func (s *sessionService) Login(ctx context.Context, creds models.Credentials) (models.User, models.TokenPair, error) {
	log := logger.FromContext(ctx)

	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" || creds.Password == "" {
		log.Error().Str("email", email).Msg("invalid login data provided")
		return models.User{}, models.TokenPair{}, ErrInvalidDataProvided
	}

	user, err := s.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		log.Debug().Err(err).Str("email", email).Msg("login lookup failed")
		return models.User{}, models.TokenPair{}, ErrInvalidCredentials
	}

	if !utils.VerifyPassword(creds.Password, user.Password) {
		log.Debug().Str("email", email).Msg("password verification failed")
		return models.User{}, models.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.startSession(ctx, user)
	if err != nil {
		return models.User{}, models.TokenPair{}, err
	}

	return user, pair, nil
}

// Refresh implements [SessionService]. The swap of the persisted refresh
// token is a single conditional UPDATE, so concurrent refreshes presenting
// the same token produce exactly one winner; the losers, and any replay of an
// already-rotated token, get [ErrSessionUnauthorized] and the stored token is
// cleared.
func (s *sessionService) Refresh(ctx context.Context, presented string) (models.User, models.TokenPair, error) {
	log := logger.FromContext(ctx)

	claims, err := utils.ValidateAndParseScopedToken(presented, models.ScopeRefreshToken, s.signKey, s.signMethod)
	if err != nil {
		log.Debug().Err(err).Msg("refresh token rejected")
		return models.User{}, models.TokenPair{}, ErrSessionUnauthorized
	}

	user, err := s.userRepository.FindUserByEmail(ctx, claims.Subject)
	if err != nil {
		log.Debug().Err(err).Str("email", claims.Subject).Msg("refresh subject not resolved")
		return models.User{}, models.TokenPair{}, ErrSessionUnauthorized
	}

	pair, err := s.IssuePair(ctx, user.Email)
	if err != nil {
		return models.User{}, models.TokenPair{}, err
	}

	if err := s.userRepository.RotateRefreshToken(ctx, user.UserID, presented, pair.RefreshToken); err != nil {
		if errors.Is(err, store.ErrRefreshTokenMismatch) {
			log.Warn().Int64("user_id", user.UserID).Msg("refresh token reuse detected")
			return models.User{}, models.TokenPair{}, ErrSessionUnauthorized
		}

		return models.User{}, models.TokenPair{}, fmt.Errorf("rotating refresh token: %w", err)
	}

	return user, pair, nil
}

// Logout implements [SessionService]. Every failure is swallowed: a logout
// with a garbage or expired token still looks successful to the caller, and
// the cookies are cleared by the transport regardless.
func (s *sessionService) Logout(ctx context.Context, presented string) {
	log := logger.FromContext(ctx)

	claims, err := utils.ValidateAndParseScopedToken(presented, models.ScopeRefreshToken, s.signKey, s.signMethod)
	if err != nil {
		log.Debug().Err(err).Msg("logout with unusable token")
		return
	}

	user, err := s.userRepository.FindUserByEmail(ctx, claims.Subject)
	if err != nil {
		log.Debug().Err(err).Str("email", claims.Subject).Msg("logout subject not resolved")
		return
	}

	if err := s.userRepository.SetRefreshToken(ctx, user.UserID, nil); err != nil {
		log.Warn().Err(err).Int64("user_id", user.UserID).Msg("logout could not clear refresh token")
	}
}

// Authenticate implements [SessionService]. Used by the guard middleware on
// every protected request; all failures collapse to
// [ErrSessionUnauthorized].
func (s *sessionService) Authenticate(ctx context.Context, accessToken string) (models.User, error) {
	log := logger.FromContext(ctx)

	claims, err := utils.ValidateAndParseScopedToken(accessToken, models.ScopeAccessToken, s.signKey, s.signMethod)
	if err != nil {
		log.Debug().Err(err).Msg("access token rejected")
		return models.User{}, ErrSessionUnauthorized
	}

	user, err := s.userRepository.FindUserByEmail(ctx, claims.Subject)
	if err != nil {
		log.Debug().Err(err).Str("email", claims.Subject).Msg("access subject not resolved")
		return models.User{}, ErrSessionUnauthorized
	}

	return user, nil
}

// startSession issues a pair and persists its refresh half, replacing any
// refresh token the user previously held.
func (s *sessionService) startSession(ctx context.Context, user models.User) (models.TokenPair, error) {
	pair, err := s.IssuePair(ctx, user.Email)
	if err != nil {
		return models.TokenPair{}, err
	}

	if err := s.userRepository.SetRefreshToken(ctx, user.UserID, &pair.RefreshToken); err != nil {
		return models.TokenPair{}, fmt.Errorf("persisting refresh token: %w", err)
	}

	return pair, nil
}
