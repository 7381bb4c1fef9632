package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/okoval/notekeeper/internal/config"
	"github.com/okoval/notekeeper/internal/logger"
	"github.com/okoval/notekeeper/internal/store"
	"github.com/okoval/notekeeper/internal/utils"
	"github.com/okoval/notekeeper/models"
)

// sessionSweeper periodically clears persisted refresh tokens that no longer
// validate. Expired sessions are unusable anyway; sweeping them keeps the
// users table free of dead tokens and shortens the window in which a leaked
// database dump contains redeemable material.
type sessionSweeper struct {
	users store.UserRepository

	signKey    string
	signMethod *jwt.SigningMethodHMAC
	interval   time.Duration

	logger *logger.Logger
}

// NewSessionSweeper constructs a [Worker] that runs a sweep every interval.
func NewSessionSweeper(users store.UserRepository, authCfg config.Auth, interval time.Duration, logger *logger.Logger) (Worker, error) {
	method, err := utils.ResolveSigningMethod(authCfg.TokenAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("resolving token algorithm: %w", err)
	}

	return &sessionSweeper{
		users:      users,
		signKey:    authCfg.TokenSignKey,
		signMethod: method,
		interval:   interval,
		logger:     logger,
	}, nil
}

// Run implements [Worker]. It blocks until ctx is cancelled.
func (s *sessionSweeper) Run(ctx context.Context) {
	s.logger.Info().Dur("interval", s.interval).Msg("session sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("session sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep clears every persisted refresh token that fails validation. A failed
// listing or clear is logged and retried implicitly on the next tick.
func (s *sessionSweeper) sweep(ctx context.Context) {
	users, err := s.users.ListActiveRefreshTokens(ctx)
	if err != nil {
		s.logger.Err(err).Msg("session sweep could not list refresh tokens")
		return
	}

	swept := 0
	for _, user := range users {
		if user.RefreshToken == nil {
			continue
		}

		if _, err := utils.ValidateAndParseScopedToken(*user.RefreshToken, models.ScopeRefreshToken, s.signKey, s.signMethod); err == nil {
			continue
		}

		if err := s.users.SetRefreshToken(ctx, user.UserID, nil); err != nil {
			s.logger.Err(err).Int64("user_id", user.UserID).Msg("session sweep could not clear token")
			continue
		}
		swept++
	}

	if swept > 0 {
		s.logger.Info().Int("swept", swept).Msg("cleared dead refresh tokens")
	}
}
