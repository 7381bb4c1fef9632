package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/okoval/notekeeper/internal/config"
	"github.com/okoval/notekeeper/internal/logger"
	"github.com/okoval/notekeeper/internal/utils"
	"github.com/okoval/notekeeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sweeperTestKey = "sweeper-test-secret"

// trackingUserStore records which user IDs had their token cleared.
type trackingUserStore struct {
	mu      sync.Mutex
	users   []models.User
	cleared []int64
	listErr error
}

func (m *trackingUserStore) CreateUser(_ context.Context, user models.User) (models.User, error) {
	return user, nil
}

func (m *trackingUserStore) FindUserByEmail(context.Context, string) (models.User, error) {
	return models.User{}, nil
}

func (m *trackingUserStore) UpdateProfile(_ context.Context, user models.User) (models.User, error) {
	return user, nil
}

func (m *trackingUserStore) SetRefreshToken(_ context.Context, userID int64, token *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if token == nil {
		m.cleared = append(m.cleared, userID)
	}
	return nil
}

func (m *trackingUserStore) RotateRefreshToken(context.Context, int64, string, string) error {
	return nil
}

func (m *trackingUserStore) ListActiveRefreshTokens(context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.users, nil
}

func (m *trackingUserStore) clearedIDs() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int64(nil), m.cleared...)
}

func sweeperAuthConfig() config.Auth {
	return config.Auth{
		TokenSignKey:   sweeperTestKey,
		TokenAlgorithm: "HS256",
	}
}

func refreshTokenWithTTL(t *testing.T, email string, ttl time.Duration) string {
	t.Helper()
	token, err := utils.GenerateScopedToken(email, models.ScopeRefreshToken, ttl, sweeperTestKey, jwt.SigningMethodHS256)
	require.NoError(t, err)
	return token
}

func TestSessionSweeper_ClearsOnlyDeadTokens(t *testing.T) {
	live := refreshTokenWithTTL(t, "live@example.com", time.Hour)
	dead := refreshTokenWithTTL(t, "dead@example.com", -time.Hour)
	garbage := "not.a.token"

	users := &trackingUserStore{users: []models.User{
		{UserID: 1, RefreshToken: &live},
		{UserID: 2, RefreshToken: &dead},
		{UserID: 3, RefreshToken: &garbage},
	}}

	worker, err := NewSessionSweeper(users, sweeperAuthConfig(), time.Minute, logger.Nop())
	require.NoError(t, err)

	worker.(*sessionSweeper).sweep(context.Background())

	assert.ElementsMatch(t, []int64{2, 3}, users.clearedIDs())
}

func TestSessionSweeper_ListFailureIsNonFatal(t *testing.T) {
	users := &trackingUserStore{listErr: assert.AnError}

	worker, err := NewSessionSweeper(users, sweeperAuthConfig(), time.Minute, logger.Nop())
	require.NoError(t, err)

	worker.(*sessionSweeper).sweep(context.Background())
	assert.Empty(t, users.clearedIDs())
}

func TestSessionSweeper_StopsOnContextCancel(t *testing.T) {
	users := &trackingUserStore{}
	worker, err := NewSessionSweeper(users, sweeperAuthConfig(), time.Millisecond, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		worker.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop on context cancellation")
	}
}

func TestNewWorkers_ZeroIntervalDisablesSweeper(t *testing.T) {
	w, err := NewWorkers(&trackingUserStore{}, sweeperAuthConfig(), config.Workers{}, logger.Nop())
	require.NoError(t, err)
	assert.Empty(t, w.workers)
}

func TestNewWorkers_RejectsBadAlgorithm(t *testing.T) {
	cfg := sweeperAuthConfig()
	cfg.TokenAlgorithm = "none"

	_, err := NewWorkers(&trackingUserStore{}, cfg, config.Workers{SweepInterval: time.Minute}, logger.Nop())
	require.Error(t, err)
}
