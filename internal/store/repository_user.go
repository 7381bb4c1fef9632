package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/okoval/notekeeper/internal/logger"
	"github.com/okoval/notekeeper/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, profile mutation, and the lifecycle of
// the single persisted refresh token per user.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt).
//
// The INSERT uses the [createUser] prepared query which returns all columns
// via a RETURNING clause, so the caller receives the canonical database
// representation of the newly created account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Email, user.Username, user.Password, user.Avatar)

	if err := row.Scan(&user.UserID, &user.Email, &user.Username, &user.Password, &user.Avatar, &user.RefreshToken, &user.CreatedAt); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Str("email", user.Email).Msg("error: user insert failed")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return user, nil
}

// FindUserByEmail retrieves a user record by its unique email.
//
// Error handling:
//   - [sql.ErrNoRows] → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	var foundUser models.User
	row := r.db.QueryRowContext(ctx, findUserByEmail, email)

	if err := row.Scan(&foundUser.UserID, &foundUser.Email, &foundUser.Username, &foundUser.Password, &foundUser.Avatar, &foundUser.RefreshToken, &foundUser.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Str("email", email).Msg("error: user lookup failed")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return foundUser, nil
}

// UpdateProfile commits the mutable profile fields (username, avatar) and
// returns the canonical post-update record.
func (r *userRepository) UpdateProfile(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	var updated models.User
	row := r.db.QueryRowContext(ctx, updateUserProfile, user.UserID, user.Username, user.Avatar)

	if err := row.Scan(&updated.UserID, &updated.Email, &updated.Username, &updated.Password, &updated.Avatar, &updated.RefreshToken, &updated.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.UpdateProfile").Int64("user_id", user.UserID).Msg("error: profile update failed")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return updated, nil
}

// SetRefreshToken overwrites the persisted refresh token. A nil token clears
// the field, which invalidates the server-side session.
func (r *userRepository) SetRefreshToken(ctx context.Context, userID int64, token *string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, setRefreshToken, userID, token); err != nil {
		log.Err(err).Str("func", "*userRepository.SetRefreshToken").Int64("user_id", userID).Msg("error: refresh token update failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// RotateRefreshToken performs the compare-and-rotate as a single conditional
// UPDATE. The database serialises concurrent statements on the same row, so
// at most one caller presenting the same token observes a match; every other
// caller falls into the mismatch path.
//
// On mismatch the persisted token is cleared before returning
// [ErrRefreshTokenMismatch]: a presented-but-stale token is treated as
// evidence of reuse, and the whole chain is invalidated.
func (r *userRepository) RotateRefreshToken(ctx context.Context, userID int64, presented, next string) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, rotateRefreshToken, userID, presented, next)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.RotateRefreshToken").Int64("user_id", userID).Msg("error: rotate statement failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected == 0 {
		log.Warn().Int64("user_id", userID).Msg("stale refresh token presented, invalidating session")

		if _, clearErr := r.db.ExecContext(ctx, clearRefreshToken, userID); clearErr != nil {
			log.Err(clearErr).Str("func", "*userRepository.RotateRefreshToken").Int64("user_id", userID).Msg("error clearing stale refresh token")
		}

		return ErrRefreshTokenMismatch
	}

	return nil
}

// ListActiveRefreshTokens returns every (user_id, refresh_token) pair with a
// non-null persisted token.
func (r *userRepository) ListActiveRefreshTokens(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listActiveRefreshTokens)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListActiveRefreshTokens").Msg("error: query failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.UserID, &user.RefreshToken); err != nil {
			log.Err(err).Str("func", "*userRepository.ListActiveRefreshTokens").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}
