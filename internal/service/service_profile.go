package service

import (
	"context"
	"fmt"

	"github.com/okoval/notekeeper/internal/adapter"
	"github.com/okoval/notekeeper/internal/logger"
	"github.com/okoval/notekeeper/internal/store"
	"github.com/okoval/notekeeper/models"
)

// profileService is the concrete implementation of [ProfileService].
type profileService struct {
	userRepository store.UserRepository
	avatars        adapter.AvatarProvider
	logger         *logger.Logger
}

// NewProfileService constructs a [ProfileService] backed by the given
// repository and avatar provider.
func NewProfileService(userRepository store.UserRepository, avatars adapter.AvatarProvider, logger *logger.Logger) ProfileService {
	return &profileService{
		userRepository: userRepository,
		avatars:        avatars,
		logger:         logger,
	}
}

// UpdateProfile implements [ProfileService]. An empty username leaves the
// stored one in place; RefreshAvatar re-derives the avatar through the
// provider, and a provider failure keeps the stored avatar untouched.
func (p *profileService) UpdateProfile(ctx context.Context, user models.User, update models.ProfileUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if update.Username != "" {
		user.Username = update.Username
	}

	if update.RefreshAvatar {
		if avatarURL, err := p.avatars.AvatarURL(ctx, user.Email); err != nil {
			log.Warn().Err(err).Int64("user_id", user.UserID).Msg("avatar refresh unavailable, keeping stored avatar")
		} else {
			user.Avatar = avatarURL
		}
	}

	updated, err := p.userRepository.UpdateProfile(ctx, user)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("profile update ended with error")
		return models.User{}, fmt.Errorf("profile update ended with error: %w", err)
	}

	return updated, nil
}
