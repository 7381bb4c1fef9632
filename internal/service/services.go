package service

import (
	"github.com/okoval/notekeeper/internal/adapter"
	"github.com/okoval/notekeeper/internal/config"
	"github.com/okoval/notekeeper/internal/logger"
	"github.com/okoval/notekeeper/internal/store"
)

type Services struct {
	SessionService SessionService
	NoteService    NoteService
	ProfileService ProfileService
}

func NewServices(storages *store.Storages, avatars adapter.AvatarProvider, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	sessionService, err := NewSessionService(storages.UserRepository, avatars, cfg.Auth, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		SessionService: sessionService,
		NoteService:    NewNoteService(storages.NoteRepository, logger),
		ProfileService: NewProfileService(storages.UserRepository, avatars, logger),
	}, nil
}
