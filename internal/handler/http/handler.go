package http

import (
	"github.com/okoval/notekeeper/internal/config"
	"github.com/okoval/notekeeper/internal/logger"
	"github.com/okoval/notekeeper/internal/service"
)

type Handler struct {
	services *service.Services

	// authCfg supplies the token lifetimes used as cookie Max-Age values.
	authCfg config.Auth

	logger *logger.Logger
}

func NewHandler(services *service.Services, authCfg config.Auth, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		authCfg:  authCfg,
		logger:   logger,
	}
}
