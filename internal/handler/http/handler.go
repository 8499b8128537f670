package http

import (
	"github.com/mapa3/distribucion-app/internal/config"
	"github.com/mapa3/distribucion-app/internal/logger"
	"github.com/mapa3/distribucion-app/internal/service"
)

type Handler struct {
	services *service.Services
	settings *config.Settings

	// limiter is nil when rate limiting is disabled
	limiter *clientLimiter
	csrfKey []byte

	logger *logger.Logger
}

func NewHandler(services *service.Services, settings *config.Settings, logger *logger.Logger) (*Handler, error) {
	csrfKey, err := deriveCSRFKey(settings.SecretKey)
	if err != nil {
		return nil, err
	}

	h := &Handler{
		services: services,
		settings: settings,
		csrfKey:  csrfKey,
		logger:   logger,
	}
	if settings.Server.RateLimitRPS > 0 {
		h.limiter = newClientLimiter(settings.Server.RateLimitRPS, settings.Server.RateLimitBurst)
	}

	logger.Info().Msg("http handler created")
	return h, nil
}
