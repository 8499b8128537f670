package service

import (
	"context"
	"fmt"

	"github.com/mapa3/distribucion-app/internal/logger"
	"github.com/mapa3/distribucion-app/internal/store"
)

type healthService struct {
	healthRepository store.HealthRepository

	logger *logger.Logger
}

func NewHealthService(healthRepository store.HealthRepository, logger *logger.Logger) HealthService {
	return &healthService{
		healthRepository: healthRepository,
		logger:           logger,
	}
}

func (h *healthService) Check(ctx context.Context) error {
	if h.healthRepository == nil {
		return nil
	}

	if err := h.healthRepository.CheckHealth(ctx); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "healthService.Check").Msg("database health check failed")
		return fmt.Errorf("%w: %w", ErrDependencyIsNotAvailable, err)
	}

	return nil
}
