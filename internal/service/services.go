package service

import (
	"github.com/mapa3/distribucion-app/internal/logger"
	"github.com/mapa3/distribucion-app/internal/store"
	"github.com/mapa3/distribucion-app/internal/upload"
	"github.com/mapa3/distribucion-app/models"
)

type Services struct {
	AppInfoService AppInfoService
	HealthService  HealthService
	ImportService  ImportService
}

// NewServices wires the services over storages. A nil storages leaves
// ImportService unset and makes HealthService report healthy.
func NewServices(storages *store.Storages, opener upload.SourceOpener, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(buildInfo, logger)
	if err != nil {
		return nil, err
	}

	services := &Services{
		AppInfoService: appInfoService,
		HealthService:  NewHealthService(nil, logger),
	}
	if storages == nil {
		return services, nil
	}

	services.HealthService = NewHealthService(storages.HealthRepository, logger)
	services.ImportService = NewImportValidationService().
		Wrap(NewImportService(storages.ImportRepository, opener, logger))

	return services, nil
}
