package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mapa3/distribucion-app/internal/logger"
	"github.com/mapa3/distribucion-app/internal/mock"
	"github.com/mapa3/distribucion-app/internal/store"
	"github.com/mapa3/distribucion-app/models"
)

func TestNewServices_WithoutStorages(t *testing.T) {
	services, err := NewServices(nil, nil, models.NewAppBuildInfo("1.0.0", "", ""), logger.Nop())
	require.NoError(t, err)

	assert.NotNil(t, services.AppInfoService)
	assert.NotNil(t, services.HealthService)
	assert.Nil(t, services.ImportService)
}

func TestNewServices_WithStorages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	storages := &store.Storages{
		ImportRepository: mock.NewMockImportRepository(ctrl),
		HealthRepository: mock.NewMockHealthRepository(ctrl),
	}

	services, err := NewServices(storages, mock.NewMockSourceOpener(ctrl), models.NewAppBuildInfo("1.0.0", "", ""), logger.Nop())
	require.NoError(t, err)

	_, ok := services.ImportService.(*importValidationService)
	assert.True(t, ok, "import service must validate its input")
}

func TestNewServices_NoVersion(t *testing.T) {
	_, err := NewServices(nil, nil, models.AppBuildInfo{}, logger.Nop())
	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}
