package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/mapa3/distribucion-app/internal/logger"
	"github.com/mapa3/distribucion-app/internal/mock"
)

func TestHealthService_Check(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockHealthRepository(ctrl)
	repo.EXPECT().CheckHealth(gomock.Any()).Return(nil)

	svc := NewHealthService(repo, logger.Nop())
	assert.NoError(t, svc.Check(context.Background()))
}

func TestHealthService_Check_DatabaseDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	down := errors.New("database is unreachable: connection refused")
	repo := mock.NewMockHealthRepository(ctrl)
	repo.EXPECT().CheckHealth(gomock.Any()).Return(down)

	err := NewHealthService(repo, logger.Nop()).Check(context.Background())
	assert.ErrorIs(t, err, ErrDependencyIsNotAvailable)
	assert.ErrorIs(t, err, down)
}

func TestHealthService_Check_NoDatabase(t *testing.T) {
	// a server without a configured database reports itself healthy
	assert.NoError(t, NewHealthService(nil, logger.Nop()).Check(context.Background()))
}
