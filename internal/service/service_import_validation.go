package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mapa3/distribucion-app/internal/validators"
	"github.com/mapa3/distribucion-app/models"
)

type importValidationService struct {
	inner     ImportService
	validator validators.Validator
}

func NewImportValidationService() ImportServiceWrapper {
	return &importValidationService{
		validator: validators.NewBundleValidator(),
	}
}

func (v *importValidationService) Load(ctx context.Context, source string) (*models.Bundle, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrValidationNoSource
	}

	bundle, err := v.inner.Load(ctx, source)
	if err != nil {
		return nil, err
	}

	// names end up in SQL text, reject anything that is not a plain identifier
	if err = v.validator.Validate(ctx, bundle); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationInvalidBundle, err)
	}

	return bundle, nil
}

func (v *importValidationService) Import(ctx context.Context, source string, bundle *models.Bundle, opts models.ImportOptions) (models.ImportRun, error) {
	if strings.TrimSpace(source) == "" {
		return models.ImportRun{}, ErrValidationNoSource
	}
	if bundle == nil {
		return models.ImportRun{}, ErrValidationNoBundle
	}
	if opts.BatchSize < 0 {
		return models.ImportRun{}, fmt.Errorf("%w: %d", ErrValidationBatchSize, opts.BatchSize)
	}

	if err := v.validator.Validate(ctx, bundle); err != nil {
		return models.ImportRun{}, fmt.Errorf("%w: %w", ErrValidationInvalidBundle, err)
	}

	return v.inner.Import(ctx, source, bundle, opts)
}

func (v *importValidationService) Wrap(wrapper ImportService) ImportService {
	v.inner = wrapper
	return v
}
