package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mapa3/distribucion-app/internal/export"
	"github.com/mapa3/distribucion-app/internal/logger"
	"github.com/mapa3/distribucion-app/internal/store"
	"github.com/mapa3/distribucion-app/internal/upload"
	"github.com/mapa3/distribucion-app/internal/utils"
	"github.com/mapa3/distribucion-app/models"
)

type idGenerator interface {
	Generate() string
}

type importService struct {
	importRepository store.ImportRepository
	opener           upload.SourceOpener
	ids              idGenerator
	now              func() time.Time

	logger *logger.Logger
}

func NewImportService(importRepository store.ImportRepository, opener upload.SourceOpener, logger *logger.Logger) ImportService {
	return &importService{
		importRepository: importRepository,
		opener:           opener,
		ids:              utils.NewUUIDGenerator(),
		now:              time.Now,
		logger:           logger,
	}
}

func (s *importService) Load(ctx context.Context, source string) (*models.Bundle, error) {
	r, err := s.opener.Open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	bundle, err := export.ReadBundle(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", source, err)
	}

	s.logger.Debug().
		Str("func", "importService.Load").
		Str("source", source).
		Int("tables", len(bundle.Tables)).
		Int("records", bundle.TotalRecords()).
		Msg("bundle loaded")

	return bundle, nil
}

func (s *importService) Import(ctx context.Context, source string, bundle *models.Bundle, opts models.ImportOptions) (models.ImportRun, error) {
	run := models.ImportRun{
		ID:        s.ids.Generate(),
		Source:    source,
		Tables:    len(bundle.Tables),
		StartedAt: s.now().UTC(),
	}

	ctx = utils.WithImportRunID(ctx, run.ID)
	log := s.logger.GetChildLogger()
	log.Logger = log.With().Str("import_run_id", run.ID).Logger()
	ctx = log.WithContext(ctx)

	log.Info().
		Str("func", "importService.Import").
		Str("source", source).
		Int("tables", run.Tables).
		Int("records", bundle.TotalRecords()).
		Msg("import started")

	result, err := s.importRepository.ImportBundle(ctx, run, bundle, opts)
	if err != nil {
		log.Err(err).Str("func", "importService.Import").Msg("import failed")
		return models.ImportRun{}, err
	}

	log.Info().
		Str("func", "importService.Import").
		Int64("rows", result.Rows).
		Dur("took", result.FinishedAt.Sub(result.StartedAt)).
		Msg("import finished")

	return result, nil
}
