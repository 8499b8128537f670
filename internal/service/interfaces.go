package service

import (
	"context"

	"github.com/mapa3/distribucion-app/models"
)

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

type HealthService interface {
	// Check returns nil when every dependency the application needs answers.
	Check(ctx context.Context) error
}

type ImportService interface {
	// Load reads and decodes the bundle found at source, a local path or an
	// s3:// object URL.
	Load(ctx context.Context, source string) (*models.Bundle, error)

	// Import writes bundle into the target database in one transaction and
	// returns the recorded run.
	Import(ctx context.Context, source string, bundle *models.Bundle, opts models.ImportOptions) (models.ImportRun, error)
}

// ImportServiceWrapper defines middleware composition for ImportService.
// Implementations wrap an existing ImportService to add behavior such as
// logging or validating.
type ImportServiceWrapper interface {
	Wrap(ImportService) ImportService // returns a decorated ImportService applying additional behavior
}
