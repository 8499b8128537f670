package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/mapa3/distribucion-app/models"
)

// TableSource reads application tables from a source database.
type TableSource interface {
	ListTables(ctx context.Context, excludePrefixes []string) ([]string, error)
	ReadTable(ctx context.Context, table string) (models.TableExport, error)
}

// ImportRepository loads a bundle into the target database.
type ImportRepository interface {
	// ImportBundle inserts every table of bundle and records run. It either
	// applies everything or nothing. The returned run carries the table and
	// row counts and the finish time.
	ImportBundle(ctx context.Context, run models.ImportRun, bundle *models.Bundle, opts models.ImportOptions) (models.ImportRun, error)
}

// HealthRepository reports whether the database answers.
type HealthRepository interface {
	CheckHealth(ctx context.Context) error
}

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
