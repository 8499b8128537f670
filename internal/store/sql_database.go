package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mapa3/distribucion-app/internal/logger"
	"github.com/mapa3/distribucion-app/migrations"
)

// DB wraps a *sql.DB together with the logger and the error classifier of
// the engine it is connected to.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded goose migrations. It is only meaningful for
// PostgreSQL connections.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// CheckHealth implements [HealthRepository] with a ping.
func (db *DB) CheckHealth(ctx context.Context) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database is unreachable: %w", err)
	}
	return nil
}
