package store

import "github.com/mapa3/distribucion-app/internal/logger"

// Storages groups the PostgreSQL-backed repositories.
type Storages struct {
	ImportRepository ImportRepository
	HealthRepository HealthRepository
}

// NewStorages wires every repository to db.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		ImportRepository: NewImportRepository(db, logger),
		HealthRepository: db,
	}
}
