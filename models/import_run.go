package models

import "time"

// ImportRun describes one load of an export bundle into PostgreSQL. A row
// per run is kept in the data_imports table.
type ImportRun struct {
	// ID is a UUIDv7 assigned when the run starts.
	ID string `json:"id"`

	// Source is the file name or object URL the bundle was read from.
	Source string `json:"source"`

	// Tables is the number of tables in the bundle.
	Tables int `json:"tables"`

	// Rows is the number of rows inserted; with conflict skipping enabled it
	// may be lower than the bundle's record count.
	Rows int64 `json:"rows"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// ImportOptions tunes how a bundle is written.
type ImportOptions struct {
	// BatchSize is the maximum number of rows per INSERT statement.
	BatchSize int

	// SkipConflicts appends ON CONFLICT DO NOTHING to every INSERT.
	SkipConflicts bool
}
