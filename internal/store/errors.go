package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUnsupportedEngine is returned when a connection constructor is given
	// settings for another database engine.
	ErrUnsupportedEngine = errors.New("unsupported database engine")

	// ErrTableNotFound is returned when a table named in a bundle does not
	// exist in the target database, usually because its schema has not been
	// migrated yet. It is also returned when a SQLite table has no columns.
	ErrTableNotFound = errors.New("table not found")

	// ErrColumnNotFound is returned when a bundle column does not exist in the
	// target table.
	ErrColumnNotFound = errors.New("column not found")

	// ErrDuplicateRow is returned when an imported row collides with an
	// existing one on a unique constraint and conflicts are not skipped.
	ErrDuplicateRow = errors.New("duplicate row")

	// ErrForeignKeyViolation is returned when an imported row references a row
	// that does not exist at commit time.
	ErrForeignKeyViolation = errors.New("foreign key violation")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. a record lacks a column or holds an unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, SET, SELECT setval) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
