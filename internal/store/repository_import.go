package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	"github.com/mapa3/distribucion-app/internal/logger"
	"github.com/mapa3/distribucion-app/models"
)

const (
	// DefaultBatchSize is the number of rows per INSERT when the caller does
	// not choose one.
	DefaultBatchSize = 500

	defaultImportAttempts = 3
	defaultRetryBackoff   = 500 * time.Millisecond
)

// importRepository is the PostgreSQL implementation of [ImportRepository].
//
// The whole bundle is loaded in one transaction. Django declares foreign
// keys DEFERRABLE INITIALLY DEFERRED, so tables can be inserted in bundle
// order and references are only checked at commit.
type importRepository struct {
	*DB
	logger *logger.Logger

	now         func() time.Time
	maxAttempts int
	backoff     time.Duration
}

// NewImportRepository constructs an [ImportRepository] backed by db.
func NewImportRepository(db *DB, logger *logger.Logger) ImportRepository {
	return &importRepository{
		DB:          db,
		logger:      logger,
		now:         time.Now,
		maxAttempts: defaultImportAttempts,
		backoff:     defaultRetryBackoff,
	}
}

// ImportBundle implements [ImportRepository]. A failure the error classifier
// marks as retryable (lost connection, deadlock, serialization failure)
// restarts the whole transaction, up to three attempts in total.
func (r *importRepository) ImportBundle(ctx context.Context, run models.ImportRun, bundle *models.Bundle, opts models.ImportOptions) (models.ImportRun, error) {
	log := logger.FromContext(ctx)

	var err error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		var result models.ImportRun
		result, err = r.importOnce(ctx, run, bundle, opts)
		if err == nil {
			return result, nil
		}

		if r.errorClassificator == nil || r.errorClassificator.Classify(err) != Retryable || attempt == r.maxAttempts {
			break
		}

		log.Warn().Err(err).
			Str("func", "importRepository.ImportBundle").
			Int("attempt", attempt).
			Msg("retryable error, restarting import transaction")

		select {
		case <-ctx.Done():
			return models.ImportRun{}, ctx.Err()
		case <-time.After(r.backoff * time.Duration(attempt)):
		}
	}

	return models.ImportRun{}, err
}

func (r *importRepository) importOnce(ctx context.Context, run models.ImportRun, bundle *models.Bundle, opts models.ImportOptions) (models.ImportRun, error) {
	log := logger.FromContext(ctx)

	tx, err := r.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "importRepository.importOnce").Msg("failed to begin transaction")
		return models.ImportRun{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, setTimeZoneUTC); err != nil {
		return models.ImportRun{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var total int64
	for _, table := range bundle.Tables {
		inserted, err := r.insertTable(ctx, tx, table, batchSize, opts.SkipConflicts)
		if err != nil {
			log.Err(err).
				Str("func", "importRepository.importOnce").
				Str("table", table.Name).
				Msg("failed to import table")
			return models.ImportRun{}, err
		}
		total += inserted

		log.Info().
			Str("func", "importRepository.importOnce").
			Str("table", table.Name).
			Int("records", len(table.Records)).
			Int64("inserted", inserted).
			Msg("imported table")
	}

	run.Tables = len(bundle.Tables)
	run.Rows = total
	run.FinishedAt = r.now().UTC()

	query, args, err := buildInsertImportRunQuery(run)
	if err != nil {
		return models.ImportRun{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return models.ImportRun{}, mapImportError(err, tableScope("data_imports"), ErrExecutingStatement)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "importRepository.importOnce").Msg("failed to commit transaction")
		// deferred foreign keys are checked here
		return models.ImportRun{}, mapImportError(err, "commit", ErrCommitingTransaction)
	}

	return run, nil
}

// insertTable inserts the records of table in batches and, when the table
// has an id column, moves its sequence past the imported ids. It returns
// the number of rows actually inserted.
func (r *importRepository) insertTable(ctx context.Context, tx *sql.Tx, table models.TableExport, batchSize int, skipConflicts bool) (int64, error) {
	if len(table.Records) == 0 {
		return 0, nil
	}

	columns := table.Columns
	if len(columns) == 0 {
		columns = table.Records[0].Columns
	}

	var inserted int64
	for batch := range slices.Chunk(table.Records, batchSize) {
		query, args, err := buildInsertBatchQuery(table.Name, columns, batch, skipConflicts)
		if err != nil {
			return 0, err
		}

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, mapImportError(err, tableScope(table.Name), ErrExecutingStatement)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("%w: table %q: %w", ErrExecutingStatement, table.Name, err)
		}
		inserted += n
	}

	if slices.Contains(columns, "id") {
		query, args, err := buildResetSequenceQuery(table.Name)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return 0, mapImportError(err, tableScope(table.Name), ErrExecutingStatement)
		}
	}

	return inserted, nil
}
