package store

import (
	"context"
	"fmt"

	"github.com/mapa3/distribucion-app/internal/logger"
	"github.com/mapa3/distribucion-app/models"
)

// sqliteSource is the SQLite implementation of [TableSource]. It logs through
// the logger it was built with.
type sqliteSource struct {
	*DB
	logger *logger.Logger
}

// NewSQLiteSource constructs a [TableSource] reading from db.
func NewSQLiteSource(db *DB, logger *logger.Logger) TableSource {
	return &sqliteSource{
		DB:     db,
		logger: logger,
	}
}

// ListTables returns the names of the ordinary tables in ascending order,
// leaving out those that start with any of excludePrefixes.
func (s *sqliteSource) ListTables(ctx context.Context, excludePrefixes []string) ([]string, error) {
	log := s.logger

	query, args, err := buildListTablesQuery(excludePrefixes)
	if err != nil {
		log.Err(err).Str("func", "sqliteSource.ListTables").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "sqliteSource.ListTables").Msg("failed to list tables")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	tables := make([]string, 0)
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		tables = append(tables, name)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	log.Debug().
		Str("func", "sqliteSource.ListTables").
		Strs("excluded_prefixes", excludePrefixes).
		Int("tables", len(tables)).
		Msg("listed tables")

	return tables, nil
}

// ReadTable reads every row of table into memory. Columns keep their
// declaration order and values their storage class.
func (s *sqliteSource) ReadTable(ctx context.Context, table string) (models.TableExport, error) {
	log := s.logger

	columns, err := s.tableColumns(ctx, table)
	if err != nil {
		log.Err(err).Str("func", "sqliteSource.ReadTable").Str("table", table).Msg("failed to read columns")
		return models.TableExport{}, err
	}

	query, args, err := buildSelectTableQuery(table, columns)
	if err != nil {
		return models.TableExport{}, err
	}

	rows, err := s.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "sqliteSource.ReadTable").Str("table", table).Msg("failed to select rows")
		return models.TableExport{}, fmt.Errorf("%w: table %q: %w", ErrExecutingQuery, table, err)
	}
	defer rows.Close()

	records := make([]models.Record, 0)
	invalidText := 0
	for rows.Next() {
		raw := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range raw {
			dest[i] = &raw[i]
		}

		if err = rows.Scan(dest...); err != nil {
			return models.TableExport{}, fmt.Errorf("%w: table %q: %w", ErrScanningRows, table, err)
		}

		values := make([]any, len(columns))
		for i, v := range raw {
			if isInvalidText(v) {
				invalidText++
			}
			values[i] = exportValue(v)
		}
		records = append(records, models.NewRecord(columns, values))
	}
	if err = rows.Err(); err != nil {
		return models.TableExport{}, fmt.Errorf("%w: table %q: %w", ErrScanningRows, table, err)
	}

	if invalidText > 0 {
		log.Warn().
			Str("func", "sqliteSource.ReadTable").
			Str("table", table).
			Int("values", invalidText).
			Msg("text values are not valid UTF-8, exported as bytea hex")
	}

	log.Debug().
		Str("func", "sqliteSource.ReadTable").
		Str("table", table).
		Int("records", len(records)).
		Msg("read table")

	return models.TableExport{
		Name:    table,
		Columns: columns,
		Records: records,
	}, nil
}

func (s *sqliteSource) tableColumns(ctx context.Context, table string) ([]string, error) {
	rows, err := s.QueryContext(ctx, listColumns, table)
	if err != nil {
		return nil, fmt.Errorf("%w: columns of %q: %w", ErrExecutingQuery, table, err)
	}
	defer rows.Close()

	columns := make([]string, 0)
	for rows.Next() {
		var name, declType string
		if err = rows.Scan(&name, &declType); err != nil {
			return nil, fmt.Errorf("%w: columns of %q: %w", ErrScanningRows, table, err)
		}
		columns = append(columns, name)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: columns of %q: %w", ErrScanningRows, table, err)
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrTableNotFound, table)
	}

	return columns, nil
}
