package export

import (
	"context"
	"fmt"
	"io"

	"github.com/mapa3/distribucion-app/internal/logger"
	"github.com/mapa3/distribucion-app/internal/store"
	"github.com/mapa3/distribucion-app/models"
)

// DefaultExcludePrefixes are the SQLite and Django framework tables that are
// never exported.
var DefaultExcludePrefixes = []string{"sqlite_", "django_", "auth_"}

// Exporter reads the selected tables of a source into a bundle.
type Exporter struct {
	source          store.TableSource
	excludePrefixes []string

	// progress receives one line per exported table
	progress io.Writer
	logger   *logger.Logger
}

// NewExporter returns an Exporter over source. A nil excludePrefixes means
// [DefaultExcludePrefixes]; pass an empty slice to export everything.
func NewExporter(source store.TableSource, excludePrefixes []string, progress io.Writer, logger *logger.Logger) *Exporter {
	if excludePrefixes == nil {
		excludePrefixes = DefaultExcludePrefixes
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Exporter{
		source:          source,
		excludePrefixes: excludePrefixes,
		progress:        progress,
		logger:          logger,
	}
}

// Export lists the tables in name order and reads each of them completely.
// The first failing table aborts the export.
func (e *Exporter) Export(ctx context.Context) (*models.Bundle, error) {
	tables, err := e.source.ListTables(ctx, e.excludePrefixes)
	if err != nil {
		return nil, fmt.Errorf("error listing tables: %w", err)
	}

	fmt.Fprintf(e.progress, "\nTables found: %d\n", len(tables))
	e.logger.Info().
		Str("func", "Exporter.Export").
		Int("tables", len(tables)).
		Msg("exporting tables")

	bundle := models.NewBundle()
	for _, name := range tables {
		fmt.Fprintf(e.progress, "   Exporting: %s... ", name)

		table, err := e.source.ReadTable(ctx, name)
		if err != nil {
			fmt.Fprintln(e.progress, "failed")
			return nil, fmt.Errorf("error exporting table %q: %w", name, err)
		}
		bundle.Add(table)

		fmt.Fprintf(e.progress, "%d records\n", len(table.Records))
		e.logger.Debug().
			Str("func", "Exporter.Export").
			Str("table", name).
			Int("records", len(table.Records)).
			Msg("exported table")
	}

	return bundle, nil
}
