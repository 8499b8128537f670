package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/mapa3/distribucion-app/internal/logger"
	"github.com/mapa3/distribucion-app/internal/store"
	"github.com/mapa3/distribucion-app/internal/upload"
	"github.com/mapa3/distribucion-app/models"
)

// DefaultSource is the database file exported when none is given.
const DefaultSource = "db.sqlite3"

// Options describes one export run.
type Options struct {
	// Source is the SQLite database file. Defaults to [DefaultSource].
	Source string

	// OutputDir receives the bundle. Defaults to the directory of Source.
	OutputDir string

	// ExcludePrefixes overrides [DefaultExcludePrefixes] when non-nil.
	ExcludePrefixes []string

	// Uploader, when set, receives a copy of the written bundle.
	Uploader upload.Filesystem

	// Out receives the human-readable progress and summary. Defaults to
	// os.Stdout.
	Out io.Writer

	// Now stamps the file name. Defaults to time.Now.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Source == "" {
		o.Source = DefaultSource
	}
	if o.OutputDir == "" {
		o.OutputDir = filepath.Dir(o.Source)
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Run exports opts.Source and prints the summary to opts.Out.
//
// A missing source prints a diagnostic and returns [ErrSourceNotFound]
// without touching the storage layer or writing anything.
func Run(ctx context.Context, opts Options, log *logger.Logger) (*models.ExportResult, error) {
	opts = opts.withDefaults()
	ctx = log.WithContext(ctx)

	printHeader(opts.Out)
	defer printFooter(opts.Out)

	if _, err := os.Stat(opts.Source); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			printSourceMissing(opts.Out, opts.Source)
			log.Warn().Str("func", "export.Run").Str("source", opts.Source).Msg("source database not found")
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, opts.Source)
		}
		return nil, fmt.Errorf("error checking source %s: %w", opts.Source, err)
	}

	fmt.Fprintf(opts.Out, "Exporting data from: %s\n", opts.Source)

	db, err := store.NewConnectSQLite(ctx, opts.Source, log.Component("db"))
	if err != nil {
		return nil, err
	}
	defer db.Close()

	exporter := NewExporter(store.NewSQLiteSource(db, log.Component("db")), opts.ExcludePrefixes, opts.Out, log)
	bundle, err := exporter.Export(ctx)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(opts.OutputDir, FileName(opts.Now()))
	if err = WriteBundle(path, bundle); err != nil {
		return nil, err
	}

	result := models.NewExportResult(path, bundle)
	log.Info().
		Str("func", "export.Run").
		Str("path", path).
		Int("tables", len(result.Tables)).
		Int("records", result.TotalRecords).
		Msg("export written")

	if opts.Uploader != nil {
		url, err := upload.UploadFile(ctx, opts.Uploader, path)
		if err != nil {
			// the local bundle is complete, report it before failing
			printSummary(opts.Out, result)
			return result, err
		}
		result.UploadedTo = url
		log.Info().Str("func", "export.Run").Str("url", url).Msg("export uploaded")
	}

	printSummary(opts.Out, result)

	return result, nil
}
