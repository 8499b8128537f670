// Command export writes the application tables of a SQLite database to a
// timestamped JSON bundle that the import command loads into PostgreSQL.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"

	"github.com/mapa3/distribucion-app/internal/config"
	"github.com/mapa3/distribucion-app/internal/export"
	"github.com/mapa3/distribucion-app/internal/logger"
	"github.com/mapa3/distribucion-app/internal/upload"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run returns the process exit status. A missing source database is not a
// failure.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := kingpin.New("export", "Export SQLite application tables to a JSON bundle")
	app.HelpFlag.Short('h')
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)

	source := app.Flag("source", "SQLite database file").Default(export.DefaultSource).String()
	outputDir := app.Flag("output-dir", "Directory for the bundle (defaults to the source's directory)").String()
	excludePrefixes := app.Flag("exclude-prefix", "Skip tables starting with this prefix (repeatable)").Strings()
	forceUpload := app.Flag("upload", "Copy the bundle to the configured S3 bucket").Bool()

	if _, err := app.Parse(args); err != nil {
		fmt.Fprintf(stderr, "export: %v\n", err)
		return 1
	}

	opts := export.Options{
		Source:    *source,
		OutputDir: *outputDir,
		Out:       stdout,
	}
	if len(*excludePrefixes) > 0 {
		opts.ExcludePrefixes = *excludePrefixes
	}

	// a missing source prints the diagnostic without loading settings or
	// opening log files
	if _, err := os.Stat(*source); errors.Is(err, fs.ErrNotExist) {
		_, err = export.Run(ctx, opts, logger.NewConsole("distribucion-export", stderr))
		if errors.Is(err, export.ErrSourceNotFound) {
			return 0
		}
		fmt.Fprintf(stderr, "export: %v\n", err)
		return 1
	}

	settings, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(stderr, "error loading settings: %v\n", err)
		return 1
	}

	log, err := logger.New("distribucion-export", settings.Logging, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error creating logger: %v\n", err)
		return 1
	}
	defer log.Close()

	if *forceUpload || settings.Upload.Enabled() {
		target, err := upload.NewFilesystemS3(ctx, settings.Upload)
		if err != nil {
			log.Error().Err(err).Msg("error creating upload target")
			return 1
		}
		opts.Uploader = target
	}

	if _, err = export.Run(ctx, opts, log); err != nil {
		if errors.Is(err, export.ErrSourceNotFound) {
			return 0
		}
		log.Error().Err(err).Str("source", *source).Msg("export failed")
		fmt.Fprintf(stdout, "Error during export: %v\n", err)
		return 1
	}

	return 0
}
