// Command import loads an export bundle into the PostgreSQL database named
// by the settings.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/mapa3/distribucion-app/internal/config"
	"github.com/mapa3/distribucion-app/internal/logger"
	"github.com/mapa3/distribucion-app/internal/service"
	"github.com/mapa3/distribucion-app/internal/store"
	"github.com/mapa3/distribucion-app/internal/upload"
	"github.com/mapa3/distribucion-app/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

type importArgs struct {
	source string
	opts   models.ImportOptions
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func parseArgs(args []string, stderr io.Writer) (importArgs, error) {
	app := kingpin.New("import", "Load a JSON export bundle into PostgreSQL")
	app.HelpFlag.Short('h')
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)

	source := app.Arg("file", "Bundle path or s3://bucket/key").Required().String()
	batchSize := app.Flag("batch-size", "Rows per INSERT statement").Default(fmt.Sprint(store.DefaultBatchSize)).Int()
	skipConflicts := app.Flag("skip-conflicts", "Ignore rows that violate a unique constraint").Bool()

	if _, err := app.Parse(args); err != nil {
		return importArgs{}, err
	}

	return importArgs{
		source: *source,
		opts: models.ImportOptions{
			BatchSize:     *batchSize,
			SkipConflicts: *skipConflicts,
		},
	}, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	parsed, err := parseArgs(args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "import: %v\n", err)
		return 1
	}

	settings, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(stderr, "error loading settings: %v\n", err)
		return 1
	}

	log, err := logger.New("distribucion-import", settings.Logging, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error creating logger: %v\n", err)
		return 1
	}
	defer log.Close()

	importRun, err := importBundle(ctx, settings, parsed, log)
	if err != nil {
		log.Error().Err(err).Str("source", parsed.source).Msg("import failed")
		fmt.Fprintf(stdout, "Error during import: %v\n", err)
		return 1
	}

	printSummary(stdout, importRun)
	return 0
}

func importBundle(ctx context.Context, settings *config.Settings, args importArgs, log *logger.Logger) (models.ImportRun, error) {
	db, err := store.NewConnectPostgres(ctx, settings.Database, log.Component("db"))
	if err != nil {
		return models.ImportRun{}, err
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		return models.ImportRun{}, fmt.Errorf("error applying migrations: %w", err)
	}

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services, err := service.NewServices(store.NewStorages(db, log.Component("db")), upload.NewOpener(settings.Upload), buildInfo, log)
	if err != nil {
		return models.ImportRun{}, err
	}

	bundle, err := services.ImportService.Load(ctx, args.source)
	if err != nil {
		return models.ImportRun{}, err
	}

	return services.ImportService.Import(ctx, args.source, bundle, args.opts)
}

func printSummary(w io.Writer, run models.ImportRun) {
	fmt.Fprintf(w, "Imported from: %s\n", run.Source)
	fmt.Fprintf(w, "Run id: %s\n", run.ID)
	fmt.Fprintf(w, "Total tables: %d\n", run.Tables)
	fmt.Fprintf(w, "Total rows: %d\n", run.Rows)
	fmt.Fprintf(w, "Took: %s\n", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
}
