package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mapa3/distribucion-app/internal/config"
	"github.com/mapa3/distribucion-app/internal/handler"
	"github.com/mapa3/distribucion-app/internal/logger"
	"github.com/mapa3/distribucion-app/internal/server"
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

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	settings, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading settings: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("distribucion-server", settings.Logging, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Debug().
		Bool("debug", settings.Debug).
		Strs("allowed_hosts", settings.AllowedHosts).
		Str("database_engine", settings.Database.Engine).
		Str("address", settings.Server.Address).
		Msg("received configs")

	if err = run(settings, buildInfo, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		_ = log.Close()
		os.Exit(1)
	}
}

func run(settings *config.Settings, buildInfo models.AppBuildInfo, log *logger.Logger) error {
	ctx := context.Background()

	var storages *store.Storages
	if settings.Database.Engine == config.EnginePostgres {
		db, err := store.NewConnectPostgres(ctx, settings.Database, log.Component("db"))
		if err != nil {
			return err
		}
		defer db.Close()

		if err = db.Migrate(); err != nil {
			return fmt.Errorf("error applying migrations: %w", err)
		}
		storages = store.NewStorages(db, log.Component("db"))
	} else {
		log.Warn().
			Str("engine", settings.Database.Engine).
			Msg("database engine is not served, health check reports ok")
	}

	services, err := service.NewServices(storages, upload.NewOpener(settings.Upload), buildInfo, log)
	if err != nil {
		return err
	}

	handlers, err := handler.NewHandlers(services, settings, log)
	if err != nil {
		return err
	}

	srv, err := server.NewServer(handlers, settings.Server, log)
	if err != nil {
		return err
	}

	return srv.RunServer()
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Print(info)
}
