package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/zlog"

	"clubconnect/cmd/buildCFG"
	"clubconnect/internal/api/api"
	rabbitReader "clubconnect/internal/consumerWorker"
	"clubconnect/internal/handler"
	"clubconnect/internal/itemstore"
	"clubconnect/internal/mailer"
	"clubconnect/internal/notifier"
	"clubconnect/internal/rabbit"
	"clubconnect/internal/repo"
	"clubconnect/internal/service"
)

func main() {
	zlog.Init()
	log := zlog.Logger

	cfg := config.New()
	if err := cfg.Load("config.yaml", "", ""); err != nil {
		log.Fatal().Msgf("failed to load configuration: %v", err)
	}
	zerolog.SetGlobalLevel(buildCFG.BuildLogLevel(cfg))
	serverCfg := buildCFG.BuildServerConfig(cfg, &log)

	store, closeStore, err := buildStore(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize item store")
	}
	defer closeStore()

	repository, err := repo.NewRepository(itemstore.WithMetrics(store), &log)
	if err != nil {
		log.Fatal().Msgf("failed to initialize repository: %v", err)
	}
	clubs, events := service.New(repository, &log)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	var eventNotifier notifier.Notifier = notifier.Noop{Log: &log}
	var relay *rabbitReader.Reader
	if rabbitCfg, ok := buildCFG.BuildRabbitConfig(cfg, &log); ok {
		rmq, err := rabbit.NewRabbit(rabbitCfg, &log)
		if err != nil {
			log.Fatal().Msgf("Failed to connect to RabbitMQ: %v", err)
		}
		defer rmq.Close()
		eventNotifier = notifier.New(rmq, &log)

		if relayCfg := buildCFG.BuildRelayConfig(cfg); relayCfg.Enabled {
			mail := mailer.New(mailer.Config(relayCfg.SMTP), &log)
			relay = rabbitReader.NewReader(rmq, events, clubs, mail, relayCfg.Recipients, &log)
			relay.Start(workerCtx)
		}
	}

	app := api.NewRouters(&api.Routers{
		Clubs:       handler.NewClubHandler(clubs, &log),
		Events:      handler.NewEventHandler(events, eventNotifier, &log),
		Log:         &log,
		Mode:        serverCfg.Mode,
		CORSOrigins: serverCfg.CORSOrigins,
	})
	srv := &http.Server{
		Addr:              ":" + serverCfg.Port,
		Handler:           app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info().Msgf("Starting server on %s", serverCfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- fmt.Errorf("failed to start server: %w", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-signalChan:
		log.Info().Msgf("Received signal %s. Initiating shutdown...", sig)
	case err := <-serverErrChan:
		log.Error().Msgf("Server error: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Msgf("Error shutting down server: %v", err)
	}

	cancelWorkers()
	if relay != nil {
		relay.Stop()
	}
	log.Info().Msg("Shutdown complete")
}

// buildStore opens the configured backend. The returned func releases it.
func buildStore(cfg *config.Config, log *zerolog.Logger) (itemstore.Store, func(), error) {
	storeCfg, err := buildCFG.BuildStoreConfig(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	noop := func() {}

	switch storeCfg.Backend {
	case buildCFG.BackendMemory:
		log.Warn().Msg("using in-memory store; data is lost on restart")
		return itemstore.NewMemoryStore(), noop, nil

	case buildCFG.BackendPostgres:
		masterDSN, slaveDSNs, poolOptions, err := buildCFG.BuildDBConfig(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		db, err := dbpg.New(masterDSN, slaveDSNs, poolOptions)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to DB: %w", err)
		}
		store, err := itemstore.NewPostgresStore(db, log)
		if err != nil {
			return nil, nil, err
		}
		migrationPath := buildCFG.BuildMigrationsPath(cfg)
		if !filepath.IsAbs(migrationPath) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, nil, fmt.Errorf("get working directory: %w", err)
			}
			migrationPath = filepath.Join(cwd, migrationPath)
		}
		if err := store.MigrateUp(migrationPath); err != nil {
			return nil, nil, fmt.Errorf("migration failed: %w", err)
		}
		log.Info().Msg("Migrations applied successfully")
		rollback := buildCFG.BuildRollbackOnShutdown(cfg)
		closeDB := func() {
			if rollback {
				log.Info().Msg("Rolling back migrations...")
				if err := store.MigrateDown(migrationPath); err != nil {
					log.Error().Err(err).Msg("failed to rollback migrations")
				}
			}
			if err := db.Master.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close DB")
			}
		}
		return store, closeDB, nil

	default:
		dynamoCfg := buildCFG.BuildDynamoConfig(cfg)
		client, err := itemstore.NewDynamoClient(context.Background(), dynamoCfg.Region, dynamoCfg.Endpoint)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("region", dynamoCfg.Region).Msg("DynamoDB client ready")
		return itemstore.NewDynamoStore(client, map[string]string{
			repo.ClubsCollection:  storeCfg.ClubsTable,
			repo.EventsCollection: storeCfg.EventsTable,
		}), noop, nil
	}
}
