package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/modelcatalog/internal/config"
	logpkg "github.com/kailas-cloud/modelcatalog/internal/logger"
	"github.com/kailas-cloud/modelcatalog/internal/metrics"
	"github.com/kailas-cloud/modelcatalog/internal/seed"
	"github.com/kailas-cloud/modelcatalog/internal/storage"
	chiTransport "github.com/kailas-cloud/modelcatalog/internal/transport/chi"
	benchmarkuc "github.com/kailas-cloud/modelcatalog/internal/usecase/benchmark"
	cataloguc "github.com/kailas-cloud/modelcatalog/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/modelcatalog/internal/usecase/health"
	importeruc "github.com/kailas-cloud/modelcatalog/internal/usecase/importer"
	matchinguc "github.com/kailas-cloud/modelcatalog/internal/usecase/matching"
	pricinguc "github.com/kailas-cloud/modelcatalog/internal/usecase/pricing"
	suggestionuc "github.com/kailas-cloud/modelcatalog/internal/usecase/suggestion"
	"github.com/kailas-cloud/modelcatalog/internal/version"
)

func main() {
	app := &cli.App{
		Name:    "modelcatalog",
		Usage:   "Model catalog API: price filters, benchmarks, task matching and suggestions",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.Date),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Value:   "local",
				Usage:   "Environment name, selects config/<env>.yaml",
				EnvVars: []string{"ENV"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API server",
				Action: serve,
			},
			{
				Name:  "seed",
				Usage: "Import a YAML catalog into the configured store",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Value:   "seed/catalog.yaml",
						Usage:   "Path to the catalog file",
					},
				},
				Action: seedCatalog,
			},
			{
				Name:   "migrate",
				Usage:  "Create or update the SQL schema",
				Action: migrate,
			},
			{
				Name:  "version",
				Usage: "Print version information",
				Action: func(_ *cli.Context) error {
					fmt.Printf("modelcatalog version %s\n", version.Version)
					fmt.Printf("Commit: %s\n", version.Commit)
					fmt.Printf("Built: %s\n", version.Date)
					return nil
				},
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "modelcatalog:", err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and builds the logger for the selected environment.
func bootstrap(c *cli.Context) (config.Config, *zap.Logger, error) {
	env := c.String("env")

	cfg, err := config.Load(env)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, logger, nil
}

func serve(c *cli.Context) error {
	cfg, logger, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting modelcatalog API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", c.String("env")),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := storage.Open(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("open catalog store: %w", err)
	}
	defer backend.Close()

	// Register ranking metrics explicitly (no init())
	metrics.RegisterRankingMetrics()
	recorder := metrics.RankingRecorder{}

	repo := backend.Repo
	server := chiTransport.NewServer(chiTransport.Services{
		Catalog:    cataloguc.New(repo),
		Pricing:    pricinguc.New(repo),
		Benchmarks: benchmarkuc.New(repo),
		Matching: matchinguc.New(repo).
			WithDefaultCostWeight(*cfg.Matching.DefaultCostWeight).
			WithRecorder(recorder).
			WithLogger(logger),
		Suggestions: suggestionuc.New(repo).
			WithRecorder(recorder).
			WithLogger(logger),
		Health: healthuc.New(backend, repo, logger),
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           chiTransport.NewRouter(server, chiTransport.RouterOptions{APIKeys: cfg.Auth.APIKeys}),
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}

func seedCatalog(c *cli.Context) error {
	cfg, logger, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	snap, err := seed.Load(c.String("file"))
	if err != nil {
		return fmt.Errorf("load seed file: %w", err)
	}

	backend, err := storage.Open(c.Context, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("open catalog store: %w", err)
	}
	defer backend.Close()

	if err := backend.Migrate(c.Context); err != nil {
		return err
	}

	stats, err := importeruc.New(backend.Repo, logger).Import(c.Context, snap)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	fmt.Printf("Imported %d providers, %d fields, %d models, %d benchmarks\n",
		stats.Providers, stats.Fields, stats.Models, stats.Benchmarks)
	return nil
}

func migrate(c *cli.Context) error {
	cfg, logger, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if !cfg.Database.IsSQL() {
		logger.Info("Driver has no schema, nothing to migrate", zap.String("driver", cfg.Database.Driver))
		return nil
	}

	backend, err := storage.Open(c.Context, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("open catalog store: %w", err)
	}
	defer backend.Close()

	if err := backend.Migrate(c.Context); err != nil {
		return err
	}
	logger.Info("Schema migrated", zap.String("driver", cfg.Database.Driver))
	return nil
}
