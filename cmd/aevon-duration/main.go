package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aevon-lab/aevon-duration/internal/aggregation"
	corecfg "github.com/aevon-lab/aevon-duration/internal/core/config"
	"github.com/aevon-lab/aevon-duration/internal/core/storage/postgres"
	"github.com/aevon-lab/aevon-duration/internal/ingestion"
	"github.com/aevon-lab/aevon-duration/internal/migrations"
	"github.com/aevon-lab/aevon-duration/internal/projection"
	"github.com/aevon-lab/aevon-duration/internal/server"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "aevon.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config",
		"server", cfg.Server,
		"aggregation", cfg.Aggregation,
		"rules", len(cfg.RuleLoading.Rules))

	cronInterval, err := time.ParseDuration(cfg.Aggregation.EffectiveCronInterval())
	if err != nil {
		slog.Error("Invalid aggregation interval", "value", cfg.Aggregation.EffectiveCronInterval(), "error", err)
		os.Exit(1)
	}
	buckets, err := cfg.Aggregation.Buckets()
	if err != nil {
		slog.Error("Invalid aggregation bucket sizes", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Storage (PostgreSQL)
	dbAdapter, err := postgres.NewAdapter(
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer dbAdapter.Close()

	// 2.1. Run Database Migrations
	if err := migrations.RunMigrations(dbAdapter.DB(), cfg.Database.AutoMigrate); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	// 3. Initialize Aggregation: one scheduler per bucket size, each with its own checkpoint.
	preAggStore := postgres.NewPreAggregateAdapter(dbAdapter.DB())

	schedulers := make([]*aggregation.Scheduler, 0, len(buckets))
	bucketLabels := make([]string, 0, len(buckets))
	for _, b := range buckets {
		schedulers = append(schedulers, aggregation.NewScheduler(
			cronInterval,
			dbAdapter, // SampleStore
			preAggStore,
			cfg.RuleLoading.Rules,
			aggregation.BatchJobParameter{
				BatchSize:   cfg.Aggregation.BatchSize,
				WorkerCount: cfg.Aggregation.WorkerCount,
				BucketSize:  b.Size,
				BucketLabel: b.Label,
			},
		))
		bucketLabels = append(bucketLabels, b.Label)
	}

	slog.Info("Aggregation scheduler(s) initialized",
		"interval", cronInterval,
		"enabled", cfg.Aggregation.Enabled,
		"bucket_sizes", bucketLabels,
		"batch_size", cfg.Aggregation.BatchSize,
		"worker_count", cfg.Aggregation.WorkerCount,
	)

	// 4. Initialize Ingestion (writes straight to the samples table)
	ingestionSvc := ingestion.NewService(dbAdapter, cfg.Server.MaxBodySizeMB)

	// 5. Initialize Projection (query API)
	projectionSvc := projection.NewService(preAggStore, dbAdapter, cfg.RuleLoading.Rules, bucketLabels)

	// 6. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), dbAdapter.DB(), cfg.Server.Mode)
	ingestionSvc.RegisterRoutes(srv.Engine)
	projectionSvc.RegisterRoutes(srv.Engine)

	// 7. Start Services
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Aggregation.Enabled {
		for _, scheduler := range schedulers {
			g.Go(func() error {
				if err := scheduler.Start(gctx); err != nil {
					slog.Error("Scheduler stopped with error", "bucket_size", scheduler.BucketLabel(), "error", err)
				}
				return nil
			})
		}
	} else {
		slog.Info("Aggregation scheduler disabled by config")
	}

	// HTTP server blocks until the signal context is cancelled.
	g.Go(func() error {
		return srv.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
