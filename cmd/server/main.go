package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"distributors/internal/agency"
	agencymetrics "distributors/internal/agency/metrics"
	"distributors/internal/platform/config"
	"distributors/internal/platform/database"
	"distributors/internal/platform/httpserver"
	"distributors/internal/platform/logger"
	"distributors/internal/platform/metrics"
	httptransport "distributors/internal/transport/http"
	auditmemory "distributors/pkg/platform/audit/store/memory"
	"distributors/pkg/platform/audit/publisher"
)

const auditBuffer = 256

// auditRetention bounds the in-process audit trail; older events are dropped.
const auditRetention = 10000

// main wires the registry over the configured store, serves it, and shuts
// down gracefully on SIGINT or SIGTERM.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if db != nil {
		defer func() { _ = db.Close() }()
	}
	st, err := agency.NewStore(ctx, db)
	if err != nil {
		return fmt.Errorf("build store: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	auditPublisher := publisher.NewPublisher(auditmemory.NewInMemoryStore(auditmemory.WithCapacity(auditRetention)),
		publisher.WithAsyncBuffer(auditBuffer),
		publisher.WithLogger(log),
	)
	defer auditPublisher.Close()

	module := agency.New(st, log, agencymetrics.New(reg), auditPublisher)
	if cfg.Seed {
		if err := module.Service.SeedDevelopmentData(ctx); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		log.Info("development data seeded")
	}

	router := httptransport.NewRouter(httptransport.Deps{
		API:      module.Handler,
		Health:   module.Service.Health,
		Logger:   log,
		Metrics:  metrics.New(reg),
		Gatherer: reg,
		CORS:     cfg.CORS,
	})
	srv := httpserver.New(cfg.Server, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting distributors api",
			slog.String("addr", cfg.Server.Addr),
			slog.String("db_driver", cfg.Database.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
