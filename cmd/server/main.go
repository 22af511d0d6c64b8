package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/Lixing-Zhang/nutribalance/internal/app"
	"github.com/Lixing-Zhang/nutribalance/internal/config"
	"github.com/Lixing-Zhang/nutribalance/internal/events"
	"github.com/Lixing-Zhang/nutribalance/internal/fooddata"
	"github.com/Lixing-Zhang/nutribalance/internal/handlers"
	"github.com/Lixing-Zhang/nutribalance/internal/seed"
	"github.com/Lixing-Zhang/nutribalance/internal/service"
	"github.com/Lixing-Zhang/nutribalance/internal/storage"
	"github.com/Lixing-Zhang/nutribalance/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "nutribalance: %v\n", err)
		os.Exit(1)
	}
}

// run owns every resource the server opens, so deferred cleanup happens
// before main decides the exit code.
func run() error {
	// Load configuration from config.yml and environment
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting nutribalance api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
		"persistent", cfg.Storage.DBPath != "",
	)

	ctx := context.Background()

	// Optional SQLite persistence
	var (
		persister    service.Persister
		loader       app.SnapshotLoader
		healthChecks = map[string]handlers.Pinger{}
	)
	if cfg.Storage.DBPath != "" {
		store, err := storage.Open(ctx, cfg.Storage.DBPath)
		if err != nil {
			return errors.Wrapf(err, "failed to open snapshot database %s", cfg.Storage.DBPath)
		}
		defer store.Close()

		persister = store
		loader = store
		healthChecks["database"] = store
	}

	state, err := app.RestoreState(ctx, loader, seed.Defaults(), log)
	if err != nil {
		return errors.Wrap(err, "failed to restore state")
	}
	log.Info("state ready",
		"foods", state.Catalog.Len(),
		"submissions", state.Ledger.Len(),
	)

	// Optional submission events
	var publisher service.Publisher
	if cfg.Events.RabbitMQURL != "" {
		p, err := events.Dial(cfg.Events.RabbitMQURL, cfg.Events.Queue, log)
		if err != nil {
			log.Error("failed to connect to rabbitmq, events disabled", "error", err)
		} else {
			defer p.Close()
			publisher = p
		}
	}

	searcher := fooddata.NewClient(
		cfg.FoodData.BaseURL,
		cfg.FoodData.APIKey,
		time.Duration(cfg.FoodData.Timeout)*time.Second,
	)

	// Initialize services
	ws := service.NewWorkspace(state.Catalog, state.Recommendations, state.Ledger, persister, log)
	catalogService := service.NewCatalogService(ws, searcher, log)
	recommendationService := service.NewRecommendationService(ws, log)
	analysisService := service.NewAnalysisService(ws, publisher, log)

	r, err := app.NewRouter(app.RouterConfig{
		Catalog:         catalogService,
		Recommendations: recommendationService,
		Analysis:        analysisService,
		HealthChecks:    healthChecks,
		AdminPassword:   cfg.Admin.Password,
		SearchRateLimit: cfg.FoodData.SearchRateLimit,
		SearchBurst:     cfg.FoodData.SearchBurst,
	}, log)
	if err != nil {
		return errors.Wrap(err, "failed to build router")
	}

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		return errors.Wrap(err, "server failed")
	}

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "server forced to shutdown")
	}

	log.Info("server stopped gracefully")
	return nil
}
