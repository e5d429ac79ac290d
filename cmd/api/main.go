// Command api serves the air-passenger traffic dashboard data API. It loads
// and aggregates the three input CSVs once at startup, then answers ranked
// city queries from the cached aggregate until shut down.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/oakmere/air-traffic-api/internal/adapter/http"
	"github.com/oakmere/air-traffic-api/internal/config"
	"github.com/oakmere/air-traffic-api/internal/ingest"
	"github.com/oakmere/air-traffic-api/internal/observability"
	"github.com/oakmere/air-traffic-api/internal/pipeline"
	"github.com/oakmere/air-traffic-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	loader := pipeline.New(
		&ingest.TrafficCSV{Path: cfg.TrafficCSV},
		&ingest.LocationsCSV{Path: cfg.LocationsCSV},
		&ingest.FaresCSV{Path: cfg.FaresCSV},
		logger, metrics,
	)
	st := store.New(loader, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The initial load is mandatory: a missing file or column is a
	// configuration error, not something to retry against.
	if err := st.Reload(ctx); err != nil {
		logger.Error("initial dataset load failed", "error", err)
		os.Exit(1)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, st, httpadapter.Options{
		AnchorCities: cfg.AnchorCities,
		DefaultFare:  cfg.DefaultFare,
	}, logger, metrics)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
