// Command hyperiond serves Hyperion band lookups over HTTP.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/hyperion-bands/internal/adapter/http"
	"github.com/couchcryptid/hyperion-bands/internal/config"
	"github.com/couchcryptid/hyperion-bands/internal/lookup"
	"github.com/couchcryptid/hyperion-bands/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	if cfg.DataDir != "" {
		logger.Info("loading tables from directory", "dir", cfg.DataDir)
	} else {
		logger.Info("using bundled tables")
	}
	logger.Info("table options",
		"legacy_text", cfg.LegacyTextMode,
		"normalize_irradiance_bands", cfg.NormalizeIrradianceBand,
		"cache", cfg.CacheTables,
	)

	svc := lookup.New(cfg.Source(), logger, metrics, nil)

	// Refuse to start on unreadable tables.
	if err := svc.CheckReadiness(context.Background()); err != nil {
		logger.Error("tables failed to load", "error", err)
		os.Exit(1)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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
