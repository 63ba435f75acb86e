// Command reportd serves the weather report generation API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/storm-report-service/internal/adapter/httpapi"
	"github.com/couchcryptid/storm-report-service/internal/adapter/mapbox"
	"github.com/couchcryptid/storm-report-service/internal/adapter/staticmap"
	"github.com/couchcryptid/storm-report-service/internal/chart"
	"github.com/couchcryptid/storm-report-service/internal/compose"
	"github.com/couchcryptid/storm-report-service/internal/config"
	"github.com/couchcryptid/storm-report-service/internal/geo"
	"github.com/couchcryptid/storm-report-service/internal/layout"
	"github.com/couchcryptid/storm-report-service/internal/observability"
	"github.com/couchcryptid/storm-report-service/internal/style"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	styleCfg, err := style.Load(cfg.StyleFile)
	if err != nil {
		logger.Error("failed to load style config", "path", cfg.StyleFile, "error", err)
		os.Exit(1)
	}

	// Backend selection is feature-flagged via MAP_BACKEND / MAPBOX_TOKEN.
	var backend geo.Backend
	if cfg.UseMapbox() {
		backend = mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, styleCfg, logger)
		logger.Info("mapbox map backend enabled", "timeout", cfg.MapboxTimeout)
	} else {
		backend = staticmap.New(styleCfg, cfg.TileProvider, logger)
		logger.Info("native map backend enabled")
	}

	charts, err := chart.New(styleCfg, logger, metrics)
	if err != nil {
		logger.Error("failed to initialize chart renderer", "error", err)
		os.Exit(1)
	}
	geoRenderer := geo.NewRenderer(backend, cfg.RenderTimeout, styleCfg, logger, metrics)
	composer := compose.New(charts, geoRenderer, layout.NewEngine(), logger, metrics)

	srv := httpapi.NewServer(cfg.HTTPAddr, composer, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
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
