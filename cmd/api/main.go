package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/icydoge/avaroute/internal/adapters/http"
	natsadapter "github.com/icydoge/avaroute/internal/adapters/nats"
	"github.com/icydoge/avaroute/internal/adapters/postgres"
	"github.com/icydoge/avaroute/internal/adapters/raster"
	"github.com/icydoge/avaroute/internal/adapters/valkey"
	"github.com/icydoge/avaroute/internal/core/pathfinding"
	"github.com/icydoge/avaroute/internal/core/ports"
	"github.com/icydoge/avaroute/internal/core/usecases"
	"github.com/icydoge/avaroute/internal/pkg/config"
	"github.com/icydoge/avaroute/internal/pkg/geospatial"
	"github.com/icydoge/avaroute/internal/pkg/logging"
	"github.com/icydoge/avaroute/internal/pkg/metrics"
	"github.com/icydoge/avaroute/internal/pkg/telemetry"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg, err := config.Load("avaroute-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup(cfg.Telemetry.ServiceName, cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer func() {
				flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer flushCancel()
				_ = shutdown(flushCtx)
			}()
		}
	}

	// Rasters
	layers, err := raster.LoadLayers(
		layerSpec(cfg.Rasters.Elevation),
		layerSpec(cfg.Rasters.Aspect),
		layerSpec(cfg.Rasters.Risk),
	)
	if err != nil {
		log.Fatalf("rasters: %v", err)
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	go reportPoolStats(ctx, db)

	// Cache
	var cache ports.CacheService
	valkeyCache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable, forecast caching disabled", "error", err)
	} else {
		defer valkeyCache.Close()
		cache = valkeyCache
	}

	// NATS
	var events ports.EventPublisher
	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable, route events disabled", "error", err)
	} else {
		defer pub.Close()
		events = pub
	}

	// Raw NATS connection for WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	} else {
		defer natsConn.Close()
	}

	// Use cases
	forecastRepo := postgres.NewForecastRepo(db)
	resolver := geospatial.NewRegionResolver(geospatial.ScottishRegions, geospatial.DefaultFallbackMeters)

	deps := &http.Dependencies{
		Paths:          usecases.NewPathService(forecastRepo, resolver, layers, events, cache, pathOptions(cfg)),
		Forecasts:      usecases.NewForecastService(forecastRepo, resolver, cache, cfg.Search.ForecastCacheTTL),
		Avalanches:     usecases.NewAvalancheService(postgres.NewAvalancheRepo(db), layers.Elevation),
		NATS:           natsConn,
		DB:             db,
		Cache:          valkeyCache,
		RequestTimeout: time.Duration(cfg.Search.TimeoutSeconds+5) * time.Second,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    64 * 1024,
		AppName:      "avaroute API",
	})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Searches may take up to the search timeout to finish
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), deps.RequestTimeout)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}

func layerSpec(l config.RasterLayer) raster.LayerSpec {
	return raster.LayerSpec{
		Path: l.Path,
		Transform: raster.GeoTransform{
			OriginLon:   l.OriginLon,
			OriginLat:   l.OriginLat,
			PixelWidth:  l.PixelWidth,
			PixelHeight: l.PixelHeight,
		},
	}
}

func pathOptions(cfg *config.Config) usecases.PathOptions {
	opts := usecases.DefaultPathOptions()
	opts.MaxRequestSpan = cfg.Search.MaxRequestSpan
	opts.Timeout = time.Duration(cfg.Search.TimeoutSeconds) * time.Second
	opts.PixelRes = cfg.Rasters.PixelResMeters
	opts.ForecastCacheTTL = cfg.Search.ForecastCacheTTL
	if cfg.Search.CircularAspect {
		opts.Aspect = pathfinding.AspectCircularMean
	}
	return opts
}

// reportPoolStats exports database pool gauges until ctx is done.
func reportPoolStats(ctx context.Context, db *postgres.DB) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			metrics.UpdateDBPoolMetrics(db.Stat())
		case <-ctx.Done():
			return
		}
	}
}
