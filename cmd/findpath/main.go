// Command findpath computes one route and prints it as JSON.
//
//	findpath -from -5.0036,56.7969 -to -4.9860,56.8050 -risk 0.5 [-date 2024-02-10] [-forecasts file.json]
//
// Forecasts come from the database unless -forecasts names a forecast file.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/icydoge/avaroute/internal/adapters/forecastfile"
	"github.com/icydoge/avaroute/internal/adapters/postgres"
	"github.com/icydoge/avaroute/internal/adapters/raster"
	"github.com/icydoge/avaroute/internal/core/domain"
	"github.com/icydoge/avaroute/internal/core/pathfinding"
	"github.com/icydoge/avaroute/internal/core/ports"
	"github.com/icydoge/avaroute/internal/core/usecases"
	"github.com/icydoge/avaroute/internal/pkg/config"
	"github.com/icydoge/avaroute/internal/pkg/geospatial"
	"github.com/icydoge/avaroute/internal/pkg/logging"
)

func main() {
	from := flag.String("from", "", "start as lon,lat")
	to := flag.String("to", "", "goal as lon,lat")
	risk := flag.Float64("risk", 0.5, "risk weighing in [0,1]")
	date := flag.String("date", "", "forecast date (YYYY-MM-DD), newest when empty")
	forecastPath := flag.String("forecasts", "", "forecast JSON file instead of the database")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load("avaroute-findpath")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup(cfg.Telemetry.ServiceName, cfg.Log.Level, "text")

	start, err := parsePoint(*from)
	if err != nil {
		log.Fatalf("-from: %v", err)
	}
	goal, err := parsePoint(*to)
	if err != nil {
		log.Fatalf("-to: %v", err)
	}

	ctx := context.Background()

	var forecasts ports.ForecastRepository
	if *forecastPath != "" {
		store, err := forecastfile.Open(*forecastPath)
		if err != nil {
			log.Fatalf("forecasts: %v", err)
		}
		forecasts = store
	} else {
		db, err := postgres.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		forecasts = postgres.NewForecastRepo(db)
	}

	layers, err := raster.LoadLayers(
		layerSpec(cfg.Rasters.Elevation),
		layerSpec(cfg.Rasters.Aspect),
		layerSpec(cfg.Rasters.Risk),
	)
	if err != nil {
		log.Fatalf("rasters: %v", err)
	}

	opts := usecases.DefaultPathOptions()
	opts.MaxRequestSpan = cfg.Search.MaxRequestSpan
	opts.Timeout = time.Duration(cfg.Search.TimeoutSeconds) * time.Second
	opts.PixelRes = cfg.Rasters.PixelResMeters
	if cfg.Search.CircularAspect {
		opts.Aspect = pathfinding.AspectCircularMean
	}

	resolver := geospatial.NewRegionResolver(geospatial.ScottishRegions, geospatial.DefaultFallbackMeters)
	svc := usecases.NewPathService(forecasts, resolver, layers, nil, nil, opts)

	route, err := svc.FindPath(ctx, usecases.FindPathRequest{From: start, To: goal, RiskWeighing: *risk, Date: *date})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", domain.KindLabel(err), err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(route); err != nil {
		log.Fatalf("encode: %v", err)
	}
}

// parsePoint reads "lon,lat".
func parsePoint(s string) (domain.GeoPoint, error) {
	lonStr, latStr, ok := strings.Cut(s, ",")
	if !ok {
		return domain.GeoPoint{}, fmt.Errorf("expected lon,lat, got %q", s)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("longitude: %w", err)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("latitude: %w", err)
	}
	return domain.GeoPoint{Lon: lon, Lat: lat}, nil
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
