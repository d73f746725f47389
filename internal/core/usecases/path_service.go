package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/icydoge/avaroute/internal/core/domain"
	"github.com/icydoge/avaroute/internal/core/pathfinding"
	"github.com/icydoge/avaroute/internal/core/ports"
	"github.com/icydoge/avaroute/internal/pkg/metrics"
	"github.com/icydoge/avaroute/internal/pkg/telemetry"
)

// PathOptions tune the path service.
type PathOptions struct {
	MaxRequestSpan   float64       // largest |Δlon|+|Δlat| accepted, in degrees
	Timeout          time.Duration // per search, 0 for none
	PixelRes         float64       // metres per raster cell
	Aspect           pathfinding.AspectReduction
	ForecastCacheTTL int // seconds
}

// DefaultPathOptions mirror the configuration defaults.
func DefaultPathOptions() PathOptions {
	return PathOptions{
		MaxRequestSpan:   0.5,
		Timeout:          20 * time.Second,
		PixelRes:         pathfinding.DefaultPixelRes,
		Aspect:           pathfinding.AspectLinearMean,
		ForecastCacheTTL: 300,
	}
}

// FindPathRequest is one route request. Date is optional and in
// domain.DateLayout.
type FindPathRequest struct {
	From         domain.GeoPoint
	To           domain.GeoPoint
	RiskWeighing float64
	Date         string
}

// PathService answers find_path requests.
type PathService struct {
	forecasts ports.ForecastRepository
	locations ports.LocationResolver
	layers    pathfinding.Layers
	events    ports.EventPublisher
	cache     ports.CacheService
	opts      PathOptions
}

// NewPathService creates a new PathService. events and cache may be nil.
func NewPathService(
	forecasts ports.ForecastRepository,
	locations ports.LocationResolver,
	layers pathfinding.Layers,
	events ports.EventPublisher,
	cache ports.CacheService,
	opts PathOptions,
) *PathService {
	return &PathService{
		forecasts: forecasts,
		locations: locations,
		layers:    layers,
		events:    events,
		cache:     cache,
		opts:      opts,
	}
}

// Validate checks a request without touching any collaborator.
func (s *PathService) Validate(req FindPathRequest) (date time.Time, err error) {
	if err := validPoint(req.From); err != nil {
		return time.Time{}, err
	}
	if err := validPoint(req.To); err != nil {
		return time.Time{}, err
	}
	if math.IsNaN(req.RiskWeighing) || req.RiskWeighing < 0 || req.RiskWeighing > 1 {
		return time.Time{}, fmt.Errorf("%w: risk weighing %v outside [0,1]", domain.ErrInvalidInput, req.RiskWeighing)
	}
	span := math.Abs(req.To.Lon-req.From.Lon) + math.Abs(req.To.Lat-req.From.Lat)
	if s.opts.MaxRequestSpan > 0 && span > s.opts.MaxRequestSpan {
		return time.Time{}, fmt.Errorf("%w: request too large (span %.3f° > %.3f°)", domain.ErrInvalidInput, span, s.opts.MaxRequestSpan)
	}
	if req.Date != "" {
		if date, err = parseDate(req.Date); err != nil {
			return time.Time{}, err
		}
	}
	return date, nil
}

// FindPath computes a route between req.From and req.To. Invalid requests
// fail before any forecast or raster lookup.
func (s *PathService) FindPath(ctx context.Context, req FindPathRequest) (route *domain.Route, err error) {
	start := time.Now()
	location := ""
	defer func() {
		if err != nil {
			metrics.SearchFailures.WithLabelValues(domain.KindLabel(err)).Inc()
			return
		}
		metrics.SearchDuration.WithLabelValues(location).Observe(time.Since(start).Seconds())
		metrics.SearchExpandedNodes.Observe(float64(route.Stats.Expanded))
	}()

	date, err := s.Validate(req)
	if err != nil {
		return nil, err
	}

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanFindPath,
		trace.WithAttributes(telemetry.AttrRiskWeighing.Float64(req.RiskWeighing)),
	)
	defer span.End()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(telemetry.AttrErrorKind.String(domain.KindLabel(err)))
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	loc, err := resolveLocation(ctx, s.locations, s.forecasts, req.From)
	if err != nil {
		return nil, err
	}
	location = loc.Name
	span.SetAttributes(telemetry.AttrLocation.String(loc.Name))

	forecasts, err := s.selectForecasts(ctx, loc, date)
	if err != nil {
		return nil, err
	}

	window, enlargedLon, enlargedLat := pathfinding.EnlargeWindow(domain.WindowBetween(req.From, req.To))
	if enlargedLon || enlargedLat {
		slog.DebugContext(ctx, "search window enlarged",
			slog.Bool("lon", enlargedLon), slog.Bool("lat", enlargedLat),
			slog.Any("window", window))
	}

	sol, err := pathfinding.Solve(ctx, pathfinding.Problem{
		Window:    window,
		From:      req.From,
		To:        req.To,
		Weighing:  req.RiskWeighing,
		Forecasts: forecasts,
		Layers:    s.layers,
		PixelRes:  s.opts.PixelRes,
		Aspect:    s.opts.Aspect,
	})
	if err != nil {
		return nil, err
	}

	stats := sol.Stats
	if stats.FactorX > 1 || stats.FactorY > 1 {
		metrics.GridDownsampled.Inc()
	}
	span.SetAttributes(
		telemetry.AttrGridWidth.Int(stats.GridWidth),
		telemetry.AttrGridHeight.Int(stats.GridHeight),
		telemetry.AttrFactorX.Int(stats.FactorX),
		telemetry.AttrFactorY.Int(stats.FactorY),
		telemetry.AttrExpanded.Int(stats.Expanded),
		telemetry.AttrWaypoints.Int(len(sol.Waypoints)),
	)
	span.SetStatus(codes.Ok, "route found")

	elapsed := time.Since(start)
	slog.InfoContext(ctx, "route computed",
		slog.String("location", loc.Name),
		slog.Float64("risk_weighing", req.RiskWeighing),
		slog.Int("waypoints", len(sol.Waypoints)),
		slog.Int("grid_width", stats.GridWidth),
		slog.Int("grid_height", stats.GridHeight),
		slog.Int("expanded", stats.Expanded),
		slog.Duration("elapsed", elapsed),
	)

	route = &domain.Route{
		Waypoints:    sol.Waypoints,
		Message:      "Success.",
		Location:     loc.Name,
		ForecastDate: forecasts[0].Date.Format(domain.DateLayout),
		RiskWeighing: req.RiskWeighing,
		Stats:        stats,
		Elapsed:      elapsed,
	}
	s.publish(ctx, req, route)

	return route, nil
}

// selectForecasts returns the newest forecasts of a location, replaced by
// those of date when date is set and has any.
func (s *PathService) selectForecasts(ctx context.Context, loc domain.Location, date time.Time) ([]domain.ForecastRecord, error) {
	forecasts, err := s.latestForecasts(ctx, loc.ID)
	if err != nil {
		return nil, fmt.Errorf("latest forecasts for %q: %w", loc.Name, err)
	}

	if !date.IsZero() {
		dated, err := s.forecasts.ForecastsForDate(ctx, loc.ID, date)
		if err != nil {
			return nil, fmt.Errorf("forecasts for %q on %s: %w", loc.Name, date.Format(domain.DateLayout), err)
		}
		if len(dated) > 0 {
			forecasts = dated
		}
	}

	if len(forecasts) == 0 {
		return nil, fmt.Errorf("%w: location %q has no forecasts", domain.ErrNoForecast, loc.Name)
	}
	return forecasts, nil
}

func (s *PathService) latestForecasts(ctx context.Context, locationID int) ([]domain.ForecastRecord, error) {
	cacheKey := "forecasts:latest:" + strconv.Itoa(locationID)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var forecasts []domain.ForecastRecord
			if err := json.Unmarshal(data, &forecasts); err == nil {
				metrics.CacheHits.WithLabelValues("latest_forecasts").Inc()
				return forecasts, nil
			}
		} else if errors.Is(err, ports.ErrCacheMiss) {
			metrics.CacheMisses.WithLabelValues("latest_forecasts").Inc()
		}
	}

	forecasts, err := s.forecasts.LatestForecasts(ctx, locationID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && len(forecasts) > 0 {
		if data, err := json.Marshal(forecasts); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, s.opts.ForecastCacheTTL)
		}
	}

	return forecasts, nil
}

func (s *PathService) publish(ctx context.Context, req FindPathRequest, route *domain.Route) {
	if s.events == nil {
		return
	}
	event := &domain.RouteComputed{
		Time:         time.Now().UTC(),
		Location:     route.Location,
		From:         req.From,
		To:           req.To,
		RiskWeighing: req.RiskWeighing,
		Waypoints:    len(route.Waypoints),
		ElapsedMs:    route.Elapsed.Milliseconds(),
	}
	if err := s.events.PublishRouteComputed(ctx, event); err != nil {
		metrics.RouteEventsPublished.WithLabelValues("error").Inc()
		slog.WarnContext(ctx, "publish route event failed", slog.String("error", err.Error()))
		return
	}
	metrics.RouteEventsPublished.WithLabelValues("ok").Inc()
}
