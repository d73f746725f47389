package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/icydoge/avaroute/internal/core/domain"
	"github.com/icydoge/avaroute/internal/core/ports"
	"github.com/icydoge/avaroute/internal/pkg/metrics"
	"github.com/icydoge/avaroute/internal/pkg/telemetry"
)

// MaxForecastDates caps how many dates ForecastDates returns.
const MaxForecastDates = 50

// ForecastDates lists the forecast dates available for a location.
type ForecastDates struct {
	Location string   `json:"location"`
	Dates    []string `json:"dates"` // newest first, domain.DateLayout
}

// ForecastService handles forecast lookups that do not involve a search.
type ForecastService struct {
	forecasts ports.ForecastRepository
	locations ports.LocationResolver
	cache     ports.CacheService
	ttl       int
}

// NewForecastService creates a new ForecastService. cache may be nil.
func NewForecastService(forecasts ports.ForecastRepository, locations ports.LocationResolver, cache ports.CacheService, ttlSeconds int) *ForecastService {
	return &ForecastService{forecasts: forecasts, locations: locations, cache: cache, ttl: ttlSeconds}
}

// ForecastDates returns up to MaxForecastDates forecast dates of the
// location containing p, newest first.
func (s *ForecastService) ForecastDates(ctx context.Context, p domain.GeoPoint) (*ForecastDates, error) {
	if err := validPoint(p); err != nil {
		return nil, err
	}

	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanForecastDates)
	defer span.End()

	loc, err := resolveLocation(ctx, s.locations, s.forecasts, p)
	if err != nil {
		return nil, err
	}

	cacheKey := "forecasts:dates:" + strconv.Itoa(loc.ID)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var out ForecastDates
			if err := json.Unmarshal(data, &out); err == nil {
				metrics.CacheHits.WithLabelValues("forecast_dates").Inc()
				return &out, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("forecast_dates").Inc()
	}

	dates, err := s.forecasts.ForecastDates(ctx, loc.ID, MaxForecastDates)
	if err != nil {
		return nil, fmt.Errorf("forecast dates for %q: %w", loc.Name, err)
	}

	out := &ForecastDates{Location: loc.Name, Dates: formatDates(dates)}

	if s.cache != nil {
		if data, err := json.Marshal(out); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, s.ttl)
		}
	}

	return out, nil
}

func formatDates(dates []time.Time) []string {
	out := make([]string, 0, min(len(dates), MaxForecastDates))
	for _, d := range dates {
		if len(out) == MaxForecastDates {
			break
		}
		out = append(out, d.Format(domain.DateLayout))
	}
	return out
}
