package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/icydoge/avaroute/internal/core/domain"
	"github.com/icydoge/avaroute/internal/core/ports"
	"github.com/icydoge/avaroute/internal/pkg/telemetry"
)

// AvalancheService lists recorded avalanches with their terrain height.
type AvalancheService struct {
	avalanches ports.AvalancheRepository
	elevation  ports.RasterSource
}

// NewAvalancheService creates a new AvalancheService. elevation may be nil,
// in which case every height is 0.
func NewAvalancheService(avalanches ports.AvalancheRepository, elevation ports.RasterSource) *AvalancheService {
	return &AvalancheService{avalanches: avalanches, elevation: elevation}
}

// PastAvalanches returns the avalanches observed from the start date through
// the end date inclusive, oldest first. Dates are YYYY-MM-DD. Observations
// with coordinates outside [-180,180]x[-90,90] are skipped.
func (s *AvalancheService) PastAvalanches(ctx context.Context, start, end string) ([]domain.PastAvalanche, error) {
	from, err := parseDate(start)
	if err != nil {
		return nil, err
	}
	to, err := parseDate(end)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end date %s before start date %s", domain.ErrInvalidInput, end, start)
	}

	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanPastAvalanche)
	defer span.End()

	events, err := s.avalanches.PastAvalanches(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("past avalanches %s..%s: %w", start, end, err)
	}

	out := make([]domain.PastAvalanche, 0, len(events))
	for _, a := range events {
		p := domain.GeoPoint{Lon: a.Lon, Lat: a.Lat}
		if !p.Valid() {
			continue
		}
		a.Height, err = s.height(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	span.SetAttributes(telemetry.AttrAvalanches.Int(len(out)))
	return out, nil
}

// height reads the elevation cell under p. A point the raster cannot serve
// has height 0; only cancellation is an error.
func (s *AvalancheService) height(ctx context.Context, p domain.GeoPoint) (float64, error) {
	if s.elevation == nil {
		return 0, nil
	}
	rows, err := s.elevation.ReadWindow(ctx, domain.GeoWindow{Lon0: p.Lon, Lat0: p.Lat, Lon1: p.Lon, Lat1: p.Lat})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return 0, err
		}
		return 0, nil
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, nil
	}
	return rows[0][0], nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", domain.ErrInvalidDate, s)
	}
	return d, nil
}
