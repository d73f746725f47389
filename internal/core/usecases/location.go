package usecases

import (
	"context"
	"fmt"

	"github.com/icydoge/avaroute/internal/core/domain"
	"github.com/icydoge/avaroute/internal/core/ports"
)

// resolveLocation maps a coordinate to the forecast location that covers it.
func resolveLocation(ctx context.Context, resolver ports.LocationResolver, repo ports.ForecastRepository, p domain.GeoPoint) (domain.Location, error) {
	name, err := resolver.LocationName(ctx, p)
	if err != nil {
		return domain.Location{}, fmt.Errorf("resolve location name: %w", err)
	}
	if name == "" {
		return domain.Location{}, fmt.Errorf("%w: no forecast region at %.5f,%.5f", domain.ErrLocationUnresolved, p.Lon, p.Lat)
	}

	id, found, err := repo.FindLocationID(ctx, name)
	if err != nil {
		return domain.Location{}, fmt.Errorf("find location %q: %w", name, err)
	}
	if !found {
		return domain.Location{}, fmt.Errorf("%w: unknown location %q", domain.ErrLocationUnresolved, name)
	}
	return domain.Location{ID: id, Name: name}, nil
}

func validPoint(p domain.GeoPoint) error {
	if !p.Valid() {
		return fmt.Errorf("%w: coordinate %v,%v outside [-180,180]x[-90,90]", domain.ErrInvalidInput, p.Lon, p.Lat)
	}
	return nil
}
