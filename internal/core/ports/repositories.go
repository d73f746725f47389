package ports

import (
	"context"
	"time"

	"github.com/icydoge/avaroute/internal/core/domain"
)

// RasterSource reads one georeferenced raster layer (elevation, aspect or
// static risk). Implementations must be safe for concurrent reads.
type RasterSource interface {
	// ReadWindow returns the cells covering the window as rows (y) of
	// columns (x).
	ReadWindow(ctx context.Context, w domain.GeoWindow) ([][]float64, error)
	// LocateIndex returns the (x, y) cell of p inside the window.
	LocateIndex(w domain.GeoWindow, p domain.GeoPoint) (x, y int, err error)
	// IndexToCoordinate returns the centre of cell (x, y) of the window.
	IndexToCoordinate(w domain.GeoWindow, x, y int) (domain.GeoPoint, error)
}

// ForecastRepository looks up avalanche forecasts.
type ForecastRepository interface {
	// FindLocationID returns the ID of the named location; found is false
	// when no such location exists.
	FindLocationID(ctx context.Context, name string) (id int, found bool, err error)
	// LatestForecasts returns the newest forecast set for a location.
	LatestForecasts(ctx context.Context, locationID int) ([]domain.ForecastRecord, error)
	// ForecastsForDate returns the forecast set issued on date.
	ForecastsForDate(ctx context.Context, locationID int, date time.Time) ([]domain.ForecastRecord, error)
	// ForecastDates returns up to limit forecast dates, newest first.
	ForecastDates(ctx context.Context, locationID int, limit int) ([]time.Time, error)
}

// AvalancheRepository looks up recorded avalanche observations.
type AvalancheRepository interface {
	// PastAvalanches returns observations made on or after start and before
	// end, oldest first.
	PastAvalanches(ctx context.Context, start, end time.Time) ([]domain.PastAvalanche, error)
}
