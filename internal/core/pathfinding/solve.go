package pathfinding

import (
	"context"
	"fmt"

	"github.com/icydoge/avaroute/internal/core/domain"
	"github.com/icydoge/avaroute/internal/core/ports"
)

// Layers are the three co-registered raster sources of a region. Elevation
// is also used to locate points and map indices back to coordinates.
type Layers struct {
	Elevation ports.RasterSource
	Aspect    ports.RasterSource
	Risk      ports.RasterSource
}

// Problem is one point-to-point search request with everything resolved.
type Problem struct {
	Window    domain.GeoWindow // already enlarged
	From      domain.GeoPoint
	To        domain.GeoPoint
	Weighing  float64
	Forecasts []domain.ForecastRecord
	Layers    Layers
	PixelRes  float64 // metres per cell, DefaultPixelRes when zero
	Aspect    AspectReduction
}

// Solution is a found route and how it was obtained.
type Solution struct {
	Waypoints []domain.Waypoint
	Cost      float64
	Stats     domain.SearchStats
}

// Solve reads the rasters of p.Window and runs the whole pipeline: size
// guard, downsampling, grid build, search and reconstruction. Only the
// elevation window is read before the size guard.
func Solve(ctx context.Context, p Problem) (*Solution, error) {
	elevation, err := readLayer(ctx, p.Layers.Elevation, p.Window, "elevation")
	if err != nil {
		return nil, err
	}
	shape, err := MatrixFromRows(elevation)
	if err != nil {
		return nil, fmt.Errorf("%w: elevation: %w", domain.ErrRasterUnavailable, err)
	}

	factors, err := DownsampleFactors(shape.Width, shape.Height)
	if err != nil {
		return nil, err
	}

	aspect, err := readLayer(ctx, p.Layers.Aspect, p.Window, "aspect")
	if err != nil {
		return nil, err
	}
	risk, err := readLayer(ctx, p.Layers.Risk, p.Window, "static risk")
	if err != nil {
		return nil, err
	}
	triple, err := NewRasterTriple(elevation, aspect, risk)
	if err != nil {
		return nil, err
	}

	start, err := locate(p.Layers.Elevation, p.Window, p.From)
	if err != nil {
		return nil, err
	}
	goal, err := locate(p.Layers.Elevation, p.Window, p.To)
	if err != nil {
		return nil, err
	}

	triple = Downsample(triple, factors, p.Aspect)
	start = factors.Reduce(start, triple.Width(), triple.Height())
	goal = factors.Reduce(goal, triple.Width(), triple.Height())

	res := p.PixelRes
	if res <= 0 {
		res = DefaultPixelRes
	}
	grid, err := Build(triple, p.Forecasts, NewResolution(res, res).Scale(factors))
	if err != nil {
		return nil, err
	}

	result, err := Search(ctx, grid, start, goal, p.Weighing)
	if err != nil {
		return nil, err
	}

	waypoints, err := Reconstruct(grid, result.Path(), factors, p.Window, p.Layers.Elevation)
	if err != nil {
		return nil, err
	}

	stats := result.Stats
	stats.FactorX, stats.FactorY = factors.X, factors.Y
	return &Solution{Waypoints: waypoints, Cost: result.Cost, Stats: stats}, nil
}

func readLayer(ctx context.Context, src ports.RasterSource, w domain.GeoWindow, name string) ([][]float64, error) {
	rows, err := src.ReadWindow(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrRasterUnavailable, name, err)
	}
	return rows, nil
}

func locate(src ports.RasterSource, w domain.GeoWindow, p domain.GeoPoint) (Index, error) {
	x, y, err := src.LocateIndex(w, p)
	if err != nil {
		return Index{}, fmt.Errorf("%w: locate %.5f,%.5f: %w", domain.ErrRasterUnavailable, p.Lon, p.Lat, err)
	}
	return Index{X: x, Y: y}, nil
}
