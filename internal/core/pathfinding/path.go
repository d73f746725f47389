package pathfinding

import (
	"fmt"

	"github.com/icydoge/avaroute/internal/core/domain"
)

// CoordinateMapper converts full-resolution raster indices of a window back
// to geographic coordinates.
type CoordinateMapper interface {
	IndexToCoordinate(w domain.GeoWindow, x, y int) (domain.GeoPoint, error)
}

// Reconstruct turns a grid path into waypoints. Each index is expanded by
// the downsample factors before it is mapped; the elevation attached is the
// grid's, so it reflects the downsampled block maximum.
func Reconstruct(g *Grid, path []Index, f Factors, w domain.GeoWindow, m CoordinateMapper) ([]domain.Waypoint, error) {
	out := make([]domain.Waypoint, 0, len(path))
	for _, idx := range path {
		full := f.Expand(idx)
		p, err := m.IndexToCoordinate(w, full.X, full.Y)
		if err != nil {
			return nil, fmt.Errorf("%w: map index (%d, %d): %w", domain.ErrRasterUnavailable, full.X, full.Y, err)
		}
		out = append(out, domain.Waypoint{
			Lon:       p.Lon,
			Lat:       p.Lat,
			Elevation: g.Node(idx).Elevation,
		})
	}
	return out, nil
}
