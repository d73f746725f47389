package raster

import (
	"fmt"

	"github.com/icydoge/avaroute/internal/core/pathfinding"
)

// LayerSpec locates one stored layer.
type LayerSpec struct {
	Path      string
	Transform GeoTransform
}

// LoadLayers loads the elevation, aspect and static-risk layers and checks
// that they are co-registered.
func LoadLayers(elevation, aspect, risk LayerSpec) (pathfinding.Layers, error) {
	var grids [3]*Grid
	for i, spec := range []LayerSpec{elevation, aspect, risk} {
		g, err := LoadParquet(spec.Path, spec.Transform, DefaultNoData)
		if err != nil {
			return pathfinding.Layers{}, err
		}
		grids[i] = g
	}
	if err := coRegistered(grids[0], grids[1], grids[2]); err != nil {
		return pathfinding.Layers{}, err
	}
	return pathfinding.Layers{Elevation: grids[0], Aspect: grids[1], Risk: grids[2]}, nil
}

func coRegistered(ref *Grid, others ...*Grid) error {
	for _, g := range others {
		if g.Width != ref.Width || g.Height != ref.Height || g.GeoTransform != ref.GeoTransform {
			return fmt.Errorf("raster: layers not co-registered: %dx%d %+v vs %dx%d %+v",
				ref.Width, ref.Height, ref.GeoTransform, g.Width, g.Height, g.GeoTransform)
		}
	}
	return nil
}
