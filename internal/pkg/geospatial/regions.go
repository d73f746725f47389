package geospatial

import (
	"context"
	"math"

	"github.com/icydoge/avaroute/internal/core/domain"
)

// Region is a named avalanche forecast area.
type Region struct {
	Name   string
	Bounds domain.Bounds
}

// ScottishRegions are the forecast areas of the Scottish Avalanche
// Information Service. Boxes are approximate and checked in order.
var ScottishRegions = []Region{
	{Name: "Lochaber", Bounds: domain.Bounds{MinLat: 56.65, MinLon: -5.30, MaxLat: 56.95, MaxLon: -4.60}},
	{Name: "Glencoe", Bounds: domain.Bounds{MinLat: 56.50, MinLon: -5.20, MaxLat: 56.65, MaxLon: -4.70}},
	{Name: "Creag Meagaidh", Bounds: domain.Bounds{MinLat: 56.85, MinLon: -4.60, MaxLat: 57.05, MaxLon: -4.30}},
	{Name: "Northern Cairngorms", Bounds: domain.Bounds{MinLat: 57.05, MinLon: -3.90, MaxLat: 57.20, MaxLon: -3.40}},
	{Name: "Southern Cairngorms", Bounds: domain.Bounds{MinLat: 56.80, MinLon: -3.60, MaxLat: 57.05, MaxLon: -3.00}},
	{Name: "Torridon", Bounds: domain.Bounds{MinLat: 57.45, MinLon: -5.70, MaxLat: 57.65, MaxLon: -5.20}},
}

// DefaultFallbackMeters is how far outside every box a point may be and
// still resolve to the nearest region.
const DefaultFallbackMeters = 25000.0

// RegionResolver maps coordinates to forecast region names with a static
// table. It implements ports.LocationResolver.
type RegionResolver struct {
	regions  []Region
	fallback float64
}

// NewRegionResolver creates a resolver over regions. A point outside every
// box resolves to the region whose centre is nearest, if that centre is
// within fallbackMeters.
func NewRegionResolver(regions []Region, fallbackMeters float64) *RegionResolver {
	return &RegionResolver{regions: regions, fallback: fallbackMeters}
}

// LocationName returns the region containing p, or "" when none does.
func (r *RegionResolver) LocationName(_ context.Context, p domain.GeoPoint) (string, error) {
	for _, reg := range r.regions {
		if reg.Bounds.Contains(p) {
			return reg.Name, nil
		}
	}

	best, bestDist := "", math.Inf(1)
	for _, reg := range r.regions {
		c := reg.Bounds.Center()
		if d := Distance(p, c); d < bestDist {
			best, bestDist = reg.Name, d
		}
	}
	if bestDist > r.fallback {
		return "", nil
	}
	return best, nil
}
