package pathfinding

import (
	"math"

	"github.com/icydoge/avaroute/internal/core/domain"
)

// Minimum window spans in degrees. Narrower windows are enlarged before any
// raster read so a search never runs on a one-pixel strip.
const (
	MinimumSpanLon = 0.008
	MinimumSpanLat = 0.007
)

// EnlargeWindow widens a degenerate window to the minimum spans.
//
// A narrow longitude span is re-anchored on the western point and extended
// eastward. A narrow latitude span is re-anchored on the northern point and
// extended southward. Axes that already meet the minimum are left untouched,
// including their corner order.
func EnlargeWindow(w domain.GeoWindow) (out domain.GeoWindow, enlargedLon, enlargedLat bool) {
	out = w
	if math.Abs(out.Lon1-out.Lon0) < MinimumSpanLon {
		if out.Lon1 < out.Lon0 {
			out.Lon0, out.Lon1 = out.Lon1, out.Lon0
		}
		out.Lon1 = out.Lon0 + MinimumSpanLon
		enlargedLon = true
	}
	if math.Abs(out.Lat1-out.Lat0) < MinimumSpanLat {
		if out.Lat1 > out.Lat0 {
			out.Lat0, out.Lat1 = out.Lat1, out.Lat0
		}
		out.Lat1 = out.Lat0 - MinimumSpanLat
		enlargedLat = true
	}

	return out, enlargedLon, enlargedLat
}
