package pathfinding

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/icydoge/avaroute/internal/core/domain"
)

// RiskFloorPercentile is the percentile of positive normalized risk below
// which cells are raised. Near-zero cells otherwise act as cost sinks that
// pull the search into unrealistic detours.
const RiskFloorPercentile = 5.0

// Build turns an already downsampled triple into a search grid: forecast
// factors are applied to static risk, risk is min-max normalized and floored
// at the RiskFloorPercentile of its positive values, and edges are weighted
// with res.
func Build(t RasterTriple, forecasts []domain.ForecastRecord, res Resolution) (*Grid, error) {
	risk := ApplyForecast(t, forecasts)
	risk = NormalizeRisk(risk)
	risk, _ = FloorRisk(risk, RiskFloorPercentile)
	return NewGrid(t.Elevation, risk, res)
}

// NormalizeRisk returns risk min-max scaled to [0, 1]. A constant matrix
// normalizes to all zeros.
func NormalizeRisk(risk Matrix) Matrix {
	out := risk.Clone()
	v := out.Values()
	lo, hi := floats.Min(v), floats.Max(v)
	if !(hi > lo) {
		floats.Scale(0, v)
		return out
	}
	floats.AddConst(-lo, v)
	floats.Scale(1/(hi-lo), v)
	return out
}

// FloorRisk raises every value below the p-th percentile of the strictly
// positive values up to that percentile. It returns the floored copy and the
// floor; with no positive values the copy is unchanged and the floor is 0.
func FloorRisk(risk Matrix, p float64) (Matrix, float64) {
	out := risk.Clone()
	v := out.Values()
	positive := make([]float64, 0, len(v))
	for _, r := range v {
		if r > 0 {
			positive = append(positive, r)
		}
	}
	if len(positive) == 0 {
		return out, 0
	}
	sort.Float64s(positive)
	floor := Percentile(positive, p)
	for i, r := range v {
		if r < floor {
			v[i] = floor
		}
	}
	return out, floor
}

// Percentile returns the p-th percentile (0-100) of ascending sorted values,
// linearly interpolating between the two closest ranks.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := min(lo+1, len(sorted)-1)
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
