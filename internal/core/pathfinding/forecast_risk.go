package pathfinding

import "github.com/icydoge/avaroute/internal/core/domain"

// RiskUnknown is the factor of a cell whose forecast cannot be determined:
// no forecasts, an invalid aspect, or no forecast for the cell's octant.
const RiskUnknown = -1.0

// RiskFactor returns the forecast danger code that applies to a cell with the
// given aspect and altitude. Only an exact octant match counts. Altitudes
// below the lower boundary or above the upper boundary carry no forecast
// danger and yield 0.
func RiskFactor(forecasts []domain.ForecastRecord, aspect, altitude float64) float64 {
	if len(forecasts) == 0 {
		return RiskUnknown
	}
	facing, ok := domain.FacingFromAspect(aspect)
	if !ok {
		return RiskUnknown
	}

	var f *domain.ForecastRecord
	for i := range forecasts {
		if forecasts[i].Facing == facing {
			f = &forecasts[i]
			break
		}
	}
	if f == nil {
		return RiskUnknown
	}

	switch {
	case altitude < float64(f.LowerBoundary):
		return 0
	case altitude < float64(f.MiddleBoundary):
		return float64(max(f.LowerPrimaryColour, f.LowerSecondaryColour))
	case altitude <= float64(f.UpperBoundary):
		return float64(max(f.UpperPrimaryColour, f.UpperSecondaryColour))
	default:
		return 0
	}
}

// ApplyForecast returns a copy of risk with every cell multiplied by its
// forecast risk factor.
func ApplyForecast(t RasterTriple, forecasts []domain.ForecastRecord) Matrix {
	out := t.Risk.Clone()
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			factor := RiskFactor(forecasts, t.Aspect.At(x, y), t.Elevation.At(x, y))
			out.Set(x, y, out.At(x, y)*factor)
		}
	}
	return out
}
