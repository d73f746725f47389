package pathfinding_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icydoge/avaroute/internal/core/domain"
	"github.com/icydoge/avaroute/internal/core/pathfinding"
)

func TestFacingFromAspect(t *testing.T) {
	tests := []struct {
		aspect float64
		want   domain.Octant
		ok     bool
	}{
		{0, domain.OctantN, true},
		{22.5, domain.OctantN, true},
		{22.6, domain.OctantNE, true},
		{90, domain.OctantE, true},
		{135, domain.OctantSE, true},
		{180, domain.OctantS, true},
		{225, domain.OctantSW, true},
		{270, domain.OctantW, true},
		{315, domain.OctantNW, true},
		{337.5, domain.OctantNW, true},
		{337.6, domain.OctantN, true},
		{360, domain.OctantN, true},
		{domain.AspectInvalid, "", false},
		{360.1, "", false},
		{math.NaN(), "", false},
	}
	for _, tt := range tests {
		got, ok := domain.FacingFromAspect(tt.aspect)
		assert.Equal(t, tt.ok, ok, "aspect %v", tt.aspect)
		assert.Equal(t, tt.want, got, "aspect %v", tt.aspect)
	}
}

func northForecast() []domain.ForecastRecord {
	return []domain.ForecastRecord{{
		Facing:               domain.OctantN,
		LowerBoundary:        300,
		MiddleBoundary:       700,
		UpperBoundary:        1100,
		LowerPrimaryColour:   1,
		LowerSecondaryColour: 2,
		UpperPrimaryColour:   4,
		UpperSecondaryColour: 3,
	}}
}

func TestRiskFactor_AltitudeBands(t *testing.T) {
	f := northForecast()

	assert.Equal(t, 0.0, pathfinding.RiskFactor(f, 10, 299))
	assert.Equal(t, 2.0, pathfinding.RiskFactor(f, 10, 300))
	assert.Equal(t, 2.0, pathfinding.RiskFactor(f, 10, 699))
	assert.Equal(t, 4.0, pathfinding.RiskFactor(f, 10, 700))
	assert.Equal(t, 4.0, pathfinding.RiskFactor(f, 10, 1100))
	assert.Equal(t, 0.0, pathfinding.RiskFactor(f, 10, 1101))
}

func TestRiskFactor_Unknown(t *testing.T) {
	f := northForecast()

	assert.Equal(t, pathfinding.RiskUnknown, pathfinding.RiskFactor(nil, 10, 500), "no forecasts")
	assert.Equal(t, pathfinding.RiskUnknown, pathfinding.RiskFactor(f, domain.AspectInvalid, 500), "flat cell")
	assert.Equal(t, pathfinding.RiskUnknown, pathfinding.RiskFactor(f, 100, 500), "no east forecast")
}

func TestApplyForecast(t *testing.T) {
	tr, err := pathfinding.NewRasterTriple(
		[][]float64{{500, 800}, {200, 500}},
		[][]float64{{5, 355}, {0, 180}},
		[][]float64{{0.5, 2}, {1, 3}},
	)
	require.NoError(t, err)

	out := pathfinding.ApplyForecast(tr, northForecast())
	assert.Equal(t, [][]float64{{1, 8}, {0, -3}}, out.Rows())
	assert.Equal(t, [][]float64{{0.5, 2}, {1, 3}}, tr.Risk.Rows(), "static risk is not modified")
}
