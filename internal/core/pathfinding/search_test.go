package pathfinding_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icydoge/avaroute/internal/core/domain"
	"github.com/icydoge/avaroute/internal/core/pathfinding"
)

// shortcutGrid is a flat 5×5 grid with risk 1 everywhere except a zero-risk
// cell at (2, 1), one row south of the straight line between (0,0) and (4,0).
func shortcutGrid(t *testing.T) *pathfinding.Grid {
	t.Helper()
	elevation := pathfinding.NewMatrix(5, 5)
	risk := pathfinding.NewMatrix(5, 5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			elevation.Set(x, y, 100)
			risk.Set(x, y, 1)
		}
	}
	risk.Set(2, 1, 0)

	g, err := pathfinding.NewGrid(elevation, risk, pathfinding.NewResolution(5, 5))
	require.NoError(t, err)
	return g
}

func pathRisk(g *pathfinding.Grid, path []pathfinding.Index) float64 {
	var sum float64
	for _, idx := range path[1:] {
		sum += g.Node(idx).Risk
	}
	return sum
}

func pathDistance(g *pathfinding.Grid, path []pathfinding.Index) float64 {
	var sum float64
	for i := 1; i < len(path); i++ {
		for _, e := range g.Node(path[i-1]).Edges {
			if e.To == path[i] {
				sum += e.Raw
			}
		}
	}
	return sum
}

func TestSearch_ShortcutFullRiskWeighing(t *testing.T) {
	g := shortcutGrid(t)
	start, goal := pathfinding.Index{X: 0, Y: 0}, pathfinding.Index{X: 4, Y: 0}

	res, err := pathfinding.Search(context.Background(), g, start, goal, 1)
	require.NoError(t, err)

	path := res.Path()
	assert.Contains(t, path, pathfinding.Index{X: 2, Y: 1}, "path must cross the zero-risk cell")
	assert.Equal(t, start, path[0])
	assert.Equal(t, goal, path[len(path)-1])
	assert.InDelta(t, 3.0, res.Cost, 1e-9)
}

func TestSearch_ShortcutZeroRiskWeighing(t *testing.T) {
	g := shortcutGrid(t)
	start, goal := pathfinding.Index{X: 0, Y: 0}, pathfinding.Index{X: 4, Y: 0}

	res, err := pathfinding.Search(context.Background(), g, start, goal, 0)
	require.NoError(t, err)

	want := []pathfinding.Index{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0}}
	assert.Equal(t, want, res.Path())
	assert.InDelta(t, 0.0, res.Cost, 1e-9)
}

func TestSearch_RiskWeighingMonotonicity(t *testing.T) {
	g := shortcutGrid(t)
	start, goal := pathfinding.Index{X: 0, Y: 0}, pathfinding.Index{X: 4, Y: 0}

	low, err := pathfinding.Search(context.Background(), g, start, goal, 0)
	require.NoError(t, err)
	high, err := pathfinding.Search(context.Background(), g, start, goal, 1)
	require.NoError(t, err)

	lowPath, highPath := low.Path(), high.Path()
	// Weighing risk more never buys a riskier route, and it may cost distance.
	assert.LessOrEqual(t, pathRisk(g, highPath), pathRisk(g, lowPath))
	assert.GreaterOrEqual(t, pathDistance(g, highPath), pathDistance(g, lowPath))
	assert.Less(t, pathRisk(g, highPath), pathRisk(g, lowPath), "grid offers a strictly safer detour")
}

func TestSearch_SingleCell(t *testing.T) {
	m := pathfinding.NewMatrix(1, 1)
	g, err := pathfinding.NewGrid(m, m, pathfinding.NewResolution(5, 5))
	require.NoError(t, err)

	res, err := pathfinding.Search(context.Background(), g, pathfinding.Index{}, pathfinding.Index{}, 0.5)
	require.NoError(t, err)
	assert.Equal(t, []pathfinding.Index{{X: 0, Y: 0}}, res.Path())
	assert.Equal(t, 1, res.Stats.FrontierPops)
	assert.Zero(t, res.Stats.Expanded)
}

func TestSearch_StartEqualsGoal(t *testing.T) {
	g := shortcutGrid(t)
	idx := pathfinding.Index{X: 3, Y: 3}

	res, err := pathfinding.Search(context.Background(), g, idx, idx, 0.3)
	require.NoError(t, err)
	assert.Equal(t, []pathfinding.Index{idx}, res.Path())
}

func TestSearch_OutOfBounds(t *testing.T) {
	g := shortcutGrid(t)

	_, err := pathfinding.Search(context.Background(), g, pathfinding.Index{}, pathfinding.Index{X: 5, Y: 0}, 0.5)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearch_Cancelled(t *testing.T) {
	g := shortcutGrid(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pathfinding.Search(ctx, g, pathfinding.Index{}, pathfinding.Index{X: 4, Y: 4}, 0.5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSearch_ConcurrentSearchesShareGrid(t *testing.T) {
	g := shortcutGrid(t)
	start, goal := pathfinding.Index{X: 0, Y: 0}, pathfinding.Index{X: 4, Y: 0}

	ref, err := pathfinding.Search(context.Background(), g, start, goal, 1)
	require.NoError(t, err)
	want := ref.Path()

	var wg sync.WaitGroup
	paths := make([][]pathfinding.Index, 16)
	errs := make([]error, len(paths))
	for i := range paths {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := pathfinding.Search(context.Background(), g, start, goal, 1)
			if err != nil {
				errs[i] = err
				return
			}
			paths[i] = res.Path()
		}(i)
	}
	wg.Wait()

	for i := range paths {
		require.NoError(t, errs[i])
		assert.Equal(t, want, paths[i])
	}
}

func TestSearch_PathIsConnected(t *testing.T) {
	elevation := pathfinding.NewMatrix(12, 9)
	risk := pathfinding.NewMatrix(12, 9)
	for y := 0; y < 9; y++ {
		for x := 0; x < 12; x++ {
			elevation.Set(x, y, float64((x*7+y*13)%40))
			risk.Set(x, y, float64((x*3+y*5)%10)/10)
		}
	}
	g, err := pathfinding.NewGrid(elevation, risk, pathfinding.NewResolution(5, 5))
	require.NoError(t, err)

	for _, w := range []float64{0, 0.25, 0.5, 0.75, 1} {
		res, err := pathfinding.Search(context.Background(), g, pathfinding.Index{X: 1, Y: 7}, pathfinding.Index{X: 10, Y: 1}, w)
		require.NoError(t, err)

		path := res.Path()
		require.NotEmpty(t, path)
		assert.Equal(t, pathfinding.Index{X: 1, Y: 7}, path[0])
		assert.Equal(t, pathfinding.Index{X: 10, Y: 1}, path[len(path)-1])
		for i := 1; i < len(path); i++ {
			dx, dy := path[i].X-path[i-1].X, path[i].Y-path[i-1].Y
			assert.True(t, dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1 && (dx != 0 || dy != 0),
				"step %d of w=%.2f is not a neighbour move: %v -> %v", i, w, path[i-1], path[i])
		}
	}
}
