package pathfinding_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icydoge/avaroute/internal/core/domain"
	"github.com/icydoge/avaroute/internal/core/pathfinding"
)

func TestDownsampleFactors(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          pathfinding.Factors
	}{
		{"single cell", 1, 1, pathfinding.Factors{X: 1, Y: 1}},
		{"at target", 51, 51, pathfinding.Factors{X: 1, Y: 1}},
		{"one over target", 52, 10, pathfinding.Factors{X: 2, Y: 1}},
		{"tall", 10, 160, pathfinding.Factors{X: 1, Y: 4}},
		{"large", 1001, 501, pathfinding.Factors{X: 21, Y: 11}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pathfinding.DownsampleFactors(tt.width, tt.height)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDownsampleFactors_GridTooLargeBoundary(t *testing.T) {
	// Spans of 100000 on both axes sit exactly at the limit.
	_, err := pathfinding.DownsampleFactors(100001, 100001)
	require.NoError(t, err)

	_, err = pathfinding.DownsampleFactors(100002, 100001)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGridTooLarge)

	_, err = pathfinding.DownsampleFactors(300000, 2)
	assert.ErrorIs(t, err, domain.ErrGridTooLarge)
}

func sampleTriple(t *testing.T, width, height int) pathfinding.RasterTriple {
	t.Helper()
	elev := make([][]float64, height)
	aspect := make([][]float64, height)
	risk := make([][]float64, height)
	for y := 0; y < height; y++ {
		elev[y] = make([]float64, width)
		aspect[y] = make([]float64, width)
		risk[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			elev[y][x] = float64((x*31 + y*17) % 97)
			aspect[y][x] = float64((x*45 + y*10) % 360)
			risk[y][x] = float64((x*7+y*3)%11) / 10
		}
	}
	tr, err := pathfinding.NewRasterTriple(elev, aspect, risk)
	require.NoError(t, err)
	return tr
}

func TestDownsample_IdempotentOnSmallGrids(t *testing.T) {
	tr := sampleTriple(t, 40, 51)

	f, err := pathfinding.DownsampleFactors(tr.Width(), tr.Height())
	require.NoError(t, err)
	require.True(t, f.Identity())

	out := pathfinding.Downsample(tr, f, pathfinding.AspectLinearMean)
	assert.Equal(t, tr.Elevation.Rows(), out.Elevation.Rows())
	assert.Equal(t, tr.Aspect.Rows(), out.Aspect.Rows())
	assert.Equal(t, tr.Risk.Rows(), out.Risk.Rows())
}

func TestBlockMax_IsExactBlockMaximum(t *testing.T) {
	tr := sampleTriple(t, 23, 17)
	f := pathfinding.Factors{X: 4, Y: 3}

	out := pathfinding.BlockMax(tr.Elevation, f)
	require.Equal(t, 6, out.Width)
	require.Equal(t, 6, out.Height)

	for by := 0; by < out.Height; by++ {
		for bx := 0; bx < out.Width; bx++ {
			want := math.Inf(-1)
			for y := by * f.Y; y < (by+1)*f.Y && y < tr.Height(); y++ {
				for x := bx * f.X; x < (bx+1)*f.X && x < tr.Width(); x++ {
					want = math.Max(want, tr.Elevation.At(x, y))
				}
			}
			assert.Equal(t, want, out.At(bx, by), "block (%d, %d)", bx, by)
		}
	}
}

func TestBlockMean_PartialEdgeBlocks(t *testing.T) {
	m, err := pathfinding.MatrixFromRows([][]float64{
		{1, 3, 5},
		{3, 5, 7},
	})
	require.NoError(t, err)

	out := pathfinding.BlockMean(m, pathfinding.Factors{X: 2, Y: 2})
	assert.Equal(t, [][]float64{{3, 6}}, out.Rows())
}

func TestBlockCircularMean(t *testing.T) {
	m, err := pathfinding.MatrixFromRows([][]float64{
		{350, 10, 90, 270, -1, -1},
	})
	require.NoError(t, err)

	out := pathfinding.BlockCircularMean(m, pathfinding.Factors{X: 2, Y: 1})
	require.Equal(t, 3, out.Width)

	got := out.At(0, 0)
	assert.True(t, got < 1e-6 || got > 360-1e-6, "350° and 10° average to north, got %v", got)
	assert.Equal(t, domain.AspectInvalid, out.At(1, 0), "opposite aspects cancel")
	assert.Equal(t, domain.AspectInvalid, out.At(2, 0), "no valid aspect")
}

func TestDownsample_ReducesAllLayers(t *testing.T) {
	tr := sampleTriple(t, 120, 60)
	f, err := pathfinding.DownsampleFactors(tr.Width(), tr.Height())
	require.NoError(t, err)
	require.Equal(t, pathfinding.Factors{X: 3, Y: 2}, f)

	out := pathfinding.Downsample(tr, f, pathfinding.AspectCircularMean)
	assert.Equal(t, 40, out.Width())
	assert.Equal(t, 30, out.Height())
	assert.True(t, out.Elevation.SameShape(out.Aspect))
	assert.True(t, out.Elevation.SameShape(out.Risk))
}

func TestFactors_ReduceClamps(t *testing.T) {
	f := pathfinding.Factors{X: 3, Y: 2}

	assert.Equal(t, pathfinding.Index{X: 2, Y: 1}, f.Reduce(pathfinding.Index{X: 7, Y: 3}, 10, 10))
	assert.Equal(t, pathfinding.Index{X: 4, Y: 2}, f.Reduce(pathfinding.Index{X: 14, Y: 9}, 5, 3))
	assert.Equal(t, pathfinding.Index{X: 6, Y: 4}, f.Expand(pathfinding.Index{X: 2, Y: 2}))
}
