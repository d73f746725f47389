package pathfinding

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/icydoge/avaroute/internal/core/domain"
)

const (
	// MaxBeforeDownsampling bounds the half-perimeter of a window, in cells.
	MaxBeforeDownsampling = 100000
	// DownsampleTarget is the span above which an axis gets downsampled.
	DownsampleTarget = 50
)

// Factors are per-axis block sizes of a downsampling.
type Factors struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Identity reports whether the factors leave the grid unchanged.
func (f Factors) Identity() bool { return f.X == 1 && f.Y == 1 }

// Reduce maps a full-resolution index into a grid of the given size
// downsampled by f, clamped to its bounds.
func (f Factors) Reduce(i Index, width, height int) Index {
	return Index{
		X: min(i.X/f.X, width-1),
		Y: min(i.Y/f.Y, height-1),
	}
}

// Expand maps a downsampled index back to full resolution.
func (f Factors) Expand(i Index) Index {
	return Index{X: i.X * f.X, Y: i.Y * f.Y}
}

// DownsampleFactors applies the size guard and returns the block sizes for a
// width×height window. The span of an axis is its largest index (cells − 1).
// A window whose average span exceeds MaxBeforeDownsampling is rejected with
// domain.ErrGridTooLarge; an axis whose span exceeds DownsampleTarget gets a
// factor of span/DownsampleTarget + 1.
func DownsampleFactors(width, height int) (Factors, error) {
	xMax, yMax := width-1, height-1
	if float64(xMax+yMax)/2 > MaxBeforeDownsampling {
		return Factors{}, fmt.Errorf("%w: %dx%d cells exceeds half-perimeter limit %d",
			domain.ErrGridTooLarge, width, height, MaxBeforeDownsampling)
	}

	f := Factors{X: 1, Y: 1}
	if xMax > DownsampleTarget {
		f.X = xMax/DownsampleTarget + 1
	}
	if yMax > DownsampleTarget {
		f.Y = yMax/DownsampleTarget + 1
	}
	return f, nil
}

// AspectReduction selects how aspect blocks are aggregated.
type AspectReduction int

const (
	// AspectLinearMean averages raw degrees, sentinels included.
	AspectLinearMean AspectReduction = iota
	// AspectCircularMean averages valid aspects as unit vectors.
	AspectCircularMean
)

// Downsample block-reduces a triple: elevation and risk by block maximum,
// aspect by block mean. Identity factors return t unchanged.
func Downsample(t RasterTriple, f Factors, aspect AspectReduction) RasterTriple {
	if f.Identity() {
		return t
	}
	out := RasterTriple{
		Elevation: BlockMax(t.Elevation, f),
		Risk:      BlockMax(t.Risk, f),
	}
	if aspect == AspectCircularMean {
		out.Aspect = BlockCircularMean(t.Aspect, f)
	} else {
		out.Aspect = BlockMean(t.Aspect, f)
	}
	return out
}

// reduceBlocks applies fn to the values of every f.X×f.Y block of m. Edge
// blocks that are cut by the matrix border only see the cells that exist.
func reduceBlocks(m Matrix, f Factors, fn func(block []float64) float64) Matrix {
	w := (m.Width + f.X - 1) / f.X
	h := (m.Height + f.Y - 1) / f.Y
	out := NewMatrix(w, h)
	block := make([]float64, 0, f.X*f.Y)
	for by := 0; by < h; by++ {
		for bx := 0; bx < w; bx++ {
			block = block[:0]
			for y := by * f.Y; y < min((by+1)*f.Y, m.Height); y++ {
				for x := bx * f.X; x < min((bx+1)*f.X, m.Width); x++ {
					block = append(block, m.At(x, y))
				}
			}
			out.Set(bx, by, fn(block))
		}
	}
	return out
}

// BlockMax reduces each block to its exact maximum.
func BlockMax(m Matrix, f Factors) Matrix {
	return reduceBlocks(m, f, floats.Max)
}

// BlockMean reduces each block to its arithmetic mean.
func BlockMean(m Matrix, f Factors) Matrix {
	return reduceBlocks(m, f, func(block []float64) float64 {
		return floats.Sum(block) / float64(len(block))
	})
}

// BlockCircularMean reduces each block of aspects to the direction of the
// mean unit vector of its valid cells. Blocks with no valid cell, or whose
// directions cancel out, become domain.AspectInvalid.
func BlockCircularMean(m Matrix, f Factors) Matrix {
	return reduceBlocks(m, f, func(block []float64) float64 {
		var s, c float64
		var n int
		for _, b := range block {
			if b < 0 || b > 360 {
				continue
			}
			rad := b * math.Pi / 180
			s += math.Sin(rad)
			c += math.Cos(rad)
			n++
		}
		if n == 0 || math.Hypot(s, c) < 1e-9*float64(n) {
			return domain.AspectInvalid
		}
		deg := math.Atan2(s, c) * 180 / math.Pi
		if deg < 0 {
			deg += 360
		}
		return deg
	})
}
