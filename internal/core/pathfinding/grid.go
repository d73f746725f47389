package pathfinding

import (
	"fmt"
	"math"

	"github.com/icydoge/avaroute/internal/core/domain"
)

// NaismithConstant is the ascent penalty per metre of climb, added to the
// flat distance of an edge.
const NaismithConstant = 7.92

// DefaultPixelRes is the ground size of one raster cell in metres.
const DefaultPixelRes = 5.0

// Resolution holds the ground distances of one step along each axis.
type Resolution struct {
	X        float64
	Y        float64
	Diagonal float64
}

// NewResolution derives the diagonal step from the axis steps.
func NewResolution(x, y float64) Resolution {
	return Resolution{X: x, Y: y, Diagonal: math.Sqrt(x*x + y*y)}
}

// Scale multiplies the axis steps by downsampling factors.
func (r Resolution) Scale(f Factors) Resolution {
	return NewResolution(r.X*float64(f.X), r.Y*float64(f.Y))
}

// Range is the (min, max) of a set of values.
type Range struct {
	Min float64
	Max float64
}

func emptyRange() Range { return Range{Min: math.Inf(1), Max: math.Inf(-1)} }

func (r Range) include(v float64) Range {
	return Range{Min: math.Min(r.Min, v), Max: math.Max(r.Max, v)}
}

// Scale maps v linearly so that Min becomes 0 and Max becomes 1. A
// degenerate range (no values, or Max == Min) scales everything to 0.
func (r Range) Scale(v float64) float64 {
	if !(r.Max > r.Min) {
		return 0
	}
	return (v - r.Min) / (r.Max - r.Min)
}

// Edge leads to a neighbouring cell. Raw is the unscaled Naismith distance.
type Edge struct {
	To  Index
	Raw float64
}

// Node is one navigable cell.
type Node struct {
	Elevation float64
	Risk      float64 // normalized to [0, 1] and floored
	Edges     []Edge
}

// neighbourOffsets enumerates the 8 neighbours row by row: NW N NE W E SW S SE.
var neighbourOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Grid is the weighted graph a search runs on. It is immutable once built.
type Grid struct {
	Width    int
	Height   int
	Res      Resolution
	Naismith Range // min and max raw edge distance over the whole grid
	nodes    []Node
}

// NewGrid connects every cell of elevation to its in-bounds neighbours and
// attaches the given normalized risk. The raw Naismith range is folded over
// all edges while they are built.
func NewGrid(elevation, risk Matrix, res Resolution) (*Grid, error) {
	if elevation.Width == 0 || elevation.Height == 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrRasterUnavailable, ErrEmptyGrid)
	}
	if !elevation.SameShape(risk) {
		return nil, fmt.Errorf("%w: %w", domain.ErrRasterUnavailable, ErrShapeMismatch)
	}

	g := &Grid{
		Width:    elevation.Width,
		Height:   elevation.Height,
		Res:      res,
		Naismith: emptyRange(),
		nodes:    make([]Node, elevation.Width*elevation.Height),
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			h := elevation.At(x, y)
			n := &g.nodes[g.index(x, y)]
			n.Elevation = h
			n.Risk = risk.At(x, y)
			n.Edges = make([]Edge, 0, len(neighbourOffsets))
			for _, d := range neighbourOffsets {
				nx, ny := x+d[0], y+d[1]
				if !elevation.InBounds(nx, ny) {
					continue
				}
				var flat float64
				switch {
				case d[0] != 0 && d[1] != 0:
					flat = res.Diagonal
				case d[1] == 0:
					flat = res.X
				default:
					flat = res.Y
				}
				raw := flat + NaismithConstant*math.Max(0, elevation.At(nx, ny)-h)
				g.Naismith = g.Naismith.include(raw)
				n.Edges = append(n.Edges, Edge{To: Index{X: nx, Y: ny}, Raw: raw})
			}
		}
	}

	return g, nil
}

// Node returns the node at i. i must be in bounds.
func (g *Grid) Node(i Index) *Node { return &g.nodes[g.index(i.X, i.Y)] }

// InBounds reports whether i addresses a cell of the grid.
func (g *Grid) InBounds(i Index) bool {
	return i.X >= 0 && i.X < g.Width && i.Y >= 0 && i.Y < g.Height
}

func (g *Grid) index(x, y int) int { return y*g.Width + x }

func (g *Grid) coordinate(i int) Index { return Index{X: i % g.Width, Y: i / g.Width} }
