package pathfinding

import (
	"errors"
	"fmt"

	"github.com/icydoge/avaroute/internal/core/domain"
)

var (
	// ErrEmptyGrid indicates a raster window with no rows or no columns.
	ErrEmptyGrid = errors.New("pathfinding: grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("pathfinding: all rows must have the same length")
	// ErrShapeMismatch indicates layers of one triple with different shapes.
	ErrShapeMismatch = errors.New("pathfinding: raster layers differ in shape")
)

// Index addresses one grid cell: X is the column, Y the row.
type Index struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Matrix is a dense row-major 2D array of float64 addressed by (x, y).
type Matrix struct {
	Width  int
	Height int
	data   []float64
}

// NewMatrix returns a zeroed width×height matrix.
func NewMatrix(width, height int) Matrix {
	return Matrix{Width: width, Height: height, data: make([]float64, width*height)}
}

// MatrixFromRows copies rows[y][x] into a Matrix.
// Returns ErrEmptyGrid or ErrNonRectangular for malformed input.
func MatrixFromRows(rows [][]float64) (Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Matrix{}, ErrEmptyGrid
	}
	h, w := len(rows), len(rows[0])
	m := NewMatrix(w, h)
	for y, row := range rows {
		if len(row) != w {
			return Matrix{}, ErrNonRectangular
		}
		copy(m.data[y*w:(y+1)*w], row)
	}

	return m, nil
}

// At returns the value at column x, row y.
func (m Matrix) At(x, y int) float64 { return m.data[m.index(x, y)] }

// Set stores v at column x, row y.
func (m Matrix) Set(x, y int, v float64) { m.data[m.index(x, y)] = v }

// InBounds reports whether (x, y) lies inside the matrix.
func (m Matrix) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// SameShape reports whether o has the same dimensions as m.
func (m Matrix) SameShape(o Matrix) bool { return m.Width == o.Width && m.Height == o.Height }

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	c := NewMatrix(m.Width, m.Height)
	copy(c.data, m.data)
	return c
}

// Rows returns the matrix as rows[y][x].
func (m Matrix) Rows() [][]float64 {
	rows := make([][]float64, m.Height)
	for y := range rows {
		rows[y] = make([]float64, m.Width)
		copy(rows[y], m.data[y*m.Width:(y+1)*m.Width])
	}
	return rows
}

// Values exposes the row-major backing slice.
func (m Matrix) Values() []float64 { return m.data }

func (m Matrix) index(x, y int) int { return y*m.Width + x }

// RasterTriple holds the three co-registered layers of one search window.
type RasterTriple struct {
	Elevation Matrix // metres
	Aspect    Matrix // degrees clockwise from north, domain.AspectInvalid when flat
	Risk      Matrix // static risk, provider scale
}

// NewRasterTriple validates and copies three raster windows. Any malformed or
// mismatched layer is reported as domain.ErrRasterUnavailable.
func NewRasterTriple(elevation, aspect, risk [][]float64) (RasterTriple, error) {
	var t RasterTriple
	var err error
	if t.Elevation, err = MatrixFromRows(elevation); err != nil {
		return RasterTriple{}, fmt.Errorf("%w: elevation: %w", domain.ErrRasterUnavailable, err)
	}
	if t.Aspect, err = MatrixFromRows(aspect); err != nil {
		return RasterTriple{}, fmt.Errorf("%w: aspect: %w", domain.ErrRasterUnavailable, err)
	}
	if t.Risk, err = MatrixFromRows(risk); err != nil {
		return RasterTriple{}, fmt.Errorf("%w: static risk: %w", domain.ErrRasterUnavailable, err)
	}
	if !t.Elevation.SameShape(t.Aspect) || !t.Elevation.SameShape(t.Risk) {
		return RasterTriple{}, fmt.Errorf("%w: %w: elevation %dx%d, aspect %dx%d, risk %dx%d",
			domain.ErrRasterUnavailable, ErrShapeMismatch,
			t.Elevation.Width, t.Elevation.Height, t.Aspect.Width, t.Aspect.Height, t.Risk.Width, t.Risk.Height)
	}

	return t, nil
}

// Width returns the number of columns shared by all layers.
func (t RasterTriple) Width() int { return t.Elevation.Width }

// Height returns the number of rows shared by all layers.
func (t RasterTriple) Height() int { return t.Elevation.Height }
