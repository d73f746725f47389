// Package raster serves georeferenced raster layers (elevation, aspect,
// static risk) from memory. Layers are persisted as Parquet cell tables and
// loaded once at startup; a loaded Grid is read-only and safe for
// concurrent use.
package raster

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/icydoge/avaroute/internal/core/domain"
	"github.com/icydoge/avaroute/internal/core/ports"
)

var (
	// ErrOutOfCoverage indicates a window or point that is not entirely
	// inside the raster.
	ErrOutOfCoverage = errors.New("raster: outside coverage")
	// ErrNoData indicates a window that contains nodata cells.
	ErrNoData = errors.New("raster: window contains nodata cells")
	// ErrBadGeoTransform indicates a non-positive pixel size.
	ErrBadGeoTransform = errors.New("raster: pixel size must be positive")
)

// GeoTransform places a north-up raster on WGS 84 coordinates.
type GeoTransform struct {
	OriginLon   float64 // west edge of column 0
	OriginLat   float64 // north edge of row 0
	PixelWidth  float64 // degrees of longitude per column
	PixelHeight float64 // degrees of latitude per row; rows grow south
}

// Validate checks the pixel size.
func (t GeoTransform) Validate() error {
	if !(t.PixelWidth > 0) || !(t.PixelHeight > 0) {
		return fmt.Errorf("%w: %vx%v", ErrBadGeoTransform, t.PixelWidth, t.PixelHeight)
	}
	return nil
}

func (t GeoTransform) col(lon float64) int { return int(math.Floor((lon - t.OriginLon) / t.PixelWidth)) }
func (t GeoTransform) row(lat float64) int { return int(math.Floor((t.OriginLat - lat) / t.PixelHeight)) }

var _ ports.RasterSource = (*Grid)(nil)

// Grid is one in-memory raster layer. Cells equal to NoData, and NaN
// cells, are missing.
type Grid struct {
	GeoTransform
	Width  int
	Height int
	NoData float64
	data   []float64
}

// NewGrid wraps row-major values of a width×height raster. Only NaN cells
// count as missing until NoData is set.
func NewGrid(t GeoTransform, width, height int, values []float64) (*Grid, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 || len(values) != width*height {
		return nil, fmt.Errorf("raster: %d values do not fill %dx%d", len(values), width, height)
	}
	return &Grid{GeoTransform: t, Width: width, Height: height, NoData: math.NaN(), data: values}, nil
}

func (g *Grid) missing(v float64) bool { return v == g.NoData || math.IsNaN(v) }

// At returns the value of column x, row y.
func (g *Grid) At(x, y int) float64 { return g.data[y*g.Width+x] }

// window is the cell range a GeoWindow covers, bounds inclusive.
type window struct {
	x0, y0, x1, y1 int
}

func (w window) width() int  { return w.x1 - w.x0 + 1 }
func (w window) height() int { return w.y1 - w.y0 + 1 }

// cover returns the cells of gw. A window reaching past any raster edge is
// ErrOutOfCoverage; it is never cut down to the covered part.
func (g *Grid) cover(gw domain.GeoWindow) (window, error) {
	b := gw.Bounds()
	w := window{
		x0: g.col(b.MinLon),
		x1: g.col(b.MaxLon),
		y0: g.row(b.MaxLat),
		y1: g.row(b.MinLat),
	}
	if w.x0 < 0 || w.y0 < 0 || w.x1 >= g.Width || w.y1 >= g.Height {
		return window{}, fmt.Errorf("%w: window %.5f,%.5f %.5f,%.5f",
			ErrOutOfCoverage, gw.Lon0, gw.Lat0, gw.Lon1, gw.Lat1)
	}
	return w, nil
}

// ReadWindow returns a copy of the cells covering gw as rows[y][x]. Corner
// order of gw does not matter. Windows with missing cells are ErrNoData.
func (g *Grid) ReadWindow(ctx context.Context, gw domain.GeoWindow) ([][]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w, err := g.cover(gw)
	if err != nil {
		return nil, err
	}

	rows := make([][]float64, w.height())
	for y := range rows {
		start := (w.y0+y)*g.Width + w.x0
		rows[y] = make([]float64, w.width())
		copy(rows[y], g.data[start:start+w.width()])
		for x, v := range rows[y] {
			if g.missing(v) {
				return nil, fmt.Errorf("%w: cell (%d,%d)", ErrNoData, w.x0+x, w.y0+y)
			}
		}
	}
	return rows, nil
}

// LocateIndex returns the (x, y) cell of p relative to the window's first
// cell. A point outside the window is ErrOutOfCoverage.
func (g *Grid) LocateIndex(gw domain.GeoWindow, p domain.GeoPoint) (int, int, error) {
	w, err := g.cover(gw)
	if err != nil {
		return 0, 0, err
	}
	col, row := g.col(p.Lon), g.row(p.Lat)
	if col < w.x0 || col > w.x1 || row < w.y0 || row > w.y1 {
		return 0, 0, fmt.Errorf("%w: point %.5f,%.5f", ErrOutOfCoverage, p.Lon, p.Lat)
	}
	return col - w.x0, row - w.y0, nil
}

// IndexToCoordinate returns the centre of cell (x, y) of the window.
func (g *Grid) IndexToCoordinate(gw domain.GeoWindow, x, y int) (domain.GeoPoint, error) {
	w, err := g.cover(gw)
	if err != nil {
		return domain.GeoPoint{}, err
	}
	if x < 0 || y < 0 || x >= w.width() || y >= w.height() {
		return domain.GeoPoint{}, fmt.Errorf("%w: index (%d,%d) of %dx%d window", ErrOutOfCoverage, x, y, w.width(), w.height())
	}
	return domain.GeoPoint{
		Lon: g.OriginLon + (float64(w.x0+x)+0.5)*g.PixelWidth,
		Lat: g.OriginLat - (float64(w.y0+y)+0.5)*g.PixelHeight,
	}, nil
}
