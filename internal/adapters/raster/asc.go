package raster

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultNoData is the ESRI ASCII nodata value used when a file omits one.
const DefaultNoData = -9999.0

// ASCHeader is the header of an ESRI ASCII grid.
type ASCHeader struct {
	Cols, Rows int
	XLL, YLL   float64 // lower-left corner of the lower-left cell
	CellSize   float64
	NoData     float64
}

// GeoTransform places the grid with row 0 at the top edge. The file must be
// in geographic coordinates.
func (h ASCHeader) GeoTransform() GeoTransform {
	return GeoTransform{
		OriginLon:   h.XLL,
		OriginLat:   h.YLL + float64(h.Rows)*h.CellSize,
		PixelWidth:  h.CellSize,
		PixelHeight: h.CellSize,
	}
}

// ReadASC parses an ESRI ASCII grid. Centre-registered headers
// (xllcenter/yllcenter) are shifted to corner registration.
func ReadASC(r io.Reader) (*Grid, ASCHeader, error) {
	h := ASCHeader{NoData: DefaultNoData}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1<<20), 1<<26)
	sc.Split(bufio.ScanWords)

	var xCentred, yCentred bool
	var values []float64
	seen := map[string]bool{}

	for sc.Scan() {
		tok := sc.Text()
		key := strings.ToLower(tok)
		if values == nil && isHeaderKey(key) {
			if !sc.Scan() {
				return nil, h, fmt.Errorf("asc: missing value for %s", key)
			}
			v, err := strconv.ParseFloat(sc.Text(), 64)
			if err != nil {
				return nil, h, fmt.Errorf("asc: %s: %w", key, err)
			}
			seen[key] = true
			switch key {
			case "ncols":
				h.Cols = int(v)
			case "nrows":
				h.Rows = int(v)
			case "xllcorner":
				h.XLL = v
			case "xllcenter":
				h.XLL, xCentred = v, true
			case "yllcorner":
				h.YLL = v
			case "yllcenter":
				h.YLL, yCentred = v, true
			case "cellsize":
				h.CellSize = v
			case "nodata_value":
				h.NoData = v
			}
			continue
		}

		if values == nil {
			if h.Cols <= 0 || h.Rows <= 0 || !(h.CellSize > 0) {
				return nil, h, fmt.Errorf("asc: incomplete header (ncols=%d nrows=%d cellsize=%v)", h.Cols, h.Rows, h.CellSize)
			}
			values = make([]float64, 0, h.Cols*h.Rows)
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, h, fmt.Errorf("asc: cell %d: %w", len(values), err)
		}
		values = append(values, v)
	}
	if err := sc.Err(); err != nil {
		return nil, h, fmt.Errorf("asc: %w", err)
	}
	if !seen["ncols"] || !seen["nrows"] {
		return nil, h, fmt.Errorf("asc: missing ncols/nrows")
	}
	if len(values) != h.Cols*h.Rows {
		return nil, h, fmt.Errorf("asc: expected %d cells, got %d", h.Cols*h.Rows, len(values))
	}
	if xCentred {
		h.XLL -= h.CellSize / 2
	}
	if yCentred {
		h.YLL -= h.CellSize / 2
	}

	g, err := NewGrid(h.GeoTransform(), h.Cols, h.Rows, values)
	if err != nil {
		return nil, h, err
	}
	g.NoData = h.NoData
	return g, h, nil
}

func isHeaderKey(k string) bool {
	switch k {
	case "ncols", "nrows", "xllcorner", "xllcenter", "yllcorner", "yllcenter", "cellsize", "nodata_value":
		return true
	}
	return false
}
