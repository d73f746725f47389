package raster

import (
	"fmt"
	"log/slog"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"
)

// Cell is one stored raster value. Layers are written as a flat table of
// cells; cells absent from the table read as nodata.
type Cell struct {
	X     int32   `parquet:"name=x, type=INT32"`
	Y     int32   `parquet:"name=y, type=INT32"`
	Value float64 `parquet:"name=value, type=DOUBLE"`
}

const (
	parquetParallelism = 4
	readChunk          = 1 << 16
)

// WriteParquet stores every cell of g whose value is not nodata, plus the
// bottom-right cell.
func WriteParquet(path string, g *Grid, nodata float64) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer fw.Close()

	pw, err := writer.NewParquetWriter(fw, new(Cell), parquetParallelism)
	if err != nil {
		return fmt.Errorf("parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	written := 0
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			v := g.At(x, y)
			// The last cell is always kept so the extent survives a reload.
			if v == nodata && (x != g.Width-1 || y != g.Height-1) {
				continue
			}
			if err := pw.Write(Cell{X: int32(x), Y: int32(y), Value: v}); err != nil {
				return fmt.Errorf("write cell (%d,%d): %w", x, y, err)
			}
			written++
		}
	}
	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("finalize %s: %w", path, err)
	}

	slog.Info("raster layer written", "path", path, "width", g.Width, "height", g.Height, "cells", written)
	return nil
}

// LoadParquet reads a cell table written by WriteParquet. The raster extent
// is the bounding box of the stored cells.
func LoadParquet(path string, t GeoTransform, nodata float64) (*Grid, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(Cell), parquetParallelism)
	if err != nil {
		return nil, fmt.Errorf("parquet reader: %w", err)
	}
	defer pr.ReadStop()

	total := int(pr.GetNumRows())
	if total == 0 {
		return nil, fmt.Errorf("raster %s: no cells", path)
	}
	cells := make([]Cell, 0, total)
	for len(cells) < total {
		chunk := make([]Cell, min(readChunk, total-len(cells)))
		if err := pr.Read(&chunk); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		cells = append(cells, chunk...)
	}

	g, err := gridFromCells(t, cells, nodata)
	if err != nil {
		return nil, fmt.Errorf("raster %s: %w", path, err)
	}
	slog.Info("raster layer loaded", "path", path, "width", g.Width, "height", g.Height, "cells", total)
	return g, nil
}

func gridFromCells(t GeoTransform, cells []Cell, nodata float64) (*Grid, error) {
	var width, height int
	for _, c := range cells {
		if c.X < 0 || c.Y < 0 {
			return nil, fmt.Errorf("negative cell index (%d,%d)", c.X, c.Y)
		}
		width = max(width, int(c.X)+1)
		height = max(height, int(c.Y)+1)
	}

	values := make([]float64, width*height)
	for i := range values {
		values[i] = nodata
	}
	for _, c := range cells {
		values[int(c.Y)*width+int(c.X)] = c.Value
	}
	g, err := NewGrid(t, width, height, values)
	if err != nil {
		return nil, err
	}
	g.NoData = nodata
	return g, nil
}
