package raster

import (
	"path/filepath"
	"strings"
	"testing"
)

const sampleASC = `ncols 3
nrows 2
xllcorner -5.0
yllcorner 56.8
cellsize 0.1
NODATA_value -9999
1 2 3
4 -9999 6
`

func TestReadASC(t *testing.T) {
	g, h, err := ReadASC(strings.NewReader(sampleASC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Width != 3 || g.Height != 2 {
		t.Fatalf("expected 3x2, got %dx%d", g.Width, g.Height)
	}
	if h.NoData != -9999 {
		t.Errorf("expected nodata -9999, got %v", h.NoData)
	}
	if !approx(g.OriginLat, 57.0) || !approx(g.OriginLon, -5.0) {
		t.Errorf("expected origin (-5, 57), got (%v, %v)", g.OriginLon, g.OriginLat)
	}
	if g.At(2, 0) != 3 || g.At(0, 1) != 4 {
		t.Errorf("unexpected cell values: %v %v", g.At(2, 0), g.At(0, 1))
	}
}

func TestReadASC_Centred(t *testing.T) {
	src := strings.Replace(sampleASC, "xllcorner -5.0", "xllcenter -4.95", 1)
	g, _, err := ReadASC(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approx(g.OriginLon, -5.0) || !approx(g.OriginLat, 57.0) {
		t.Errorf("expected origin (-5, 57), got (%v, %v)", g.OriginLon, g.OriginLat)
	}
}

func TestReadASC_Errors(t *testing.T) {
	tests := map[string]string{
		"short body":     strings.TrimSuffix(sampleASC, "6\n"),
		"bad value":      strings.Replace(sampleASC, "1 2 3", "1 x 3", 1),
		"missing header": "1 2 3\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			if _, _, err := ReadASC(strings.NewReader(src)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParquetRoundTrip(t *testing.T) {
	g, h, err := ReadASC(strings.NewReader(sampleASC))
	if err != nil {
		t.Fatalf("ReadASC: %v", err)
	}
	path := filepath.Join(t.TempDir(), "elevation.parquet")

	if err := WriteParquet(path, g, h.NoData); err != nil {
		t.Fatalf("WriteParquet: %v", err)
	}
	loaded, err := LoadParquet(path, h.GeoTransform(), h.NoData)
	if err != nil {
		t.Fatalf("LoadParquet: %v", err)
	}
	if loaded.Width != g.Width || loaded.Height != g.Height {
		t.Fatalf("expected %dx%d, got %dx%d", g.Width, g.Height, loaded.Width, loaded.Height)
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if loaded.At(x, y) != g.At(x, y) {
				t.Errorf("cell (%d,%d): expected %v, got %v", x, y, g.At(x, y), loaded.At(x, y))
			}
		}
	}
}
