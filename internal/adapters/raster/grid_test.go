package raster

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/icydoge/avaroute/internal/core/domain"
	"github.com/icydoge/avaroute/internal/core/pathfinding"
)

// testGrid is a 4x3 raster with 0.1 degree pixels whose north-west corner
// is at (-5, 57). Cell values are y*10+x.
func testGrid(t *testing.T) *Grid {
	t.Helper()
	values := make([]float64, 12)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			values[y*4+x] = float64(y*10 + x)
		}
	}
	g, err := NewGrid(GeoTransform{OriginLon: -5, OriginLat: 57, PixelWidth: 0.1, PixelHeight: 0.1}, 4, 3, values)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return g
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestGrid_ReadWindow(t *testing.T) {
	g := testGrid(t)
	// Covers columns 1..2 and rows 0..1; corners given south-east first.
	w := domain.GeoWindow{Lon0: -4.75, Lat0: 56.85, Lon1: -4.85, Lat1: 56.95}

	rows, err := g.ReadWindow(context.Background(), w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]float64{{1, 2}, {11, 12}}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for y := range want {
		for x := range want[y] {
			if rows[y][x] != want[y][x] {
				t.Errorf("cell (%d,%d): expected %v, got %v", x, y, want[y][x], rows[y][x])
			}
		}
	}

	rows[0][0] = 99
	if g.At(1, 0) != 1 {
		t.Error("ReadWindow must return a copy")
	}
}

// A degenerate window reads the single cell under the point, which is how
// avalanche heights are looked up.
func TestGrid_ReadWindow_Point(t *testing.T) {
	g := testGrid(t)
	p := domain.GeoPoint{Lon: -4.72, Lat: 56.88}

	rows, err := g.ReadWindow(context.Background(), domain.GeoWindow{Lon0: p.Lon, Lat0: p.Lat, Lon1: p.Lon, Lat1: p.Lat})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || len(rows[0]) != 1 || rows[0][0] != 12 {
		t.Errorf("expected [[12]], got %v", rows)
	}
}

func TestGrid_ReadWindow_PartialCoverage(t *testing.T) {
	g := testGrid(t)
	// Reaches past the west and north edges.
	w := domain.GeoWindow{Lon0: -6, Lat0: 58, Lon1: -4.65, Lat1: 56.75}

	if _, err := g.ReadWindow(context.Background(), w); !errors.Is(err, ErrOutOfCoverage) {
		t.Fatalf("expected ErrOutOfCoverage, got %v", err)
	}
}

func TestGrid_ReadWindow_NoData(t *testing.T) {
	g := testGrid(t)
	g.NoData = -9999
	g.data[1*4+2] = -9999

	_, err := g.ReadWindow(context.Background(), domain.GeoWindow{Lon0: -4.85, Lat0: 56.95, Lon1: -4.65, Lat1: 56.75})
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}

	// A window that avoids the missing cell still reads.
	if _, err := g.ReadWindow(context.Background(), domain.GeoWindow{Lon0: -4.95, Lat0: 56.95, Lon1: -4.85, Lat1: 56.85}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGrid_ReadWindow_Errors(t *testing.T) {
	g := testGrid(t)

	_, err := g.ReadWindow(context.Background(), domain.GeoWindow{Lon0: 1, Lat0: 50, Lon1: 2, Lat1: 51})
	if !errors.Is(err, ErrOutOfCoverage) {
		t.Errorf("expected ErrOutOfCoverage, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = g.ReadWindow(ctx, domain.GeoWindow{Lon0: -4.95, Lat0: 56.95, Lon1: -4.85, Lat1: 56.85})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestGrid_LocateAndMapBack(t *testing.T) {
	g := testGrid(t)
	w := domain.GeoWindow{Lon0: -4.85, Lat0: 56.95, Lon1: -4.65, Lat1: 56.75}

	x, y, err := g.LocateIndex(w, domain.GeoPoint{Lon: -4.72, Lat: 56.88})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Absolute cell (2,1), window starts at column 1 row 0.
	if x != 1 || y != 1 {
		t.Errorf("expected (1,1), got (%d,%d)", x, y)
	}

	p, err := g.IndexToCoordinate(w, x, y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approx(p.Lon, -4.75) || !approx(p.Lat, 56.85) {
		t.Errorf("expected centre (-4.75, 56.85), got (%v, %v)", p.Lon, p.Lat)
	}

	// Inside the raster but west of the window.
	if _, _, err := g.LocateIndex(w, domain.GeoPoint{Lon: -4.95, Lat: 56.88}); !errors.Is(err, ErrOutOfCoverage) {
		t.Errorf("expected ErrOutOfCoverage for a point outside the window, got %v", err)
	}
	if _, _, err := g.LocateIndex(w, domain.GeoPoint{Lon: -10, Lat: 0}); !errors.Is(err, ErrOutOfCoverage) {
		t.Errorf("expected ErrOutOfCoverage for a point outside the raster, got %v", err)
	}
	if _, err := g.IndexToCoordinate(w, 3, 0); !errors.Is(err, ErrOutOfCoverage) {
		t.Errorf("expected ErrOutOfCoverage for an index past the window, got %v", err)
	}
}

func TestNewGrid_Invalid(t *testing.T) {
	if _, err := NewGrid(GeoTransform{PixelWidth: 0, PixelHeight: 1}, 1, 1, []float64{0}); !errors.Is(err, ErrBadGeoTransform) {
		t.Errorf("expected ErrBadGeoTransform, got %v", err)
	}
	if _, err := NewGrid(GeoTransform{PixelWidth: 1, PixelHeight: 1}, 2, 2, []float64{0}); err == nil {
		t.Error("expected error for short value slice")
	}
}

func TestCoRegistered(t *testing.T) {
	a, b := testGrid(t), testGrid(t)
	if err := coRegistered(a, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	shifted := testGrid(t)
	shifted.OriginLon += 0.1
	if err := coRegistered(a, b, shifted); err == nil {
		t.Error("expected error for shifted layer")
	}
}

// flatLayers is a 20x20 raster set with 0.001 degree pixels whose north-west
// corner is at (-5, 57).
func flatLayers(t *testing.T) pathfinding.Layers {
	t.Helper()
	tr := GeoTransform{OriginLon: -5, OriginLat: 57, PixelWidth: 0.001, PixelHeight: 0.001}
	layer := func(v float64) *Grid {
		values := make([]float64, 400)
		for i := range values {
			values[i] = v
		}
		g, err := NewGrid(tr, 20, 20, values)
		if err != nil {
			t.Fatalf("NewGrid: %v", err)
		}
		return g
	}
	return pathfinding.Layers{Elevation: layer(300), Aspect: layer(0), Risk: layer(1)}
}

func TestSolve_GoalOutsideRaster(t *testing.T) {
	from := domain.GeoPoint{Lon: -4.9995, Lat: 56.9995}
	to := domain.GeoPoint{Lon: -4.90, Lat: 56.90}

	sol, err := pathfinding.Solve(context.Background(), pathfinding.Problem{
		Window:   domain.WindowBetween(from, to),
		From:     from,
		To:       to,
		Weighing: 0.5,
		Layers:   flatLayers(t),
	})
	if !errors.Is(err, domain.ErrRasterUnavailable) {
		t.Fatalf("expected ErrRasterUnavailable, got %v (solution %+v)", err, sol)
	}
	if !errors.Is(err, ErrOutOfCoverage) {
		t.Errorf("expected ErrOutOfCoverage in the chain, got %v", err)
	}
}

func TestSolve_InsideRaster(t *testing.T) {
	from := domain.GeoPoint{Lon: -4.9995, Lat: 56.9995}
	to := domain.GeoPoint{Lon: -4.9905, Lat: 56.9905}

	sol, err := pathfinding.Solve(context.Background(), pathfinding.Problem{
		Window:   domain.WindowBetween(from, to),
		From:     from,
		To:       to,
		Weighing: 0.5,
		Layers:   flatLayers(t),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := sol.Waypoints[len(sol.Waypoints)-1]
	if !approx(last.Lon, -4.9905) || !approx(last.Lat, 56.9905) {
		t.Errorf("expected route to end at (-4.9905, 56.9905), got (%v, %v)", last.Lon, last.Lat)
	}
}
