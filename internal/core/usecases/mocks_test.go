package usecases_test

import (
	"context"
	"time"

	"github.com/icydoge/avaroute/internal/core/domain"
	"github.com/icydoge/avaroute/internal/core/ports"
)

// --- Mock ForecastRepository ---

type mockForecastRepo struct {
	findLocationIDFn   func(ctx context.Context, name string) (int, bool, error)
	latestForecastsFn  func(ctx context.Context, id int) ([]domain.ForecastRecord, error)
	forecastsForDateFn func(ctx context.Context, id int, date time.Time) ([]domain.ForecastRecord, error)
	forecastDatesFn    func(ctx context.Context, id int, limit int) ([]time.Time, error)
	calls              int
}

func (m *mockForecastRepo) FindLocationID(ctx context.Context, name string) (int, bool, error) {
	m.calls++
	if m.findLocationIDFn != nil {
		return m.findLocationIDFn(ctx, name)
	}
	return 1, true, nil
}

func (m *mockForecastRepo) LatestForecasts(ctx context.Context, id int) ([]domain.ForecastRecord, error) {
	m.calls++
	if m.latestForecastsFn != nil {
		return m.latestForecastsFn(ctx, id)
	}
	return nil, nil
}

func (m *mockForecastRepo) ForecastsForDate(ctx context.Context, id int, date time.Time) ([]domain.ForecastRecord, error) {
	m.calls++
	if m.forecastsForDateFn != nil {
		return m.forecastsForDateFn(ctx, id, date)
	}
	return nil, nil
}

func (m *mockForecastRepo) ForecastDates(ctx context.Context, id int, limit int) ([]time.Time, error) {
	m.calls++
	if m.forecastDatesFn != nil {
		return m.forecastDatesFn(ctx, id, limit)
	}
	return nil, nil
}

// --- Mock LocationResolver ---

type mockResolver struct {
	name  string
	calls int
}

func (m *mockResolver) LocationName(ctx context.Context, p domain.GeoPoint) (string, error) {
	m.calls++
	return m.name, nil
}

// --- Mock RasterSource ---

// mockRaster serves fixed rows. Points are located through the index map;
// indices map back to GeoPoint{Lon: x, Lat: y}.
type mockRaster struct {
	rows  [][]float64
	index map[domain.GeoPoint][2]int
	reads int
}

func (m *mockRaster) ReadWindow(ctx context.Context, w domain.GeoWindow) ([][]float64, error) {
	m.reads++
	return m.rows, nil
}

func (m *mockRaster) LocateIndex(w domain.GeoWindow, p domain.GeoPoint) (int, int, error) {
	xy := m.index[p]
	return xy[0], xy[1], nil
}

func (m *mockRaster) IndexToCoordinate(w domain.GeoWindow, x, y int) (domain.GeoPoint, error) {
	return domain.GeoPoint{Lon: float64(x), Lat: float64(y)}, nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	events []*domain.RouteComputed
}

func (m *mockPublisher) PublishRouteComputed(ctx context.Context, event *domain.RouteComputed) error {
	m.events = append(m.events, event)
	return nil
}

// --- Mock CacheService ---

type mockCache struct {
	data map[string][]byte
}

func newMockCache() *mockCache { return &mockCache{data: map[string][]byte{}} }

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, ports.ErrCacheMiss
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	m.data[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

// --- Mock AvalancheRepository ---

type mockAvalancheRepo struct {
	pastAvalanchesFn func(ctx context.Context, start, end time.Time) ([]domain.PastAvalanche, error)
}

func (m *mockAvalancheRepo) PastAvalanches(ctx context.Context, start, end time.Time) ([]domain.PastAvalanche, error) {
	if m.pastAvalanchesFn != nil {
		return m.pastAvalanchesFn(ctx, start, end)
	}
	return nil, nil
}

// pointRaster answers single-cell reads through readFn.
type pointRaster struct {
	mockRaster
	readFn func(ctx context.Context, w domain.GeoWindow) ([][]float64, error)
}

func (m *pointRaster) ReadWindow(ctx context.Context, w domain.GeoWindow) ([][]float64, error) {
	return m.readFn(ctx, w)
}
