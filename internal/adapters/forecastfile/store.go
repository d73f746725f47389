// Package forecastfile reads avalanche forecasts from a JSON file into an
// in-memory store. It backs offline runs of the path finder and seeds the
// database.
package forecastfile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/icydoge/avaroute/internal/core/domain"
	"github.com/icydoge/avaroute/internal/core/ports"
)

var _ ports.ForecastRepository = (*Store)(nil)

// Entry is one forecast of a file. Locations are named; IDs are assigned in
// order of first appearance.
type Entry struct {
	Location             string `json:"location"`
	Date                 string `json:"date"`
	Direction            string `json:"direction"`
	LowerBoundary        int    `json:"lower_boundary"`
	MiddleBoundary       int    `json:"middle_boundary"`
	UpperBoundary        int    `json:"upper_boundary"`
	LowerPrimaryColour   int    `json:"lower_primary_colour"`
	LowerSecondaryColour int    `json:"lower_secondary_colour"`
	UpperPrimaryColour   int    `json:"upper_primary_colour"`
	UpperSecondaryColour int    `json:"upper_secondary_colour"`
}

// Store holds forecasts grouped by location. It is read-only after Load.
type Store struct {
	names     []string // by ID-1
	ids       map[string]int
	forecasts map[int][]domain.ForecastRecord
}

// Open loads a forecast file.
func Open(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Load decodes a JSON array of entries.
func Load(r io.Reader) (*Store, error) {
	var entries []Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	s := &Store{ids: map[string]int{}, forecasts: map[int][]domain.ForecastRecord{}}
	for i, e := range entries {
		if e.Location == "" {
			return nil, fmt.Errorf("entry %d: location is required", i)
		}
		date, err := time.Parse(domain.DateLayout, e.Date)
		if err != nil {
			return nil, fmt.Errorf("entry %d: date %q: %w", i, e.Date, err)
		}
		facing := domain.Octant(e.Direction)
		if !facing.Valid() {
			return nil, fmt.Errorf("entry %d: unknown direction %q", i, e.Direction)
		}

		id, ok := s.ids[e.Location]
		if !ok {
			s.names = append(s.names, e.Location)
			id = len(s.names)
			s.ids[e.Location] = id
		}
		s.forecasts[id] = append(s.forecasts[id], domain.ForecastRecord{
			LocationID:           id,
			Date:                 date,
			Facing:               facing,
			LowerBoundary:        e.LowerBoundary,
			MiddleBoundary:       e.MiddleBoundary,
			UpperBoundary:        e.UpperBoundary,
			LowerPrimaryColour:   domain.DangerCode(e.LowerPrimaryColour),
			LowerSecondaryColour: domain.DangerCode(e.LowerSecondaryColour),
			UpperPrimaryColour:   domain.DangerCode(e.UpperPrimaryColour),
			UpperSecondaryColour: domain.DangerCode(e.UpperSecondaryColour),
		})
	}
	return s, nil
}

// Locations returns the location names in file order.
func (s *Store) Locations() []string {
	return append([]string(nil), s.names...)
}

// All returns every forecast of a location.
func (s *Store) All(name string) []domain.ForecastRecord {
	return append([]domain.ForecastRecord(nil), s.forecasts[s.ids[name]]...)
}

func (s *Store) FindLocationID(_ context.Context, name string) (int, bool, error) {
	id, ok := s.ids[name]
	return id, ok, nil
}

func (s *Store) LatestForecasts(ctx context.Context, locationID int) ([]domain.ForecastRecord, error) {
	var latest time.Time
	for _, f := range s.forecasts[locationID] {
		if f.Date.After(latest) {
			latest = f.Date
		}
	}
	if latest.IsZero() {
		return nil, nil
	}
	return s.ForecastsForDate(ctx, locationID, latest)
}

func (s *Store) ForecastsForDate(_ context.Context, locationID int, date time.Time) ([]domain.ForecastRecord, error) {
	var out []domain.ForecastRecord
	for _, f := range s.forecasts[locationID] {
		if f.Date.Equal(date) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *Store) ForecastDates(_ context.Context, locationID int, limit int) ([]time.Time, error) {
	seen := map[time.Time]bool{}
	var dates []time.Time
	for _, f := range s.forecasts[locationID] {
		if !seen[f.Date] {
			seen[f.Date] = true
			dates = append(dates, f.Date)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })
	if limit > 0 && len(dates) > limit {
		dates = dates[:limit]
	}
	return dates, nil
}
