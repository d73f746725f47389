package forecastfile

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/icydoge/avaroute/internal/core/domain"
)

const sample = `[
  {"location": "Glencoe", "date": "2024-02-09", "direction": "N",
   "middle_boundary": 900, "upper_boundary": 1150, "lower_primary_colour": 1},
  {"location": "Glencoe", "date": "2024-02-10", "direction": "N",
   "middle_boundary": 900, "upper_boundary": 1150, "lower_primary_colour": 2, "upper_primary_colour": 3},
  {"location": "Glencoe", "date": "2024-02-10", "direction": "NE",
   "middle_boundary": 900, "upper_boundary": 1150, "lower_primary_colour": 1},
  {"location": "Torridon", "date": "2024-02-08", "direction": "S",
   "middle_boundary": 700, "upper_boundary": 1000}
]`

func day(s string) time.Time {
	d, _ := time.Parse(domain.DateLayout, s)
	return d
}

func TestStore(t *testing.T) {
	s, err := Load(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()

	if got := s.Locations(); len(got) != 2 || got[0] != "Glencoe" || got[1] != "Torridon" {
		t.Fatalf("unexpected locations %v", got)
	}

	id, ok, _ := s.FindLocationID(ctx, "Glencoe")
	if !ok || id != 1 {
		t.Fatalf("expected Glencoe id 1, got %d %v", id, ok)
	}
	if _, ok, _ := s.FindLocationID(ctx, "Arran"); ok {
		t.Error("expected Arran to be unknown")
	}

	latest, _ := s.LatestForecasts(ctx, id)
	if len(latest) != 2 {
		t.Fatalf("expected 2 latest forecasts, got %d", len(latest))
	}
	for _, f := range latest {
		if !f.Date.Equal(day("2024-02-10")) {
			t.Errorf("unexpected date %v", f.Date)
		}
	}

	older, _ := s.ForecastsForDate(ctx, id, day("2024-02-09"))
	if len(older) != 1 || older[0].LowerPrimaryColour != 1 {
		t.Errorf("unexpected forecasts for 2024-02-09: %+v", older)
	}

	dates, _ := s.ForecastDates(ctx, id, 50)
	if len(dates) != 2 || !dates[0].Equal(day("2024-02-10")) {
		t.Errorf("expected newest-first dates, got %v", dates)
	}
	if dates, _ := s.ForecastDates(ctx, id, 1); len(dates) != 1 {
		t.Errorf("expected limit to apply, got %d", len(dates))
	}

	if n := len(s.All("Torridon")); n != 1 {
		t.Errorf("expected 1 Torridon forecast, got %d", n)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad direction": `[{"location": "Glencoe", "date": "2024-02-10", "direction": "UP"}]`,
		"bad date":      `[{"location": "Glencoe", "date": "10/02/2024", "direction": "N"}]`,
		"no location":   `[{"date": "2024-02-10", "direction": "N"}]`,
		"not json":      `forecasts`,
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(in)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
