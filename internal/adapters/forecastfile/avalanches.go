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

var _ ports.AvalancheRepository = (*AvalancheLog)(nil)

// AvalancheEntry is one observation of an avalanche file. Time is RFC 3339.
type AvalancheEntry struct {
	Lon     float64 `json:"long"`
	Lat     float64 `json:"lat"`
	Time    string  `json:"time"`
	Comment string  `json:"comment"`
}

// AvalancheLog holds observations sorted by time. It is read-only after
// LoadAvalanches.
type AvalancheLog struct {
	events []domain.PastAvalanche
}

// OpenAvalanches loads an avalanche file.
func OpenAvalanches(path string) (*AvalancheLog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	l, err := LoadAvalanches(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// LoadAvalanches decodes a JSON array of observations.
func LoadAvalanches(r io.Reader) (*AvalancheLog, error) {
	var entries []AvalancheEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	l := &AvalancheLog{events: make([]domain.PastAvalanche, 0, len(entries))}
	for i, e := range entries {
		at, err := time.Parse(time.RFC3339, e.Time)
		if err != nil {
			return nil, fmt.Errorf("entry %d: time %q: %w", i, e.Time, err)
		}
		l.events = append(l.events, domain.PastAvalanche{
			Lon: e.Lon, Lat: e.Lat, Time: at.UTC(), Comment: e.Comment,
		})
	}
	sort.SliceStable(l.events, func(i, j int) bool { return l.events[i].Time.Before(l.events[j].Time) })
	return l, nil
}

// All returns every observation, oldest first.
func (l *AvalancheLog) All() []domain.PastAvalanche {
	return append([]domain.PastAvalanche(nil), l.events...)
}

func (l *AvalancheLog) PastAvalanches(_ context.Context, start, end time.Time) ([]domain.PastAvalanche, error) {
	var out []domain.PastAvalanche
	for _, a := range l.events {
		if !a.Time.Before(start) && a.Time.Before(end) {
			out = append(out, a)
		}
	}
	return out, nil
}
