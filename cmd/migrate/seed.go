package main

import (
	"context"
	"fmt"

	"github.com/icydoge/avaroute/internal/adapters/forecastfile"
	"github.com/icydoge/avaroute/internal/core/domain"
)

type forecastWriter interface {
	UpsertLocation(ctx context.Context, name string) (int, error)
	UpsertBatch(ctx context.Context, forecasts []domain.ForecastRecord) error
}

// seed copies every forecast of a forecast file into the database,
// replacing file-local location IDs with database ones.
func seed(ctx context.Context, repo forecastWriter, path string) error {
	store, err := forecastfile.Open(path)
	if err != nil {
		return err
	}

	for _, name := range store.Locations() {
		id, err := repo.UpsertLocation(ctx, name)
		if err != nil {
			return fmt.Errorf("location %q: %w", name, err)
		}
		forecasts := store.All(name)
		for i := range forecasts {
			forecasts[i].LocationID = id
		}
		if err := repo.UpsertBatch(ctx, forecasts); err != nil {
			return fmt.Errorf("forecasts for %q: %w", name, err)
		}
		fmt.Printf("OK  %s: %d forecasts\n", name, len(forecasts))
	}
	return nil
}

type avalancheWriter interface {
	InsertBatch(ctx context.Context, events []domain.PastAvalanche) error
}

// seedAvalanches copies every observation of an avalanche file into the
// database.
func seedAvalanches(ctx context.Context, repo avalancheWriter, path string) error {
	observed, err := forecastfile.OpenAvalanches(path)
	if err != nil {
		return err
	}
	events := observed.All()
	if err := repo.InsertBatch(ctx, events); err != nil {
		return fmt.Errorf("avalanches: %w", err)
	}
	fmt.Printf("OK  %d avalanches\n", len(events))
	return nil
}
