package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/icydoge/avaroute/internal/core/domain"
)

// ForecastRepo implements ports.ForecastRepository.
type ForecastRepo struct {
	db *DB
}

func NewForecastRepo(db *DB) *ForecastRepo { return &ForecastRepo{db: db} }

const forecastColumns = `
	location_id, forecast_date, direction,
	lower_boundary, middle_boundary, upper_boundary,
	lower_primary_colour, lower_secondary_colour,
	upper_primary_colour, upper_secondary_colour`

func (r *ForecastRepo) FindLocationID(ctx context.Context, name string) (int, bool, error) {
	var id int
	err := r.db.Pool.QueryRow(ctx, `
		SELECT location_id FROM locations WHERE location_name = $1 ORDER BY location_id LIMIT 1
	`, name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// LatestForecasts returns the forecasts of the most recent forecast date.
func (r *ForecastRepo) LatestForecasts(ctx context.Context, locationID int) ([]domain.ForecastRecord, error) {
	return r.query(ctx, `
		SELECT `+forecastColumns+`
		FROM forecasts
		WHERE location_id = $1
		  AND forecast_date = (SELECT MAX(forecast_date) FROM forecasts WHERE location_id = $1)
		ORDER BY direction
	`, locationID)
}

func (r *ForecastRepo) ForecastsForDate(ctx context.Context, locationID int, date time.Time) ([]domain.ForecastRecord, error) {
	return r.query(ctx, `
		SELECT `+forecastColumns+`
		FROM forecasts
		WHERE location_id = $1 AND forecast_date = $2
		ORDER BY direction
	`, locationID, date)
}

func (r *ForecastRepo) ForecastDates(ctx context.Context, locationID int, limit int) ([]time.Time, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT DISTINCT forecast_date FROM forecasts
		WHERE location_id = $1
		ORDER BY forecast_date DESC
		LIMIT $2
	`, locationID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// UpsertLocation inserts a location if its name is new and returns its ID.
func (r *ForecastRepo) UpsertLocation(ctx context.Context, name string) (int, error) {
	var id int
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO locations (location_name) VALUES ($1)
		ON CONFLICT (location_name) DO UPDATE SET location_name = EXCLUDED.location_name
		RETURNING location_id
	`, name).Scan(&id)
	return id, err
}

// UpsertBatch stores forecasts, replacing any existing entry for the same
// location, date and direction.
func (r *ForecastRepo) UpsertBatch(ctx context.Context, forecasts []domain.ForecastRecord) error {
	batch := &pgx.Batch{}
	for _, f := range forecasts {
		batch.Queue(`
			INSERT INTO forecasts (`+forecastColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (location_id, forecast_date, direction) DO UPDATE
			SET lower_boundary = EXCLUDED.lower_boundary, middle_boundary = EXCLUDED.middle_boundary,
			    upper_boundary = EXCLUDED.upper_boundary,
			    lower_primary_colour = EXCLUDED.lower_primary_colour,
			    lower_secondary_colour = EXCLUDED.lower_secondary_colour,
			    upper_primary_colour = EXCLUDED.upper_primary_colour,
			    upper_secondary_colour = EXCLUDED.upper_secondary_colour
		`, f.LocationID, f.Date, string(f.Facing),
			f.LowerBoundary, f.MiddleBoundary, f.UpperBoundary,
			int(f.LowerPrimaryColour), int(f.LowerSecondaryColour),
			int(f.UpperPrimaryColour), int(f.UpperSecondaryColour))
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for range forecasts {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch exec: %w", err)
		}
	}
	return nil
}

func (r *ForecastRepo) query(ctx context.Context, sql string, args ...any) ([]domain.ForecastRecord, error) {
	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var forecasts []domain.ForecastRecord
	for rows.Next() {
		var (
			f                    domain.ForecastRecord
			facing               string
			lowP, lowS, upP, upS int
		)
		if err := rows.Scan(&f.LocationID, &f.Date, &facing,
			&f.LowerBoundary, &f.MiddleBoundary, &f.UpperBoundary,
			&lowP, &lowS, &upP, &upS); err != nil {
			return nil, err
		}
		f.Facing = domain.Octant(facing)
		f.LowerPrimaryColour, f.LowerSecondaryColour = domain.DangerCode(lowP), domain.DangerCode(lowS)
		f.UpperPrimaryColour, f.UpperSecondaryColour = domain.DangerCode(upP), domain.DangerCode(upS)
		forecasts = append(forecasts, f)
	}
	return forecasts, rows.Err()
}
