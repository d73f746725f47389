package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/icydoge/avaroute/internal/core/domain"
	"github.com/icydoge/avaroute/internal/core/ports"
)

var _ ports.AvalancheRepository = (*AvalancheRepo)(nil)

// AvalancheRepo stores recorded avalanche observations.
type AvalancheRepo struct {
	db *DB
}

func NewAvalancheRepo(db *DB) *AvalancheRepo { return &AvalancheRepo{db: db} }

// PastAvalanches returns observations in [start, end), oldest first. Height
// is left at zero; it comes from the elevation raster, not the store.
func (r *AvalancheRepo) PastAvalanches(ctx context.Context, start, end time.Time) ([]domain.PastAvalanche, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT lon, lat, observed_at, comment
		FROM past_avalanches
		WHERE observed_at >= $1 AND observed_at < $2
		ORDER BY observed_at, avalanche_id
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PastAvalanche
	for rows.Next() {
		var a domain.PastAvalanche
		if err := rows.Scan(&a.Lon, &a.Lat, &a.Time, &a.Comment); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// InsertBatch stores observations. An observation already recorded at the
// same point and time keeps its row and takes the new comment.
func (r *AvalancheRepo) InsertBatch(ctx context.Context, events []domain.PastAvalanche) error {
	batch := &pgx.Batch{}
	for _, a := range events {
		batch.Queue(`
			INSERT INTO past_avalanches (lon, lat, observed_at, comment)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (lon, lat, observed_at) DO UPDATE SET comment = EXCLUDED.comment
		`, a.Lon, a.Lat, a.Time, a.Comment)
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for range events {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch exec: %w", err)
		}
	}
	return nil
}
