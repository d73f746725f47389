package http

import (
	"time"

	"github.com/nats-io/nats.go"

	"github.com/icydoge/avaroute/internal/adapters/postgres"
	"github.com/icydoge/avaroute/internal/adapters/valkey"
	"github.com/icydoge/avaroute/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Paths      *usecases.PathService
	Forecasts  *usecases.ForecastService
	Avalanches *usecases.AvalancheService
	NATS       *nats.Conn
	DB         *postgres.DB
	Cache      *valkey.Cache

	// RequestTimeout bounds a find_path request end to end. Zero uses
	// DefaultRequestTimeout.
	RequestTimeout time.Duration
}

// DefaultRequestTimeout leaves headroom above the default search timeout.
const DefaultRequestTimeout = 25 * time.Second

func (d *Dependencies) requestTimeout() time.Duration {
	if d.RequestTimeout > 0 {
		return d.RequestTimeout
	}
	return DefaultRequestTimeout
}
