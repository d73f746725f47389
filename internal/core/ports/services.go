package ports

import (
	"context"
	"errors"

	"github.com/icydoge/avaroute/internal/core/domain"
)

// ErrCacheMiss is returned by CacheService.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishRouteComputed(ctx context.Context, event *domain.RouteComputed) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// LocationResolver maps a coordinate to the name of the forecast region
// containing it. An empty name means the point is in no known region.
type LocationResolver interface {
	LocationName(ctx context.Context, p domain.GeoPoint) (string, error)
}
