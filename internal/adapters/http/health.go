package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

const readyTimeout = 3 * time.Second

// HealthHandler reports liveness and process uptime.
func HealthHandler(deps *Dependencies) fiber.Handler {
	startedAt := time.Now()

	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"uptime":  time.Since(startedAt).Round(time.Second).String(),
			"version": "dev",
		})
	}
}

type readinessCheck struct {
	name     string
	required bool
	probe    func(ctx context.Context) string
}

// ReadyHandler probes the forecast store, the event bus and the cache.
// Only the forecast store gates readiness; the API keeps routing without
// route events or caching.
func ReadyHandler(deps *Dependencies) fiber.Handler {
	checks := []readinessCheck{
		{name: "database", required: true, probe: func(ctx context.Context) string {
			if deps.DB == nil {
				return "not configured"
			}
			return probeResult(deps.DB.Pool.Ping(ctx))
		}},
		{name: "nats", probe: func(ctx context.Context) string {
			switch {
			case deps.NATS == nil:
				return "not configured"
			case !deps.NATS.IsConnected():
				return "disconnected"
			}
			return "ok"
		}},
		{name: "cache", probe: func(ctx context.Context) string {
			if deps.Cache == nil {
				return "not configured"
			}
			return probeResult(deps.Cache.Ping(ctx))
		}},
	}

	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), readyTimeout)
		defer cancel()

		results := make(map[string]string, len(checks))
		ready := true
		for _, chk := range checks {
			res := chk.probe(ctx)
			results[chk.name] = res
			if chk.required && res != "ok" {
				ready = false
			}
		}

		if !ready {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "not ready", "checks": results})
		}
		return c.JSON(fiber.Map{"status": "ready", "checks": results})
	}
}

func probeResult(err error) string {
	if err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}
