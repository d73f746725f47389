package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/icydoge/avaroute/internal/core/domain"
	"github.com/icydoge/avaroute/internal/core/usecases"
)

// parseFloatParam reads a numeric path parameter. Malformed values are
// reported as invalid input.
func parseFloatParam(c *fiber.Ctx, name string) (float64, error) {
	raw := c.Params(name)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", domain.ErrInvalidInput, name, raw)
	}
	return v, nil
}

// FindPathHandler computes a route between two points.
// GET /v1/find_path/:lon0/:lat0/:lon1/:lat1/:risk/:date?
func FindPathHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var vals [5]float64
		for i, name := range []string{"lon0", "lat0", "lon1", "lat1", "risk"} {
			v, err := parseFloatParam(c, name)
			if err != nil {
				return errFromService(c, err)
			}
			vals[i] = v
		}

		route, err := deps.Paths.FindPath(c.UserContext(), usecases.FindPathRequest{
			From:         domain.GeoPoint{Lon: vals[0], Lat: vals[1]},
			To:           domain.GeoPoint{Lon: vals[2], Lat: vals[3]},
			RiskWeighing: vals[4],
			Date:         c.Params("date"),
		})
		if err != nil {
			return errFromService(c, err)
		}
		return c.JSON(route)
	}
}

// ForecastDatesHandler lists the forecast dates of the region containing a
// point.
// GET /v1/forecast_dates/:lon/:lat
func ForecastDatesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lon, err := parseFloatParam(c, "lon")
		if err != nil {
			return errFromService(c, err)
		}
		lat, err := parseFloatParam(c, "lat")
		if err != nil {
			return errFromService(c, err)
		}

		dates, err := deps.Forecasts.ForecastDates(c.UserContext(), domain.GeoPoint{Lon: lon, Lat: lat})
		if err != nil {
			return errFromService(c, err)
		}
		return c.JSON(dates)
	}
}

// PastAvalanchesHandler lists the avalanches observed between two dates,
// both inclusive.
// GET /v1/past_avalanches/:start/:end
func PastAvalanchesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		avalanches, err := deps.Avalanches.PastAvalanches(c.UserContext(), c.Params("start"), c.Params("end"))
		if err != nil {
			return errFromService(c, err)
		}
		return c.JSON(avalanches)
	}
}
