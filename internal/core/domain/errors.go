package domain

import "errors"

// Failure kinds of a path search. Callers wrap them with a reason via
// fmt.Errorf("%w: ...") and classify with errors.Is.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidDate        = errors.New("invalid date")
	ErrLocationUnresolved = errors.New("location unresolved")
	ErrNoForecast         = errors.New("no forecast")
	ErrRasterUnavailable  = errors.New("raster unavailable")
	ErrGridTooLarge       = errors.New("grid too large")
	ErrNoPathFound        = errors.New("no path found")
)

var kinds = []error{
	ErrInvalidInput,
	ErrInvalidDate,
	ErrLocationUnresolved,
	ErrNoForecast,
	ErrRasterUnavailable,
	ErrGridTooLarge,
	ErrNoPathFound,
}

// Kind returns the taxonomy error err belongs to, or nil if none matches.
func Kind(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// KindLabel returns a short snake_case label for err, used as a metric label
// and API error code.
func KindLabel(err error) string {
	switch Kind(err) {
	case ErrInvalidInput:
		return "invalid_input"
	case ErrInvalidDate:
		return "invalid_date"
	case ErrLocationUnresolved:
		return "location_unresolved"
	case ErrNoForecast:
		return "no_forecast"
	case ErrRasterUnavailable:
		return "raster_unavailable"
	case ErrGridTooLarge:
		return "grid_too_large"
	case ErrNoPathFound:
		return "no_path_found"
	default:
		return "internal"
	}
}
