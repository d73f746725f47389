package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/icydoge/avaroute/internal/core/domain"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // Error code: invalid_input, no_path_found, internal_error, etc.
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, 400, "bad_request", msg)
}

// statusFor maps a service error to its HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return 504, "timeout"
	case errors.Is(err, context.Canceled):
		return 499, "cancelled"
	}
	switch domain.Kind(err) {
	case domain.ErrInvalidInput, domain.ErrInvalidDate:
		return 400, domain.KindLabel(err)
	case domain.ErrLocationUnresolved, domain.ErrNoForecast, domain.ErrNoPathFound:
		return 404, domain.KindLabel(err)
	case domain.ErrGridTooLarge:
		return 422, domain.KindLabel(err)
	case domain.ErrRasterUnavailable:
		return 502, domain.KindLabel(err)
	}
	return 500, "internal_error"
}

// errFromService writes the error response for a failed service call.
// Internal faults are logged and their detail withheld from the client.
func errFromService(c *fiber.Ctx, err error) error {
	status, code := statusFor(err)
	msg := err.Error()
	if status == 500 {
		LoggerFromCtx(c.UserContext()).Error("request failed", "path", c.Path(), "error", err)
		msg = "internal error"
	}
	return newError(c, status, code, msg)
}
