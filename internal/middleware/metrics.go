package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"jobtracker/internal/metrics"
)

// RequestMetrics records the latency of every request by matched route.
// Unmatched paths are reported under a single label to bound cardinality.
// Errors are rendered here through the app's ErrorHandler so the recorded
// code is the one the client receives.
func RequestMetrics(c fiber.Ctx) error {
	start := time.Now()

	if chainErr := c.Next(); chainErr != nil {
		if err := c.App().Config().ErrorHandler(c, chainErr); err != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}
	code := c.Response().StatusCode()

	// After Next the context points at the last matched route. A request no
	// route matched is left on the global middleware, whose path is "/".
	route := c.Route().Path
	if route == "/" && c.Path() != "/" {
		route = "unmatched"
	}

	metrics.ObserveRequest(c.Method(), route, code, time.Since(start))
	return nil
}
