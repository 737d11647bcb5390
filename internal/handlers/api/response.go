package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"jobtracker/internal/db"
	"jobtracker/internal/validation"
)

// jsonSuccess returns a 200 response with data wrapped in the standard envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonCreated returns a 201 response with data wrapped in the standard envelope.
func jsonCreated(c fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}

// jsonValidationError returns a 400 response listing the invalid fields.
func jsonValidationError(c fiber.Ctx, errs validation.Errors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"status": "error",
		"error":  "validation failed",
		"fields": errs,
	})
}

// storeError maps a persistence error to a JSON response. action describes
// what failed, e.g. "failed to fetch application".
func storeError(c fiber.Ctx, err error, action string) error {
	switch {
	case errors.Is(err, db.ErrApplicationNotFound):
		return jsonError(c, fiber.StatusNotFound, "application not found")
	case db.IsConnectionError(err):
		slog.Error("database unavailable", "path", c.Path(), "error", err)
		return jsonError(c, fiber.StatusServiceUnavailable, "Database connection error")
	default:
		slog.Error(action, "path", c.Path(), "error", err)
		return jsonError(c, fiber.StatusInternalServerError, action)
	}
}

// ErrorHandler converts errors escaping a handler into the JSON envelope.
func ErrorHandler(c fiber.Ctx, err error) error {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return jsonValidationError(c, verrs)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return jsonError(c, fe.Code, fe.Message)
	}

	if db.IsConnectionError(err) {
		slog.Error("database unavailable", "path", c.Path(), "error", err)
		return jsonError(c, fiber.StatusServiceUnavailable, "Database connection error")
	}

	slog.Error("unhandled error", "method", c.Method(), "path", c.Path(), "error", err)
	return jsonError(c, fiber.StatusInternalServerError, "Application error")
}
