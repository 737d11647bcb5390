package api

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"jobtracker/internal/db"
	"jobtracker/internal/models"
)

// HealthHandler reports database health.
type HealthHandler struct {
	checker SchemaChecker
	timeout time.Duration
}

// NewHealthHandler creates a new API health handler.
func NewHealthHandler(checker SchemaChecker) *HealthHandler {
	return &HealthHandler{checker: checker, timeout: 3 * time.Second}
}

// Check pings the database and probes the job_applications table.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	if err := h.checker.CheckSchema(ctx); err != nil {
		slog.Error("health check failed", "error", err)
		msg := "Unable to connect to the database"
		if errors.Is(err, db.ErrSchemaMissing) {
			msg = db.ErrSchemaMissing.Error()
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"error":  msg,
			"data":   models.DatabaseHealthResponse{Database: "down", Error: msg},
		})
	}

	return jsonSuccess(c, models.DatabaseHealthResponse{Database: "up"})
}
