package api

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"jobtracker/internal/analytics"
	"jobtracker/internal/metrics"
	"jobtracker/internal/models"
)

const (
	processedBy = "jobtracker"
	apiVersion  = "1.0.0"
)

// AnalyticsHandler serves summary statistics over job applications.
type AnalyticsHandler struct {
	store ApplicationStore
	now   func() time.Time
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(store ApplicationStore) *AnalyticsHandler {
	return &AnalyticsHandler{store: store, now: time.Now}
}

// Process summarizes the applications supplied in the request body.
// The payload shape is checked here; the aggregation itself cannot fail.
func (h *AnalyticsHandler) Process(c fiber.Ctx) error {
	var req models.AnalyticsRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	records := make([]models.AnalyticsRecord, 0, len(req.Applications))
	for i, rec := range req.Applications {
		if rec == nil {
			return jsonError(c, fiber.StatusBadRequest, "applications["+strconv.Itoa(i)+"] must not be null")
		}
		records = append(records, *rec)
	}

	summary := analytics.Summarize(records)
	metrics.RecordSummary(metrics.SourcePayload, len(records))

	return jsonSuccess(c, models.AnalyticsResponse{
		AnalyticsSummary: summary,
		ProcessedBy:      processedBy,
		Timestamp:        h.now(),
		UserID:           req.UserID,
	})
}

// EnhancedStats summarizes every stored application.
func (h *AnalyticsHandler) EnhancedStats(c fiber.Ctx) error {
	apps, err := h.store.ListApplications(c.Context(), models.ApplicationFilter{})
	if err != nil {
		return storeError(c, err, "failed to fetch applications")
	}

	summary := analytics.SummarizeApplications(apps)
	metrics.RecordSummary(metrics.SourceStored, len(apps))

	return jsonSuccess(c, models.EnhancedStatsResponse{
		Message:   "Analytics API is running",
		Timestamp: h.now(),
		Version:   apiVersion,
		Analytics: summary,
	})
}

// Health reports that the analytics service is up.
func (h *AnalyticsHandler) Health(c fiber.Ctx) error {
	return c.SendString("Analytics service is running")
}
