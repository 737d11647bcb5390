package api

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"jobtracker/internal/models"
	"jobtracker/internal/validation"
)

// ApplicationHandler handles job application CRUD operations via JSON API.
type ApplicationHandler struct {
	store     ApplicationStore
	validator *validation.Validator
}

// NewApplicationHandler creates a new API application handler.
func NewApplicationHandler(store ApplicationStore, validator *validation.Validator) *ApplicationHandler {
	return &ApplicationHandler{store: store, validator: validator}
}

// applicationBody is the writable subset of a JobApplication.
type applicationBody struct {
	Company            string       `json:"company"`
	Role               string       `json:"role"`
	Status             string       `json:"status"`
	AppliedDate        *models.Date `json:"applied_date"`
	Notes              string       `json:"notes"`
	ProjectName        string       `json:"project_name"`
	ProjectTitle       string       `json:"project_title"`
	ProjectURL         string       `json:"project_url"`
	ProjectDescription string       `json:"project_description"`
	StartDate          *models.Date `json:"start_date"`
	EndDate            *models.Date `json:"end_date"`
}

// applyTo copies the body onto app, leaving identity and timestamps alone.
func (b *applicationBody) applyTo(app *models.JobApplication) {
	app.Company = b.Company
	app.Role = b.Role
	app.Status = b.Status
	app.AppliedDate = b.AppliedDate
	app.Notes = b.Notes
	app.ProjectName = b.ProjectName
	app.ProjectTitle = b.ProjectTitle
	app.ProjectURL = b.ProjectURL
	app.ProjectDescription = b.ProjectDescription
	app.StartDate = b.StartDate
	app.EndDate = b.EndDate
}

// List returns applications, optionally filtered by query parameters.
func (h *ApplicationHandler) List(c fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	apps, err := h.store.ListApplications(c.Context(), filter)
	if err != nil {
		return storeError(c, err, "failed to fetch applications")
	}

	return jsonSuccess(c, apps)
}

// parseFilter reads list filters from the query string.
func parseFilter(c fiber.Ctx) (models.ApplicationFilter, error) {
	filter := models.ApplicationFilter{
		Status:  c.Query("status"),
		Company: c.Query("company"),
		Role:    c.Query("role"),
	}

	var err error
	if filter.AppliedAfter, err = queryDate(c, "applied_after"); err != nil {
		return filter, err
	}
	if filter.From, err = queryDate(c, "from"); err != nil {
		return filter, err
	}
	if filter.To, err = queryDate(c, "to"); err != nil {
		return filter, err
	}
	if (filter.From == nil) != (filter.To == nil) {
		return filter, errors.New("from and to must be provided together")
	}
	if filter.From != nil && filter.To.Before(filter.From.Time) {
		return filter, errors.New("from must not be after to")
	}

	if raw := c.Query("with_projects"); raw != "" {
		if filter.WithProjects, err = strconv.ParseBool(raw); err != nil {
			return filter, errors.New("with_projects must be true or false")
		}
	}

	return filter, nil
}

// queryDate parses an optional YYYY-MM-DD query parameter.
func queryDate(c fiber.Ctx, key string) (*models.Date, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, errors.New("invalid " + key + " date, expected YYYY-MM-DD")
	}
	return &d, nil
}

// Count returns the number of applications with the given status.
func (h *ApplicationHandler) Count(c fiber.Ctx) error {
	status := c.Query("status")
	if status == "" {
		return jsonError(c, fiber.StatusBadRequest, "status is required")
	}

	count, err := h.store.CountApplicationsByStatus(c.Context(), status)
	if err != nil {
		return storeError(c, err, "failed to count applications")
	}

	return jsonSuccess(c, models.CountResponse{Status: status, Count: count})
}

// Get returns a single application by ID.
func (h *ApplicationHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid application id")
	}

	app, err := h.store.GetApplicationByID(c.Context(), id)
	if err != nil {
		return storeError(c, err, "failed to fetch application")
	}

	return jsonSuccess(c, app)
}

// Create validates and stores a new application.
func (h *ApplicationHandler) Create(c fiber.Ctx) error {
	var body applicationBody
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	app := &models.JobApplication{}
	body.applyTo(app)
	validation.Normalize(app)

	// Validation errors are rendered as a field map by ErrorHandler.
	if err := h.validator.Validate(app); err != nil {
		return err
	}

	if err := h.store.CreateApplication(c.Context(), app); err != nil {
		return storeError(c, err, "failed to create application")
	}

	return jsonCreated(c, app)
}

// Update replaces the mutable fields of an existing application.
func (h *ApplicationHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid application id")
	}

	var body applicationBody
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	app, err := h.store.GetApplicationByID(c.Context(), id)
	if err != nil {
		return storeError(c, err, "failed to fetch application")
	}

	body.applyTo(app)
	validation.Normalize(app)

	if err := h.validator.Validate(app); err != nil {
		return err
	}

	if err := h.store.UpdateApplication(c.Context(), app); err != nil {
		return storeError(c, err, "failed to update application")
	}

	return jsonSuccess(c, app)
}

// Delete removes an application.
func (h *ApplicationHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid application id")
	}

	if err := h.store.DeleteApplication(c.Context(), id); err != nil {
		return storeError(c, err, "failed to delete application")
	}

	return jsonSuccess(c, fiber.Map{
		"message": "application deleted successfully",
	})
}
