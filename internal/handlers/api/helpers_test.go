package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"jobtracker/internal/db"
	"jobtracker/internal/models"
	"jobtracker/internal/validation"
)

// memStore is an in-memory ApplicationStore.
type memStore struct {
	mu   sync.Mutex
	apps map[uuid.UUID]models.JobApplication
	err  error // returned by every call when set

	lastFilter models.ApplicationFilter
}

func newMemStore() *memStore {
	return &memStore{apps: map[uuid.UUID]models.JobApplication{}}
}

func (s *memStore) CreateApplication(ctx context.Context, app *models.JobApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	app.ID = uuid.New()
	app.CreatedAt = time.Now()
	app.UpdatedAt = app.CreatedAt
	s.apps[app.ID] = *app
	return nil
}

func (s *memStore) GetApplicationByID(ctx context.Context, id uuid.UUID) (*models.JobApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	app, ok := s.apps[id]
	if !ok {
		return nil, db.ErrApplicationNotFound
	}
	return &app, nil
}

func (s *memStore) ListApplications(ctx context.Context, filter models.ApplicationFilter) ([]models.JobApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFilter = filter
	if s.err != nil {
		return nil, s.err
	}
	apps := []models.JobApplication{}
	for _, app := range s.apps {
		if filter.Status != "" && app.Status != filter.Status {
			continue
		}
		if filter.Company != "" && !strings.Contains(strings.ToLower(app.Company), strings.ToLower(filter.Company)) {
			continue
		}
		apps = append(apps, app)
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].CreatedAt.After(apps[j].CreatedAt) })
	return apps, nil
}

func (s *memStore) UpdateApplication(ctx context.Context, app *models.JobApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.apps[app.ID]; !ok {
		return db.ErrApplicationNotFound
	}
	app.UpdatedAt = time.Now()
	s.apps[app.ID] = *app
	return nil
}

func (s *memStore) DeleteApplication(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.apps[id]; !ok {
		return db.ErrApplicationNotFound
	}
	delete(s.apps, id)
	return nil
}

func (s *memStore) CountApplicationsByStatus(ctx context.Context, status string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	var n int64
	for _, app := range s.apps {
		if app.Status == status {
			n++
		}
	}
	return n, nil
}

// newTestApp wires the handlers the way the server does.
func newTestApp(store *memStore) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})

	apps := NewApplicationHandler(store, validation.NewValidator(nil))
	stats := NewAnalyticsHandler(store)
	stats.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

	app.Post("/api/analytics/process", stats.Process)
	app.Get("/api/analytics/enhanced-stats", stats.EnhancedStats)
	app.Get("/api/analytics/health", stats.Health)

	app.Get("/api/applications", apps.List)
	app.Get("/api/applications/count", apps.Count)
	app.Get("/api/applications/:id", apps.Get)
	app.Post("/api/applications", apps.Create)
	app.Put("/api/applications/:id", apps.Update)
	app.Delete("/api/applications/:id", apps.Delete)

	return app
}

type envelope struct {
	Status string            `json:"status"`
	Data   json.RawMessage   `json:"data"`
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var env envelope
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("%s %s: invalid JSON response %q: %v", method, path, raw, err)
		}
	}
	return resp.StatusCode, env
}

func decodeData(t *testing.T, env envelope, v any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("failed to decode data %s: %v", env.Data, err)
	}
}
