// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"os"
	"testing"

	"jobtracker/internal/db"
	"jobtracker/internal/models"
)

// TestDB creates a test database connection and returns a cleanup function.
// Skips the test unless TEST_DATABASE_URL is set.
func TestDB(t *testing.T) (*db.DB, func()) {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	cleanupTestData(ctx, database)

	cleanup := func() {
		cleanupTestData(ctx, database)
		database.Close()
	}

	return database, cleanup
}

func cleanupTestData(ctx context.Context, database *db.DB) {
	database.Pool.Exec(ctx, "DELETE FROM job_applications")
}

// CreateTestApplication inserts an application and returns it with its
// generated id and timestamps.
func CreateTestApplication(t *testing.T, database *db.DB, company, status, appliedDate string) *models.JobApplication {
	t.Helper()

	app := &models.JobApplication{
		Company: company,
		Role:    "Engineer",
		Status:  status,
	}
	if appliedDate != "" {
		d, err := models.ParseDate(appliedDate)
		if err != nil {
			t.Fatalf("bad applied date %q: %v", appliedDate, err)
		}
		app.AppliedDate = &d
	}

	if err := database.CreateApplication(context.Background(), app); err != nil {
		t.Fatalf("failed to create test application: %v", err)
	}

	return app
}
