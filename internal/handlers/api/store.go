package api

import (
	"context"

	"github.com/google/uuid"

	"jobtracker/internal/models"
)

// ApplicationStore is the persistence used by the application and analytics
// handlers. *db.DB satisfies it.
type ApplicationStore interface {
	CreateApplication(ctx context.Context, app *models.JobApplication) error
	GetApplicationByID(ctx context.Context, id uuid.UUID) (*models.JobApplication, error)
	ListApplications(ctx context.Context, filter models.ApplicationFilter) ([]models.JobApplication, error)
	UpdateApplication(ctx context.Context, app *models.JobApplication) error
	DeleteApplication(ctx context.Context, id uuid.UUID) error
	CountApplicationsByStatus(ctx context.Context, status string) (int64, error)
}

// SchemaChecker verifies database connectivity and schema presence.
type SchemaChecker interface {
	CheckSchema(ctx context.Context) error
}
