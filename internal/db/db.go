package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"jobtracker/internal/models"
	"jobtracker/migrations"
)

// DB wraps a pgxpool connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// New creates a new database connection pool.
func New(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// RunMigrations runs all embedded SQL migrations.
func (d *DB) RunMigrations(connString string) error {
	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Close closes the connection pool.
func (d *DB) Close() {
	d.Pool.Close()
}

// Ping checks that a connection can be acquired.
func (d *DB) Ping(ctx context.Context) error {
	return d.Pool.Ping(ctx)
}

// CheckSchema verifies the connection and that the job_applications table is queryable.
func (d *DB) CheckSchema(ctx context.Context) error {
	if err := d.Pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := d.Pool.Exec(ctx, `SELECT 1 FROM job_applications LIMIT 1`); err != nil {
		if IsConnectionError(err) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrSchemaMissing, err)
	}
	return nil
}

// SeedDevApplications inserts sample applications for development.
// Skips seeding when the table already has rows.
func (d *DB) SeedDevApplications(ctx context.Context, apps []models.JobApplication) error {
	var count int64
	if err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM job_applications`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count applications: %w", err)
	}
	if count > 0 {
		return nil
	}

	for i := range apps {
		if err := d.CreateApplication(ctx, &apps[i]); err != nil {
			return fmt.Errorf("failed to seed application %s: %w", apps[i].Company, err)
		}
	}

	return nil
}
