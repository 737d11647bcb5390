package db

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"jobtracker/internal/models"
)

// applicationColumns is the standard column list for application queries.
const applicationColumns = `id, company, role, status, applied_date, notes,
	project_name, project_title, project_url, project_description,
	start_date, end_date, created_at, updated_at`

// scanApplication scans a row into a JobApplication struct.
func scanApplication(row pgx.Row) (*models.JobApplication, error) {
	var app models.JobApplication
	err := row.Scan(
		&app.ID,
		&app.Company,
		&app.Role,
		&app.Status,
		&app.AppliedDate,
		&app.Notes,
		&app.ProjectName,
		&app.ProjectTitle,
		&app.ProjectURL,
		&app.ProjectDescription,
		&app.StartDate,
		&app.EndDate,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// scanApplications scans multiple rows into a slice of JobApplications.
func scanApplications(rows pgx.Rows) ([]models.JobApplication, error) {
	defer rows.Close()

	apps := []models.JobApplication{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}

	return apps, rows.Err()
}

// CreateApplication inserts a new application. The database assigns the ID and timestamps.
func (d *DB) CreateApplication(ctx context.Context, app *models.JobApplication) error {
	query := `
		INSERT INTO job_applications (company, role, status, applied_date, notes,
			project_name, project_title, project_url, project_description, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	return d.Pool.QueryRow(ctx, query,
		app.Company,
		app.Role,
		app.Status,
		app.AppliedDate,
		app.Notes,
		app.ProjectName,
		app.ProjectTitle,
		app.ProjectURL,
		app.ProjectDescription,
		app.StartDate,
		app.EndDate,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
}

// GetApplicationByID retrieves an application by its ID.
func (d *DB) GetApplicationByID(ctx context.Context, id uuid.UUID) (*models.JobApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM job_applications WHERE id = $1`
	return scanApplication(d.Pool.QueryRow(ctx, query, id))
}

// ListApplications returns applications matching filter, newest first.
func (d *DB) ListApplications(ctx context.Context, filter models.ApplicationFilter) ([]models.JobApplication, error) {
	sql, args := buildListQuery(filter)

	rows, err := d.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return scanApplications(rows)
}

// buildListQuery assembles the SELECT for filter with positional arguments.
func buildListQuery(filter models.ApplicationFilter) (string, []any) {
	sql := `SELECT ` + applicationColumns + ` FROM job_applications WHERE 1=1`
	var args []any

	next := func(value any) string {
		args = append(args, value)
		return `$` + strconv.Itoa(len(args))
	}

	if filter.Status != "" {
		sql += ` AND status = ` + next(filter.Status)
	}
	if filter.Company != "" {
		sql += ` AND company ILIKE ` + next("%"+escapeLike(filter.Company)+"%")
	}
	if filter.Role != "" {
		sql += ` AND role ILIKE ` + next("%"+escapeLike(filter.Role)+"%")
	}
	if filter.AppliedAfter != nil {
		sql += ` AND applied_date > ` + next(*filter.AppliedAfter)
	}
	if filter.From != nil && filter.To != nil {
		sql += ` AND applied_date BETWEEN ` + next(*filter.From) + ` AND ` + next(*filter.To)
	}
	if filter.WithProjects {
		sql += ` AND project_name <> ''`
	}

	sql += ` ORDER BY created_at DESC, id`
	return sql, args
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}

// UpdateApplication replaces the mutable fields of an existing application.
func (d *DB) UpdateApplication(ctx context.Context, app *models.JobApplication) error {
	query := `
		UPDATE job_applications
		SET company = $1, role = $2, status = $3, applied_date = $4, notes = $5,
			project_name = $6, project_title = $7, project_url = $8, project_description = $9,
			start_date = $10, end_date = $11, updated_at = NOW()
		WHERE id = $12
		RETURNING created_at, updated_at
	`
	err := d.Pool.QueryRow(ctx, query,
		app.Company,
		app.Role,
		app.Status,
		app.AppliedDate,
		app.Notes,
		app.ProjectName,
		app.ProjectTitle,
		app.ProjectURL,
		app.ProjectDescription,
		app.StartDate,
		app.EndDate,
		app.ID,
	).Scan(&app.CreatedAt, &app.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrApplicationNotFound
	}
	return err
}

// DeleteApplication deletes an application by ID.
func (d *DB) DeleteApplication(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM job_applications WHERE id = $1`
	result, err := d.Pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// CountApplicationsByStatus counts applications with an exact status.
func (d *DB) CountApplicationsByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM job_applications WHERE status = $1`, status).Scan(&count)
	return count, err
}

// GetStatusCounts returns the number of stored applications per status.
func (d *DB) GetStatusCounts(ctx context.Context) (map[string]int64, error) {
	rows, err := d.Pool.Query(ctx, `SELECT status, COUNT(*) FROM job_applications GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int64{}
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
