package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Domain-level database error sentinels.
var (
	ErrApplicationNotFound = errors.New("application not found")

	// ErrSchemaMissing is returned when the job_applications table cannot be queried.
	ErrSchemaMissing = errors.New("job_applications table does not exist or is not accessible")
)

// IsConnectionError reports whether err means the database could not be reached,
// as opposed to a query being rejected.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	return pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded)
}
