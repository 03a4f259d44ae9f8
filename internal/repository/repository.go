package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Houeta/employee-registry/internal/metrics"
	"github.com/Houeta/employee-registry/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

var (
	// ErrEmployeeNotFound is returned when no employee matches the lookup.
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrDuplicateEmail is returned when the store rejects a second employee with the same email.
	ErrDuplicateEmail = errors.New("employee email already exists")
)

type Repository struct {
	db      Database
	metrics *metrics.Metrics
}

// EmployeeRepoIface represents the interface for interacting with employee data in the repository.
type EmployeeRepoIface interface {
	SaveEmployee(ctx context.Context, employee models.Employee) (models.Employee, error)
	FindAll(ctx context.Context) ([]models.Employee, error)
	FindByID(ctx context.Context, identifier int64) (models.Employee, error)
	FindByEmail(ctx context.Context, email string) (models.Employee, error)
	DeleteByID(ctx context.Context, identifier int64) error
	DeleteAll(ctx context.Context) error
	FindByNameIndexed(ctx context.Context, firstName, lastName string) (models.Employee, error)
	FindByNameNamed(ctx context.Context, firstName, lastName string) (models.Employee, error)
	FindByNameNative(ctx context.Context, firstName, lastName string) (models.Employee, error)
	FindByNameNativeNamed(ctx context.Context, firstName, lastName string) (models.Employee, error)
}

func NewEmployeeRepository(db Database, metrics *metrics.Metrics) EmployeeRepoIface {
	return &Repository{db: db, metrics: metrics}
}

// observe records the time spent on a query under the given query type.
func (r *Repository) observe(queryType string, startTime time.Time) {
	r.metrics.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(startTime).Seconds())
}

// translateError maps driver errors onto the repository sentinels.
func translateError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ErrDuplicateEmail
	}

	return err
}
