package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Houeta/employee-registry/internal/models"
	"github.com/jackc/pgx/v5"
)

// The four name lookups below return the same row for the same input. They differ only in how
// parameters are bound (positional or named) and how the row is mapped (by column name onto the
// struct, or by an explicit column scan).

// FindByNameIndexed maps the row onto models.Employee by column name, binding positional parameters.
func (r *Repository) FindByNameIndexed(ctx context.Context, firstName, lastName string) (models.Employee, error) {
	defer r.observe("find_by_name_indexed", time.Now())
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE first_name = $1 AND last_name = $2`

	rows, err := r.db.Query(ctx, query, firstName, lastName)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to find employee by name: %w", err)
	}

	return collectEmployee(rows)
}

// FindByNameNamed maps the row onto models.Employee by column name, binding named parameters.
func (r *Repository) FindByNameNamed(ctx context.Context, firstName, lastName string) (models.Employee, error) {
	defer r.observe("find_by_name_named", time.Now())
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE first_name = @first_name AND last_name = @last_name`

	rows, err := r.db.Query(ctx, query, pgx.NamedArgs{"first_name": firstName, "last_name": lastName})
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to find employee by name: %w", err)
	}

	return collectEmployee(rows)
}

// FindByNameNative scans the row column by column, binding positional parameters.
func (r *Repository) FindByNameNative(ctx context.Context, firstName, lastName string) (models.Employee, error) {
	defer r.observe("find_by_name_native", time.Now())
	query := `SELECT e.id, e.first_name, e.last_name, e.email FROM employees e WHERE e.first_name = $1 AND e.last_name = $2`

	rows, err := r.db.Query(ctx, query, firstName, lastName)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to find employee by name: %w", err)
	}

	return scanOneEmployee(rows)
}

// FindByNameNativeNamed scans the row column by column, binding named parameters.
func (r *Repository) FindByNameNativeNamed(
	ctx context.Context,
	firstName, lastName string,
) (models.Employee, error) {
	defer r.observe("find_by_name_native_named", time.Now())
	query := `SELECT e.id, e.first_name, e.last_name, e.email FROM employees e ` +
		`WHERE e.first_name = @first_name AND e.last_name = @last_name`

	rows, err := r.db.Query(ctx, query, pgx.NamedArgs{"first_name": firstName, "last_name": lastName})
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to find employee by name: %w", err)
	}

	return scanOneEmployee(rows)
}

// collectEmployee expects exactly one row and maps it by column name.
func collectEmployee(rows pgx.Rows) (models.Employee, error) {
	employee, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Employee])
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to find employee by name: %w", translateError(err))
	}

	return employee, nil
}

// scanOneEmployee expects exactly one row and scans its columns in select order.
func scanOneEmployee(rows pgx.Rows) (models.Employee, error) {
	employee, err := pgx.CollectExactlyOneRow(rows, func(row pgx.CollectableRow) (models.Employee, error) {
		var result models.Employee
		err := row.Scan(&result.ID, &result.FirstName, &result.LastName, &result.Email)
		return result, err
	})
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to find employee by name: %w", translateError(err))
	}

	return employee, nil
}
