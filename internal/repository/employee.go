package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Houeta/employee-registry/internal/models"
)

const employeeColumns = "id, first_name, last_name, email"

// SaveEmployee inserts the employee when it has no identifier yet, otherwise it overwrites
// the stored record. The returned employee carries the identifier assigned by the store.
func (r *Repository) SaveEmployee(ctx context.Context, employee models.Employee) (models.Employee, error) {
	if employee.ID == 0 {
		return r.insertEmployee(ctx, employee)
	}

	return r.updateEmployee(ctx, employee)
}

func (r *Repository) insertEmployee(ctx context.Context, employee models.Employee) (models.Employee, error) {
	var result models.Employee

	defer r.observe("save_employee", time.Now())
	query := `
		INSERT INTO employees (first_name, last_name, email)
		VALUES ($1, $2, $3)
		RETURNING id, first_name, last_name, email;
	`

	err := r.db.QueryRow(ctx, query, employee.FirstName, employee.LastName, employee.Email).Scan(
		&result.ID, &result.FirstName, &result.LastName, &result.Email)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to save employee: %w", translateError(err))
	}

	return result, nil
}

func (r *Repository) updateEmployee(ctx context.Context, employee models.Employee) (models.Employee, error) {
	var result models.Employee

	defer r.observe("update_employee", time.Now())
	query := `
		UPDATE employees
		SET first_name = $2, last_name = $3, email = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING id, first_name, last_name, email;
	`

	err := r.db.QueryRow(ctx, query, employee.ID, employee.FirstName, employee.LastName, employee.Email).Scan(
		&result.ID, &result.FirstName, &result.LastName, &result.Email)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to update employee data: %w", translateError(err))
	}

	return result, nil
}

// FindAll returns every stored employee ordered by identifier.
func (r *Repository) FindAll(ctx context.Context) ([]models.Employee, error) {
	defer r.observe("find_all", time.Now())
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]models.Employee, 0)
	for rows.Next() {
		var employee models.Employee
		if err = rows.Scan(&employee.ID, &employee.FirstName, &employee.LastName, &employee.Email); err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		employees = append(employees, employee)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employee rows: %w", err)
	}

	return employees, nil
}

// FindByID retrieves an employee from the database by their ID.
func (r *Repository) FindByID(ctx context.Context, identifier int64) (models.Employee, error) {
	var result models.Employee

	defer r.observe("find_by_id", time.Now())
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id=$1`

	err := r.db.QueryRow(ctx, query, identifier).Scan(
		&result.ID, &result.FirstName, &result.LastName, &result.Email)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to get employee by id: %w", translateError(err))
	}

	return result, nil
}

// FindByEmail retrieves an employee from the database by their email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (models.Employee, error) {
	var result models.Employee

	defer r.observe("find_by_email", time.Now())
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email=$1`

	err := r.db.QueryRow(ctx, query, email).Scan(
		&result.ID, &result.FirstName, &result.LastName, &result.Email)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to get employee by email: %w", translateError(err))
	}

	return result, nil
}

// DeleteByID removes the employee with the given identifier. Deleting a missing employee is not an error.
func (r *Repository) DeleteByID(ctx context.Context, identifier int64) error {
	defer r.observe("delete_by_id", time.Now())

	_, err := r.db.Exec(ctx, "DELETE FROM employees WHERE id = $1", identifier)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	return nil
}

// DeleteAll removes every employee and restarts the identifier sequence.
func (r *Repository) DeleteAll(ctx context.Context) error {
	defer r.observe("delete_all", time.Now())

	_, err := r.db.Exec(ctx, "TRUNCATE TABLE employees RESTART IDENTITY")
	if err != nil {
		return fmt.Errorf("failed to delete all employees: %w", err)
	}

	return nil
}
