package repository_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/Houeta/employee-registry/internal/metrics"
	"github.com/Houeta/employee-registry/internal/models"
	"github.com/Houeta/employee-registry/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insertEmployeeQuery = `
		INSERT INTO employees (first_name, last_name, email)
		VALUES ($1, $2, $3)
		RETURNING id, first_name, last_name, email;
	`

const updateEmployeeQuery = `
		UPDATE employees
		SET first_name = $2, last_name = $3, email = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING id, first_name, last_name, email;
	`

const (
	findAllQuery     = `SELECT id, first_name, last_name, email FROM employees ORDER BY id`
	findByIDQuery    = `SELECT id, first_name, last_name, email FROM employees WHERE id=$1`
	findByEmailQuery = `SELECT id, first_name, last_name, email FROM employees WHERE email=$1`
	deleteByIDQuery  = `DELETE FROM employees WHERE id = $1`
	deleteAllQuery   = `TRUNCATE TABLE employees RESTART IDENTITY`
)

var employeeColumns = []string{"id", "first_name", "last_name", "email"}

func newRepo(t *testing.T) (pgxmock.PgxPoolIface, repository.EmployeeRepoIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(mock.Close)

	return mock, repository.NewEmployeeRepository(mock, metrics.NewMetrics(prometheus.NewRegistry()))
}

func TestSaveEmployee_Insert(t *testing.T) {
	t.Parallel()

	mock, repo := newRepo(t)

	employee := models.Employee{FirstName: "Mani", LastName: "kumar", Email: "mani@outlook.com"}

	mock.ExpectQuery(regexp.QuoteMeta(insertEmployeeQuery)).
		WithArgs(employee.FirstName, employee.LastName, employee.Email).
		WillReturnRows(pgxmock.NewRows(employeeColumns).
			AddRow(int64(1), employee.FirstName, employee.LastName, employee.Email))

	savedEmployee, err := repo.SaveEmployee(context.Background(), employee)

	require.NoError(t, err)
	assert.Positive(t, savedEmployee.ID)
	assert.Equal(t, employee.Email, savedEmployee.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveEmployee_InsertQueryError(t *testing.T) {
	t.Parallel()

	mock, repo := newRepo(t)

	employee := models.Employee{FirstName: "Mani", LastName: "kumar", Email: "mani@outlook.com"}

	mock.ExpectQuery(regexp.QuoteMeta(insertEmployeeQuery)).
		WithArgs(employee.FirstName, employee.LastName, employee.Email).
		WillReturnError(assert.AnError)

	_, err := repo.SaveEmployee(context.Background(), employee)

	require.EqualError(t, err, "failed to save employee: "+assert.AnError.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveEmployee_InsertDuplicateEmail(t *testing.T) {
	t.Parallel()

	mock, repo := newRepo(t)

	employee := models.Employee{FirstName: "Mani", LastName: "kumar", Email: "mani@outlook.com"}

	mock.ExpectQuery(regexp.QuoteMeta(insertEmployeeQuery)).
		WithArgs(employee.FirstName, employee.LastName, employee.Email).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "employees_email_key"})

	_, err := repo.SaveEmployee(context.Background(), employee)

	require.ErrorIs(t, err, repository.ErrDuplicateEmail)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveEmployee_Update(t *testing.T) {
	t.Parallel()

	mock, repo := newRepo(t)

	employee := models.Employee{ID: 1, FirstName: "Mani", LastName: "kanta", Email: "kanta@outlook.com"}

	mock.ExpectQuery(regexp.QuoteMeta(updateEmployeeQuery)).
		WithArgs(employee.ID, employee.FirstName, employee.LastName, employee.Email).
		WillReturnRows(pgxmock.NewRows(employeeColumns).
			AddRow(employee.ID, employee.FirstName, employee.LastName, employee.Email))

	updatedEmployee, err := repo.SaveEmployee(context.Background(), employee)

	require.NoError(t, err)
	assert.Equal(t, employee, updatedEmployee)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveEmployee_UpdateMissing(t *testing.T) {
	t.Parallel()

	mock, repo := newRepo(t)

	employee := models.Employee{ID: 42, FirstName: "Mani", LastName: "kanta", Email: "kanta@outlook.com"}

	mock.ExpectQuery(regexp.QuoteMeta(updateEmployeeQuery)).
		WithArgs(employee.ID, employee.FirstName, employee.LastName, employee.Email).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.SaveEmployee(context.Background(), employee)

	require.ErrorIs(t, err, repository.ErrEmployeeNotFound)
	require.ErrorContains(t, err, "failed to update employee data")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAll(t *testing.T) {
	t.Parallel()

	t.Run("returns every row", func(t *testing.T) {
		t.Parallel()
		mock, repo := newRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta(findAllQuery)).
			WillReturnRows(pgxmock.NewRows(employeeColumns).
				AddRow(int64(1), "Mani", "kumar", "mani@outlook.com").
				AddRow(int64(2), "James", "bond", "james@outlook.com"))

		employees, err := repo.FindAll(context.Background())

		require.NoError(t, err)
		assert.Len(t, employees, 2)
		assert.Equal(t, "james@outlook.com", employees[1].Email)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty table gives empty slice", func(t *testing.T) {
		t.Parallel()
		mock, repo := newRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta(findAllQuery)).WillReturnRows(pgxmock.NewRows(employeeColumns))

		employees, err := repo.FindAll(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, employees)
		assert.Empty(t, employees)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		t.Parallel()
		mock, repo := newRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta(findAllQuery)).WillReturnError(assert.AnError)

		employees, err := repo.FindAll(context.Background())

		require.ErrorIs(t, err, assert.AnError)
		assert.Nil(t, employees)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFindByID_Success(t *testing.T) {
	t.Parallel()

	mock, repo := newRepo(t)

	expEmployee := models.Employee{ID: 123, FirstName: "Mani", LastName: "kumar", Email: "mani@outlook.com"}

	mock.ExpectQuery(regexp.QuoteMeta(findByIDQuery)).
		WithArgs(expEmployee.ID).
		WillReturnRows(pgxmock.NewRows(employeeColumns).
			AddRow(expEmployee.ID, expEmployee.FirstName, expEmployee.LastName, expEmployee.Email))

	actualEmployee, err := repo.FindByID(context.Background(), expEmployee.ID)

	require.NoError(t, err)
	assert.Equal(t, expEmployee, actualEmployee)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_QueryError(t *testing.T) {
	t.Parallel()

	mock, repo := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(findByIDQuery)).
		WithArgs(int64(123)).
		WillReturnError(assert.AnError)

	actualEmployee, err := repo.FindByID(context.Background(), 123)

	require.EqualError(t, err, "failed to get employee by id: "+assert.AnError.Error())
	assert.Equal(t, models.Employee{}, actualEmployee)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_NotFound(t *testing.T) {
	t.Parallel()

	mock, repo := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(findByIDQuery)).
		WithArgs(int64(7)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 7)

	require.ErrorIs(t, err, repository.ErrEmployeeNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmail(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		mock, repo := newRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta(findByEmailQuery)).
			WithArgs("mani@outlook.com").
			WillReturnRows(pgxmock.NewRows(employeeColumns).AddRow(int64(1), "Mani", "kumar", "mani@outlook.com"))

		employee, err := repo.FindByEmail(context.Background(), "mani@outlook.com")

		require.NoError(t, err)
		assert.Equal(t, int64(1), employee.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		mock, repo := newRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta(findByEmailQuery)).
			WithArgs("nobody@outlook.com").
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.FindByEmail(context.Background(), "nobody@outlook.com")

		require.ErrorIs(t, err, repository.ErrEmployeeNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteByID(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mock, repo := newRepo(t)

		mock.ExpectExec(regexp.QuoteMeta(deleteByIDQuery)).
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, repo.DeleteByID(context.Background(), 1))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing id is not an error", func(t *testing.T) {
		t.Parallel()
		mock, repo := newRepo(t)

		mock.ExpectExec(regexp.QuoteMeta(deleteByIDQuery)).
			WithArgs(int64(404)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		require.NoError(t, repo.DeleteByID(context.Background(), 404))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		t.Parallel()
		mock, repo := newRepo(t)

		mock.ExpectExec(regexp.QuoteMeta(deleteByIDQuery)).
			WithArgs(int64(1)).
			WillReturnError(assert.AnError)

		err := repo.DeleteByID(context.Background(), 1)

		require.EqualError(t, err, "failed to delete employee: "+assert.AnError.Error())
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteAll(t *testing.T) {
	t.Parallel()

	mock, repo := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(deleteAllQuery)).WillReturnResult(pgxmock.NewResult("TRUNCATE", 0))

	require.NoError(t, repo.DeleteAll(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
