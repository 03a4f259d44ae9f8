package employees

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/Houeta/employee-registry/internal/lib/logger/sl"
	"github.com/Houeta/employee-registry/internal/metrics"
	"github.com/Houeta/employee-registry/internal/models"
	"github.com/Houeta/employee-registry/internal/repository"
)

var (
	// ErrEmployeeAlreadyExists is returned when another employee already uses the email.
	ErrEmployeeAlreadyExists = errors.New("employee already exists with given email")
	// ErrInvalidEmployee is returned when the employee fields fail validation.
	ErrInvalidEmployee = errors.New("invalid employee")
)

type Service struct {
	log     *slog.Logger
	repo    repository.EmployeeRepoIface
	metrics *metrics.Metrics
}

func NewService(log *slog.Logger, repo repository.EmployeeRepoIface, metrics *metrics.Metrics) *Service {
	return &Service{log: log, repo: repo, metrics: metrics}
}

func (s *Service) initLogger(opn string) *slog.Logger {
	return s.log.With(
		slog.String("op", opn),
		slog.String("division", "employee"),
	)
}

func (s *Service) record(operation string, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	s.metrics.EmployeeOperations.WithLabelValues(operation, status).Inc()
}

// CreateEmployee stores a new employee. It refuses the employee without touching the store
// when the email already belongs to someone else.
func (s *Service) CreateEmployee(ctx context.Context, employee models.Employee) (_ models.Employee, err error) {
	const opn = "Employee.CreateEmployee"
	log := s.initLogger(opn)
	defer func() { s.record("create", err) }()

	if err = ValidateEmployee(employee); err != nil {
		return models.Employee{}, err
	}

	existed, err := s.isEmailTaken(ctx, employee.Email)
	if err != nil {
		return models.Employee{}, err
	}
	if existed {
		log.InfoContext(ctx, "Employee with the same email already exists", "email", employee.Email)
		s.metrics.DuplicateEmails.Inc()
		return models.Employee{}, fmt.Errorf("%w: %s", ErrEmployeeAlreadyExists, employee.Email)
	}

	employee.ID = 0
	saved, err := s.repo.SaveEmployee(ctx, employee)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			s.metrics.DuplicateEmails.Inc()
			return models.Employee{}, fmt.Errorf("%w: %s", ErrEmployeeAlreadyExists, employee.Email)
		}
		log.ErrorContext(ctx, "Failed to save employee", sl.Err(err))
		return models.Employee{}, fmt.Errorf("failed to save new employee: %w", err)
	}

	log.DebugContext(ctx, "Employee created", "id", saved.ID)

	return saved, nil
}

// ListEmployees returns all employees, or an empty slice when there are none.
func (s *Service) ListEmployees(ctx context.Context) (_ []models.Employee, err error) {
	defer func() { s.record("list", err) }()

	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	if employees == nil {
		employees = []models.Employee{}
	}

	return employees, nil
}

// GetEmployeeByID returns the employee and true, or false with a nil error when it does not exist.
func (s *Service) GetEmployeeByID(ctx context.Context, identifier int64) (_ models.Employee, _ bool, err error) {
	defer func() { s.record("get", err) }()

	employee, err := s.repo.FindByID(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return models.Employee{}, false, nil
		}
		return models.Employee{}, false, fmt.Errorf("failed to get employee %d: %w", identifier, err)
	}

	return employee, true, nil
}

// UpdateEmployee overwrites the stored employee with the given fields.
// The caller is expected to have checked that the employee exists.
func (s *Service) UpdateEmployee(ctx context.Context, employee models.Employee) (_ models.Employee, err error) {
	const opn = "Employee.UpdateEmployee"
	log := s.initLogger(opn)
	defer func() { s.record("update", err) }()

	if err = ValidateEmployee(employee); err != nil {
		return models.Employee{}, err
	}

	updated, err := s.repo.SaveEmployee(ctx, employee)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			s.metrics.DuplicateEmails.Inc()
			return models.Employee{}, fmt.Errorf("%w: %s", ErrEmployeeAlreadyExists, employee.Email)
		}
		log.ErrorContext(ctx, "Failed to update employee", "id", employee.ID, sl.Err(err))
		return models.Employee{}, fmt.Errorf("failed to update employee '%d': %w", employee.ID, err)
	}

	return updated, nil
}

// DeleteEmployee removes the employee. Removing an unknown employee is not an error.
func (s *Service) DeleteEmployee(ctx context.Context, identifier int64) (err error) {
	defer func() { s.record("delete", err) }()

	if err = s.repo.DeleteByID(ctx, identifier); err != nil {
		return fmt.Errorf("failed to delete employee %d: %w", identifier, err)
	}

	return nil
}

// FindEmployeeByName looks an employee up by first and last name.
func (s *Service) FindEmployeeByName(
	ctx context.Context,
	firstName, lastName string,
) (_ models.Employee, _ bool, err error) {
	defer func() { s.record("search", err) }()

	employee, err := s.repo.FindByNameNamed(ctx, firstName, lastName)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return models.Employee{}, false, nil
		}
		return models.Employee{}, false, fmt.Errorf("failed to find employee by name: %w", err)
	}

	return employee, true, nil
}

func (s *Service) isEmailTaken(ctx context.Context, email string) (bool, error) {
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, repository.ErrEmployeeNotFound) {
		return false, nil
	}

	return false, fmt.Errorf("failed to check employee email: %w", err)
}

// ValidateEmployee checks that both names are present and the email is a valid address.
func ValidateEmployee(employee models.Employee) error {
	var problems []string

	if strings.TrimSpace(employee.FirstName) == "" {
		problems = append(problems, "firstName is required")
	}

	if strings.TrimSpace(employee.LastName) == "" {
		problems = append(problems, "lastName is required")
	}

	if !isValidEmail(employee.Email) {
		problems = append(problems, "email is invalid")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidEmployee, strings.Join(problems, ", "))
	}

	return nil
}

// isValidEmail checks if the given email address is a bare, valid address.
func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
