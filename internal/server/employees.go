package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Houeta/employee-registry/internal/lib/logger/sl"
	"github.com/Houeta/employee-registry/internal/models"
	"github.com/Houeta/employee-registry/internal/services/employees"
	"github.com/gorilla/mux"
)

const (
	employeesPath  = "/api/employees"
	deletedMessage = "Employee deleted successfully!."
	maxBodyBytes   = 1 << 20
)

// EmployeeService is the business layer the HTTP handlers delegate to.
type EmployeeService interface {
	CreateEmployee(ctx context.Context, employee models.Employee) (models.Employee, error)
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	GetEmployeeByID(ctx context.Context, identifier int64) (models.Employee, bool, error)
	UpdateEmployee(ctx context.Context, employee models.Employee) (models.Employee, error)
	DeleteEmployee(ctx context.Context, identifier int64) error
	FindEmployeeByName(ctx context.Context, firstName, lastName string) (models.Employee, bool, error)
}

type EmployeeHandler struct {
	service EmployeeService
	log     *slog.Logger
}

func NewEmployeeHandler(service EmployeeService, log *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{service: service, log: log}
}

// Register mounts the employee routes on the router.
func (h *EmployeeHandler) Register(router *mux.Router) {
	router.HandleFunc(employeesPath, h.createEmployee).Methods(http.MethodPost)
	router.HandleFunc(employeesPath, h.listEmployees).Methods(http.MethodGet)
	router.HandleFunc(employeesPath+"/search", h.searchEmployee).Methods(http.MethodGet)
	router.HandleFunc(employeesPath+"/{id:[0-9]+}", h.getEmployee).Methods(http.MethodGet)
	router.HandleFunc(employeesPath+"/{id:[0-9]+}", h.updateEmployee).Methods(http.MethodPut)
	router.HandleFunc(employeesPath+"/{id:[0-9]+}", h.deleteEmployee).Methods(http.MethodDelete)
}

func (h *EmployeeHandler) createEmployee(writer http.ResponseWriter, req *http.Request) {
	employee, err := decodeEmployee(writer, req)
	if err != nil {
		respondError(h.log, writer, err)
		return
	}

	created, err := h.service.CreateEmployee(req.Context(), employee)
	if err != nil {
		h.fail(writer, req, err)
		return
	}

	respondJSON(h.log, writer, http.StatusCreated, created)
}

func (h *EmployeeHandler) listEmployees(writer http.ResponseWriter, req *http.Request) {
	employeeList, err := h.service.ListEmployees(req.Context())
	if err != nil {
		h.fail(writer, req, err)
		return
	}

	respondJSON(h.log, writer, http.StatusOK, employeeList)
}

func (h *EmployeeHandler) getEmployee(writer http.ResponseWriter, req *http.Request) {
	identifier, err := employeeID(req)
	if err != nil {
		respondError(h.log, writer, err)
		return
	}

	employee, found, err := h.service.GetEmployeeByID(req.Context(), identifier)
	if err != nil {
		h.fail(writer, req, err)
		return
	}
	if !found {
		respondError(h.log, writer, ErrorEntityNotFound{Name: "id", Value: mux.Vars(req)["id"]})
		return
	}

	respondJSON(h.log, writer, http.StatusOK, employee)
}

func (h *EmployeeHandler) updateEmployee(writer http.ResponseWriter, req *http.Request) {
	identifier, err := employeeID(req)
	if err != nil {
		respondError(h.log, writer, err)
		return
	}

	changes, err := decodeEmployee(writer, req)
	if err != nil {
		respondError(h.log, writer, err)
		return
	}

	saved, found, err := h.service.GetEmployeeByID(req.Context(), identifier)
	if err != nil {
		h.fail(writer, req, err)
		return
	}
	if !found {
		respondError(h.log, writer, ErrorEntityNotFound{Name: "id", Value: mux.Vars(req)["id"]})
		return
	}

	saved.FirstName = changes.FirstName
	saved.LastName = changes.LastName
	saved.Email = changes.Email

	updated, err := h.service.UpdateEmployee(req.Context(), saved)
	if err != nil {
		h.fail(writer, req, err)
		return
	}

	respondJSON(h.log, writer, http.StatusOK, updated)
}

func (h *EmployeeHandler) deleteEmployee(writer http.ResponseWriter, req *http.Request) {
	identifier, err := employeeID(req)
	if err != nil {
		respondError(h.log, writer, err)
		return
	}

	if err = h.service.DeleteEmployee(req.Context(), identifier); err != nil {
		h.fail(writer, req, err)
		return
	}

	writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write([]byte(deletedMessage))
}

func (h *EmployeeHandler) searchEmployee(writer http.ResponseWriter, req *http.Request) {
	firstName := strings.TrimSpace(req.URL.Query().Get("firstName"))
	lastName := strings.TrimSpace(req.URL.Query().Get("lastName"))

	var missing []string
	if firstName == "" {
		missing = append(missing, "firstName")
	}
	if lastName == "" {
		missing = append(missing, "lastName")
	}
	if len(missing) > 0 {
		respondError(h.log, writer, ErrorInvalidParam{Params: missing})
		return
	}

	employee, found, err := h.service.FindEmployeeByName(req.Context(), firstName, lastName)
	if err != nil {
		h.fail(writer, req, err)
		return
	}
	if !found {
		respondError(h.log, writer, ErrorEntityNotFound{Name: "name", Value: firstName + " " + lastName})
		return
	}

	respondJSON(h.log, writer, http.StatusOK, employee)
}

// fail maps service errors onto HTTP errors and logs the unexpected ones.
func (h *EmployeeHandler) fail(writer http.ResponseWriter, req *http.Request, err error) {
	switch {
	case errors.Is(err, employees.ErrEmployeeAlreadyExists):
		respondError(h.log, writer, ErrorEntityAlreadyExist{Reason: err.Error()})
	case errors.Is(err, employees.ErrInvalidEmployee):
		respondError(h.log, writer, ErrorInvalidParam{Params: []string{err.Error()}})
	default:
		h.log.ErrorContext(req.Context(), "Employee request failed",
			"method", req.Method, "path", req.URL.Path, sl.Err(err))
		respondError(h.log, writer, err)
	}
}

func decodeEmployee(writer http.ResponseWriter, req *http.Request) (models.Employee, error) {
	var employee models.Employee

	decoder := json.NewDecoder(http.MaxBytesReader(writer, req.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&employee); err != nil {
		return models.Employee{}, ErrorInvalidParam{Params: []string{"body: " + err.Error()}}
	}

	return employee, nil
}

func employeeID(req *http.Request) (int64, error) {
	raw := mux.Vars(req)["id"]

	identifier, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ErrorEntityNotFound{Name: "id", Value: raw}
	}

	return identifier, nil
}
