package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Houeta/employee-registry/internal/lib/logger/sl"
)

// ErrorEntityNotFound represents an error for when an entity is not found in the system.
type ErrorEntityNotFound struct {
	Name  string
	Value string
}

func (e ErrorEntityNotFound) Error() string {
	return fmt.Sprintf("No entity found with %s: %s", e.Name, e.Value)
}

func (ErrorEntityNotFound) StatusCode() int {
	return http.StatusNotFound
}

// ErrorEntityAlreadyExist represents an error for when the entity clashes with one already stored.
type ErrorEntityAlreadyExist struct {
	Reason string
}

func (e ErrorEntityAlreadyExist) Error() string {
	return e.Reason
}

func (ErrorEntityAlreadyExist) StatusCode() int {
	return http.StatusConflict
}

// ErrorInvalidParam represents an error for invalid or missing request values.
type ErrorInvalidParam struct {
	Params []string
}

func (e ErrorInvalidParam) Error() string {
	return fmt.Sprintf("'%d' invalid parameter(s): %s", len(e.Params), strings.Join(e.Params, ", "))
}

func (ErrorInvalidParam) StatusCode() int {
	return http.StatusBadRequest
}

type statusCodeResponder interface {
	StatusCode() int
	Error() string
}

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor returns the HTTP status carried by err, or 500 for anything else.
func statusFor(err error) int {
	if e, ok := err.(statusCodeResponder); ok {
		return e.StatusCode()
	}

	return http.StatusInternalServerError
}

// respondError writes err with its status code. Not-found answers carry no body.
func respondError(log *slog.Logger, writer http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusNotFound {
		writer.WriteHeader(status)
		return
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = http.StatusText(status)
	}

	respondJSON(log, writer, status, errorResponse{Error: message})
}

func respondJSON(log *slog.Logger, writer http.ResponseWriter, status int, payload any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	if err := json.NewEncoder(writer).Encode(payload); err != nil {
		log.Error("Failed to write response", "status", status, sl.Err(err))
	}
}
