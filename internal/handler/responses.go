package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/takeyourtrade/collection-service/internal/domain"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse carries per-field validation failures.
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondValidationError sends a 422 with per-field messages.
func respondValidationError(w http.ResponseWriter, fields map[string]string) {
	respondJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
		Error:  ErrMsgInvalidRequestSummary,
		Fields: fields,
	})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgUnknownError          = "Unknown error"
	ErrMsgInvalidRequestBody    = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgItemNotFoundError     = "Item not found"
	ErrMsgUnauthenticatedError  = "Authentication required"
	ErrMsgUnavailableError      = "Service temporarily unavailable. Please try again later."
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// messages users can act upon.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrKeySetUnavailable):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrSigningKeyNotFound):
		return http.StatusUnauthorized, ErrMsgUnauthenticatedError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
