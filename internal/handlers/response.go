package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/Lixing-Zhang/nutribalance/internal/repository"
	"github.com/Lixing-Zhang/nutribalance/internal/service"
)

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	WriteJSON(w, status, map[string]string{"error": message}, logger)
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrFoodNotFound),
		errors.Is(err, repository.ErrIndexOutOfRange),
		errors.Is(err, service.ErrNoResults):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrUnknownField),
		errors.Is(err, repository.ErrUnknownNutrient),
		errors.Is(err, repository.ErrUnknownGroup),
		errors.Is(err, service.ErrEmptyQuery),
		errors.Is(err, service.ErrMissingInput):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrInvalidValue),
		errors.Is(err, service.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// writeServiceError logs err and writes the mapped status. Internal details
// are not exposed on 500s.
func writeServiceError(w http.ResponseWriter, err error, logger *slog.Logger, msg string, args ...any) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error(msg, append(args, "error", err)...)
		WriteError(w, status, "Internal server error", logger)
		return
	}
	logger.Info(msg, append(args, "error", err)...)
	WriteError(w, status, err.Error(), logger)
}

// decodeJSON decodes the request body into v, rejecting unknown fields
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
