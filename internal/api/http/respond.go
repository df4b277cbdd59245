package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"kottage-backend/internal/domain"
	"kottage-backend/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError maps domain errors onto HTTP statuses. Availability conflicts
// are 409 so clients can retry with other dates; storage failures are 502
// because the request itself was valid.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "invalid_request"})
	case domain.IsAvailabilityConflict(err):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Code: "availability_conflict"})
	case errors.Is(err, domain.ErrInvalidTransition):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Code: "invalid_transition"})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Code: "not_found"})
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "not allowed", Code: "forbidden"})
	case errors.Is(err, domain.ErrPersistence):
		logger.Error("Storage error", "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "storage unavailable", Code: "persistence_error"})
	default:
		logger.Error("Unhandled error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error", Code: "internal"})
	}
}
