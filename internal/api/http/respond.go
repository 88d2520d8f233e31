package http

import (
	"encoding/json"
	"net/http"

	"carrental-backoffice/internal/domain"
	"carrental-backoffice/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("response encoding failed", "error", err)
	}
}

// writeError maps domain errors onto HTTP statuses. Configuration errors are
// 500s: they indicate broken reference data, not a bad request.
func writeError(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case *domain.ValidationError:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: e.Error(), Code: "VALIDATION"})
	case *domain.InvalidTransitionError:
		writeJSON(w, http.StatusConflict, errorResponse{Error: e.Error(), Code: "INVALID_TRANSITION"})
	case *domain.InvalidStatusError:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: e.Error(), Code: "INVALID_STATUS"})
	case *domain.NotFoundError:
		writeJSON(w, http.StatusNotFound, errorResponse{Error: e.Error(), Code: "NOT_FOUND"})
	case *domain.ConfigurationError:
		logger.Error("configuration error", "error", e)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: e.Error(), Code: "CONFIGURATION"})
	default:
		logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
