package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	apperrors "github.com/MinisterHD/Assets-Value-App/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeServiceError maps service errors onto the read-path contract: an
// unreachable store is an explicit "data unavailable" response, invalid input
// is a 400, anything else a 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var validation *apperrors.ErrValidation
	switch {
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "data unavailable"})
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": validation.Error()})
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// parseIDList reads repeated ?ids= parameters into asset ids.
func parseIDList(values []string) ([]int, error) {
	ids := make([]int, 0, len(values))
	for _, raw := range values {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &apperrors.ErrValidation{Field: "ids", Message: "must be integers"}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseDays reads the ?days= window parameter, falling back to a default.
func parseDays(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	if days, err := strconv.Atoi(raw); err == nil && days > 0 {
		return days
	}
	return fallback
}
