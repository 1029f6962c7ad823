package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/targetlink/targetlink/domain/association"
)

// writeJSON writes a JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps domain errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error, logger *slog.Logger) {
	status := http.StatusInternalServerError
	if errors.Is(err, association.ErrNotFound) {
		status = http.StatusNotFound
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
