package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"geohash-engine/geohash"
	"geohash-engine/index"
	"geohash-engine/matching"
)

// APIError is the body of every error response.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"` // bad_request, not_found, too_many_cells, internal_error
	Message string `json:"message"`
}

var errTooManyCells = errors.New("cover exceeds the cell limit")

func tooManyCells(n, limit uint64) error {
	return fmt.Errorf("%w: %d > %d", errTooManyCells, n, limit)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := http.StatusInternalServerError, "internal_error"
	switch {
	case errors.Is(err, geohash.ErrInvalidSymbol),
		errors.Is(err, geohash.ErrInvalidPrecision),
		errors.Is(err, geohash.ErrInvalidBounds),
		errors.Is(err, geohash.ErrInvalidRadius),
		errors.Is(err, geohash.ErrInvalidAccuracy),
		errors.Is(err, index.ErrInvalidPoint):
		status, code = http.StatusBadRequest, "bad_request"
	case errors.Is(err, index.ErrNotFound), errors.Is(err, matching.ErrNoneNearby):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, errTooManyCells):
		status, code = http.StatusUnprocessableEntity, "too_many_cells"
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		msg = "internal error"
	}
	writeJSON(w, status, APIError{Status: status, Code: code, Message: msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, APIError{Status: http.StatusBadRequest, Code: "bad_request", Message: msg})
}
