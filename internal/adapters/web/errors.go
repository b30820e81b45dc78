package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"vendordesk/internal/core"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps the core error taxonomy onto HTTP statuses:
// validation failures are 422, stale or missing working-set entries 409,
// external collaborator failures 502. Missing entities surface as 404,
// everything else as 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr   *core.ValidationError
		preconditionErr *core.PreconditionError
		remoteErr       *core.RemoteError
	)
	switch {
	case errors.As(err, &validationErr):
		writeError(w, r, validationErr.Msg, "VALIDATION_FAILED", http.StatusUnprocessableEntity)
	case errors.As(err, &preconditionErr):
		writeError(w, r, preconditionErr.Msg, "PRECONDITION_FAILED", http.StatusConflict)
	case errors.As(err, &remoteErr):
		writeError(w, r, remoteErr.Error(), "UPSTREAM_ERROR", http.StatusBadGateway)
	case strings.Contains(err.Error(), "not found"):
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
	default:
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
	}
}
