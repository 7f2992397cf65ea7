package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"courtside/internal/domain"
)

// httpStatusFromDomainError maps domain errors to HTTP status codes.
// Unauthenticated (401) and Forbidden (403) stay distinct so clients can
// tell "log in" apart from "you lack permission".
func httpStatusFromDomainError(err error) int {
	switch {
	case errors.As(err, new(*domain.NotFoundError)):
		return http.StatusNotFound
	case errors.As(err, new(*domain.UnauthenticatedError)):
		return http.StatusUnauthorized
	case errors.As(err, new(*domain.ForbiddenError)):
		return http.StatusForbidden
	case errors.As(err, new(*domain.ValidationError)),
		errors.As(err, new(*domain.InvalidSetSequenceError)),
		errors.As(err, new(*domain.InvalidSetScoreError)),
		errors.As(err, new(*domain.WinnerMismatchError)):
		return http.StatusBadRequest
	case errors.As(err, new(*domain.ConflictError)),
		errors.As(err, new(*domain.MatchAlreadyDecidedError)):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	status := httpStatusFromDomainError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// Internal details stay in the logs.
		msg = "internal server error"
	}
	writeJSON(w, status, errorBody{Code: status, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.ErrValidation("invalid request body: %v", err)
	}
	return nil
}
