package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/service"
)

// ErrorBody is the envelope returned on every non-2xx response.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// HTTPErrorObserver receives every error status written by the API.
type HTTPErrorObserver interface {
	ObserveHTTPError(statusCode int)
}

type responder struct {
	observer HTTPErrorObserver
}

func (rp *responder) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func (rp *responder) writeError(w http.ResponseWriter, status int, code, message string, details interface{}) {
	if rp.observer != nil {
		rp.observer.ObserveHTTPError(status)
	}
	rp.writeJSON(w, status, ErrorBody{Code: code, Message: message, Details: details})
}

// writeServiceError maps domain errors onto HTTP statuses. Unknown errors
// become 500 with a generic message so internals never leak.
func (rp *responder) writeServiceError(w http.ResponseWriter, err error) {
	var unavailable *domain.EquipmentUnavailableError
	switch {
	case errors.As(err, &unavailable):
		rp.writeError(w, http.StatusConflict, "equipment_unavailable", "some equipment is not available for rent", unavailable.Items)
	case errors.Is(err, domain.ErrAlreadyPaid):
		rp.writeError(w, http.StatusConflict, "already_paid", "the rent is already paid", nil)
	case errors.Is(err, domain.ErrValidation):
		rp.writeError(w, http.StatusBadRequest, "validation_failed", err.Error(), nil)
	case errors.Is(err, domain.ErrNotFound):
		rp.writeError(w, http.StatusNotFound, "not_found", "requested record does not exist", nil)
	case errors.Is(err, domain.ErrPermissionDenied):
		rp.writeError(w, http.StatusForbidden, "permission_denied", "you are not allowed to perform this operation", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		rp.writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password", nil)
	default:
		logger.Error("Internal error while handling request", "error", err)
		rp.writeError(w, http.StatusInternalServerError, "internal_error", "internal server error", nil)
	}
}

func (rp *responder) writeBadRequest(w http.ResponseWriter, message string) {
	rp.writeError(w, http.StatusBadRequest, "bad_request", message, nil)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
