package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps domain errors onto HTTP statuses. Signature failures are
// deliberately opaque.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidSignature):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrNotPaid),
		errors.Is(err, models.ErrSlotUnavailable),
		errors.Is(err, models.ErrNoVisitsLeft),
		errors.Is(err, models.ErrAlreadyAwarded):
		return http.StatusConflict
	case errors.Is(err, models.ErrFinalizationInProgress):
		return http.StatusAccepted
	case errors.Is(err, models.ErrFinalizationFailed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	if status == http.StatusUnauthorized {
		msg = "unauthorized"
	}
	writeJSON(w, status, map[string]string{"error": msg})
}
