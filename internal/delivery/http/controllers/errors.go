package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"fieldbooking/internal/delivery/http/helpers"
	"fieldbooking/internal/domain"

	"github.com/google/uuid"
)

// writeServiceError maps a service error to the API envelope. Unknown errors are logged and returned as 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRange), errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, domain.ErrInvalidCredentials.Error())
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrUserNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, domain.ErrUserNotFound.Error())
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrReservationConflict):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, domain.ErrReservationConflict.Error())
	case errors.Is(err, domain.ErrDuplicateEmail):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, domain.ErrDuplicateEmail.Error())
	case errors.Is(err, domain.ErrFieldInactive),
		errors.Is(err, domain.ErrOutsideAvailability),
		errors.Is(err, domain.ErrInvalidStatusTransition):
		helpers.WriteJSONError(w, http.StatusUnprocessableEntity, helpers.ErrCodeUnprocessable, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal server error")
	}
}

// pathID reads a UUID path value. On failure it writes 400 and returns false.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	raw := r.PathValue(name)
	if raw == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing "+name)
		return "", false
	}
	id, ok := canonicalUUID(raw)
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid "+name)
		return "", false
	}
	return id, true
}

// canonicalUUID returns s in lower-case hyphenated form. Braced, hyphenless and urn:uuid: spellings are accepted.
func canonicalUUID(s string) (string, bool) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// validateWindow appends messages for a missing or inverted [start, end) pair.
func validateWindow(errs []string, start, end time.Time) []string {
	if start.IsZero() {
		errs = append(errs, "start_time is required")
	}
	if end.IsZero() {
		errs = append(errs, "end_time is required")
	}
	if !start.IsZero() && !end.IsZero() && !start.Before(end) {
		errs = append(errs, domain.ErrInvalidRange.Error())
	}
	return errs
}
