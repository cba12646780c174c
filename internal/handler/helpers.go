package handler

import (
	"errors"
	"net/http"

	"docvault/internal/domain"
	"docvault/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr) && validationErr.Field != "":
		httputil.RespondErrorWithExtras(w, http.StatusBadRequest, err.Error(), map[string]interface{}{
			"field": validationErr.Field,
		})
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnknownUser):
		httputil.RespondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrInvariantViolation), errors.Is(err, domain.ErrCancelled):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// pathID reads a required path parameter, answering 400 when it is blank
func pathID(w http.ResponseWriter, r *http.Request, name, label string) (string, bool) {
	id := r.PathValue(name)
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, label+" is required")
		return "", false
	}
	return id, true
}

// deleted answers a delete that reports whether anything existed
func deleted(w http.ResponseWriter, existed bool) {
	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"deleted": existed})
}
