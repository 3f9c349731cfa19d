package handler

import (
	"errors"
	"net/http"

	"satchel/internal/domain"
	"satchel/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrSelfMove),
		errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrRootDeletionForbidden),
		errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrDestinationNotFound),
		errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrCycleDetected),
		errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// requireOwner extracts the authenticated owner from the request context.
// The auth middleware always sets it; an empty value means the route was
// mounted without the middleware.
func requireOwner(w http.ResponseWriter, r *http.Request) (string, bool) {
	ownerID := httputil.GetOwnerID(r)
	if ownerID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "missing authenticated owner")
		return "", false
	}
	return ownerID, true
}
