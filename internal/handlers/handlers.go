// Package handlers contains the HTTP handlers for templates, documents, and
// branding settings.
//
// Authentication is an external collaborator: handlers read the resolved
// account ID from the X-Owner-ID header placed there by the auth layer in
// front of this service.
package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/diewo77/docugen/internal/errs"
	"github.com/diewo77/docugen/internal/httpx"
)

const ownerHeader = "X-Owner-ID"

// ownerID extracts the account ID from the request, writing a 401 when the
// header is missing or malformed.
func ownerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := r.Header.Get(ownerHeader)
	if raw == "" {
		httpx.JSONError(w, http.StatusUnauthorized, "missing_owner", nil)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_owner", nil)
		return uuid.Nil, false
	}
	return id, true
}

// pathID parses the {id} path value as a UUID.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps pipeline errors onto HTTP statuses. The error kind stays
// visible in the payload for diagnostics; callers show a generic retry
// message to users.
func writeError(w http.ResponseWriter, err error) {
	var v *errs.ValidationError
	switch {
	case errors.As(err, &v):
		httpx.JSONError(w, http.StatusUnprocessableEntity, "validation_failed", v.Violations)
	case errors.Is(err, errs.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, errs.ErrRender):
		httpx.JSONError(w, http.StatusInternalServerError, "render_failed", nil)
	case errors.Is(err, errs.ErrExport):
		httpx.JSONError(w, http.StatusInternalServerError, "export_failed", nil)
	case errors.Is(err, errs.ErrStorage):
		httpx.JSONError(w, http.StatusInternalServerError, "storage_failed", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}
