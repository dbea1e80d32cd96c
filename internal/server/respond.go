package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"communitycash/internal/apperr"
	"communitycash/internal/auth"
	"communitycash/internal/middleware"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// writeError maps an application error kind to a status code. Internal
// detail (wrapped storage errors) is logged but never sent outward.
func writeError(w http.ResponseWriter, err error) {
	var status int
	message := err.Error()

	switch apperr.KindOf(err) {
	case apperr.KindUnauthorized:
		status = http.StatusUnauthorized
	case apperr.KindForbidden:
		status = http.StatusForbidden
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindValidation:
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
		message = "Internal server error"
		slog.Error("request failed", "error", err)
	}

	writeJSON(w, status, map[string]string{"error": message})
}

// decodeBody decodes a JSON request body, converting syntax errors into
// validation failures.
func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("Invalid request body")
	}
	return nil
}

// identity extracts the authenticated caller set by the auth middleware.
// Protected routes are always behind RequireAuth, so a missing identity
// is a wiring bug, reported as Unauthorized rather than a panic.
func identity(r *http.Request) (auth.Identity, error) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		return auth.Identity{}, apperr.Unauthorized("Unauthorized")
	}
	return ident, nil
}

// pathID parses the named integer URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, apperr.Validation("Invalid " + name)
	}
	return id, nil
}
