// Package respond holds the JSON plumbing shared by the API handlers.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicely/internal/apperr"
	"github.com/MrJamesThe3rd/invoicely/internal/identity"
)

type errorBody struct {
	Error string `json:"error"`
}

type validationBody struct {
	Errors []apperr.FieldError `json:"errors"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorBody{Error: msg})
}

// Err maps a service error onto a status code. kind names the record for 404s,
// e.g. "Client".
func Err(w http.ResponseWriter, r *http.Request, err error, kind string) {
	var verr *apperr.ValidationError

	switch {
	case errors.As(err, &verr):
		JSON(w, http.StatusBadRequest, validationBody{Errors: verr.Fields})
	case errors.Is(err, apperr.ErrNotFound):
		Error(w, http.StatusNotFound, kind+" not found")
	case errors.Is(err, apperr.ErrUnauthenticated):
		Error(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, apperr.ErrForbidden):
		Error(w, http.StatusForbidden, "Forbidden")
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path)
		Error(w, http.StatusInternalServerError, "Internal server error")
	}
}

// User returns the caller's id, answering 401 when there is none.
func User(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := identity.UserID(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "Unauthorized")
	}

	return id, ok
}

// ID parses the {id} path parameter, answering 400 when it is not a UUID.
func ID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}

	return id, true
}

// Decode reads a JSON body into dst, answering 400 on malformed input.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}

	return true
}

// Values dereferences a service result for the filter helpers and for encoding;
// a nil list encodes as [].
func Values[T any](in []*T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		out = append(out, *v)
	}

	return out
}
