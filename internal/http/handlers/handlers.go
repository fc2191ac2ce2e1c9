// Package handlers contains the HTTP endpoint implementations. Handlers
// decode requests, call the service or storage layer, and translate errors
// into the shared response envelope.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taskfeed/taskfeed-be/internal/auth"
	"github.com/taskfeed/taskfeed-be/internal/http/respond"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// decodeJSON decodes the request body into dst, writing a 400 and returning
// false on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return false
	}
	return true
}

// requireUser pulls the authenticated user out of the request context. The
// auth middleware guarantees it is present on protected routes; the 401 here
// only fires if a handler is mounted outside that group by mistake.
func requireUser(w http.ResponseWriter, r *http.Request) (auth.ContextUser, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "not authenticated")
	}
	return user, ok
}

// urlID parses the named chi route parameter as a positive integer id.
func urlID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// pagination reads limit/offset query parameters, clamping the limit.
func pagination(r *http.Request) (limit, offset int64) {
	limit = defaultPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			offset = n
		}
	}
	return limit, offset
}
