package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/taskfeed/taskfeed-be/internal/http/respond"
	"github.com/taskfeed/taskfeed-be/internal/models"
	"github.com/taskfeed/taskfeed-be/internal/storage"
)

// ProfileHandler owns the profile read, update and search endpoints.
type ProfileHandler struct {
	store storage.UserStore
}

// NewProfileHandler constructs the handler.
func NewProfileHandler(store storage.UserStore) *ProfileHandler {
	return &ProfileHandler{store: store}
}

// Me returns the caller's own profile.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	profile, err := h.store.GetProfile(r.Context(), user.ID)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("load own profile failed")
		respond.Error(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", profile)
}

// Get returns the profile of the user named in the route.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	profile, err := h.store.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "user not found")
			return
		}
		log.Ctx(r.Context()).Error().Err(err).Int64("user_id", userID).Msg("load profile failed")
		respond.Error(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", profile)
}

// Update applies the non-nil fields of the request to the caller's profile.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req models.ProfileUpdate
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.DisplayName == nil && req.Bio == nil && req.AvatarURL == nil &&
		req.Location == nil && req.Website == nil && req.IsPrivate == nil {
		respond.Error(w, http.StatusBadRequest, "nothing to update")
		return
	}

	profile, err := h.store.UpdateProfile(r.Context(), user.ID, req)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("update profile failed")
		respond.Error(w, http.StatusInternalServerError, "failed to update profile")
		return
	}
	respond.JSON(w, http.StatusOK, "profile updated", profile)
}

// Search matches profiles by username or display name.
func (h *ProfileHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		respond.Error(w, http.StatusBadRequest, "query parameter q is required")
		return
	}
	limit, offset := pagination(r)

	profiles, err := h.store.SearchProfiles(r.Context(), query, limit, offset)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("query", query).Msg("search profiles failed")
		respond.Error(w, http.StatusInternalServerError, "failed to search profiles")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", profiles)
}
