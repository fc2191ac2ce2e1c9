package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/taskfeed/taskfeed-be/internal/http/respond"
	"github.com/taskfeed/taskfeed-be/internal/models/dto"
	"github.com/taskfeed/taskfeed-be/internal/storage"
)

// FollowHandler owns the follow graph endpoints.
type FollowHandler struct {
	store storage.SocialStore
}

// NewFollowHandler constructs the handler.
func NewFollowHandler(store storage.SocialStore) *FollowHandler {
	return &FollowHandler{store: store}
}

// Follow makes the caller follow the user named in the route. Following
// yourself or following someone twice both fail.
func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	targetID, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	if targetID == user.ID {
		respond.Error(w, http.StatusBadRequest, "cannot follow yourself")
		return
	}

	follow, err := h.store.Follow(r.Context(), user.ID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			respond.Error(w, http.StatusConflict, "already following")
		case errors.Is(err, storage.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "user not found")
		default:
			log.Ctx(r.Context()).Error().Err(err).Int64("target_id", targetID).Msg("follow failed")
			respond.Error(w, http.StatusInternalServerError, "failed to follow user")
		}
		return
	}
	respond.JSON(w, http.StatusCreated, "following", follow)
}

// Unfollow removes the caller's follow edge to the user named in the route.
func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	targetID, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	if err := h.store.Unfollow(r.Context(), user.ID, targetID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "not following")
			return
		}
		log.Ctx(r.Context()).Error().Err(err).Int64("target_id", targetID).Msg("unfollow failed")
		respond.Error(w, http.StatusInternalServerError, "failed to unfollow user")
		return
	}
	respond.JSON(w, http.StatusOK, "unfollowed", nil)
}

// Status reports whether the caller follows the user named in the route.
func (h *FollowHandler) Status(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	targetID, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	following, err := h.store.IsFollowing(r.Context(), user.ID, targetID)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("target_id", targetID).Msg("follow status failed")
		respond.Error(w, http.StatusInternalServerError, "failed to check follow status")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", dto.FollowStatusResponse{Following: following})
}

// Followers lists profiles following the user named in the route.
func (h *FollowHandler) Followers(w http.ResponseWriter, r *http.Request) {
	userID, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	limit, offset := pagination(r)

	profiles, err := h.store.Followers(r.Context(), userID, limit, offset)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("user_id", userID).Msg("list followers failed")
		respond.Error(w, http.StatusInternalServerError, "failed to list followers")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", profiles)
}

// Following lists profiles the user named in the route follows.
func (h *FollowHandler) Following(w http.ResponseWriter, r *http.Request) {
	userID, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	limit, offset := pagination(r)

	profiles, err := h.store.Following(r.Context(), userID, limit, offset)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("user_id", userID).Msg("list following failed")
		respond.Error(w, http.StatusInternalServerError, "failed to list following")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", profiles)
}
