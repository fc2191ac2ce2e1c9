package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/taskfeed/taskfeed-be/internal/http/respond"
	"github.com/taskfeed/taskfeed-be/internal/models/dto"
	"github.com/taskfeed/taskfeed-be/internal/storage"
)

// PostHandler owns the post, like and comment endpoints.
type PostHandler struct {
	store storage.SocialStore
}

// NewPostHandler constructs the handler.
func NewPostHandler(store storage.SocialStore) *PostHandler {
	return &PostHandler{store: store}
}

// Create publishes a new post, optionally as a reply to another post.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req dto.CreatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		respond.Error(w, http.StatusBadRequest, "content is required")
		return
	}

	post, err := h.store.CreatePost(r.Context(), user.ID, req.Content, req.ImageURL, req.ReplyToPost)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("create post failed")
		respond.Error(w, http.StatusInternalServerError, "failed to create post")
		return
	}
	respond.JSON(w, http.StatusCreated, "post created", post)
}

// Get returns a single post by id.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	post, err := h.store.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "post not found")
			return
		}
		log.Ctx(r.Context()).Error().Err(err).Int64("post_id", id).Msg("get post failed")
		respond.Error(w, http.StatusInternalServerError, "failed to fetch post")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", post)
}

// Feed returns posts from the user and everyone they follow, newest first.
func (h *PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	limit, offset := pagination(r)

	posts, err := h.store.FeedPosts(r.Context(), user.ID, limit, offset)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("load feed failed")
		respond.Error(w, http.StatusInternalServerError, "failed to load feed")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", posts)
}

// UserPosts returns the posts of the user named in the route.
func (h *PostHandler) UserPosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	limit, offset := pagination(r)

	posts, err := h.store.UserPosts(r.Context(), userID, limit, offset)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("user_id", userID).Msg("list user posts failed")
		respond.Error(w, http.StatusInternalServerError, "failed to list posts")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", posts)
}

// Update edits the caller's own post. Posts owned by someone else answer 404.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var req dto.UpdatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Content == nil && req.ImageURL == nil {
		respond.Error(w, http.StatusBadRequest, "nothing to update")
		return
	}
	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		respond.Error(w, http.StatusBadRequest, "content must not be empty")
		return
	}

	post, err := h.store.UpdatePost(r.Context(), id, user.ID, req.Content, req.ImageURL)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "post not found")
			return
		}
		log.Ctx(r.Context()).Error().Err(err).Int64("post_id", id).Msg("update post failed")
		respond.Error(w, http.StatusInternalServerError, "failed to update post")
		return
	}
	respond.JSON(w, http.StatusOK, "post updated", post)
}

// Delete removes the caller's own post.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	if err := h.store.DeletePost(r.Context(), id, user.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "post not found")
			return
		}
		log.Ctx(r.Context()).Error().Err(err).Int64("post_id", id).Msg("delete post failed")
		respond.Error(w, http.StatusInternalServerError, "failed to delete post")
		return
	}
	respond.JSON(w, http.StatusOK, "post deleted", nil)
}

// Like records the caller liking the post. Liking twice answers 409.
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	like, err := h.store.LikePost(r.Context(), user.ID, id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			respond.Error(w, http.StatusConflict, "post already liked")
		case errors.Is(err, storage.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "post not found")
		default:
			log.Ctx(r.Context()).Error().Err(err).Int64("post_id", id).Msg("like post failed")
			respond.Error(w, http.StatusInternalServerError, "failed to like post")
		}
		return
	}
	respond.JSON(w, http.StatusCreated, "post liked", like)
}

// Unlike removes the caller's like from the post.
func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	if err := h.store.UnlikePost(r.Context(), user.ID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "like not found")
			return
		}
		log.Ctx(r.Context()).Error().Err(err).Int64("post_id", id).Msg("unlike post failed")
		respond.Error(w, http.StatusInternalServerError, "failed to unlike post")
		return
	}
	respond.JSON(w, http.StatusOK, "post unliked", nil)
}

// LikeStatus reports whether the caller has liked the post.
func (h *PostHandler) LikeStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	liked, err := h.store.IsLiked(r.Context(), user.ID, id)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("post_id", id).Msg("like status failed")
		respond.Error(w, http.StatusInternalServerError, "failed to check like status")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", dto.LikeStatusResponse{Liked: liked})
}

// Comment attaches a comment to the post.
func (h *PostHandler) Comment(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var req dto.CreateCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		respond.Error(w, http.StatusBadRequest, "content is required")
		return
	}

	comment, err := h.store.CreateComment(r.Context(), user.ID, id, req.Content, req.ReplyToComment)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "post not found")
			return
		}
		log.Ctx(r.Context()).Error().Err(err).Int64("post_id", id).Msg("create comment failed")
		respond.Error(w, http.StatusInternalServerError, "failed to create comment")
		return
	}
	respond.JSON(w, http.StatusCreated, "comment created", comment)
}

// Comments lists a post's comments, oldest first.
func (h *PostHandler) Comments(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	limit, offset := pagination(r)

	comments, err := h.store.PostComments(r.Context(), id, limit, offset)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("post_id", id).Msg("list comments failed")
		respond.Error(w, http.StatusInternalServerError, "failed to list comments")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", comments)
}
