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

// TodoHandler owns the per-user todo CRUD endpoints. Every operation runs
// against the authenticated user's own rows only.
type TodoHandler struct {
	store storage.TodoStore
}

// NewTodoHandler constructs the handler.
func NewTodoHandler(store storage.TodoStore) *TodoHandler {
	return &TodoHandler{store: store}
}

// Create adds a todo for the authenticated user.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req dto.CreateTodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respond.Error(w, http.StatusBadRequest, "title is required")
		return
	}

	todo, err := h.store.CreateTodo(r.Context(), user.ID, req.Title, req.Description)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("create todo failed")
		respond.Error(w, http.StatusInternalServerError, "failed to create todo")
		return
	}
	respond.JSON(w, http.StatusCreated, "todo created", todo)
}

// List returns all of the user's todos.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	todos, err := h.store.ListTodos(r.Context(), user.ID)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("list todos failed")
		respond.Error(w, http.StatusInternalServerError, "failed to list todos")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", todos)
}

// Get returns one of the user's todos by id.
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	todo, err := h.store.GetTodo(r.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "todo not found")
			return
		}
		log.Ctx(r.Context()).Error().Err(err).Int64("todo_id", id).Msg("get todo failed")
		respond.Error(w, http.StatusInternalServerError, "failed to fetch todo")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", todo)
}

// Update replaces a todo's title and description.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var req dto.UpdateTodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respond.Error(w, http.StatusBadRequest, "title is required")
		return
	}

	todo, err := h.store.UpdateTodo(r.Context(), user.ID, id, req.Title, req.Description)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "todo not found")
			return
		}
		log.Ctx(r.Context()).Error().Err(err).Int64("todo_id", id).Msg("update todo failed")
		respond.Error(w, http.StatusInternalServerError, "failed to update todo")
		return
	}
	respond.JSON(w, http.StatusOK, "todo updated", todo)
}

// Patch applies a partial update to a todo.
func (h *TodoHandler) Patch(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var req dto.PatchTodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title == nil && req.Description == nil {
		respond.Error(w, http.StatusBadRequest, "nothing to update")
		return
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		respond.Error(w, http.StatusBadRequest, "title must not be empty")
		return
	}

	todo, err := h.store.PatchTodo(r.Context(), user.ID, id, req.Patch())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "todo not found")
			return
		}
		log.Ctx(r.Context()).Error().Err(err).Int64("todo_id", id).Msg("patch todo failed")
		respond.Error(w, http.StatusInternalServerError, "failed to update todo")
		return
	}
	respond.JSON(w, http.StatusOK, "todo updated", todo)
}

// Delete removes a todo.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	if err := h.store.DeleteTodo(r.Context(), user.ID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "todo not found")
			return
		}
		log.Ctx(r.Context()).Error().Err(err).Int64("todo_id", id).Msg("delete todo failed")
		respond.Error(w, http.StatusInternalServerError, "failed to delete todo")
		return
	}
	respond.JSON(w, http.StatusOK, "todo deleted", nil)
}
