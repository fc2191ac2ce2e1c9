package dto

import "github.com/taskfeed/taskfeed-be/internal/models"

type CreateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type UpdateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PatchTodoRequest carries a partial update; at least one field must be set.
type PatchTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (r PatchTodoRequest) Patch() models.TodoPatch {
	return models.TodoPatch{Title: r.Title, Description: r.Description}
}
