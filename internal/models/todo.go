package models

import "time"

// Todo is a personal to-do item owned by a single user.
type Todo struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      int64     `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TodoPatch holds a partial update; nil fields are left untouched.
type TodoPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}
