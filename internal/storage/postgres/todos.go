package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/taskfeed/taskfeed-be/internal/models"
	"github.com/taskfeed/taskfeed-be/internal/storage"
)

const todoColumns = `id, title, description, user_id, created_at, updated_at`

// CreateTodo inserts a todo owned by userID.
func (s *Store) CreateTodo(ctx context.Context, userID int64, title, description string) (models.Todo, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO todos (title, description, user_id)
		VALUES ($1, $2, $3)
		RETURNING `+todoColumns+`;`, title, description, userID)
	return scanTodo(row)
}

// ListTodos returns the user's todos, newest first.
func (s *Store) ListTodos(ctx context.Context, userID int64) ([]models.Todo, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+todoColumns+` FROM todos
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC;`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []models.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, rows.Err()
}

// GetTodo fetches a single todo. Todos belonging to other users are invisible
// and surface as storage.ErrNotFound.
func (s *Store) GetTodo(ctx context.Context, userID, todoID int64) (models.Todo, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+todoColumns+` FROM todos
		WHERE id = $1 AND user_id = $2;`, todoID, userID)
	return scanTodo(row)
}

// UpdateTodo replaces the title and description of the user's todo.
func (s *Store) UpdateTodo(ctx context.Context, userID, todoID int64, title, description string) (models.Todo, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE todos SET title = $3, description = $4
		WHERE id = $1 AND user_id = $2
		RETURNING `+todoColumns+`;`, todoID, userID, title, description)
	return scanTodo(row)
}

// PatchTodo applies only the non-nil fields of patch.
func (s *Store) PatchTodo(ctx context.Context, userID, todoID int64, patch models.TodoPatch) (models.Todo, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE todos SET
			title       = COALESCE($3, title),
			description = COALESCE($4, description)
		WHERE id = $1 AND user_id = $2
		RETURNING `+todoColumns+`;`, todoID, userID, patch.Title, patch.Description)
	return scanTodo(row)
}

// DeleteTodo removes the user's todo, reporting storage.ErrNotFound when no
// such row exists.
func (s *Store) DeleteTodo(ctx context.Context, userID, todoID int64) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM todos WHERE id = $1 AND user_id = $2;`, todoID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanTodo(row pgx.Row) (models.Todo, error) {
	var todo models.Todo
	err := row.Scan(&todo.ID, &todo.Title, &todo.Description, &todo.UserID,
		&todo.CreatedAt, &todo.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Todo{}, storage.ErrNotFound
		}
		return models.Todo{}, err
	}
	return todo, nil
}
