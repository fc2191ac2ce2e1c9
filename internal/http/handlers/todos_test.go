package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskfeed/taskfeed-be/internal/auth"
	"github.com/taskfeed/taskfeed-be/internal/models"
	"github.com/taskfeed/taskfeed-be/internal/storage"
)

type memTodoStore struct {
	todos  map[int64]models.Todo
	nextID int64
}

func newMemTodoStore() *memTodoStore {
	return &memTodoStore{todos: make(map[int64]models.Todo), nextID: 1}
}

func (m *memTodoStore) CreateTodo(_ context.Context, userID int64, title, description string) (models.Todo, error) {
	todo := models.Todo{
		ID: m.nextID, Title: title, Description: description, UserID: userID,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	m.nextID++
	m.todos[todo.ID] = todo
	return todo, nil
}

func (m *memTodoStore) ListTodos(_ context.Context, userID int64) ([]models.Todo, error) {
	out := []models.Todo{}
	for _, todo := range m.todos {
		if todo.UserID == userID {
			out = append(out, todo)
		}
	}
	return out, nil
}

func (m *memTodoStore) GetTodo(_ context.Context, userID, id int64) (models.Todo, error) {
	todo, ok := m.todos[id]
	if !ok || todo.UserID != userID {
		return models.Todo{}, storage.ErrNotFound
	}
	return todo, nil
}

func (m *memTodoStore) UpdateTodo(ctx context.Context, userID, id int64, title, description string) (models.Todo, error) {
	todo, err := m.GetTodo(ctx, userID, id)
	if err != nil {
		return models.Todo{}, err
	}
	todo.Title, todo.Description = title, description
	m.todos[id] = todo
	return todo, nil
}

func (m *memTodoStore) PatchTodo(ctx context.Context, userID, id int64, patch models.TodoPatch) (models.Todo, error) {
	todo, err := m.GetTodo(ctx, userID, id)
	if err != nil {
		return models.Todo{}, err
	}
	if patch.Title != nil {
		todo.Title = *patch.Title
	}
	if patch.Description != nil {
		todo.Description = *patch.Description
	}
	m.todos[id] = todo
	return todo, nil
}

func (m *memTodoStore) DeleteTodo(ctx context.Context, userID, id int64) error {
	if _, err := m.GetTodo(ctx, userID, id); err != nil {
		return err
	}
	delete(m.todos, id)
	return nil
}

// asUser injects an authenticated identity the way the auth middleware does.
func asUser(user auth.ContextUser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}

func newTodoTestServer(t *testing.T, store *memTodoStore, user auth.ContextUser) *httptest.Server {
	t.Helper()
	h := NewTodoHandler(store)

	r := chi.NewRouter()
	r.Use(asUser(user))
	r.Post("/todos", h.Create)
	r.Get("/todos", h.List)
	r.Get("/todos/{id}", h.Get)
	r.Put("/todos/{id}", h.Update)
	r.Patch("/todos/{id}", h.Patch)
	r.Delete("/todos/{id}", h.Delete)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func doRequest(t *testing.T, method, url, body string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestTodoCRUD(t *testing.T) {
	store := newMemTodoStore()
	alice := auth.ContextUser{ID: 1, Username: "alice"}
	ts := newTodoTestServer(t, store, alice)

	status, body := doRequest(t, http.MethodPost, ts.URL+"/todos",
		`{"title":"buy milk","description":"2 liters"}`)
	assert.Equal(t, http.StatusCreated, status)
	assert.Contains(t, body, "buy milk")

	status, body = doRequest(t, http.MethodGet, ts.URL+"/todos/1", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "2 liters")

	status, body = doRequest(t, http.MethodPatch, ts.URL+"/todos/1",
		`{"description":"3 liters"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "3 liters")
	assert.Contains(t, body, "buy milk")

	status, _ = doRequest(t, http.MethodDelete, ts.URL+"/todos/1", "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = doRequest(t, http.MethodGet, ts.URL+"/todos/1", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestTodoValidation(t *testing.T) {
	ts := newTodoTestServer(t, newMemTodoStore(), auth.ContextUser{ID: 1, Username: "alice"})

	status, _ := doRequest(t, http.MethodPost, ts.URL+"/todos", `{"description":"no title"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doRequest(t, http.MethodPatch, ts.URL+"/todos/1", `{}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doRequest(t, http.MethodGet, ts.URL+"/todos/zero", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestTodoOwnershipScoping(t *testing.T) {
	store := newMemTodoStore()
	aliceTS := newTodoTestServer(t, store, auth.ContextUser{ID: 1, Username: "alice"})
	bobTS := newTodoTestServer(t, store, auth.ContextUser{ID: 2, Username: "bob"})

	status, _ := doRequest(t, http.MethodPost, aliceTS.URL+"/todos", `{"title":"secret"}`)
	require.Equal(t, http.StatusCreated, status)

	// Another user's todo behaves as if it does not exist.
	status, _ = doRequest(t, http.MethodGet, bobTS.URL+"/todos/1", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doRequest(t, http.MethodDelete, bobTS.URL+"/todos/1", "")
	assert.Equal(t, http.StatusNotFound, status)
}
