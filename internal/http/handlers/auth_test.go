package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
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

type memUserStore struct {
	users  map[string]models.User
	nextID int64
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]models.User), nextID: 1}
}

func (m *memUserStore) CreateUser(_ context.Context, username, passwordHash string) (models.User, error) {
	if _, ok := m.users[username]; ok {
		return models.User{}, storage.ErrAlreadyExists
	}
	user := models.User{ID: m.nextID, Username: username, PasswordHash: passwordHash}
	m.nextID++
	m.users[username] = user
	return user, nil
}

func (m *memUserStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	user, ok := m.users[username]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (m *memUserStore) CountByUsername(_ context.Context, username string) (int64, error) {
	if _, ok := m.users[username]; ok {
		return 1, nil
	}
	return 0, nil
}

func (m *memUserStore) GetProfile(context.Context, int64) (models.Profile, error) {
	return models.Profile{}, storage.ErrNotFound
}

func (m *memUserStore) UpdateProfile(context.Context, int64, models.ProfileUpdate) (models.Profile, error) {
	return models.Profile{}, storage.ErrNotFound
}

func (m *memUserStore) SearchProfiles(context.Context, string, int64, int64) ([]models.Profile, error) {
	return nil, nil
}

func newAuthTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	secret := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("s", 32)))
	tokens, err := auth.NewTokenManager(secret, time.Hour)
	require.NoError(t, err)
	svc := auth.NewService(newMemUserStore(), auth.NewHasher("unit-test-hashing-secret"), tokens)

	r := chi.NewRouter()
	h := NewAuthHandler(svc)
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func doPost(t *testing.T, url string, payload map[string]string) (int, string) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, buf.String()
}

func TestRegisterEndpoint(t *testing.T) {
	ts := newAuthTestServer(t)

	status, _ := doPost(t, ts.URL+"/auth/register", map[string]string{
		"username": "alice", "password": "GoodPass123!",
	})
	assert.Equal(t, http.StatusCreated, status)

	status, body := doPost(t, ts.URL+"/auth/register", map[string]string{
		"username": "alice", "password": "GoodPass123!",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, body, "already exists")
}

func TestRegisterEndpointWeakPassword(t *testing.T) {
	ts := newAuthTestServer(t)

	status, body := doPost(t, ts.URL+"/auth/register", map[string]string{
		"username": "alice", "password": "alllowercase1!",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "uppercase letter")
}

func TestRegisterEndpointBadUsername(t *testing.T) {
	ts := newAuthTestServer(t)

	status, _ := doPost(t, ts.URL+"/auth/register", map[string]string{
		"username": "a!", "password": "GoodPass123!",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestLoginEndpoint(t *testing.T) {
	ts := newAuthTestServer(t)

	status, _ := doPost(t, ts.URL+"/auth/register", map[string]string{
		"username": "alice", "password": "GoodPass123!",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := doPost(t, ts.URL+"/auth/login", map[string]string{
		"username": "alice", "password": "GoodPass123!",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "token")
}

func TestLoginEndpointHidesWhichCredentialFailed(t *testing.T) {
	ts := newAuthTestServer(t)

	status, _ := doPost(t, ts.URL+"/auth/register", map[string]string{
		"username": "alice", "password": "GoodPass123!",
	})
	require.Equal(t, http.StatusCreated, status)

	wrongPassStatus, wrongPassBody := doPost(t, ts.URL+"/auth/login", map[string]string{
		"username": "alice", "password": "WrongPass123!",
	})
	ghostStatus, ghostBody := doPost(t, ts.URL+"/auth/login", map[string]string{
		"username": "ghost", "password": "GoodPass123!",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPassStatus)
	assert.Equal(t, http.StatusUnauthorized, ghostStatus)
	// A wrong password and an unknown username must be indistinguishable.
	assert.Equal(t, wrongPassBody, ghostBody)
}
