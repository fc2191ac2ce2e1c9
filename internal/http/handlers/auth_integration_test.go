package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/taskfeed/taskfeed-be/internal/auth"
	"github.com/taskfeed/taskfeed-be/internal/storage/postgres"
)

// TestAuthIntegration exercises the register/login endpoints against a live
// database.
func TestAuthIntegration(t *testing.T) {
	if os.Getenv("RUN_AUTH_INTEGRATION") != "true" {
		t.Skip("set RUN_AUTH_INTEGRATION=true to run this integration test")
	}

	loadDotEnv()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	store, err := postgres.NewStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	defer store.Close()

	tokens, err := auth.NewTokenManager(mustGetEnv(t, "JWT_SECRET"), time.Hour)
	if err != nil {
		t.Fatalf("init token manager: %v", err)
	}
	hasher := auth.NewHasher(mustGetEnv(t, "HASHING_SECRET_KEY"))
	svc := auth.NewService(store, hasher, tokens)

	r := chi.NewRouter()
	authHandler := NewAuthHandler(svc)
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)

	ts := httptest.NewServer(r)
	defer ts.Close()

	username := fmt.Sprintf("apitest_%d", time.Now().UnixNano())
	password := "IntegrationPass1!"

	if status := postJSON(t, ts.URL+"/auth/register", map[string]string{
		"username": username,
		"password": password,
	}, nil); status != http.StatusCreated {
		t.Fatalf("register status = %d", status)
	}

	// Registering the same name again must conflict.
	if status := postJSON(t, ts.URL+"/auth/register", map[string]string{
		"username": username,
		"password": password,
	}, nil); status != http.StatusConflict {
		t.Fatalf("duplicate register status = %d", status)
	}

	var loginBody struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if status := postJSON(t, ts.URL+"/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &loginBody); status != http.StatusOK {
		t.Fatalf("login status = %d", status)
	}
	if loginBody.Data.Token == "" {
		t.Fatal("login response missing token")
	}

	user, err := tokens.Verify(loginBody.Data.Token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if user.Username != username {
		t.Fatalf("token username = %q, want %q", user.Username, username)
	}

	if status := postJSON(t, ts.URL+"/auth/login", map[string]string{
		"username": username,
		"password": "WrongPass123!",
	}, nil); status != http.StatusUnauthorized {
		t.Fatalf("wrong password login status = %d", status)
	}
}

func postJSON(t *testing.T, url string, payload map[string]string, out any) int {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("request %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func mustGetEnv(t *testing.T, key string) string {
	t.Helper()
	val := os.Getenv(key)
	if val == "" {
		t.Fatalf("%s is required", key)
	}
	return val
}

func loadDotEnv() {
	paths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
		"../../../../.env",
	}
	for _, path := range paths {
		_ = godotenv.Overload(path)
	}
}
