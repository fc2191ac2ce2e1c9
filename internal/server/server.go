// Package server wires configuration, storage, services and middleware into
// a running HTTP server.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/taskfeed/taskfeed-be/internal/auth"
	"github.com/taskfeed/taskfeed-be/internal/config"
	"github.com/taskfeed/taskfeed-be/internal/http/handlers"
	"github.com/taskfeed/taskfeed-be/internal/middleware"
	"github.com/taskfeed/taskfeed-be/internal/storage/postgres"
)

// Server wraps an http.Server with configured routes and owns the rate
// limiter goroutines.
type Server struct {
	inner       *http.Server
	globalLimit *middleware.RateLimiter
	authLimit   *middleware.RateLimiter
}

// New wires up middleware and routes and returns a ready server.
func New(cfg config.Config, store *postgres.Store) (*Server, error) {
	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return nil, err
	}
	hasher := auth.NewHasher(cfg.HashingSecret)
	authSvc := auth.NewService(store, hasher, tokens)

	authHandler := handlers.NewAuthHandler(authSvc)
	healthHandler := handlers.NewHealthHandler(store, time.Now())
	todoHandler := handlers.NewTodoHandler(store)
	postHandler := handlers.NewPostHandler(store)
	followHandler := handlers.NewFollowHandler(store)
	profileHandler := handlers.NewProfileHandler(store)

	globalLimit := middleware.NewRateLimiter(cfg.GlobalRateRPM, time.Minute)
	authLimit := middleware.NewRateLimiter(cfg.AuthRatePer15m, 15*time.Minute)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Correlation-Id"},
		ExposedHeaders:   []string{"X-Correlation-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.RateLimit(globalLimit))

	r.Get("/health", healthHandler.Check)

	// Auth endpoints carry a second, stricter limiter on top of the global
	// one to slow down credential stuffing.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(authLimit))
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tokens))

		r.Route("/todos", func(r chi.Router) {
			r.Post("/", todoHandler.Create)
			r.Get("/", todoHandler.List)
			r.Get("/{id}", todoHandler.Get)
			r.Put("/{id}", todoHandler.Update)
			r.Patch("/{id}", todoHandler.Patch)
			r.Delete("/{id}", todoHandler.Delete)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Post("/", postHandler.Create)
			r.Get("/feed", postHandler.Feed)
			r.Get("/{id}", postHandler.Get)
			r.Put("/{id}", postHandler.Update)
			r.Delete("/{id}", postHandler.Delete)
			r.Post("/{id}/like", postHandler.Like)
			r.Delete("/{id}/like", postHandler.Unlike)
			r.Get("/{id}/like", postHandler.LikeStatus)
			r.Post("/{id}/comments", postHandler.Comment)
			r.Get("/{id}/comments", postHandler.Comments)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", profileHandler.Me)
			r.Put("/me", profileHandler.Update)
			r.Get("/search", profileHandler.Search)
			r.Get("/{id}", profileHandler.Get)
			r.Get("/{id}/posts", postHandler.UserPosts)
			r.Post("/{id}/follow", followHandler.Follow)
			r.Delete("/{id}/follow", followHandler.Unfollow)
			r.Get("/{id}/follow", followHandler.Status)
			r.Get("/{id}/followers", followHandler.Followers)
			r.Get("/{id}/following", followHandler.Following)
		})
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{
		inner:       httpServer,
		globalLimit: globalLimit,
		authLimit:   authLimit,
	}, nil
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server and stops the limiter sweeps.
func (s *Server) Shutdown(ctx context.Context) error {
	s.globalLimit.Stop()
	s.authLimit.Stop()
	return s.inner.Shutdown(ctx)
}
