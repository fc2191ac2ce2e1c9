package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/taskfeed/taskfeed-be/internal/storage"
	"github.com/taskfeed/taskfeed-be/internal/storage/postgres/migrations"
)

// Compile-time interface checks.
var (
	_ storage.UserStore   = (*Store)(nil)
	_ storage.TodoStore   = (*Store)(nil)
	_ storage.SocialStore = (*Store)(nil)
)

// Store provides Postgres-backed persistence for users, todos and the social
// graph. The pool is shared by all request goroutines; the Store itself holds
// no other state.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to the database, applies pending migrations and returns
// a ready store.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	if err := migrate(ctx, databaseURL); err != nil {
		return nil, err
	}

	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// migrate runs the embedded goose migrations over a short-lived database/sql
// connection; pgxpool is used for everything else.
func migrate(ctx context.Context, databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Ping verifies database connectivity, used by the health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
