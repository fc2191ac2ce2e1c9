package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taskfeed/taskfeed-be/internal/models"
	"github.com/taskfeed/taskfeed-be/internal/storage"
)

const uniqueViolation = "23505"

const userColumns = `id, username, password_hash, email, display_name, bio, avatar_url,
	location, website, is_verified, is_private, follower_count, following_count,
	post_count, created_at, updated_at`

const profileColumns = `id, username, display_name, bio, avatar_url, location, website,
	is_verified, is_private, follower_count, following_count, post_count, created_at`

// CreateUser inserts a new user row. A username collision surfaces as
// storage.ErrAlreadyExists regardless of which session wins the race.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (models.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING %s;`, userColumns)

	row := s.pool.QueryRow(ctx, query, username, passwordHash)
	user, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return user, nil
}

// FindByUsername fetches a user by username, including the password hash.
func (s *Store) FindByUsername(ctx context.Context, username string) (models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1;`, userColumns)
	return scanUser(s.pool.QueryRow(ctx, query, username))
}

// CountByUsername reports how many users carry the given username (0 or 1).
func (s *Store) CountByUsername(ctx context.Context, username string) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE username = $1;`, username).Scan(&count)
	return count, err
}

// GetProfile fetches the public profile view of a user.
func (s *Store) GetProfile(ctx context.Context, userID int64) (models.Profile, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1;`, profileColumns)
	return scanProfile(s.pool.QueryRow(ctx, query, userID))
}

// UpdateProfile applies the non-nil fields of update and returns the fresh
// profile.
func (s *Store) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.Profile, error) {
	query := fmt.Sprintf(`
		UPDATE users SET
			display_name = COALESCE($2, display_name),
			bio          = COALESCE($3, bio),
			avatar_url   = COALESCE($4, avatar_url),
			location     = COALESCE($5, location),
			website      = COALESCE($6, website),
			is_private   = COALESCE($7, is_private)
		WHERE id = $1
		RETURNING %s;`, profileColumns)

	row := s.pool.QueryRow(ctx, query, userID,
		update.DisplayName, update.Bio, update.AvatarURL,
		update.Location, update.Website, update.IsPrivate)
	return scanProfile(row)
}

// SearchProfiles matches the query against usernames and display names.
func (s *Store) SearchProfiles(ctx context.Context, query string, limit, offset int64) ([]models.Profile, error) {
	sql := fmt.Sprintf(`
		SELECT %s FROM users
		WHERE username ILIKE '%%' || $1 || '%%' OR display_name ILIKE '%%' || $1 || '%%'
		ORDER BY follower_count DESC, username
		LIMIT $2 OFFSET $3;`, profileColumns)

	rows, err := s.pool.Query(ctx, sql, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProfiles(rows)
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Email,
		&user.DisplayName, &user.Bio, &user.AvatarURL, &user.Location, &user.Website,
		&user.IsVerified, &user.IsPrivate, &user.FollowerCount, &user.FollowingCount,
		&user.PostCount, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func scanProfile(row pgx.Row) (models.Profile, error) {
	var p models.Profile
	err := row.Scan(&p.ID, &p.Username, &p.DisplayName, &p.Bio, &p.AvatarURL,
		&p.Location, &p.Website, &p.IsVerified, &p.IsPrivate,
		&p.FollowerCount, &p.FollowingCount, &p.PostCount, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Profile{}, storage.ErrNotFound
		}
		return models.Profile{}, err
	}
	return p, nil
}

func collectProfiles(rows pgx.Rows) ([]models.Profile, error) {
	profiles := []models.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
