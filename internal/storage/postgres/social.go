package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taskfeed/taskfeed-be/internal/models"
	"github.com/taskfeed/taskfeed-be/internal/storage"
)

const postColumns = `id, user_id, content, image_url, like_count, comment_count,
	reply_to_post_id, created_at, updated_at`

const commentColumns = `id, user_id, post_id, content, reply_to_comment_id,
	created_at, updated_at`

// CreatePost inserts a new post. The author's post_count is bumped by a
// database trigger.
func (s *Store) CreatePost(ctx context.Context, userID int64, content string, imageURL *string, replyToPost *int64) (models.Post, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO posts (user_id, content, image_url, reply_to_post_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+postColumns+`;`, userID, content, imageURL, replyToPost)
	return scanPost(row)
}

// GetPost fetches a post by id.
func (s *Store) GetPost(ctx context.Context, id int64) (models.Post, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+postColumns+` FROM posts WHERE id = $1;`, id)
	return scanPost(row)
}

// UserPosts returns a user's posts, newest first.
func (s *Store) UserPosts(ctx context.Context, userID, limit, offset int64) ([]models.Post, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+postColumns+` FROM posts
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3;`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPosts(rows)
}

// FeedPosts returns posts from the user and everyone they follow, newest
// first.
func (s *Store) FeedPosts(ctx context.Context, userID, limit, offset int64) ([]models.Post, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+postColumns+` FROM posts
		WHERE user_id = $1
		   OR user_id IN (SELECT following_id FROM follows WHERE follower_id = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3;`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPosts(rows)
}

// UpdatePost applies the non-nil fields to the author's own post. Posts owned
// by other users surface as storage.ErrNotFound.
func (s *Store) UpdatePost(ctx context.Context, id, userID int64, content, imageURL *string) (models.Post, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE posts SET
			content   = COALESCE($3, content),
			image_url = COALESCE($4, image_url)
		WHERE id = $1 AND user_id = $2
		RETURNING `+postColumns+`;`, id, userID, content, imageURL)
	return scanPost(row)
}

// DeletePost removes the author's own post.
func (s *Store) DeletePost(ctx context.Context, id, userID int64) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM posts WHERE id = $1 AND user_id = $2;`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Follow records follower following followingID. Following someone twice
// surfaces as storage.ErrAlreadyExists.
func (s *Store) Follow(ctx context.Context, followerID, followingID int64) (models.Follow, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO follows (follower_id, following_id)
		VALUES ($1, $2)
		RETURNING id, follower_id, following_id, created_at;`, followerID, followingID)

	var follow models.Follow
	err := row.Scan(&follow.ID, &follow.FollowerID, &follow.FollowingID, &follow.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.Follow{}, storage.ErrAlreadyExists
		}
		return models.Follow{}, err
	}
	return follow, nil
}

// Unfollow removes a follow edge.
func (s *Store) Unfollow(ctx context.Context, followerID, followingID int64) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM follows WHERE follower_id = $1 AND following_id = $2;`,
		followerID, followingID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// IsFollowing reports whether the follow edge exists.
func (s *Store) IsFollowing(ctx context.Context, followerID, followingID int64) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2
		);`, followerID, followingID).Scan(&exists)
	return exists, err
}

// Followers lists the profiles following userID, most recent follow first.
func (s *Store) Followers(ctx context.Context, userID, limit, offset int64) ([]models.Profile, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+qualifiedProfileColumns+` FROM users u
		JOIN follows f ON f.follower_id = u.id
		WHERE f.following_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3;`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProfiles(rows)
}

// Following lists the profiles userID follows, most recent follow first.
func (s *Store) Following(ctx context.Context, userID, limit, offset int64) ([]models.Profile, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+qualifiedProfileColumns+` FROM users u
		JOIN follows f ON f.following_id = u.id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3;`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProfiles(rows)
}

// LikePost records a like. Liking the same post twice surfaces as
// storage.ErrAlreadyExists; the post's like_count is maintained by a trigger.
func (s *Store) LikePost(ctx context.Context, userID, postID int64) (models.Like, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO likes (user_id, post_id)
		VALUES ($1, $2)
		RETURNING id, user_id, post_id, created_at;`, userID, postID)

	var like models.Like
	err := row.Scan(&like.ID, &like.UserID, &like.PostID, &like.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.Like{}, storage.ErrAlreadyExists
		}
		return models.Like{}, err
	}
	return like, nil
}

// UnlikePost removes a like.
func (s *Store) UnlikePost(ctx context.Context, userID, postID int64) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM likes WHERE user_id = $1 AND post_id = $2;`, userID, postID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// IsLiked reports whether the user has liked the post.
func (s *Store) IsLiked(ctx context.Context, userID, postID int64) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM likes WHERE user_id = $1 AND post_id = $2
		);`, userID, postID).Scan(&exists)
	return exists, err
}

// CreateComment attaches a comment to a post. The post's comment_count is
// maintained by a trigger.
func (s *Store) CreateComment(ctx context.Context, userID, postID int64, content string, replyToComment *int64) (models.Comment, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO comments (user_id, post_id, content, reply_to_comment_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+commentColumns+`;`, userID, postID, content, replyToComment)
	return scanComment(row)
}

// PostComments lists a post's comments, oldest first.
func (s *Store) PostComments(ctx context.Context, postID, limit, offset int64) ([]models.Comment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+commentColumns+` FROM comments
		WHERE post_id = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3;`, postID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

const qualifiedProfileColumns = `u.id, u.username, u.display_name, u.bio, u.avatar_url,
	u.location, u.website, u.is_verified, u.is_private, u.follower_count,
	u.following_count, u.post_count, u.created_at`

func scanPost(row pgx.Row) (models.Post, error) {
	var post models.Post
	err := row.Scan(&post.ID, &post.UserID, &post.Content, &post.ImageURL,
		&post.LikeCount, &post.CommentCount, &post.ReplyToPost,
		&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Post{}, storage.ErrNotFound
		}
		return models.Post{}, err
	}
	return post, nil
}

func collectPosts(rows pgx.Rows) ([]models.Post, error) {
	posts := []models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func scanComment(row pgx.Row) (models.Comment, error) {
	var comment models.Comment
	err := row.Scan(&comment.ID, &comment.UserID, &comment.PostID, &comment.Content,
		&comment.ReplyToComment, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Comment{}, storage.ErrNotFound
		}
		return models.Comment{}, err
	}
	return comment, nil
}
