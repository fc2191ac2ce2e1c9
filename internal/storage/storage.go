package storage

import (
	"context"
	"errors"

	"github.com/taskfeed/taskfeed-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures the persistence operations the auth core and the
// profile endpoints need.
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	CountByUsername(ctx context.Context, username string) (int64, error)
	GetProfile(ctx context.Context, userID int64) (models.Profile, error)
	UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.Profile, error)
	SearchProfiles(ctx context.Context, query string, limit, offset int64) ([]models.Profile, error)
}

// TodoStore persists per-user to-do items. Every operation is scoped to the
// owning user; a row belonging to someone else behaves as if it did not
// exist.
type TodoStore interface {
	CreateTodo(ctx context.Context, userID int64, title, description string) (models.Todo, error)
	ListTodos(ctx context.Context, userID int64) ([]models.Todo, error)
	GetTodo(ctx context.Context, userID, id int64) (models.Todo, error)
	UpdateTodo(ctx context.Context, userID, id int64, title, description string) (models.Todo, error)
	PatchTodo(ctx context.Context, userID, id int64, patch models.TodoPatch) (models.Todo, error)
	DeleteTodo(ctx context.Context, userID, id int64) error
}

// SocialStore persists posts, follows, likes and comments. Counter columns
// are kept in sync by database triggers.
type SocialStore interface {
	CreatePost(ctx context.Context, userID int64, content string, imageURL *string, replyToPost *int64) (models.Post, error)
	GetPost(ctx context.Context, id int64) (models.Post, error)
	UserPosts(ctx context.Context, userID, limit, offset int64) ([]models.Post, error)
	FeedPosts(ctx context.Context, userID, limit, offset int64) ([]models.Post, error)
	UpdatePost(ctx context.Context, id, userID int64, content, imageURL *string) (models.Post, error)
	DeletePost(ctx context.Context, id, userID int64) error

	Follow(ctx context.Context, followerID, followingID int64) (models.Follow, error)
	Unfollow(ctx context.Context, followerID, followingID int64) error
	IsFollowing(ctx context.Context, followerID, followingID int64) (bool, error)
	Followers(ctx context.Context, userID, limit, offset int64) ([]models.Profile, error)
	Following(ctx context.Context, userID, limit, offset int64) ([]models.Profile, error)

	LikePost(ctx context.Context, userID, postID int64) (models.Like, error)
	UnlikePost(ctx context.Context, userID, postID int64) error
	IsLiked(ctx context.Context, userID, postID int64) (bool, error)

	CreateComment(ctx context.Context, userID, postID int64, content string, replyToComment *int64) (models.Comment, error)
	PostComments(ctx context.Context, postID, limit, offset int64) ([]models.Comment, error)
}
