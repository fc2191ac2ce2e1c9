package models

import "time"

// Post is a feed entry. Like and comment counts are maintained by database
// triggers, never by application code.
type Post struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Content      string    `json:"content"`
	ImageURL     *string   `json:"image_url,omitempty"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	ReplyToPost  *int64    `json:"reply_to_post_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Follow records that follower follows followee.
type Follow struct {
	ID          int64     `json:"id"`
	FollowerID  int64     `json:"follower_id"`
	FollowingID int64     `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Like records a single user liking a single post.
type Like struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	PostID    int64     `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is attached to a post, optionally replying to another comment.
type Comment struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	PostID         int64     `json:"post_id"`
	Content        string    `json:"content"`
	ReplyToComment *int64    `json:"reply_to_comment_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
