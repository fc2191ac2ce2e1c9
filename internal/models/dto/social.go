package dto

type CreatePostRequest struct {
	Content     string  `json:"content"`
	ImageURL    *string `json:"image_url"`
	ReplyToPost *int64  `json:"reply_to_post_id"`
}

type UpdatePostRequest struct {
	Content  *string `json:"content"`
	ImageURL *string `json:"image_url"`
}

type CreateCommentRequest struct {
	Content        string `json:"content"`
	ReplyToComment *int64 `json:"reply_to_comment_id"`
}

type FollowStatusResponse struct {
	Following bool `json:"following"`
}

type LikeStatusResponse struct {
	Liked bool `json:"liked"`
}
