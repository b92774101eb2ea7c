package dto

type CreateCommentRequest struct {
	PostID      uint   `json:"postId"`
	Description string `json:"description"`
}
