package dto

type CreatePostRequest struct {
	Description string `json:"description"`
	Image       string `json:"image"`
}
