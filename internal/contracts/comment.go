package contracts

import "time"

type Comment struct {
	ID        string    `json:"id"`
	ImageID   string    `json:"imageId"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CommentWithUser struct {
	Comment
	User UserPublic `json:"user"`
}

type CreateCommentRequest struct {
	ImageID string `json:"imageId"`
	Content string `json:"content"`
}

type UpdateCommentRequest struct {
	Content string `json:"content"`
}

type CreateCommentResponse struct {
	Comment CommentWithUser `json:"comment"`
	Message string          `json:"message"`
}
