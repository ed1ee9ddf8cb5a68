package contracts

import "time"

type Image struct {
	ID           string    `json:"id"`
	EventID      string    `json:"eventId"`
	UserID       string    `json:"userId"`
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	ImageURL     string    `json:"imageUrl"`
	ImageKey     string    `json:"imageKey"`
	ThumbnailURL *string   `json:"thumbnailUrl"`
	ThumbnailKey *string   `json:"thumbnailKey"`
	Width        *int      `json:"width"`
	Height       *int      `json:"height"`
	FileSize     *int64    `json:"fileSize"`
	MimeType     *string   `json:"mimeType"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

type ImageWithUser struct {
	Image
	User UserPublic `json:"user"`
}

type ImageStats struct {
	LikeCount    int `json:"likeCount"`
	CommentCount int `json:"commentCount"`
}

type ImageWithStats struct {
	Image
	ImageStats
}

type ImageDetail struct {
	Image
	ImageStats
	User                 UserPublic        `json:"user"`
	IsLikedByCurrentUser bool              `json:"isLikedByCurrentUser"`
	Comments             []CommentWithUser `json:"comments"`
}

// UploadImageRequest is sent as a multipart form once Image is attached.
type UploadImageRequest struct {
	EventID     string `json:"eventId"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       *File  `json:"-"`
}

func (r UploadImageRequest) Files() map[string]*File {
	return map[string]*File{"image": r.Image}
}

type UpdateImageRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

type UploadImageResponse struct {
	Image   ImageWithStats `json:"image"`
	Message string         `json:"message"`
}

type LikeImageResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"likeCount"`
}
