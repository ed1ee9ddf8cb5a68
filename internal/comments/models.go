package comments

import (
	"time"

	"eventgallery/internal/contracts"
	"eventgallery/internal/images"
	"eventgallery/internal/users"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID        uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	ImageID   uuid.UUID    `json:"imageId" gorm:"type:uuid;not null;index"`
	Image     images.Image `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	UserID    uuid.UUID    `json:"userId" gorm:"type:uuid;not null;index"`
	User      users.User   `json:"user" gorm:"constraint:OnDelete:CASCADE"`
	Content   string       `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time    `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

func (Comment) TableName() string { return "image_comments" }

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Comment) ToContract() contracts.CommentWithUser {
	return contracts.CommentWithUser{
		Comment: contracts.Comment{
			ID:        c.ID.String(),
			ImageID:   c.ImageID.String(),
			UserID:    c.UserID.String(),
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		},
		User: c.User.ToPublic(),
	}
}

type ListQuery struct {
	ViewerID *uuid.UUID
	ImageID  *uuid.UUID
	UserID   *uuid.UUID
	Page     int
	Limit    int
	Desc     bool
}
