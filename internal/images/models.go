package images

import (
	"time"

	"eventgallery/internal/contracts"
	"eventgallery/internal/events"
	"eventgallery/internal/users"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Image struct {
	ID           uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	EventID      uuid.UUID    `json:"eventId" gorm:"type:uuid;not null;index"`
	Event        events.Event `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	UserID       uuid.UUID    `json:"userId" gorm:"type:uuid;not null;index"`
	User         users.User   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Title        *string      `json:"title" gorm:"size:255"`
	Description  *string      `json:"description" gorm:"type:text"`
	ImageURL     string       `json:"imageUrl" gorm:"not null"`
	ImageKey     string       `json:"imageKey" gorm:"not null"`
	ThumbnailURL *string      `json:"thumbnailUrl"`
	ThumbnailKey *string      `json:"thumbnailKey"`
	Width        *int         `json:"width"`
	Height       *int         `json:"height"`
	FileSize     *int64       `json:"fileSize"`
	MimeType     *string      `json:"mimeType" gorm:"size:100"`
	UploadedAt   time.Time    `json:"uploadedAt" gorm:"autoCreateTime;index"`
}

func (Image) TableName() string { return "images" }

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (i *Image) ToContract() contracts.Image {
	return contracts.Image{
		ID:           i.ID.String(),
		EventID:      i.EventID.String(),
		UserID:       i.UserID.String(),
		Title:        i.Title,
		Description:  i.Description,
		ImageURL:     i.ImageURL,
		ImageKey:     i.ImageKey,
		ThumbnailURL: i.ThumbnailURL,
		ThumbnailKey: i.ThumbnailKey,
		Width:        i.Width,
		Height:       i.Height,
		FileSize:     i.FileSize,
		MimeType:     i.MimeType,
		UploadedAt:   i.UploadedAt,
	}
}

// Like is one user's like of an image.
type Like struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ImageID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_image_like"`
	Image     Image      `gorm:"constraint:OnDelete:CASCADE"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_image_like;index"`
	User      users.User `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (Like) TableName() string { return "image_likes" }

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// ListQuery is a validated image listing request.
type ListQuery struct {
	ViewerID  *uuid.UUID
	EventID   *uuid.UUID
	UserID    *uuid.UUID
	Search    string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
	SortBy    string
	Desc      bool
}
