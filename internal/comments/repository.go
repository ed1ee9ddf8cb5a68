package comments

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, comment *Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string) (*Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, query ListQuery) ([]Comment, int64, error)
	Latest(ctx context.Context, imageID uuid.UUID, limit int) ([]Comment, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, comment *Comment) error {
	return r.db.WithContext(ctx).Omit("Image", "User").Create(comment).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	var comment Comment
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *repository) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*Comment, error) {
	result := r.db.WithContext(ctx).Model(&Comment{}).Where("id = ?", id).Update("content", content)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrCommentNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Comment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

// List returns comments on images the viewer may see, oldest first unless
// Desc is set.
func (r *repository) List(ctx context.Context, query ListQuery) ([]Comment, int64, error) {
	var found []Comment
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Comment{}).
		Joins("JOIN images ON images.id = image_comments.image_id").
		Joins("JOIN events ON events.id = images.event_id")
	if query.ViewerID == nil {
		db = db.Where("events.is_private = ?", false)
	} else {
		db = db.Where(
			"(events.is_private = ? OR events.created_by_id = ? OR EXISTS (SELECT 1 FROM event_participants vp WHERE vp.event_id = events.id AND vp.user_id = ?))",
			false, *query.ViewerID, *query.ViewerID,
		)
	}
	if query.ImageID != nil {
		db = db.Where("image_comments.image_id = ?", *query.ImageID)
	}
	if query.UserID != nil {
		db = db.Where("image_comments.user_id = ?", *query.UserID)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	order := "image_comments.created_at ASC"
	if query.Desc {
		order = "image_comments.created_at DESC"
	}
	err := db.Preload("User").
		Order(order).
		Order("image_comments.id ASC").
		Offset((query.Page - 1) * query.Limit).
		Limit(query.Limit).
		Find(&found).Error

	return found, totalCount, err
}

func (r *repository) Latest(ctx context.Context, imageID uuid.UUID, limit int) ([]Comment, error) {
	var found []Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("image_id = ?", imageID).
		Order("created_at DESC").
		Limit(limit).
		Find(&found).Error
	return found, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Comment{}).Count(&count).Error
	return count, err
}
