package images

import (
	"context"
	"errors"
	"strings"

	"eventgallery/internal/contracts"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(ctx context.Context, image *Image) error
	GetByID(ctx context.Context, id uuid.UUID) (*Image, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Image, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, query ListQuery) ([]Image, int64, error)
	Search(ctx context.Context, term string, viewerID *uuid.UUID, limit int) ([]Image, error)
	Stats(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]contracts.ImageStats, error)
	Count(ctx context.Context) (int64, error)

	Like(ctx context.Context, imageID, userID uuid.UUID) error
	Unlike(ctx context.Context, imageID, userID uuid.UUID) error
	IsLiked(ctx context.Context, imageID, userID uuid.UUID) (bool, error)
	CountLikes(ctx context.Context, imageID uuid.UUID) (int, error)
	TotalLikes(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

var sortColumns = map[string]string{
	"uploadedAt":   "images.uploaded_at",
	"title":        "images.title",
	"likeCount":    "(SELECT COUNT(*) FROM image_likes l WHERE l.image_id = images.id)",
	"commentCount": "(SELECT COUNT(*) FROM image_comments c WHERE c.image_id = images.id)",
}

func (r *repository) Create(ctx context.Context, image *Image) error {
	return r.db.WithContext(ctx).Omit("Event", "User").Create(image).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Image, error) {
	var image Image
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&image).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	return &image, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Image, error) {
	image, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(image).Omit("Event", "User").Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes the image with its likes and comments.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Image{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrImageNotFound
	}
	return nil
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]Image, int64, error) {
	var found []Image
	var totalCount int64

	db := visibleTo(r.db.WithContext(ctx).Model(&Image{}), query.ViewerID)

	if query.EventID != nil {
		db = db.Where("images.event_id = ?", *query.EventID)
	}
	if query.UserID != nil {
		db = db.Where("images.user_id = ?", *query.UserID)
	}
	if query.Search != "" {
		db = whereMatches(db, query.Search)
	}
	if query.StartDate != nil {
		db = db.Where("images.uploaded_at >= ?", *query.StartDate)
	}
	if query.EndDate != nil {
		db = db.Where("images.uploaded_at <= ?", *query.EndDate)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[query.SortBy]
	if !ok {
		column = sortColumns["uploadedAt"]
	}
	direction := " ASC"
	if query.Desc {
		direction = " DESC"
	}

	err := db.Order(column + direction).
		Order("images.id ASC").
		Offset((query.Page - 1) * query.Limit).
		Limit(query.Limit).
		Find(&found).Error

	return found, totalCount, err
}

func (r *repository) Search(ctx context.Context, term string, viewerID *uuid.UUID, limit int) ([]Image, error) {
	var found []Image
	err := whereMatches(visibleTo(r.db.WithContext(ctx).Model(&Image{}), viewerID), term).
		Order("images.uploaded_at DESC").
		Limit(limit).
		Find(&found).Error
	return found, err
}

type countRow struct {
	ImageID uuid.UUID
	Total   int
}

func (r *repository) Stats(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]contracts.ImageStats, error) {
	stats := make(map[uuid.UUID]contracts.ImageStats, len(ids))
	if len(ids) == 0 {
		return stats, nil
	}
	db := r.db.WithContext(ctx)

	var likes, comments []countRow
	if err := db.Table("image_likes").
		Select("image_id, COUNT(*) AS total").
		Where("image_id IN ?", ids).
		Group("image_id").
		Scan(&likes).Error; err != nil {
		return nil, err
	}
	if err := db.Table("image_comments").
		Select("image_id, COUNT(*) AS total").
		Where("image_id IN ?", ids).
		Group("image_id").
		Scan(&comments).Error; err != nil {
		return nil, err
	}

	for _, row := range likes {
		s := stats[row.ImageID]
		s.LikeCount = row.Total
		stats[row.ImageID] = s
	}
	for _, row := range comments {
		s := stats[row.ImageID]
		s.CommentCount = row.Total
		stats[row.ImageID] = s
	}
	return stats, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Image{}).Count(&count).Error
	return count, err
}

// Like is idempotent: liking twice keeps a single like.
func (r *repository) Like(ctx context.Context, imageID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit("Image", "User").
		Create(&Like{ImageID: imageID, UserID: userID}).Error
}

func (r *repository) Unlike(ctx context.Context, imageID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("image_id = ? AND user_id = ?", imageID, userID).
		Delete(&Like{}).Error
}

func (r *repository) IsLiked(ctx context.Context, imageID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Like{}).
		Where("image_id = ? AND user_id = ?", imageID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CountLikes(ctx context.Context, imageID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Like{}).Where("image_id = ?", imageID).Count(&count).Error
	return int(count), err
}

func (r *repository) TotalLikes(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Like{}).Count(&count).Error
	return count, err
}

// visibleTo keeps images of events the viewer may see.
func visibleTo(db *gorm.DB, viewerID *uuid.UUID) *gorm.DB {
	db = db.Joins("JOIN events ON events.id = images.event_id")
	if viewerID == nil {
		return db.Where("events.is_private = ?", false)
	}
	return db.Where(
		"(events.is_private = ? OR events.created_by_id = ? OR EXISTS (SELECT 1 FROM event_participants vp WHERE vp.event_id = events.id AND vp.user_id = ?))",
		false, *viewerID, *viewerID,
	)
}

func whereMatches(db *gorm.DB, term string) *gorm.DB {
	pattern := "%" + strings.ToLower(term) + "%"
	return db.Where(
		"(LOWER(COALESCE(images.title, '')) LIKE ? OR LOWER(COALESCE(images.description, '')) LIKE ?)",
		pattern, pattern,
	)
}
