package events

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eventgallery/internal/contracts"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	GetByInviteCode(ctx context.Context, code string) (*Event, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, query ListQuery) ([]Event, int64, error)
	Search(ctx context.Context, term string, viewerID *uuid.UUID, limit int) ([]Event, error)
	Stats(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]contracts.EventStats, error)
	Count(ctx context.Context) (int64, error)

	Join(ctx context.Context, event *Event, userID uuid.UUID) error
	Leave(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
	IsParticipant(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
	Participants(ctx context.Context, eventID uuid.UUID) ([]Participant, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Sort keys accepted by List, mapped to SQL.
var sortColumns = map[string]string{
	"date":             "events.date",
	"createdAt":        "events.created_at",
	"name":             "events.name",
	"participantCount": "(SELECT COUNT(*) FROM event_participants ep WHERE ep.event_id = events.id)",
	"imageCount":       "(SELECT COUNT(*) FROM images i WHERE i.event_id = events.id)",
}

// Create stores the event and enrolls its creator in one transaction.
func (r *repository) Create(ctx context.Context, event *Event) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("CreatedBy").Create(event).Error; err != nil {
			return fmt.Errorf("failed to create event: %w", err)
		}
		creator := &Participant{EventID: event.ID, UserID: event.CreatedByID}
		if err := tx.Omit("Event", "User").Create(creator).Error; err != nil {
			return fmt.Errorf("failed to enroll creator: %w", err)
		}
		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var event Event
	if err := r.db.WithContext(ctx).Preload("CreatedBy").Where("id = ?", id).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *repository) GetByInviteCode(ctx context.Context, code string) (*Event, error) {
	var event Event
	if err := r.db.WithContext(ctx).Preload("CreatedBy").Where("invite_code = ?", code).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInviteCode
		}
		return nil, err
	}
	return &event, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Event, error) {
	event, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(event).Omit("CreatedBy").Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes the event. Participants, images, likes and comments go
// with it through the foreign keys.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Event{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete event: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]Event, int64, error) {
	var events []Event
	var totalCount int64

	db := visibleTo(r.db.WithContext(ctx).Model(&Event{}), query.ViewerID)

	if query.Category != "" {
		db = db.Where("events.category = ?", query.Category)
	}
	if query.IsPrivate != nil {
		db = db.Where("events.is_private = ?", *query.IsPrivate)
	}
	if query.Search != "" {
		db = whereMatches(db, query.Search)
	}
	if query.StartDate != nil {
		db = db.Where("events.date >= ?", *query.StartDate)
	}
	if query.EndDate != nil {
		db = db.Where("events.date <= ?", *query.EndDate)
	}
	if query.CreatedByID != nil {
		db = db.Where("events.created_by_id = ?", *query.CreatedByID)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[query.SortBy]
	if !ok {
		column = sortColumns["date"]
	}
	direction := " ASC"
	if query.Desc {
		direction = " DESC"
	}

	err := db.Preload("CreatedBy").
		Order(column + direction).
		Order("events.id ASC").
		Offset((query.Page - 1) * query.Limit).
		Limit(query.Limit).
		Find(&events).Error

	return events, totalCount, err
}

func (r *repository) Search(ctx context.Context, term string, viewerID *uuid.UUID, limit int) ([]Event, error) {
	var events []Event
	err := whereMatches(visibleTo(r.db.WithContext(ctx).Model(&Event{}), viewerID), term).
		Order("events.date DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

type countRow struct {
	EventID uuid.UUID
	Total   int
}

// Stats aggregates participant, image and like counts for the given events.
func (r *repository) Stats(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]contracts.EventStats, error) {
	stats := make(map[uuid.UUID]contracts.EventStats, len(ids))
	if len(ids) == 0 {
		return stats, nil
	}
	db := r.db.WithContext(ctx)

	var participants, images, likes []countRow
	if err := db.Table("event_participants").
		Select("event_id, COUNT(*) AS total").
		Where("event_id IN ?", ids).
		Group("event_id").
		Scan(&participants).Error; err != nil {
		return nil, err
	}
	if err := db.Table("images").
		Select("event_id, COUNT(*) AS total").
		Where("event_id IN ?", ids).
		Group("event_id").
		Scan(&images).Error; err != nil {
		return nil, err
	}
	if err := db.Table("image_likes").
		Select("images.event_id AS event_id, COUNT(*) AS total").
		Joins("JOIN images ON images.id = image_likes.image_id").
		Where("images.event_id IN ?", ids).
		Group("images.event_id").
		Scan(&likes).Error; err != nil {
		return nil, err
	}

	for _, row := range participants {
		s := stats[row.EventID]
		s.ParticipantCount = row.Total
		stats[row.EventID] = s
	}
	for _, row := range images {
		s := stats[row.EventID]
		s.ImageCount = row.Total
		stats[row.EventID] = s
	}
	for _, row := range likes {
		s := stats[row.EventID]
		s.TotalLikes = row.Total
		stats[row.EventID] = s
	}
	return stats, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Event{}).Count(&count).Error
	return count, err
}

// Join enrolls userID, enforcing membership uniqueness and capacity. The
// event row stays locked until commit so concurrent joins count in turn.
func (r *repository) Join(ctx context.Context, event *Event, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockEvent(tx, event.ID); err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&Participant{}).
			Where("event_id = ? AND user_id = ?", event.ID, userID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyJoined
		}

		var participants int64
		if err := tx.Model(&Participant{}).Where("event_id = ?", event.ID).Count(&participants).Error; err != nil {
			return err
		}
		if event.IsFull(int(participants)) {
			return ErrEventFull
		}

		return tx.Omit("Event", "User").Create(&Participant{EventID: event.ID, UserID: userID}).Error
	})
}

// lockEvent takes a row lock on postgres. sqlite already serializes writers.
func lockEvent(tx *gorm.DB, id uuid.UUID) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	var locked Event
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", id).
		Take(&locked).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrEventNotFound
	}
	return err
}

func (r *repository) Leave(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&Participant{})
	return result.RowsAffected > 0, result.Error
}

func (r *repository) IsParticipant(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Participant{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Participants(ctx context.Context, eventID uuid.UUID) ([]Participant, error) {
	var participants []Participant
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Order("joined_at ASC").
		Find(&participants).Error
	return participants, err
}

// visibleTo hides private events from everyone but their members.
func visibleTo(db *gorm.DB, viewerID *uuid.UUID) *gorm.DB {
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
		"(LOWER(events.name) LIKE ? OR LOWER(COALESCE(events.description, '')) LIKE ? OR LOWER(events.location) LIKE ?)",
		pattern, pattern, pattern,
	)
}
