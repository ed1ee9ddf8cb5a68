package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventgallery/internal/contracts"
	"eventgallery/internal/shared/constants"
	"eventgallery/internal/shared/storage"
	"eventgallery/internal/validators"
	"eventgallery/pkg/cache"
	"eventgallery/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrNotCreator         = errors.New("only the creator can modify the event")
	ErrEventFull          = errors.New("event is full")
	ErrAlreadyJoined      = errors.New("already a participant")
	ErrNotParticipant     = errors.New("not a participant")
	ErrInvalidInviteCode  = errors.New("invalid invite code")
	ErrPrivateEvent       = errors.New("private events are joined by invite code")
	ErrCreatorCannotLeave = errors.New("the creator cannot leave the event")
)

type Service interface {
	ListEvents(ctx context.Context, query ListQuery) (*contracts.Paginated[contracts.EventWithStats], error)
	CreateEvent(ctx context.Context, userID uuid.UUID, req contracts.CreateEventRequest) (*contracts.EventDetail, error)
	GetEvent(ctx context.Context, viewerID *uuid.UUID, id uuid.UUID) (*contracts.EventDetail, error)
	UpdateEvent(ctx context.Context, userID, id uuid.UUID, req contracts.UpdateEventRequest) (*contracts.EventDetail, error)
	DeleteEvent(ctx context.Context, userID, id uuid.UUID) error

	JoinEvent(ctx context.Context, userID, id uuid.UUID) (*contracts.JoinEventResponse, error)
	JoinByCode(ctx context.Context, userID uuid.UUID, code string) (*contracts.JoinEventResponse, error)
	ValidateInviteCode(ctx context.Context, viewerID *uuid.UUID, code string) (*contracts.ValidateInviteCodeResponse, error)
	LeaveEvent(ctx context.Context, userID, id uuid.UUID) error
	Participants(ctx context.Context, viewerID *uuid.UUID, id uuid.UUID) ([]contracts.ParticipantWithUser, error)

	// Visible returns the event when viewerID may see it, ErrEventNotFound
	// otherwise.
	Visible(ctx context.Context, viewerID *uuid.UUID, id uuid.UUID) (*Event, error)
	IsMember(ctx context.Context, event *Event, userID uuid.UUID) (bool, error)
	Search(ctx context.Context, viewerID *uuid.UUID, term string, limit int) ([]contracts.EventWithStats, error)
	Count(ctx context.Context) (int64, error)
}

type service struct {
	repo  Repository
	store storage.Store
	cache cache.Service
	log   *logger.Logger
}

// NewService builds the events service. cacheService may be nil.
func NewService(repo Repository, store storage.Store, cacheService cache.Service, log *logger.Logger) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{
		repo:  repo,
		store: store,
		cache: cacheService,
		log:   log,
	}
}

func (s *service) invalidateGalleryCache(ctx context.Context) {
	cache.Invalidate(ctx, s.cache, s.log, constants.PATTERN_INVALIDATE_GALLERY)
}

func (s *service) ListEvents(ctx context.Context, query ListQuery) (*contracts.Paginated[contracts.EventWithStats], error) {
	events, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	data, err := s.withStats(ctx, events)
	if err != nil {
		return nil, err
	}

	return &contracts.Paginated[contracts.EventWithStats]{
		Data:       data,
		Pagination: contracts.NewPagination(query.Page, query.Limit, total),
	}, nil
}

func (s *service) CreateEvent(ctx context.Context, userID uuid.UUID, req contracts.CreateEventRequest) (*contracts.EventDetail, error) {
	date, err := validators.ParseEventDate(req.Date)
	if err != nil {
		return nil, err
	}

	event := &Event{
		ID:              uuid.New(),
		Name:            validators.SanitizeString(req.Name),
		Date:            date.UTC(),
		Location:        validators.SanitizeString(req.Location),
		Category:        string(req.Category),
		MaxParticipants: req.MaxParticipants,
		CreatedByID:     userID,
	}
	if desc := validators.SanitizeString(req.Description); desc != "" {
		event.Description = &desc
	}
	if req.Time != "" {
		t := req.Time
		event.Time = &t
	}
	if req.IsPrivate != nil {
		event.IsPrivate = *req.IsPrivate
	}

	if req.CoverImage != nil {
		key := storage.CoverKey(event.ID, req.CoverImage)
		url, err := s.store.Put(ctx, key, req.CoverImage)
		if err != nil {
			return nil, fmt.Errorf("failed to store cover image: %w", err)
		}
		event.CoverImageURL = &url
		event.CoverImageKey = &key
	}

	if err := s.repo.Create(ctx, event); err != nil {
		if event.CoverImageKey != nil {
			_ = s.store.DeletePrefix(ctx, storage.EventPrefix(event.ID))
		}
		return nil, err
	}

	s.log.LogEventCreated(ctx, event.ID.String(), userID.String())
	s.invalidateGalleryCache(ctx)

	return s.GetEvent(ctx, &userID, event.ID)
}

func (s *service) GetEvent(ctx context.Context, viewerID *uuid.UUID, id uuid.UUID) (*contracts.EventDetail, error) {
	event, err := s.Visible(ctx, viewerID, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, event, viewerID)
}

func (s *service) UpdateEvent(ctx context.Context, userID, id uuid.UUID, req contracts.UpdateEventRequest) (*contracts.EventDetail, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.CreatedByID != userID {
		return nil, ErrNotCreator
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = validators.SanitizeString(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = optional(validators.SanitizeString(*req.Description))
	}
	if req.Date != nil {
		date, err := validators.ParseEventDate(*req.Date)
		if err != nil {
			return nil, err
		}
		updates["date"] = date.UTC()
	}
	if req.Time != nil {
		updates["time"] = optional(*req.Time)
	}
	if req.Location != nil {
		updates["location"] = validators.SanitizeString(*req.Location)
	}
	if req.Category != nil {
		updates["category"] = string(*req.Category)
	}
	if req.IsPrivate != nil {
		updates["is_private"] = *req.IsPrivate
	}
	if req.MaxParticipants != nil {
		updates["max_participants"] = *req.MaxParticipants
	}

	var staleKey *string
	if req.CoverImage != nil {
		key := storage.CoverKey(event.ID, req.CoverImage)
		url, err := s.store.Put(ctx, key, req.CoverImage)
		if err != nil {
			return nil, fmt.Errorf("failed to store cover image: %w", err)
		}
		updates["cover_image_url"] = url
		updates["cover_image_key"] = key
		staleKey = event.CoverImageKey
	}

	if _, err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	if staleKey != nil {
		if err := s.store.Delete(ctx, *staleKey); err != nil {
			s.log.Warn("Stale cover image not removed", "key", *staleKey, "error", err.Error())
		}
	}

	return s.GetEvent(ctx, &userID, id)
}

func (s *service) DeleteEvent(ctx context.Context, userID, id uuid.UUID) error {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event.CreatedByID != userID {
		return ErrNotCreator
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.store.DeletePrefix(ctx, storage.EventPrefix(id)); err != nil {
		s.log.Warn("Event uploads not removed", "event_id", id.String(), "error", err.Error())
	}
	s.log.LogEventDeleted(ctx, id.String(), userID.String())
	s.invalidateGalleryCache(ctx)
	return nil
}

func (s *service) JoinEvent(ctx context.Context, userID, id uuid.UUID) (*contracts.JoinEventResponse, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.IsPrivate {
		member, err := s.IsMember(ctx, event, userID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, ErrPrivateEvent
		}
	}
	return s.join(ctx, event, userID)
}

func (s *service) JoinByCode(ctx context.Context, userID uuid.UUID, code string) (*contracts.JoinEventResponse, error) {
	event, err := s.repo.GetByInviteCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.join(ctx, event, userID)
}

func (s *service) join(ctx context.Context, event *Event, userID uuid.UUID) (*contracts.JoinEventResponse, error) {
	if err := s.repo.Join(ctx, event, userID); err != nil {
		return nil, err
	}
	s.log.LogMembershipChanged(ctx, event.ID.String(), userID.String(), "joined")

	detail, err := s.detail(ctx, event, &userID)
	if err != nil {
		return nil, err
	}
	return &contracts.JoinEventResponse{Event: *detail, Message: constants.MsgEventJoined}, nil
}

// ValidateInviteCode reports whether code names an event and, for a known
// caller, whether they could join it now.
func (s *service) ValidateInviteCode(ctx context.Context, viewerID *uuid.UUID, code string) (*contracts.ValidateInviteCodeResponse, error) {
	event, err := s.repo.GetByInviteCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrInvalidInviteCode) {
			return &contracts.ValidateInviteCodeResponse{Valid: false, Reason: constants.MsgInvalidInviteCode}, nil
		}
		return nil, err
	}

	withStats, err := s.withStats(ctx, []Event{*event})
	if err != nil {
		return nil, err
	}
	resp := &contracts.ValidateInviteCodeResponse{Valid: true, Event: &withStats[0]}

	if viewerID != nil {
		canJoin := true
		member, err := s.IsMember(ctx, event, *viewerID)
		if err != nil {
			return nil, err
		}
		switch {
		case member:
			canJoin = false
			resp.Reason = constants.MsgAlreadyJoined
		case event.IsFull(withStats[0].ParticipantCount):
			canJoin = false
			resp.Reason = constants.MsgEventFull
		}
		resp.CanJoin = &canJoin
	}
	return resp, nil
}

func (s *service) LeaveEvent(ctx context.Context, userID, id uuid.UUID) error {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event.CreatedByID == userID {
		return ErrCreatorCannotLeave
	}

	left, err := s.repo.Leave(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("failed to leave event: %w", err)
	}
	if !left {
		return ErrNotParticipant
	}
	s.log.LogMembershipChanged(ctx, id.String(), userID.String(), "left")
	return nil
}

func (s *service) Participants(ctx context.Context, viewerID *uuid.UUID, id uuid.UUID) ([]contracts.ParticipantWithUser, error) {
	if _, err := s.Visible(ctx, viewerID, id); err != nil {
		return nil, err
	}

	participants, err := s.repo.Participants(ctx, id)
	if err != nil {
		return nil, err
	}
	result := make([]contracts.ParticipantWithUser, 0, len(participants))
	for i := range participants {
		result = append(result, participants[i].ToContract())
	}
	return result, nil
}

func (s *service) Visible(ctx context.Context, viewerID *uuid.UUID, id uuid.UUID) (*Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !event.IsPrivate {
		return event, nil
	}
	if viewerID == nil {
		return nil, ErrEventNotFound
	}
	member, err := s.IsMember(ctx, event, *viewerID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (s *service) IsMember(ctx context.Context, event *Event, userID uuid.UUID) (bool, error) {
	if event.CreatedByID == userID {
		return true, nil
	}
	return s.repo.IsParticipant(ctx, event.ID, userID)
}

func (s *service) Search(ctx context.Context, viewerID *uuid.UUID, term string, limit int) ([]contracts.EventWithStats, error) {
	events, err := s.repo.Search(ctx, term, viewerID, limit)
	if err != nil {
		return nil, err
	}
	return s.withStats(ctx, events)
}

func (s *service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *service) detail(ctx context.Context, event *Event, viewerID *uuid.UUID) (*contracts.EventDetail, error) {
	stats, err := s.repo.Stats(ctx, []uuid.UUID{event.ID})
	if err != nil {
		return nil, err
	}
	participants, err := s.repo.Participants(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	detail := &contracts.EventDetail{
		Event:        event.ToContract(),
		EventStats:   stats[event.ID],
		Creator:      event.CreatedBy.ToPublic(),
		Participants: make([]contracts.UserPublic, 0, len(participants)),
	}
	for i := range participants {
		detail.Participants = append(detail.Participants, participants[i].User.ToPublic())
		if viewerID != nil && participants[i].UserID == *viewerID {
			detail.IsParticipant = true
		}
	}
	return detail, nil
}

func (s *service) withStats(ctx context.Context, events []Event) ([]contracts.EventWithStats, error) {
	ids := make([]uuid.UUID, len(events))
	for i := range events {
		ids[i] = events[i].ID
	}
	stats, err := s.repo.Stats(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load event stats: %w", err)
	}

	result := make([]contracts.EventWithStats, 0, len(events))
	for i := range events {
		result = append(result, contracts.EventWithStats{
			Event:      events[i].ToContract(),
			EventStats: stats[events[i].ID],
		})
	}
	return result, nil
}

// optional maps an empty string to NULL.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ParseDateBound parses a date filter. Date-only end bounds cover the
// whole day.
func ParseDateBound(value string, end bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := validators.ParseEventDate(value)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	if end && len(value) == len("2006-01-02") {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
