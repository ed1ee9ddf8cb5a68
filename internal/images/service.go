package images

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"eventgallery/internal/contracts"
	"eventgallery/internal/events"
	"eventgallery/internal/shared/constants"
	"eventgallery/internal/shared/storage"
	"eventgallery/internal/validators"
	"eventgallery/pkg/cache"
	"eventgallery/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrImageNotFound  = errors.New("image not found")
	ErrNotImageOwner  = errors.New("only the owner can modify the image")
	ErrNotParticipant = errors.New("only participants can upload to an event")
)

// CommentSource supplies the latest comments shown on an image detail.
type CommentSource interface {
	Latest(ctx context.Context, imageID uuid.UUID, limit int) ([]contracts.CommentWithUser, error)
}

type Service interface {
	ListImages(ctx context.Context, query ListQuery) (*contracts.Paginated[contracts.ImageWithStats], error)
	ListEventImages(ctx context.Context, viewerID *uuid.UUID, eventID uuid.UUID, query ListQuery) (*contracts.Paginated[contracts.ImageWithStats], error)
	Upload(ctx context.Context, userID uuid.UUID, req contracts.UploadImageRequest) (*contracts.UploadImageResponse, error)
	GetImage(ctx context.Context, viewerID *uuid.UUID, id uuid.UUID) (*contracts.ImageDetail, error)
	UpdateImage(ctx context.Context, userID, id uuid.UUID, req contracts.UpdateImageRequest) (*contracts.ImageWithStats, error)
	DeleteImage(ctx context.Context, userID, id uuid.UUID) error

	Like(ctx context.Context, userID, id uuid.UUID) (*contracts.LikeImageResponse, error)
	Unlike(ctx context.Context, userID, id uuid.UUID) (*contracts.LikeImageResponse, error)

	// Visible returns the image and its event when viewerID may see them.
	Visible(ctx context.Context, viewerID *uuid.UUID, id uuid.UUID) (*Image, *events.Event, error)
	Search(ctx context.Context, viewerID *uuid.UUID, term string, limit int) ([]contracts.ImageWithStats, error)
	Count(ctx context.Context) (int64, error)
	CountLikes(ctx context.Context) (int64, error)

	SetCommentSource(source CommentSource)
}

type service struct {
	repo     Repository
	events   events.Service
	store    storage.Store
	cache    cache.Service
	comments CommentSource
	log      *logger.Logger
}

func NewService(repo Repository, eventService events.Service, store storage.Store, cacheService cache.Service, log *logger.Logger) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{
		repo:   repo,
		events: eventService,
		store:  store,
		cache:  cacheService,
		log:    log,
	}
}

func (s *service) SetCommentSource(source CommentSource) {
	s.comments = source
}

func (s *service) invalidateGalleryCache(ctx context.Context) {
	cache.Invalidate(ctx, s.cache, s.log, constants.PATTERN_INVALIDATE_GALLERY)
}

func (s *service) ListImages(ctx context.Context, query ListQuery) (*contracts.Paginated[contracts.ImageWithStats], error) {
	found, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	data, err := s.withStats(ctx, found)
	if err != nil {
		return nil, err
	}
	return &contracts.Paginated[contracts.ImageWithStats]{
		Data:       data,
		Pagination: contracts.NewPagination(query.Page, query.Limit, total),
	}, nil
}

func (s *service) ListEventImages(ctx context.Context, viewerID *uuid.UUID, eventID uuid.UUID, query ListQuery) (*contracts.Paginated[contracts.ImageWithStats], error) {
	if _, err := s.events.Visible(ctx, viewerID, eventID); err != nil {
		return nil, err
	}
	query.ViewerID = viewerID
	query.EventID = &eventID
	return s.ListImages(ctx, query)
}

func (s *service) Upload(ctx context.Context, userID uuid.UUID, req contracts.UploadImageRequest) (*contracts.UploadImageResponse, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, events.ErrEventNotFound
	}
	event, err := s.events.Visible(ctx, &userID, eventID)
	if err != nil {
		return nil, err
	}
	member, err := s.events.IsMember(ctx, event, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotParticipant
	}

	img := &Image{
		ID:      uuid.New(),
		EventID: event.ID,
		UserID:  userID,
	}
	if title := validators.SanitizeString(req.Title); title != "" {
		img.Title = &title
	}
	if desc := validators.SanitizeString(req.Description); desc != "" {
		img.Description = &desc
	}
	size := req.Image.Size()
	mimeType := req.Image.ContentType
	img.FileSize = &size
	img.MimeType = &mimeType
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(req.Image.Data)); err == nil {
		img.Width = &cfg.Width
		img.Height = &cfg.Height
	}

	img.ImageKey = storage.ImageKey(event.ID, img.ID, req.Image)
	img.ImageURL, err = s.store.Put(ctx, img.ImageKey, req.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	if err := s.repo.Create(ctx, img); err != nil {
		if delErr := s.store.Delete(ctx, img.ImageKey); delErr != nil {
			s.log.Warn("Orphaned upload not removed", "key", img.ImageKey, "error", delErr.Error())
		}
		return nil, fmt.Errorf("failed to save image: %w", err)
	}

	s.log.LogImageUploaded(ctx, img.ID.String(), event.ID.String(), userID.String())
	s.invalidateGalleryCache(ctx)

	created, err := s.repo.GetByID(ctx, img.ID)
	if err != nil {
		return nil, err
	}
	return &contracts.UploadImageResponse{
		Image:   contracts.ImageWithStats{Image: created.ToContract()},
		Message: constants.MsgImageUploaded,
	}, nil
}

func (s *service) GetImage(ctx context.Context, viewerID *uuid.UUID, id uuid.UUID) (*contracts.ImageDetail, error) {
	img, _, err := s.Visible(ctx, viewerID, id)
	if err != nil {
		return nil, err
	}

	stats, err := s.repo.Stats(ctx, []uuid.UUID{img.ID})
	if err != nil {
		return nil, err
	}
	detail := &contracts.ImageDetail{
		Image:      img.ToContract(),
		ImageStats: stats[img.ID],
		User:       img.User.ToPublic(),
		Comments:   []contracts.CommentWithUser{},
	}

	if viewerID != nil {
		if detail.IsLikedByCurrentUser, err = s.repo.IsLiked(ctx, img.ID, *viewerID); err != nil {
			return nil, err
		}
	}
	if s.comments != nil {
		latest, err := s.comments.Latest(ctx, img.ID, constants.ImageDetailComments)
		if err != nil {
			return nil, err
		}
		detail.Comments = latest
	}
	return detail, nil
}

func (s *service) UpdateImage(ctx context.Context, userID, id uuid.UUID, req contracts.UpdateImageRequest) (*contracts.ImageWithStats, error) {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if img.UserID != userID {
		return nil, ErrNotImageOwner
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = optional(validators.SanitizeString(*req.Title))
	}
	if req.Description != nil {
		updates["description"] = optional(validators.SanitizeString(*req.Description))
	}

	updated, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update image: %w", err)
	}
	withStats, err := s.withStats(ctx, []Image{*updated})
	if err != nil {
		return nil, err
	}
	return &withStats[0], nil
}

// DeleteImage is allowed to the uploader and to the event creator.
func (s *service) DeleteImage(ctx context.Context, userID, id uuid.UUID) error {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if img.UserID != userID {
		event, err := s.events.Visible(ctx, &userID, img.EventID)
		if err != nil || event.CreatedByID != userID {
			return ErrNotImageOwner
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, img.ImageKey); err != nil {
		s.log.Warn("Image file not removed", "key", img.ImageKey, "error", err.Error())
	}
	if img.ThumbnailKey != nil {
		if err := s.store.Delete(ctx, *img.ThumbnailKey); err != nil {
			s.log.Warn("Thumbnail not removed", "key", *img.ThumbnailKey, "error", err.Error())
		}
	}
	s.log.LogImageDeleted(ctx, id.String(), userID.String())
	s.invalidateGalleryCache(ctx)
	return nil
}

func (s *service) Like(ctx context.Context, userID, id uuid.UUID) (*contracts.LikeImageResponse, error) {
	if _, _, err := s.Visible(ctx, &userID, id); err != nil {
		return nil, err
	}
	if err := s.repo.Like(ctx, id, userID); err != nil {
		return nil, fmt.Errorf("failed to like image: %w", err)
	}
	s.invalidateGalleryCache(ctx)
	return s.likeState(ctx, id, true)
}

func (s *service) Unlike(ctx context.Context, userID, id uuid.UUID) (*contracts.LikeImageResponse, error) {
	if _, _, err := s.Visible(ctx, &userID, id); err != nil {
		return nil, err
	}
	if err := s.repo.Unlike(ctx, id, userID); err != nil {
		return nil, fmt.Errorf("failed to unlike image: %w", err)
	}
	s.invalidateGalleryCache(ctx)
	return s.likeState(ctx, id, false)
}

func (s *service) likeState(ctx context.Context, id uuid.UUID, liked bool) (*contracts.LikeImageResponse, error) {
	count, err := s.repo.CountLikes(ctx, id)
	if err != nil {
		return nil, err
	}
	return &contracts.LikeImageResponse{Liked: liked, LikeCount: count}, nil
}

// Visible hides images of private events from outsiders behind
// ErrImageNotFound.
func (s *service) Visible(ctx context.Context, viewerID *uuid.UUID, id uuid.UUID) (*Image, *events.Event, error) {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	event, err := s.events.Visible(ctx, viewerID, img.EventID)
	if err != nil {
		if errors.Is(err, events.ErrEventNotFound) {
			return nil, nil, ErrImageNotFound
		}
		return nil, nil, err
	}
	return img, event, nil
}

func (s *service) Search(ctx context.Context, viewerID *uuid.UUID, term string, limit int) ([]contracts.ImageWithStats, error) {
	found, err := s.repo.Search(ctx, term, viewerID, limit)
	if err != nil {
		return nil, err
	}
	return s.withStats(ctx, found)
}

func (s *service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *service) CountLikes(ctx context.Context) (int64, error) {
	return s.repo.TotalLikes(ctx)
}

func (s *service) withStats(ctx context.Context, found []Image) ([]contracts.ImageWithStats, error) {
	ids := make([]uuid.UUID, 0, len(found))
	for i := range found {
		ids = append(ids, found[i].ID)
	}
	stats, err := s.repo.Stats(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load image stats: %w", err)
	}

	result := make([]contracts.ImageWithStats, 0, len(found))
	for i := range found {
		result = append(result, contracts.ImageWithStats{
			Image:      found[i].ToContract(),
			ImageStats: stats[found[i].ID],
		})
	}
	return result, nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
