package comments

import (
	"context"
	"errors"
	"fmt"

	"eventgallery/internal/contracts"
	"eventgallery/internal/images"
	"eventgallery/internal/shared/constants"
	"eventgallery/internal/validators"
	"eventgallery/pkg/cache"
	"eventgallery/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotCommentOwner = errors.New("only the author can modify the comment")
)

type Service interface {
	CreateComment(ctx context.Context, userID uuid.UUID, req contracts.CreateCommentRequest) (*contracts.CreateCommentResponse, error)
	UpdateComment(ctx context.Context, userID, id uuid.UUID, req contracts.UpdateCommentRequest) (*contracts.CommentWithUser, error)
	DeleteComment(ctx context.Context, userID, id uuid.UUID) error
	ImageComments(ctx context.Context, viewerID *uuid.UUID, imageID uuid.UUID, query ListQuery) (*contracts.Paginated[contracts.CommentWithUser], error)
	ListComments(ctx context.Context, query ListQuery) (*contracts.Paginated[contracts.CommentWithUser], error)
	Latest(ctx context.Context, imageID uuid.UUID, limit int) ([]contracts.CommentWithUser, error)
	Count(ctx context.Context) (int64, error)
}

type service struct {
	repo   Repository
	images images.Service
	cache  cache.Service
	log    *logger.Logger
}

// NewService builds the comments service and registers it as the comment
// source of image details.
func NewService(repo Repository, imageService images.Service, cacheService cache.Service, log *logger.Logger) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	s := &service{
		repo:   repo,
		images: imageService,
		cache:  cacheService,
		log:    log,
	}
	imageService.SetCommentSource(s)
	return s
}

func (s *service) CreateComment(ctx context.Context, userID uuid.UUID, req contracts.CreateCommentRequest) (*contracts.CreateCommentResponse, error) {
	imageID, err := uuid.Parse(req.ImageID)
	if err != nil {
		return nil, images.ErrImageNotFound
	}
	if _, _, err := s.images.Visible(ctx, &userID, imageID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ImageID: imageID,
		UserID:  userID,
		Content: validators.SanitizeString(req.Content),
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	s.log.LogCommentCreated(ctx, comment.ID.String(), imageID.String(), userID.String())
	cache.Invalidate(ctx, s.cache, s.log, constants.PATTERN_INVALIDATE_GALLERY)

	created, err := s.repo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	return &contracts.CreateCommentResponse{
		Comment: created.ToContract(),
		Message: constants.MsgCommentCreated,
	}, nil
}

func (s *service) UpdateComment(ctx context.Context, userID, id uuid.UUID, req contracts.UpdateCommentRequest) (*contracts.CommentWithUser, error) {
	comment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, ErrNotCommentOwner
	}

	updated, err := s.repo.UpdateContent(ctx, id, validators.SanitizeString(req.Content))
	if err != nil {
		return nil, err
	}
	result := updated.ToContract()
	return &result, nil
}

// DeleteComment is allowed to the author and to the creator of the event
// the image belongs to.
func (s *service) DeleteComment(ctx context.Context, userID, id uuid.UUID) error {
	comment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		_, event, err := s.images.Visible(ctx, &userID, comment.ImageID)
		if err != nil || event.CreatedByID != userID {
			return ErrNotCommentOwner
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.Invalidate(ctx, s.cache, s.log, constants.PATTERN_INVALIDATE_GALLERY)
	return nil
}

func (s *service) ImageComments(ctx context.Context, viewerID *uuid.UUID, imageID uuid.UUID, query ListQuery) (*contracts.Paginated[contracts.CommentWithUser], error) {
	if _, _, err := s.images.Visible(ctx, viewerID, imageID); err != nil {
		return nil, err
	}
	query.ViewerID = viewerID
	query.ImageID = &imageID
	return s.ListComments(ctx, query)
}

func (s *service) ListComments(ctx context.Context, query ListQuery) (*contracts.Paginated[contracts.CommentWithUser], error) {
	found, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	data := make([]contracts.CommentWithUser, 0, len(found))
	for i := range found {
		data = append(data, found[i].ToContract())
	}
	return &contracts.Paginated[contracts.CommentWithUser]{
		Data:       data,
		Pagination: contracts.NewPagination(query.Page, query.Limit, total),
	}, nil
}

// Latest lists the newest comments on an image without a visibility check.
func (s *service) Latest(ctx context.Context, imageID uuid.UUID, limit int) ([]contracts.CommentWithUser, error) {
	found, err := s.repo.Latest(ctx, imageID, limit)
	if err != nil {
		return nil, err
	}
	result := make([]contracts.CommentWithUser, 0, len(found))
	for i := range found {
		result = append(result, found[i].ToContract())
	}
	return result, nil
}

func (s *service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
