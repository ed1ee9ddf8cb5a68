package users

import (
	"context"
	"errors"
	"fmt"

	"eventgallery/internal/contracts"
	"eventgallery/internal/shared/constants"
	"eventgallery/internal/validators"
	"eventgallery/pkg/cache"
	"eventgallery/pkg/logger"

	"github.com/google/uuid"
)

var ErrNotOwner = errors.New("cannot modify another user")

type Service interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*contracts.UserPublic, error)
	UpdateProfile(ctx context.Context, actorID, id uuid.UUID, req contracts.UpdateUserRequest) (*contracts.User, error)
	Search(ctx context.Context, term string, limit int) ([]contracts.UserPublic, error)
	Count(ctx context.Context) (int64, error)
}

type service struct {
	repo  Repository
	cache cache.Service
	log   *logger.Logger
}

// NewService builds the profile service. cacheService may be nil.
func NewService(repo Repository, cacheService cache.Service, log *logger.Logger) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{repo: repo, cache: cacheService, log: log}
}

func (s *service) GetProfile(ctx context.Context, id uuid.UUID) (*contracts.UserPublic, error) {
	if s.cache == nil {
		return s.loadProfile(ctx, id)
	}

	var profile contracts.UserPublic
	err := s.cache.GetOrSet(ctx, profileKey(id), constants.TTL_USER_PROFILE, func() (interface{}, error) {
		return s.loadProfile(ctx, id)
	}, &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *service) loadProfile(ctx context.Context, id uuid.UUID) (*contracts.UserPublic, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	profile := user.ToPublic()
	return &profile, nil
}

func (s *service) UpdateProfile(ctx context.Context, actorID, id uuid.UUID, req contracts.UpdateUserRequest) (*contracts.User, error) {
	if actorID != id {
		return nil, ErrNotOwner
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = validators.SanitizeString(*req.FullName)
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}

	user, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, profileKey(id)); err != nil {
			s.log.Warn("Profile cache not invalidated", "user_id", id.String(), "error", err.Error())
		}
	}

	result := user.ToContract()
	return &result, nil
}

func (s *service) Search(ctx context.Context, term string, limit int) ([]contracts.UserPublic, error) {
	found, err := s.repo.Search(ctx, term, limit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	result := make([]contracts.UserPublic, 0, len(found))
	for i := range found {
		result = append(result, found[i].ToPublic())
	}
	return result, nil
}

func (s *service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func profileKey(id uuid.UUID) string {
	return constants.CACHE_KEY_USER_PROFILE + id.String()
}
