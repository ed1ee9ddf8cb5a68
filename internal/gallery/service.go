package gallery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventgallery/internal/contracts"
	"eventgallery/internal/shared/constants"
	"eventgallery/pkg/cache"
	"eventgallery/pkg/logger"

	"github.com/google/uuid"
)

var ErrInvalidSearchType = errors.New("invalid search type")

// EventSearcher, ImageSearcher and UserSearcher are the slices of the
// feature services that search and stats need.
type EventSearcher interface {
	Search(ctx context.Context, viewerID *uuid.UUID, term string, limit int) ([]contracts.EventWithStats, error)
	Count(ctx context.Context) (int64, error)
}

type ImageSearcher interface {
	Search(ctx context.Context, viewerID *uuid.UUID, term string, limit int) ([]contracts.ImageWithStats, error)
	Count(ctx context.Context) (int64, error)
	CountLikes(ctx context.Context) (int64, error)
}

type UserSearcher interface {
	Search(ctx context.Context, term string, limit int) ([]contracts.UserPublic, error)
	Count(ctx context.Context) (int64, error)
}

type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type Service interface {
	Search(ctx context.Context, viewerID *uuid.UUID, term string, kind contracts.SearchType, limit int) (*contracts.SearchResults, error)
	Stats(ctx context.Context) (*contracts.GalleryStats, error)
}

type service struct {
	events   EventSearcher
	images   ImageSearcher
	users    UserSearcher
	comments Counter
	cache    cache.Service
	statsTTL time.Duration
	log      *logger.Logger
}

// NewService wires search and stats. cacheService may be nil; a zero
// statsTTL falls back to the default gallery stats TTL.
func NewService(events EventSearcher, images ImageSearcher, users UserSearcher, comments Counter, cacheService cache.Service, statsTTL time.Duration, log *logger.Logger) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	if statsTTL <= 0 {
		statsTTL = constants.TTL_GALLERY_STATS
	}
	return &service{
		events:   events,
		images:   images,
		users:    users,
		comments: comments,
		cache:    cacheService,
		statsTTL: statsTTL,
		log:      log,
	}
}

func (s *service) Search(ctx context.Context, viewerID *uuid.UUID, term string, kind contracts.SearchType, limit int) (*contracts.SearchResults, error) {
	switch kind {
	case "", contracts.SearchAll, contracts.SearchEvents, contracts.SearchImages, contracts.SearchUsers:
	default:
		return nil, ErrInvalidSearchType
	}
	if limit <= 0 {
		limit = constants.SearchResultLimit
	}

	results := &contracts.SearchResults{
		Events: []contracts.EventWithStats{},
		Images: []contracts.ImageWithStats{},
		Users:  []contracts.UserPublic{},
	}

	var err error
	if kind.Includes(contracts.SearchEvents) {
		if results.Events, err = s.events.Search(ctx, viewerID, term, limit); err != nil {
			return nil, fmt.Errorf("search events: %w", err)
		}
	}
	if kind.Includes(contracts.SearchImages) {
		if results.Images, err = s.images.Search(ctx, viewerID, term, limit); err != nil {
			return nil, fmt.Errorf("search images: %w", err)
		}
	}
	if kind.Includes(contracts.SearchUsers) {
		if results.Users, err = s.users.Search(ctx, term, limit); err != nil {
			return nil, fmt.Errorf("search users: %w", err)
		}
	}

	results.Total = len(results.Events) + len(results.Images) + len(results.Users)
	return results, nil
}

func (s *service) Stats(ctx context.Context) (*contracts.GalleryStats, error) {
	if s.cache == nil {
		return s.loadStats(ctx)
	}

	var stats contracts.GalleryStats
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_GALLERY_STATS, s.statsTTL, func() (interface{}, error) {
		return s.loadStats(ctx)
	}, &stats)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *service) loadStats(ctx context.Context) (*contracts.GalleryStats, error) {
	var (
		stats contracts.GalleryStats
		err   error
	)
	if stats.TotalEvents, err = s.events.Count(ctx); err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	if stats.TotalImages, err = s.images.Count(ctx); err != nil {
		return nil, fmt.Errorf("count images: %w", err)
	}
	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if stats.TotalLikes, err = s.images.CountLikes(ctx); err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}
	if stats.TotalComments, err = s.comments.Count(ctx); err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	return &stats, nil
}
