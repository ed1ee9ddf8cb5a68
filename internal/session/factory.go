package session

import (
	"fmt"

	"eventgallery/internal/shared/config"
	"eventgallery/pkg/cache"
)

// Storage kinds accepted by NewStorage.
const (
	KindFile   = "file"
	KindRedis  = "redis"
	KindMemory = "memory"
	KindNone   = "none"
)

// NewStorage picks the storage named by cfg.SessionStore. The cache service
// is only required for the redis kind.
func NewStorage(cfg config.ClientConfig, c cache.Service) (Storage, error) {
	switch cfg.SessionStore {
	case KindFile, "":
		return NewFileStorage(cfg.SessionFile), nil
	case KindRedis:
		if c == nil {
			return nil, fmt.Errorf("session store %q requires redis", cfg.SessionStore)
		}
		return NewRedisStorage(c, cfg.SessionPrefix, cfg.SessionTTL), nil
	case KindMemory:
		return NewMemoryStorage(), nil
	case KindNone:
		return NoopStorage{}, nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}
}
