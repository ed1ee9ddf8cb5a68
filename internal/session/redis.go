package session

import (
	"context"
	"errors"
	"time"

	"eventgallery/internal/shared/constants"
	"eventgallery/pkg/cache"
)

const defaultRedisOpTimeout = 3 * time.Second

// RedisStorage shares a session between processes through Redis. Keys are
// namespaced so several accounts can live side by side.
type RedisStorage struct {
	cache     cache.Service
	namespace string
	ttl       time.Duration
	timeout   time.Duration
}

// NewRedisStorage builds a Redis-backed storage. A zero ttl keeps keys
// until they are removed.
func NewRedisStorage(c cache.Service, namespace string, ttl time.Duration) *RedisStorage {
	return &RedisStorage{
		cache:     c,
		namespace: namespace,
		ttl:       ttl,
		timeout:   defaultRedisOpTimeout,
	}
}

func (r *RedisStorage) Get(key string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	value, err := r.cache.GetString(ctx, constants.BuildClientSessionKey(r.namespace, key))
	if errors.Is(err, cache.ErrCacheMiss) {
		return "", ErrKeyNotFound
	}
	return value, err
}

func (r *RedisStorage) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	return r.cache.SetString(ctx, constants.BuildClientSessionKey(r.namespace, key), value, r.ttl)
}

func (r *RedisStorage) Remove(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	return r.cache.Delete(ctx, constants.BuildClientSessionKey(r.namespace, key))
}
