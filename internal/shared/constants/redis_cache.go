package constants

import (
	"fmt"
	"time"
)

// Redis key layout: gallery:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_SHORT  = 1 * time.Minute
	TTL_MEDIUM = 5 * time.Minute
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "gallery"
)

// ================== SESSION MODULE ==================

// Client-side session persistence. STORAGE_KEY_* are the logical keys
// written through the session storage capability.
const (
	STORAGE_KEY_TOKEN = "auth_token"
	STORAGE_KEY_USER  = "auth_user"

	CACHE_KEY_CLIENT_SESSION = CACHE_PREFIX + ":session:client:" // + namespace:storage-key
)

// Logout broadcast channel used when sessions are shared through Redis.
const (
	CHANNEL_AUTH_LOGOUT = CACHE_PREFIX + ":auth:logout"
)

// ================== AUTH MODULE ==================

const (
	CACHE_KEY_REVOKED_SESSION = CACHE_PREFIX + ":auth:revoked:" // + session-id
	CACHE_KEY_USER_PROFILE    = CACHE_PREFIX + ":auth:user:profile:uuid:"
)

const (
	TTL_USER_PROFILE = TTL_MEDIUM
)

// ================== GALLERY MODULE ==================

const (
	CACHE_KEY_GALLERY_STATS = CACHE_PREFIX + ":gallery:stats"
)

const (
	TTL_GALLERY_STATS = TTL_SHORT
)

// ================== RATE LIMITING ==================

const (
	CACHE_KEY_RATE_LIMIT = CACHE_PREFIX + ":ratelimit:" // + client-ip:type
)

// ================== INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_GALLERY = CACHE_PREFIX + ":gallery:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildClientSessionKey(namespace, key string) string {
	if namespace == "" {
		return CACHE_KEY_CLIENT_SESSION + key
	}
	return CACHE_KEY_CLIENT_SESSION + namespace + ":" + key
}

func BuildRevokedSessionKey(sessionID string) string {
	return CACHE_KEY_REVOKED_SESSION + sessionID
}

func BuildRateLimitKey(clientIP, limitType string) string {
	return fmt.Sprintf("%s%s:%s", CACHE_KEY_RATE_LIMIT, clientIP, limitType)
}
