package ratelimit

import (
	"context"
	"fmt"
	"slices"
	"time"

	"eventgallery/internal/shared/constants"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type RateLimitType string

const (
	RateLimitTypeAPI    RateLimitType = "api"
	RateLimitTypeAuth   RateLimitType = "auth"
	RateLimitTypeUpload RateLimitType = "upload"
	RateLimitTypeHealth RateLimitType = "health"
)

// Limit is a request budget over a sliding window.
type Limit struct {
	Requests int           `json:"requests"`
	Window   time.Duration `json:"window"`
}

type Config struct {
	Enabled        bool     `json:"enabled"`
	API            Limit    `json:"api"`
	Auth           Limit    `json:"auth"`
	Upload         Limit    `json:"upload"`
	WhitelistedIPs []string `json:"whitelisted_ips"`
}

// DefaultConfig returns the gallery's published budgets.
func DefaultConfig() *Config {
	return &Config{
		Enabled: true,
		API:     Limit{Requests: constants.RateLimitAPI.MaxRequests, Window: constants.RateLimitAPI.Window},
		Auth:    Limit{Requests: constants.RateLimitAuth.MaxRequests, Window: constants.RateLimitAuth.Window},
		Upload:  Limit{Requests: constants.RateLimitUpload.MaxRequests, Window: constants.RateLimitUpload.Window},
	}
}

// Result represents rate limit check result
type Result struct {
	Allowed   bool  `json:"allowed"`
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	ResetTime int64 `json:"reset_time"`
}

// RateLimiter handles rate limiting using Redis
type RateLimiter struct {
	client *redis.Client
	config *Config
	now    func() time.Time
}

func NewRateLimiter(client *redis.Client, config *Config) *RateLimiter {
	return &RateLimiter{
		client: client,
		config: config,
		now:    time.Now,
	}
}

// Sliding window over a sorted set scored in microseconds.
var slidingWindow = redis.NewScript(`
	local key = KEYS[1]
	local window_start = tonumber(ARGV[1])
	local now = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])
	local window_ms = tonumber(ARGV[4])
	local member = ARGV[5]

	redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)

	local current_count = redis.call('ZCARD', key)

	if current_count >= limit then
		redis.call('PEXPIRE', key, window_ms)
		return {current_count + 1, 0}
	end

	redis.call('ZADD', key, now, member)
	redis.call('PEXPIRE', key, window_ms)

	return {current_count + 1, limit - current_count - 1}
`)

// IsAllowed checks if a request from clientIP fits in the budget for limitType
func (r *RateLimiter) IsAllowed(ctx context.Context, clientIP string, limitType RateLimitType) (*Result, error) {
	limit := r.getLimit(limitType)
	now := r.now()

	if !r.config.Enabled || limitType == RateLimitTypeHealth || r.isWhitelisted(clientIP) {
		return &Result{
			Allowed:   true,
			Limit:     limit.Requests,
			Remaining: limit.Requests,
			ResetTime: now.Add(limit.Window).Unix(),
		}, nil
	}

	key := constants.BuildRateLimitKey(clientIP, string(limitType))
	return r.checkLimit(ctx, key, limit, now)
}

func (r *RateLimiter) checkLimit(ctx context.Context, key string, limit Limit, now time.Time) (*Result, error) {
	windowStart := now.Add(-limit.Window)

	values, err := slidingWindow.Run(ctx, r.client, []string{key},
		windowStart.UnixMicro(),
		now.UnixMicro(),
		limit.Requests,
		limit.Window.Milliseconds(),
		fmt.Sprintf("%d-%s", now.UnixNano(), uuid.NewString()),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("redis eval failed: %w", err)
	}
	if len(values) != 2 {
		return nil, fmt.Errorf("unexpected redis response: %v", values)
	}

	return &Result{
		Allowed:   values[0] <= int64(limit.Requests),
		Limit:     limit.Requests,
		Remaining: int(values[1]),
		ResetTime: now.Add(limit.Window).Unix(),
	}, nil
}

func (r *RateLimiter) getLimit(limitType RateLimitType) Limit {
	switch limitType {
	case RateLimitTypeAuth:
		return r.config.Auth
	case RateLimitTypeUpload:
		return r.config.Upload
	default:
		return r.config.API
	}
}

func (r *RateLimiter) isWhitelisted(ip string) bool {
	return slices.Contains(r.config.WhitelistedIPs, ip)
}
