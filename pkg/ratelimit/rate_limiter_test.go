package ratelimit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventgallery/internal/contracts"
	"eventgallery/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, cfg *Config) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRateLimiter(client, cfg), mr
}

func TestSlidingWindowBlocksAfterLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Auth = Limit{Requests: 3, Window: time.Minute}
	rl, _ := newTestLimiter(t, cfg)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := rl.IsAllowed(ctx, "10.0.0.1", RateLimitTypeAuth)
		require.NoError(t, err)
		assert.True(t, res.Allowed, "request %d", i+1)
		assert.Equal(t, 2-i, res.Remaining)
	}

	res, err := rl.IsAllowed(ctx, "10.0.0.1", RateLimitTypeAuth)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)

	other, err := rl.IsAllowed(ctx, "10.0.0.2", RateLimitTypeAuth)
	require.NoError(t, err)
	assert.True(t, other.Allowed)
}

func TestWindowSlides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.API = Limit{Requests: 1, Window: time.Minute}
	rl, _ := newTestLimiter(t, cfg)
	ctx := context.Background()

	base := time.Now()
	rl.now = func() time.Time { return base }

	first, err := rl.IsAllowed(ctx, "ip", RateLimitTypeAPI)
	require.NoError(t, err)
	assert.True(t, first.Allowed)

	blocked, err := rl.IsAllowed(ctx, "ip", RateLimitTypeAPI)
	require.NoError(t, err)
	assert.False(t, blocked.Allowed)

	rl.now = func() time.Time { return base.Add(61 * time.Second) }
	later, err := rl.IsAllowed(ctx, "ip", RateLimitTypeAPI)
	require.NoError(t, err)
	assert.True(t, later.Allowed)
}

func TestDisabledAndWhitelisted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Auth = Limit{Requests: 1, Window: time.Minute}
	cfg.WhitelistedIPs = []string{"127.0.0.1"}
	rl, mr := newTestLimiter(t, cfg)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := rl.IsAllowed(ctx, "127.0.0.1", RateLimitTypeAuth)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}
	assert.Empty(t, mr.Keys())

	cfg.Enabled = false
	for i := 0; i < 3; i++ {
		res, err := rl.IsAllowed(ctx, "10.1.1.1", RateLimitTypeAuth)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}
}

func TestGetRateLimitType(t *testing.T) {
	assert.Equal(t, RateLimitTypeAuth, getRateLimitType(http.MethodPost, "/api/auth/login"))
	assert.Equal(t, RateLimitTypeUpload, getRateLimitType(http.MethodPost, "/api/images"))
	assert.Equal(t, RateLimitTypeUpload, getRateLimitType(http.MethodPatch, "/api/events/:id"))
	assert.Equal(t, RateLimitTypeAPI, getRateLimitType(http.MethodGet, "/api/images"))
	assert.Equal(t, RateLimitTypeHealth, getRateLimitType(http.MethodGet, "/api/health"))
}

func TestMiddlewareRejectsWithEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := DefaultConfig()
	cfg.Auth = Limit{Requests: 1, Window: time.Minute}
	rl, _ := newTestLimiter(t, cfg)

	engine := gin.New()
	engine.Use(Middleware(rl, logger.Discard()))
	engine.POST("/api/auth/login", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.Header.Set("X-Forwarded-For", "192.0.2.7")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	first := do()
	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))

	second := do()
	require.Equal(t, http.StatusTooManyRequests, second.Code)

	var env contracts.Envelope[struct{}]
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, contracts.ErrorKindRateLimited, env.Error.Kind)
	assert.Equal(t, http.StatusTooManyRequests, env.Error.StatusCode)
}
