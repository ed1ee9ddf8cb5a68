package middleware

import (
	"context"
	"strings"
	"time"

	"eventgallery/internal/shared/constants"
	"eventgallery/internal/shared/utils/response"
	"eventgallery/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by the session middlewares.
const (
	ContextUserID    = "user_id"
	ContextSessionID = "session_id"
)

// Authenticator resolves a bearer token into the session it names.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (userID uuid.UUID, sessionID string, err error)
}

// SessionAuth rejects requests without a live session.
func SessionAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.RespondUnauthorized(c, constants.MsgUnauthorized)
			return
		}

		userID, sessionID, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.GetDefault().LogAuthFailure(c.Request.Context(), err.Error(), c.ClientIP())
			response.RespondUnauthorized(c, constants.MsgSessionExpired)
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextSessionID, sessionID)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is present and lets
// every request through.
func OptionalAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if userID, sessionID, err := auth.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(ContextUserID, userID)
				c.Set(ContextSessionID, sessionID)
			}
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated caller, if any.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// OptionalUserID returns the authenticated user id, or nil for anonymous
// callers.
func OptionalUserID(c *gin.Context) *uuid.UUID {
	if id, ok := CurrentUserID(c); ok {
		return &id
	}
	return nil
}

func CurrentSessionID(c *gin.Context) string {
	return c.GetString(ContextSessionID)
}

// RequestLogger logs every request once it completes.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.LogHTTPRequest(c, time.Since(start))
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
