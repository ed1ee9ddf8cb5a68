// Package logger is the structured logger shared by the backend, the API
// client and the command line tools.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger embeds slog.Logger and adds typed helpers for the records the
// gallery emits.
type Logger struct {
	*slog.Logger
}

// New reads LOG_LEVEL and picks a text handler in gin debug mode, JSON
// otherwise.
func New() *Logger {
	level := getLogLevel(os.Getenv("LOG_LEVEL"))
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	if gin.Mode() == gin.DebugMode {
		return NewWithHandler(slog.NewTextHandler(os.Stdout, opts))
	}
	return NewWithHandler(slog.NewJSONHandler(os.Stdout, opts))
}

func NewWithHandler(handler slog.Handler) *Logger {
	return &Logger{Logger: slog.New(handler)}
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return NewWithHandler(slog.DiscardHandler)
}

func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) WithUserID(userID string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("user_id", userID))}
}

func (l *Logger) WithError(err error) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("error", err.Error()))}
}

// ErrorWithContext logs msg at error level with err and any extra fields.
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)+1)
	args = append(args, slog.String("error", err.Error()))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.ErrorContext(ctx, msg, args...)
}

// HTTP server

func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.Int("size", c.Writer.Size()),
	)
}

func (l *Logger) LogHTTPError(c *gin.Context, err error, statusCode int) {
	l.Logger.ErrorContext(c.Request.Context(),
		"HTTP Error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", statusCode),
		slog.String("error", err.Error()),
		slog.String("ip", c.ClientIP()),
	)
}

// API client

// LogOutboundRequest records a completed call to the gallery API at debug
// level.
func (l *Logger) LogOutboundRequest(ctx context.Context, method, path string, status int, duration time.Duration) {
	l.Logger.DebugContext(ctx,
		"API Request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Duration("duration", duration),
	)
}

// LogTransportFailure records a call that never produced a response.
func (l *Logger) LogTransportFailure(ctx context.Context, method, path string, err error) {
	l.Logger.WarnContext(ctx,
		"API Transport Failure",
		slog.String("method", method),
		slog.String("path", path),
		slog.String("error", err.Error()),
	)
}

func (l *Logger) LogSessionInvalidated(ctx context.Context, path string) {
	l.Logger.InfoContext(ctx, "Session Invalidated", slog.String("path", path))
}

// Gallery activity

func (l *Logger) LogEventCreated(ctx context.Context, eventID, userID string) {
	l.Logger.InfoContext(ctx,
		"Event Created",
		slog.String("event_id", eventID),
		slog.String("user_id", userID),
	)
}

func (l *Logger) LogEventDeleted(ctx context.Context, eventID, userID string) {
	l.Logger.InfoContext(ctx,
		"Event Deleted",
		slog.String("event_id", eventID),
		slog.String("user_id", userID),
	)
}

// LogMembershipChanged records a join or leave; action is "joined" or
// "left".
func (l *Logger) LogMembershipChanged(ctx context.Context, eventID, userID, action string) {
	l.Logger.InfoContext(ctx,
		"Event Membership Changed",
		slog.String("event_id", eventID),
		slog.String("user_id", userID),
		slog.String("action", action),
	)
}

func (l *Logger) LogImageUploaded(ctx context.Context, imageID, eventID, userID string) {
	l.Logger.InfoContext(ctx,
		"Image Uploaded",
		slog.String("image_id", imageID),
		slog.String("event_id", eventID),
		slog.String("user_id", userID),
	)
}

func (l *Logger) LogImageDeleted(ctx context.Context, imageID, userID string) {
	l.Logger.InfoContext(ctx,
		"Image Deleted",
		slog.String("image_id", imageID),
		slog.String("user_id", userID),
	)
}

func (l *Logger) LogCommentCreated(ctx context.Context, commentID, imageID, userID string) {
	l.Logger.InfoContext(ctx,
		"Comment Created",
		slog.String("comment_id", commentID),
		slog.String("image_id", imageID),
		slog.String("user_id", userID),
	)
}

// Security

func (l *Logger) LogAuthSuccess(ctx context.Context, userID, method string) {
	l.Logger.InfoContext(ctx,
		"Authentication Success",
		slog.String("user_id", userID),
		slog.String("method", method),
	)
}

func (l *Logger) LogAuthFailure(ctx context.Context, reason, ip string) {
	l.Logger.WarnContext(ctx,
		"Authentication Failure",
		slog.String("reason", reason),
		slog.String("ip", ip),
	)
}

func (l *Logger) LogSessionRevoked(ctx context.Context, sessionID string) {
	l.Logger.InfoContext(ctx, "Session Revoked", slog.String("session_id", sessionID))
}

func (l *Logger) LogRateLimitExceeded(ctx context.Context, ip, endpoint string) {
	l.Logger.WarnContext(ctx,
		"Rate Limit Exceeded",
		slog.String("ip", ip),
		slog.String("endpoint", endpoint),
	)
}

var defaultLogger = New()

// GetDefault returns the process-wide logger used when a constructor is
// given nil.
func GetDefault() *Logger {
	return defaultLogger
}

func SetDefault(logger *Logger) {
	defaultLogger = logger
}
