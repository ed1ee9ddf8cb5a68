package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(buf *bytes.Buffer) *Logger {
	return NewWithHandler(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &rec))
	return rec
}

func TestGetLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, getLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, getLogLevel("warning"))
	assert.Equal(t, slog.LevelError, getLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, getLogLevel("nonsense"))
}

func TestLogOutboundRequest(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf)

	l.LogOutboundRequest(context.Background(), "GET", "/auth/me", 200, 15*time.Millisecond)

	rec := lastRecord(t, &buf)
	assert.Equal(t, "API Request", rec["msg"])
	assert.Equal(t, "/auth/me", rec["path"])
	assert.EqualValues(t, 200, rec["status"])
}

func TestWithHelpersCarryFields(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf).WithUserID("u1").WithError(errors.New("boom"))

	l.Info("hello")

	rec := lastRecord(t, &buf)
	assert.Equal(t, "u1", rec["user_id"])
	assert.Equal(t, "boom", rec["error"])
}

func TestDiscardDropsRecords(t *testing.T) {
	l := Discard()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}

func TestLogMembershipChanged(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf)

	l.LogMembershipChanged(context.Background(), "e1", "u1", "joined")

	rec := lastRecord(t, &buf)
	assert.Equal(t, "Event Membership Changed", rec["msg"])
	assert.Equal(t, "e1", rec["event_id"])
	assert.Equal(t, "joined", rec["action"])
}

func TestErrorWithContext(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf)

	l.ErrorWithContext(context.Background(), "Upload failed", errors.New("disk full"), map[string]interface{}{"key": "events/1"})

	rec := lastRecord(t, &buf)
	assert.Equal(t, "ERROR", rec["level"])
	assert.Equal(t, "disk full", rec["error"])
	assert.Equal(t, "events/1", rec["key"])
}
