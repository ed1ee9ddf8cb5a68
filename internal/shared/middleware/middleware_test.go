package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeAuth struct {
	token  string
	userID uuid.UUID
}

func (f fakeAuth) Authenticate(_ context.Context, token string) (uuid.UUID, string, error) {
	if token != f.token {
		return uuid.Nil, "", errors.New("unknown session")
	}
	return f.userID, "session-1", nil
}

func newEngine(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/", mw, func(c *gin.Context) {
		id := OptionalUserID(c)
		if id == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, id.String()+" "+CurrentSessionID(c))
	})
	return engine
}

func get(engine *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestSessionAuth(t *testing.T) {
	auth := fakeAuth{token: "good", userID: uuid.New()}
	engine := newEngine(SessionAuth(auth))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"empty token", "Bearer   ", http.StatusUnauthorized},
		{"unknown token", "Bearer bad", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(engine, tt.header)
			assert.Equal(t, tt.status, w.Code)
		})
	}

	w := get(engine, "Bearer good")
	assert.Equal(t, auth.userID.String()+" session-1", w.Body.String())
}

func TestSessionAuthWritesEnvelope(t *testing.T) {
	engine := newEngine(SessionAuth(fakeAuth{token: "good"}))

	w := get(engine, "Bearer bad")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.Contains(t, w.Body.String(), `"statusCode":401`)
}

func TestOptionalAuth(t *testing.T) {
	auth := fakeAuth{token: "good", userID: uuid.New()}
	engine := newEngine(OptionalAuth(auth))

	assert.Equal(t, "anonymous", get(engine, "").Body.String())
	assert.Equal(t, "anonymous", get(engine, "Bearer bad").Body.String())
	assert.Equal(t, auth.userID.String()+" session-1", get(engine, "Bearer good").Body.String())
}
