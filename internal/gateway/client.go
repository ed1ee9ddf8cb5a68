// Package gateway is the single client for the gallery REST API. Every call
// resolves to a contracts.Envelope; failures are data, never Go errors.
package gateway

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"eventgallery/internal/broadcast"
	"eventgallery/internal/session"
	"eventgallery/pkg/logger"
)

// Client issues requests against the API, attaching the bearer token and
// invalidating the session on 401.
type Client struct {
	baseURL  string
	http     *http.Client
	store    *session.Store
	notifier broadcast.Notifier
	log      *logger.Logger
	headers  http.Header

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

// WithHTTPClient replaces the transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every request. Zero leaves requests unbounded; callers
// can still cancel through the context.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers.Add(key, value) }
}

func WithLogger(log *logger.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New builds a client for baseURL (for example http://localhost:3000/api).
// The in-memory token is seeded from store. A nil notifier gets a local one.
func New(baseURL string, store *session.Store, notifier broadcast.Notifier, opts ...Option) *Client {
	if store == nil {
		store = session.NewStore(nil, nil)
	}
	if notifier == nil {
		notifier = broadcast.NewLocalNotifier()
	}

	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{},
		store:    store,
		notifier: notifier,
		log:      logger.GetDefault(),
		headers:  http.Header{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.token = store.Token()
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Notifier returns the channel logout signals are published on.
func (c *Client) Notifier() broadcast.Notifier {
	return c.notifier
}

// Token returns the in-memory token, falling back to the store when the
// cache is empty.
func (c *Client) Token() string {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		return token
	}

	token = c.store.Token()
	if token != "" {
		c.mu.Lock()
		if c.token == "" {
			c.token = token
		}
		c.mu.Unlock()
	}
	return token
}

// SetToken caches token and persists it. An empty token clears the session.
func (c *Client) SetToken(token string) {
	if token == "" {
		c.ClearToken()
		return
	}

	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	if err := c.store.SetToken(token); err != nil {
		c.log.Warn("Token not persisted", "error", err.Error())
	}
}

// ClearToken drops the in-memory token and the persisted session.
func (c *Client) ClearToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()

	// ClearSession logs its own failures.
	_ = c.store.ClearSession()
}

// invalidate runs on every 401 before the body is looked at.
func (c *Client) invalidate(ctx context.Context, path string) {
	c.ClearToken()
	c.log.LogSessionInvalidated(ctx, path)

	sig := broadcast.Signal{Reason: broadcast.ReasonUnauthorized, Path: path}
	if err := c.notifier.Publish(context.WithoutCancel(ctx), sig); err != nil {
		c.log.Warn("Logout signal not delivered", "path", path, "error", err.Error())
	}
}
