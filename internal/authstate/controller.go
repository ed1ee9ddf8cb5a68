// Package authstate keeps the process-wide view of who is signed in and
// drives login, registration, logout and profile refresh through the API
// gateway.
package authstate

import (
	"context"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"sync"

	"eventgallery/internal/broadcast"
	"eventgallery/internal/contracts"
	"eventgallery/internal/session"
	"eventgallery/pkg/logger"
)

// Phase is the authentication part of the state. Loading is tracked
// separately and may accompany any phase.
type Phase string

const (
	PhaseAnonymous Phase = "anonymous"
	// PhaseOptimistic is a session restored from storage that the server
	// has not confirmed yet.
	PhaseOptimistic    Phase = "optimistic"
	PhaseAuthenticated Phase = "authenticated"
)

// State is an immutable snapshot handed to callers and subscribers.
type State struct {
	User      *contracts.User
	Token     string
	Phase     Phase
	IsLoading bool
}

func (s State) IsAuthenticated() bool {
	return s.Phase == PhaseOptimistic || s.Phase == PhaseAuthenticated
}

// Gateway is the part of the API client the controller needs.
type Gateway interface {
	Login(ctx context.Context, req contracts.LoginRequest) contracts.Envelope[contracts.LoginResponse]
	Register(ctx context.Context, req contracts.CreateUserRequest) contracts.Envelope[contracts.LoginResponse]
	Logout(ctx context.Context) contracts.Envelope[contracts.MessageResponse]
	CurrentUser(ctx context.Context) contracts.Envelope[contracts.User]
	SetToken(token string)
}

// Controller owns State. Only its methods mutate it; overlapping actions
// are not sequenced and the one that finishes last wins.
type Controller struct {
	gateway Gateway
	store   *session.Store
	log     *logger.Logger

	mu         sync.Mutex
	state      State
	pending    int
	loggingOut int
	nextSub    int
	subs       map[int]func(State)

	stopSignals func()
}

// New hydrates the controller from store. A stored token and user yield
// PhaseOptimistic with loading set until Start has revalidated them;
// anything else starts anonymous.
func New(gw Gateway, store *session.Store, notifier broadcast.Notifier, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.GetDefault()
	}
	c := &Controller{
		gateway: gw,
		store:   store,
		log:     log,
		state:   State{Phase: PhaseAnonymous},
		subs:    make(map[int]func(State)),
	}

	if sess, ok := store.Load(); ok {
		user := sess.User
		c.state = State{User: &user, Token: sess.Token, Phase: PhaseOptimistic, IsLoading: true}
		gw.SetToken(sess.Token)
	}

	if notifier != nil {
		c.stopSignals = notifier.Subscribe(c.onLogoutSignal)
	}
	return c
}

// Start revalidates a restored session in the background. The returned
// channel is closed once the state is settled.
func (c *Controller) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})

	if c.State().Phase != PhaseOptimistic {
		close(done)
		return done
	}

	go func() {
		defer close(done)
		c.RefreshUser(ctx)
	}()
	return done
}

// Close stops listening for logout signals.
func (c *Controller) Close() {
	if c.stopSignals != nil {
		c.stopSignals()
	}
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) IsAuthenticated() bool { return c.State().IsAuthenticated() }
func (c *Controller) IsLoading() bool       { return c.State().IsLoading }
func (c *Controller) CurrentUser() *contracts.User {
	return c.State().User
}

// Subscribe registers fn to receive every new state. fn is called without
// the controller lock held.
func (c *Controller) Subscribe(fn func(State)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Login authenticates and returns the gateway envelope for display. Any
// failure leaves the controller anonymous.
func (c *Controller) Login(ctx context.Context, email, password string) contracts.Envelope[contracts.LoginResponse] {
	c.begin()
	defer c.end()

	env := c.gateway.Login(ctx, contracts.LoginRequest{Email: email, Password: password})
	c.settleLogin(ctx, env, "password")
	return env
}

// Register creates an account and signs it in.
func (c *Controller) Register(ctx context.Context, req contracts.CreateUserRequest) contracts.Envelope[contracts.LoginResponse] {
	c.begin()
	defer c.end()

	env := c.gateway.Register(ctx, req)
	c.settleLogin(ctx, env, "register")
	return env
}

func (c *Controller) settleLogin(ctx context.Context, env contracts.Envelope[contracts.LoginResponse], method string) {
	if !env.Success || env.Data == nil {
		c.resetLocal()
		reason := "unknown"
		if env.Error != nil {
			reason = env.Error.Kind
		}
		c.log.WarnContext(ctx, "Sign in failed", slog.String("method", method), slog.String("reason", reason))
		return
	}

	user := env.Data.User
	c.update(func(s *State) {
		s.User = &user
		s.Token = env.Data.SessionID
		s.Phase = PhaseAuthenticated
	})
	if err := c.store.SetUser(user); err != nil {
		c.log.WarnContext(ctx, "Cached user not persisted", slog.String("error", err.Error()))
	}
	c.log.LogAuthSuccess(ctx, user.ID, method)
}

// Logout always succeeds locally. A failing server call is only logged.
func (c *Controller) Logout(ctx context.Context) {
	c.begin()
	c.mu.Lock()
	c.loggingOut++
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.loggingOut--
		c.mu.Unlock()
		c.end()
	}()

	if env := c.gateway.Logout(ctx); !env.Success {
		c.log.WarnContext(ctx, "Logout request failed", slog.String("error", env.Err().Error()))
	}
	c.resetLocal()
	// ClearSession logs its own failures.
	_ = c.store.ClearSession()
}

// RefreshUser revalidates the session against the server. It does nothing
// while anonymous. A 401 logs out; other failures keep the current state.
func (c *Controller) RefreshUser(ctx context.Context) {
	if !c.State().IsAuthenticated() {
		return
	}

	c.begin()
	defer c.end()

	env := c.gateway.CurrentUser(ctx)
	switch {
	case env.Success && env.Data != nil:
		user := *env.Data
		c.update(func(s *State) {
			// A logout that landed meanwhile wins.
			if !s.IsAuthenticated() {
				return
			}
			s.User = &user
			s.Phase = PhaseAuthenticated
		})
		if err := c.store.SetUser(user); err != nil {
			c.log.WarnContext(ctx, "Cached user not persisted", slog.String("error", err.Error()))
		}
	case env.StatusCode() == http.StatusUnauthorized:
		c.Logout(ctx)
	default:
		c.log.ErrorWithContext(ctx, "Refresh user failed", env.Err(), nil)
	}
}

// onLogoutSignal reacts to a 401 seen by the gateway or a logout in another
// process. While a logout is already running, or nothing is signed in, only
// local state is reset.
func (c *Controller) onLogoutSignal(sig broadcast.Signal) {
	c.mu.Lock()
	localOnly := c.loggingOut > 0 || !c.state.IsAuthenticated()
	c.mu.Unlock()

	c.log.Info("Logout signal received",
		slog.String("reason", string(sig.Reason)),
		slog.String("path", sig.Path),
	)

	if localOnly {
		c.resetLocal()
		return
	}
	c.Logout(context.Background())
}

func (c *Controller) resetLocal() {
	c.update(func(s *State) {
		s.User = nil
		s.Token = ""
		s.Phase = PhaseAnonymous
	})
}

func (c *Controller) begin() {
	c.mu.Lock()
	c.pending++
	c.mu.Unlock()
	c.update(func(s *State) { s.IsLoading = true })
}

func (c *Controller) end() {
	c.mu.Lock()
	c.pending--
	c.mu.Unlock()
	c.update(func(s *State) { s.IsLoading = c.pending > 0 })
}

// update applies mutate under the lock and notifies subscribers when the
// state changed.
func (c *Controller) update(mutate func(*State)) {
	c.mu.Lock()
	before := c.state
	mutate(&c.state)
	after := c.state
	if sameState(before, after) {
		c.mu.Unlock()
		return
	}
	subs := make([]func(State), 0, len(c.subs))
	for _, id := range slices.Sorted(maps.Keys(c.subs)) {
		subs = append(subs, c.subs[id])
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(after)
	}
}

func sameState(a, b State) bool {
	return a.User == b.User && a.Token == b.Token && a.Phase == b.Phase && a.IsLoading == b.IsLoading
}
