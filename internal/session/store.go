// Package session persists the bearer token and cached user profile of the
// signed-in account.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"eventgallery/internal/contracts"
	"eventgallery/internal/shared/constants"
	"eventgallery/pkg/logger"
)

// Session pairs a bearer token with the profile it was issued for.
type Session struct {
	Token string
	User  contracts.User
}

// Store reads and writes the session through a Storage. Read failures are
// soft: they are logged and reported as absence.
type Store struct {
	storage Storage
	log     *logger.Logger
}

// NewStore wraps storage. A nil storage behaves like NoopStorage.
func NewStore(storage Storage, log *logger.Logger) *Store {
	if storage == nil {
		storage = NoopStorage{}
	}
	if log == nil {
		log = logger.GetDefault()
	}
	return &Store{storage: storage, log: log}
}

// Token returns the persisted token or "" when there is none.
func (s *Store) Token() string {
	token, err := s.storage.Get(constants.STORAGE_KEY_TOKEN)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			s.log.Warn("Session token read failed", slog.String("error", err.Error()))
		}
		return ""
	}
	return token
}

func (s *Store) SetToken(token string) error {
	if err := s.storage.Set(constants.STORAGE_KEY_TOKEN, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	return nil
}

// User returns the cached profile, or nil when it is missing or cannot be
// decoded.
func (s *Store) User() *contracts.User {
	raw, err := s.storage.Get(constants.STORAGE_KEY_USER)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			s.log.Warn("Session user read failed", slog.String("error", err.Error()))
		}
		return nil
	}

	var user contracts.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.log.Warn("Discarding corrupt cached user", slog.String("error", err.Error()))
		return nil
	}
	return &user
}

func (s *Store) SetUser(user contracts.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.storage.Set(constants.STORAGE_KEY_USER, string(data)); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	return nil
}

// Save persists token and user together.
func (s *Store) Save(sess Session) error {
	if err := s.SetToken(sess.Token); err != nil {
		return err
	}
	return s.SetUser(sess.User)
}

// Load returns the persisted session when both the token and the user are
// present.
func (s *Store) Load() (Session, bool) {
	token := s.Token()
	if token == "" {
		return Session{}, false
	}
	user := s.User()
	if user == nil {
		return Session{}, false
	}
	return Session{Token: token, User: *user}, true
}

// ClearSession removes both keys. Every key is attempted even if an earlier
// removal fails.
func (s *Store) ClearSession() error {
	err := errors.Join(
		s.storage.Remove(constants.STORAGE_KEY_TOKEN),
		s.storage.Remove(constants.STORAGE_KEY_USER),
	)
	if err != nil {
		s.log.ErrorWithContext(context.Background(), "Session clear failed", err, nil)
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
