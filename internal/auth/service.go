package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"eventgallery/internal/contracts"
	"eventgallery/internal/shared/config"
	"eventgallery/internal/shared/constants"
	"eventgallery/internal/users"
	"eventgallery/internal/validators"
	"eventgallery/pkg/cache"
	"eventgallery/pkg/logger"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionExpired     = errors.New("session expired")
)

type Service interface {
	Register(ctx context.Context, req contracts.CreateUserRequest) (*contracts.LoginResponse, error)
	Login(ctx context.Context, req contracts.LoginRequest) (*contracts.LoginResponse, error)
	Logout(ctx context.Context, sessionID string) error
	CurrentUser(ctx context.Context, userID uuid.UUID) (*contracts.User, error)
	Authenticate(ctx context.Context, token string) (uuid.UUID, string, error)
}

type service struct {
	repo   Repository
	users  users.Repository
	cache  cache.Service
	config config.SessionConfig
	log    *logger.Logger
	now    func() time.Time
}

// NewService builds the session service. cacheService may be nil, in which
// case revocation relies on the sessions table alone.
func NewService(repo Repository, userRepo users.Repository, cacheService cache.Service, cfg config.SessionConfig, log *logger.Logger) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{
		repo:   repo,
		users:  userRepo,
		cache:  cacheService,
		config: cfg,
		log:    log,
		now:    time.Now,
	}
}

func (s *service) Register(ctx context.Context, req contracts.CreateUserRequest) (*contracts.LoginResponse, error) {
	email := validators.SanitizeEmail(req.Email)
	username := validators.SanitizeUsername(req.Username)

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	exists, err = s.users.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &users.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hashedPassword),
	}
	if fullName := validators.SanitizeString(req.FullName); fullName != "" {
		user.FullName = &fullName
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	cache.Invalidate(ctx, s.cache, s.log, constants.PATTERN_INVALIDATE_GALLERY)

	return s.startSession(ctx, user, "register")
}

func (s *service) Login(ctx context.Context, req contracts.LoginRequest) (*contracts.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, validators.SanitizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.startSession(ctx, user, "password")
}

func (s *service) startSession(ctx context.Context, user *users.User, method string) (*contracts.LoginResponse, error) {
	now := s.now()
	session := &Session{
		UserID:    user.ID,
		ExpiresAt: now.Add(s.config.Duration),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	token, err := s.signToken(session, now)
	if err != nil {
		return nil, err
	}

	s.log.LogAuthSuccess(ctx, user.ID.String(), method)
	return &contracts.LoginResponse{
		User:      user.ToContract(),
		SessionID: token,
	}, nil
}

// Logout revokes the session. Revoking an unknown session is not an error.
func (s *service) Logout(ctx context.Context, sessionID string) error {
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		return err
	}

	if err := s.repo.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	if s.cache != nil && session != nil {
		if ttl := session.ExpiresAt.Sub(s.now()); ttl > 0 {
			if err := s.cache.SetString(ctx, constants.BuildRevokedSessionKey(sessionID), "1", ttl); err != nil {
				s.log.Warn("Session revocation not cached", "session_id", sessionID, "error", err.Error())
			}
		}
	}
	s.log.LogSessionRevoked(ctx, sessionID)
	return nil
}

func (s *service) CurrentUser(ctx context.Context, userID uuid.UUID) (*contracts.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := user.ToContract()
	return &result, nil
}

// Authenticate verifies the token signature, then checks that the session
// it names is still live.
func (s *service) Authenticate(ctx context.Context, token string) (uuid.UUID, string, error) {
	claims, err := s.validateToken(token)
	if err != nil {
		return uuid.Nil, "", err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || claims.ID == "" {
		return uuid.Nil, "", ErrInvalidToken
	}

	if s.cache != nil && s.cache.Exists(ctx, constants.BuildRevokedSessionKey(claims.ID)) {
		return uuid.Nil, "", ErrSessionExpired
	}

	session, err := s.repo.GetSession(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return uuid.Nil, "", ErrSessionExpired
		}
		return uuid.Nil, "", err
	}
	if session.UserID != userID {
		return uuid.Nil, "", ErrInvalidToken
	}
	if session.Expired(s.now()) {
		if err := s.repo.DeleteSession(ctx, session.ID); err != nil {
			s.log.Warn("Expired session not removed", "session_id", session.ID, "error", err.Error())
		}
		return uuid.Nil, "", ErrSessionExpired
	}

	return userID, session.ID, nil
}

func (s *service) signToken(session *Session, now time.Time) (string, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   session.UserID.String(),
			Issuer:    s.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (s *service) validateToken(tokenString string) (*SessionClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) && validationErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrSessionExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if s.config.Issuer != "" && !claims.VerifyIssuer(s.config.Issuer, true) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
