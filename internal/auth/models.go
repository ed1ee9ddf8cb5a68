package auth

import (
	"time"

	"eventgallery/internal/users"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session is a server-side login. Deleting the row revokes every token
// that names it.
type Session struct {
	ID        string     `gorm:"size:64;primaryKey"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	User      users.User `gorm:"constraint:OnDelete:CASCADE"`
	ExpiresAt time.Time  `gorm:"not null;index"`
	CreatedAt time.Time
}

func (Session) TableName() string { return "sessions" }

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// SessionClaims is the payload of a bearer token. The JWT id is the
// session id and the subject is the user id.
type SessionClaims struct {
	jwt.RegisteredClaims
}
