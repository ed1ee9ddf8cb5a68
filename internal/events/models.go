package events

import (
	"crypto/rand"
	"math/big"
	"time"

	"eventgallery/internal/contracts"
	"eventgallery/internal/shared/constants"
	"eventgallery/internal/users"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID              uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Name            string     `json:"name" gorm:"not null;size:255"`
	Description     *string    `json:"description" gorm:"type:text"`
	Date            time.Time  `json:"date" gorm:"not null;index"`
	Time            *string    `json:"time" gorm:"size:5"`
	Location        string     `json:"location" gorm:"not null;size:255"`
	Category        string     `json:"category" gorm:"not null;size:50;index"`
	IsPrivate       bool       `json:"isPrivate" gorm:"not null;default:false"`
	MaxParticipants *int       `json:"maxParticipants"`
	CoverImageURL   *string    `json:"coverImageUrl"`
	CoverImageKey   *string    `json:"coverImageKey"`
	InviteCode      string     `json:"inviteCode" gorm:"not null;size:20;uniqueIndex"`
	CreatedByID     uuid.UUID  `json:"createdById" gorm:"type:uuid;not null;index"`
	CreatedBy       users.User `json:"-" gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (Event) TableName() string { return "events" }

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.InviteCode == "" {
		code, err := GenerateInviteCode()
		if err != nil {
			return err
		}
		e.InviteCode = code
	}
	return nil
}

func (e *Event) ToContract() contracts.Event {
	return contracts.Event{
		ID:              e.ID.String(),
		Name:            e.Name,
		Description:     e.Description,
		Date:            e.Date,
		Time:            e.Time,
		Location:        e.Location,
		Category:        contracts.EventCategory(e.Category),
		IsPrivate:       e.IsPrivate,
		MaxParticipants: e.MaxParticipants,
		CoverImageURL:   e.CoverImageURL,
		CoverImageKey:   e.CoverImageKey,
		InviteCode:      e.InviteCode,
		CreatedByID:     e.CreatedByID.String(),
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

// IsFull reports whether participants already fill the event.
func (e *Event) IsFull(participants int) bool {
	return e.MaxParticipants != nil && participants >= *e.MaxParticipants
}

// Participant records a user's membership of an event.
type Participant struct {
	ID       uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	EventID  uuid.UUID  `json:"eventId" gorm:"type:uuid;not null;uniqueIndex:idx_event_participant"`
	Event    Event      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	UserID   uuid.UUID  `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_event_participant;index"`
	User     users.User `json:"user" gorm:"constraint:OnDelete:CASCADE"`
	JoinedAt time.Time  `json:"joinedAt" gorm:"autoCreateTime"`
}

func (Participant) TableName() string { return "event_participants" }

func (p *Participant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Participant) ToContract() contracts.ParticipantWithUser {
	return contracts.ParticipantWithUser{
		ID:       p.ID.String(),
		EventID:  p.EventID.String(),
		UserID:   p.UserID.String(),
		JoinedAt: p.JoinedAt,
		User:     p.User.ToPublic(),
	}
}

// ListQuery is a validated event listing request.
type ListQuery struct {
	ViewerID    *uuid.UUID
	Category    string
	IsPrivate   *bool
	Search      string
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedByID *uuid.UUID
	Page        int
	Limit       int
	SortBy      string
	Desc        bool
}

// GenerateInviteCode draws a code from the invite alphabet.
func GenerateInviteCode() (string, error) {
	alphabet := constants.InviteCodeChars
	size := big.NewInt(int64(len(alphabet)))

	code := make([]byte, constants.InviteCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", err
		}
		code[i] = alphabet[n.Int64()]
	}
	return string(code), nil
}
