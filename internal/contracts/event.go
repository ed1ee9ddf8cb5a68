package contracts

import "time"

type EventCategory string

const (
	CategoryWedding    EventCategory = "wedding"
	CategoryBirthday   EventCategory = "birthday"
	CategoryConference EventCategory = "conference"
	CategoryMusic      EventCategory = "music"
	CategorySports     EventCategory = "sports"
	CategoryArt        EventCategory = "art"
	CategoryCorporate  EventCategory = "corporate"
	CategoryOther      EventCategory = "other"
)

type Event struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Description     *string       `json:"description"`
	Date            time.Time     `json:"date"`
	Time            *string       `json:"time"`
	Location        string        `json:"location"`
	Category        EventCategory `json:"category"`
	IsPrivate       bool          `json:"isPrivate"`
	MaxParticipants *int          `json:"maxParticipants"`
	CoverImageURL   *string       `json:"coverImageUrl"`
	CoverImageKey   *string       `json:"coverImageKey"`
	InviteCode      string        `json:"inviteCode"`
	CreatedByID     string        `json:"createdById"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

type EventWithCreator struct {
	Event
	Creator UserPublic `json:"creator"`
}

type EventStats struct {
	ParticipantCount int `json:"participantCount"`
	ImageCount       int `json:"imageCount"`
	TotalLikes       int `json:"totalLikes"`
}

type EventWithStats struct {
	Event
	EventStats
}

type EventDetail struct {
	Event
	EventStats
	Creator       UserPublic   `json:"creator"`
	Participants  []UserPublic `json:"participants"`
	IsParticipant bool         `json:"isParticipant"`
}

// CreateEventRequest is sent as JSON, or as a multipart form when
// CoverImage is set.
type CreateEventRequest struct {
	Name            string        `json:"name"`
	Description     string        `json:"description,omitempty"`
	Date            string        `json:"date"`
	Time            string        `json:"time,omitempty"`
	Location        string        `json:"location"`
	Category        EventCategory `json:"category"`
	IsPrivate       *bool         `json:"isPrivate,omitempty"`
	MaxParticipants *int          `json:"maxParticipants,omitempty"`
	CoverImage      *File         `json:"-"`
}

func (r CreateEventRequest) Files() map[string]*File {
	return map[string]*File{"coverImage": r.CoverImage}
}

type UpdateEventRequest struct {
	Name            *string        `json:"name,omitempty"`
	Description     *string        `json:"description,omitempty"`
	Date            *string        `json:"date,omitempty"`
	Time            *string        `json:"time,omitempty"`
	Location        *string        `json:"location,omitempty"`
	Category        *EventCategory `json:"category,omitempty"`
	IsPrivate       *bool          `json:"isPrivate,omitempty"`
	MaxParticipants *int           `json:"maxParticipants,omitempty"`
	CoverImage      *File          `json:"-"`
}

func (r UpdateEventRequest) Files() map[string]*File {
	return map[string]*File{"coverImage": r.CoverImage}
}

type JoinEventRequest struct {
	InviteCode string `json:"inviteCode"`
}

type JoinEventResponse struct {
	Event   EventDetail `json:"event"`
	Message string      `json:"message"`
}

type ValidateInviteCodeRequest struct {
	InviteCode string `json:"inviteCode"`
}

type ValidateInviteCodeResponse struct {
	Valid   bool            `json:"valid"`
	Event   *EventWithStats `json:"event,omitempty"`
	CanJoin *bool           `json:"canJoin,omitempty"`
	Reason  string          `json:"reason,omitempty"`
}

type ParticipantWithUser struct {
	ID       string     `json:"id"`
	EventID  string     `json:"eventId"`
	UserID   string     `json:"userId"`
	JoinedAt time.Time  `json:"joinedAt"`
	User     UserPublic `json:"user"`
}
