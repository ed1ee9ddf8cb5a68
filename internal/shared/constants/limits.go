package constants

import "time"

// Pagination
const (
	DefaultPage      = 1
	DefaultLimit     = 20
	MaxLimit         = 100
	DefaultSortOrder = "desc"

	ImageDetailComments = 50
	SearchResultLimit   = 10
)

// Field limits
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50

	MaxEmailLength = 255

	MinPasswordLength = 8
	MaxPasswordLength = 128

	MaxEventNameLength        = 255
	MaxEventDescriptionLength = 5000
	MaxEventLocationLength    = 255
	MinMaxParticipants        = 1
	MaxMaxParticipants        = 100000

	MaxImageTitleLength       = 255
	MaxImageDescriptionLength = 2000

	MinCommentLength = 1
	MaxCommentLength = 2000

	MaxFullNameLength = 255
)

// Upload limits in bytes
const (
	MaxImageSize       = 10 * 1024 * 1024
	MaxAvatarSize      = 2 * 1024 * 1024
	MaxCoverImageSize  = 5 * 1024 * 1024
	MultipartMemoryCap = 32 << 20
)

// Invite codes
const (
	InviteCodeLength = 8
	InviteCodeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Sessions
const (
	SessionDurationDays = 30
	SessionDuration     = SessionDurationDays * 24 * time.Hour
)

// Validation patterns
const (
	PatternEmail      = `^[^\s@]+@[^\s@]+\.[^\s@]+$`
	PatternUsername   = `^[a-zA-Z0-9_-]+$`
	PatternTime24H    = `^([01]\d|2[0-3]):([0-5]\d)$`
	PatternUUID       = `(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`
	PatternInviteCode = `^[A-Z0-9]{8}$`
)

// RateLimit describes a request budget over a window.
type RateLimit struct {
	Window      time.Duration
	MaxRequests int
}

var (
	RateLimitAuth   = RateLimit{Window: 15 * time.Minute, MaxRequests: 5}
	RateLimitAPI    = RateLimit{Window: 15 * time.Minute, MaxRequests: 100}
	RateLimitUpload = RateLimit{Window: time.Hour, MaxRequests: 50}
)
