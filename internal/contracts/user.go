package contracts

import "time"

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  *string   `json:"fullName"`
	AvatarURL *string   `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public strips the private fields of a user.
func (u User) Public() UserPublic {
	return UserPublic{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
	}
}

type UserPublic struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	FullName  *string `json:"fullName"`
	AvatarURL *string `json:"avatarUrl"`
}

type CreateUserRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullName,omitempty"`
}

type UpdateUserRequest struct {
	FullName  *string `json:"fullName,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by login and register. SessionID is the bearer
// token for subsequent requests.
type LoginResponse struct {
	User      User   `json:"user"`
	SessionID string `json:"sessionId"`
}
