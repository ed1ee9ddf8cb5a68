package validators

import (
	"strings"

	"eventgallery/internal/contracts"
	"eventgallery/internal/shared/constants"
)

func LoginRequest(req contracts.LoginRequest) Result {
	c := collector{}
	c.add("email", Email(req.Email))
	if req.Password == "" {
		c.add("password", []string{"La contraseña es requerida"})
	}
	return c.result()
}

func CreateUserRequest(req contracts.CreateUserRequest) Result {
	c := collector{}
	c.add("email", Email(req.Email))
	c.add("username", Username(req.Username))
	c.add("password", Password(req.Password))
	c.add("fullName", FullName(req.FullName))
	return c.result()
}

func UpdateUserRequest(req contracts.UpdateUserRequest) Result {
	c := collector{}
	if req.FullName != nil {
		c.add("fullName", FullName(*req.FullName))
	}
	return c.result()
}

func CreateEventRequest(req contracts.CreateEventRequest) Result {
	c := collector{}
	c.add("name", EventName(req.Name))
	c.add("description", EventDescription(req.Description))
	c.add("date", EventDate(req.Date))
	c.add("time", EventTime(req.Time))
	c.add("location", EventLocation(req.Location))
	c.add("category", EventCategory(string(req.Category)))
	if req.MaxParticipants != nil {
		c.add("maxParticipants", MaxParticipants(*req.MaxParticipants))
	}
	if req.CoverImage != nil {
		c.add("coverImage", ImageFile(req.CoverImage))
	}
	return c.result()
}

// UpdateEventRequest only checks the fields that are present.
func UpdateEventRequest(req contracts.UpdateEventRequest) Result {
	c := collector{}
	if req.Name != nil {
		c.add("name", EventName(*req.Name))
	}
	if req.Description != nil {
		c.add("description", EventDescription(*req.Description))
	}
	if req.Date != nil {
		c.add("date", EventDate(*req.Date))
	}
	if req.Time != nil {
		c.add("time", EventTime(*req.Time))
	}
	if req.Location != nil {
		c.add("location", EventLocation(*req.Location))
	}
	if req.Category != nil {
		c.add("category", EventCategory(string(*req.Category)))
	}
	if req.MaxParticipants != nil {
		c.add("maxParticipants", MaxParticipants(*req.MaxParticipants))
	}
	if req.CoverImage != nil {
		c.add("coverImage", ImageFile(req.CoverImage))
	}
	return c.result()
}

func UploadImageRequest(req contracts.UploadImageRequest) Result {
	c := collector{}
	c.add("eventId", UUID(req.EventID))
	c.add("title", ImageTitle(req.Title))
	c.add("description", ImageDescription(req.Description))
	c.add("image", ImageFile(req.Image))
	return c.result()
}

func UpdateImageRequest(req contracts.UpdateImageRequest) Result {
	c := collector{}
	if req.Title != nil {
		c.add("title", ImageTitle(*req.Title))
	}
	if req.Description != nil {
		c.add("description", ImageDescription(*req.Description))
	}
	return c.result()
}

func CreateCommentRequest(req contracts.CreateCommentRequest) Result {
	c := collector{}
	c.add("imageId", UUID(req.ImageID))
	c.add("content", CommentContent(req.Content))
	return c.result()
}

func UpdateCommentRequest(req contracts.UpdateCommentRequest) Result {
	c := collector{}
	c.add("content", CommentContent(req.Content))
	return c.result()
}

func JoinByCodeRequest(req contracts.JoinEventRequest) Result {
	c := collector{}
	c.add("inviteCode", InviteCode(req.InviteCode))
	return c.result()
}

// Pagination validates optional page and limit values; nil means unset.
func Pagination(page, limit *int) Result {
	c := collector{}
	if page != nil && *page < 1 {
		c.add("page", []string{"El número de página debe ser un entero positivo"})
	}
	if limit != nil {
		switch {
		case *limit < 1:
			c.add("limit", []string{"El límite debe ser un entero positivo"})
		case *limit > constants.MaxLimit:
			c.add("limit", []string{"El límite no puede ser mayor a 100"})
		}
	}
	return c.result()
}

// SanitizeString trims and collapses internal whitespace runs.
func SanitizeString(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func SanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func SanitizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
