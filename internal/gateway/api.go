package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"eventgallery/internal/contracts"
	"eventgallery/internal/session"
	"eventgallery/internal/shared/constants"
)

// Auth

// Register creates an account and, on success, persists the returned
// session.
func (c *Client) Register(ctx context.Context, req contracts.CreateUserRequest) contracts.Envelope[contracts.LoginResponse] {
	env := do[contracts.LoginResponse](ctx, c, request{method: http.MethodPost, path: pathRegister, body: req})
	c.persistLogin(env)
	return env
}

// Login authenticates and, on success, persists the returned session.
func (c *Client) Login(ctx context.Context, req contracts.LoginRequest) contracts.Envelope[contracts.LoginResponse] {
	env := do[contracts.LoginResponse](ctx, c, request{method: http.MethodPost, path: pathLogin, body: req})
	c.persistLogin(env)
	return env
}

func (c *Client) persistLogin(env contracts.Envelope[contracts.LoginResponse]) {
	if !env.Success || env.Data == nil {
		return
	}
	c.mu.Lock()
	c.token = env.Data.SessionID
	c.mu.Unlock()

	if err := c.store.Save(session.Session{Token: env.Data.SessionID, User: env.Data.User}); err != nil {
		c.log.Warn("Session not persisted", "error", err.Error())
	}
}

// Logout ends the session on the server and clears it locally whatever the
// server answers. Without a token there is nothing to revoke and no request
// is sent.
func (c *Client) Logout(ctx context.Context) contracts.Envelope[contracts.MessageResponse] {
	if c.Token() == "" {
		c.ClearToken()
		return contracts.Ok(contracts.MessageResponse{Message: constants.MsgLogoutSuccess})
	}

	env := do[contracts.MessageResponse](ctx, c, request{method: http.MethodPost, path: pathLogout})
	c.ClearToken()
	return env
}

func (c *Client) CurrentUser(ctx context.Context) contracts.Envelope[contracts.User] {
	return do[contracts.User](ctx, c, request{method: http.MethodGet, path: pathMe})
}

// Users

// User fetches another member's public profile.
func (c *Client) User(ctx context.Context, id string) contracts.Envelope[contracts.UserPublic] {
	return do[contracts.UserPublic](ctx, c, request{method: http.MethodGet, path: userPath(id)})
}

func (c *Client) UpdateUser(ctx context.Context, id string, req contracts.UpdateUserRequest) contracts.Envelope[contracts.User] {
	return do[contracts.User](ctx, c, request{method: http.MethodPatch, path: userPath(id), body: req})
}

// Events

func (c *Client) Events(ctx context.Context, filters contracts.EventFilters) contracts.Envelope[contracts.Paginated[contracts.EventWithStats]] {
	return do[contracts.Paginated[contracts.EventWithStats]](ctx, c, request{method: http.MethodGet, path: pathEvents, query: filters.Values()})
}

// CreateEvent sends a multipart form when req.CoverImage is set, JSON
// otherwise.
func (c *Client) CreateEvent(ctx context.Context, req contracts.CreateEventRequest) contracts.Envelope[contracts.EventDetail] {
	return do[contracts.EventDetail](ctx, c, request{method: http.MethodPost, path: pathEvents, body: req})
}

func (c *Client) Event(ctx context.Context, id string) contracts.Envelope[contracts.EventDetail] {
	return do[contracts.EventDetail](ctx, c, request{method: http.MethodGet, path: eventPath(id)})
}

// UpdateEvent sends a multipart form when req.CoverImage is set, JSON
// otherwise.
func (c *Client) UpdateEvent(ctx context.Context, id string, req contracts.UpdateEventRequest) contracts.Envelope[contracts.EventDetail] {
	return do[contracts.EventDetail](ctx, c, request{method: http.MethodPatch, path: eventPath(id), body: req})
}

func (c *Client) DeleteEvent(ctx context.Context, id string) contracts.Envelope[contracts.MessageResponse] {
	return do[contracts.MessageResponse](ctx, c, request{method: http.MethodDelete, path: eventPath(id)})
}

func (c *Client) JoinEvent(ctx context.Context, id string) contracts.Envelope[contracts.JoinEventResponse] {
	return do[contracts.JoinEventResponse](ctx, c, request{method: http.MethodPost, path: eventJoinPath(id)})
}

func (c *Client) JoinEventByCode(ctx context.Context, inviteCode string) contracts.Envelope[contracts.JoinEventResponse] {
	return do[contracts.JoinEventResponse](ctx, c, request{
		method: http.MethodPost,
		path:   pathJoinByCode,
		body:   contracts.JoinEventRequest{InviteCode: inviteCode},
	})
}

// ValidateInviteCode checks a code without joining.
func (c *Client) ValidateInviteCode(ctx context.Context, inviteCode string) contracts.Envelope[contracts.ValidateInviteCodeResponse] {
	return do[contracts.ValidateInviteCodeResponse](ctx, c, request{
		method: http.MethodPost,
		path:   pathValidateInvite,
		body:   contracts.ValidateInviteCodeRequest{InviteCode: inviteCode},
	})
}

func (c *Client) LeaveEvent(ctx context.Context, id string) contracts.Envelope[contracts.MessageResponse] {
	return do[contracts.MessageResponse](ctx, c, request{method: http.MethodDelete, path: eventLeavePath(id)})
}

func (c *Client) EventImages(ctx context.Context, id string, filters contracts.ImageFilters) contracts.Envelope[contracts.Paginated[contracts.ImageWithStats]] {
	return do[contracts.Paginated[contracts.ImageWithStats]](ctx, c, request{method: http.MethodGet, path: eventImagesPath(id), query: filters.Values()})
}

func (c *Client) EventParticipants(ctx context.Context, id string) contracts.Envelope[[]contracts.ParticipantWithUser] {
	return do[[]contracts.ParticipantWithUser](ctx, c, request{method: http.MethodGet, path: eventParticipantsPath(id)})
}

// Images

func (c *Client) Images(ctx context.Context, filters contracts.ImageFilters) contracts.Envelope[contracts.Paginated[contracts.ImageWithStats]] {
	return do[contracts.Paginated[contracts.ImageWithStats]](ctx, c, request{method: http.MethodGet, path: pathImages, query: filters.Values()})
}

func (c *Client) UploadImage(ctx context.Context, req contracts.UploadImageRequest) contracts.Envelope[contracts.UploadImageResponse] {
	return do[contracts.UploadImageResponse](ctx, c, request{method: http.MethodPost, path: pathImages, body: req})
}

func (c *Client) Image(ctx context.Context, id string) contracts.Envelope[contracts.ImageDetail] {
	return do[contracts.ImageDetail](ctx, c, request{method: http.MethodGet, path: imagePath(id)})
}

func (c *Client) UpdateImage(ctx context.Context, id string, req contracts.UpdateImageRequest) contracts.Envelope[contracts.ImageWithStats] {
	return do[contracts.ImageWithStats](ctx, c, request{method: http.MethodPatch, path: imagePath(id), body: req})
}

func (c *Client) DeleteImage(ctx context.Context, id string) contracts.Envelope[contracts.MessageResponse] {
	return do[contracts.MessageResponse](ctx, c, request{method: http.MethodDelete, path: imagePath(id)})
}

func (c *Client) LikeImage(ctx context.Context, id string) contracts.Envelope[contracts.LikeImageResponse] {
	return do[contracts.LikeImageResponse](ctx, c, request{method: http.MethodPost, path: imageLikePath(id)})
}

func (c *Client) UnlikeImage(ctx context.Context, id string) contracts.Envelope[contracts.LikeImageResponse] {
	return do[contracts.LikeImageResponse](ctx, c, request{method: http.MethodDelete, path: imageUnlikePath(id)})
}

// Comments

func (c *Client) CreateComment(ctx context.Context, req contracts.CreateCommentRequest) contracts.Envelope[contracts.CreateCommentResponse] {
	return do[contracts.CreateCommentResponse](ctx, c, request{method: http.MethodPost, path: pathComments, body: req})
}

func (c *Client) UpdateComment(ctx context.Context, id string, req contracts.UpdateCommentRequest) contracts.Envelope[contracts.CommentWithUser] {
	return do[contracts.CommentWithUser](ctx, c, request{method: http.MethodPatch, path: commentPath(id), body: req})
}

func (c *Client) DeleteComment(ctx context.Context, id string) contracts.Envelope[contracts.MessageResponse] {
	return do[contracts.MessageResponse](ctx, c, request{method: http.MethodDelete, path: commentPath(id)})
}

// ImageComments lists comments on an image. Zero page or limit falls back
// to the server defaults.
func (c *Client) ImageComments(ctx context.Context, imageID string, page, limit int) contracts.Envelope[contracts.Paginated[contracts.CommentWithUser]] {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return do[contracts.Paginated[contracts.CommentWithUser]](ctx, c, request{method: http.MethodGet, path: imageCommentsPath(imageID), query: query})
}

// Search and gallery

func (c *Client) Search(ctx context.Context, q string, kind contracts.SearchType) contracts.Envelope[contracts.SearchResults] {
	if kind == "" {
		kind = contracts.SearchAll
	}
	query := url.Values{"q": {q}, "type": {string(kind)}}
	return do[contracts.SearchResults](ctx, c, request{method: http.MethodGet, path: pathSearch, query: query})
}

func (c *Client) GalleryStats(ctx context.Context) contracts.Envelope[contracts.GalleryStats] {
	return do[contracts.GalleryStats](ctx, c, request{method: http.MethodGet, path: pathGalleryStats})
}

func (c *Client) Health(ctx context.Context) contracts.Envelope[contracts.HealthResponse] {
	return do[contracts.HealthResponse](ctx, c, request{method: http.MethodGet, path: pathHealth})
}
