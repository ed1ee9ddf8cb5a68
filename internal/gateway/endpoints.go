package gateway

import "net/url"

// Paths are relative to the client's base URL.
const (
	pathRegister = "/auth/register"
	pathLogin    = "/auth/login"
	pathLogout   = "/auth/logout"
	pathMe       = "/auth/me"

	pathUsers          = "/users"
	pathEvents         = "/events"
	pathJoinByCode     = "/events/join-by-code"
	pathValidateInvite = "/events/validate-invite"
	pathImages         = "/images"
	pathComments       = "/comments"
	pathSearch         = "/search"
	pathGalleryStats   = "/gallery/stats"
	pathHealth         = "/health"
)

func userPath(id string) string              { return pathUsers + "/" + url.PathEscape(id) }
func eventPath(id string) string             { return pathEvents + "/" + url.PathEscape(id) }
func eventJoinPath(id string) string         { return eventPath(id) + "/join" }
func eventLeavePath(id string) string        { return eventPath(id) + "/leave" }
func eventImagesPath(id string) string       { return eventPath(id) + "/images" }
func eventParticipantsPath(id string) string { return eventPath(id) + "/participants" }
func imagePath(id string) string             { return pathImages + "/" + url.PathEscape(id) }
func imageLikePath(id string) string         { return imagePath(id) + "/like" }
func imageUnlikePath(id string) string       { return imagePath(id) + "/unlike" }
func imageCommentsPath(id string) string     { return imagePath(id) + "/comments" }
func commentPath(id string) string           { return pathComments + "/" + url.PathEscape(id) }
