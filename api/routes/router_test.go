package routes

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventgallery/internal/contracts"
	"eventgallery/internal/gateway"
	"eventgallery/internal/session"
	"eventgallery/internal/shared/config"
	"eventgallery/internal/shared/database"
	"eventgallery/internal/shared/storage"
	"eventgallery/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "gallery2024"

type testServer struct {
	*httptest.Server
	db *database.DB
}

func newTestServer(t *testing.T, opts ...func(*config.Config)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		GinMode:   gin.TestMode,
		APIPrefix: "/api",
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)",
		},
		Session: config.SessionConfig{
			Secret:   "test-secret",
			Duration: time.Hour,
			Issuer:   "eventgallery-test",
		},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	db, err := database.InitDB(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	store, err := storage.NewDiskStore(t.TempDir(), "http://uploads.test")
	require.NoError(t, err)

	engine := gin.New()
	NewRouter(cfg, db, store, logger.Discard()).SetupRoutes(engine)

	srv := httptest.NewServer(engine)
	t.Cleanup(func() {
		srv.Close()
		_ = db.Close()
	})
	return &testServer{Server: srv, db: db}
}

func (s *testServer) client() *gateway.Client {
	store := session.NewStore(session.NewMemoryStorage(), logger.Discard())
	return gateway.New(s.URL+"/api", store, nil, gateway.WithLogger(logger.Discard()))
}

// signUp registers username and returns a logged in client.
func (s *testServer) signUp(t *testing.T, username string) (*gateway.Client, contracts.User) {
	t.Helper()
	c := s.client()
	env := c.Register(context.Background(), contracts.CreateUserRequest{
		Email:    username + "@example.com",
		Username: username,
		Password: testPassword,
	})
	require.True(t, env.Success, "register %s: %v", username, env.Err())
	return c, env.Data.User
}

func testPNG(t *testing.T) *contracts.File {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 30))))
	return &contracts.File{Name: "photo.png", ContentType: "image/png", Data: buf.Bytes()}
}

func newEvent(name string, private bool) contracts.CreateEventRequest {
	return contracts.CreateEventRequest{
		Name:      name,
		Date:      time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
		Location:  "Sevilla",
		Category:  contracts.CategoryWedding,
		IsPrivate: &private,
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	env := srv.client().Health(context.Background())
	require.True(t, env.Success)
	assert.Equal(t, ServiceName, env.Data.Service)
}

func TestAuthFlow(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	c, user := srv.signUp(t, "ana")
	assert.Equal(t, "ana@example.com", user.Email)

	me := c.CurrentUser(ctx)
	require.True(t, me.Success)
	assert.Equal(t, user.ID, me.Data.ID)

	dup := srv.client().Register(ctx, contracts.CreateUserRequest{Email: "ana@example.com", Username: "ana2", Password: testPassword})
	assert.Equal(t, http.StatusConflict, dup.StatusCode())

	bad := srv.client().Login(ctx, contracts.LoginRequest{Email: "ana@example.com", Password: "wrong-pass1"})
	assert.Equal(t, http.StatusUnauthorized, bad.StatusCode())

	other := srv.client()
	login := other.Login(ctx, contracts.LoginRequest{Email: "ANA@example.com", Password: testPassword})
	require.True(t, login.Success, "login: %v", login.Err())

	token := c.Token()
	require.True(t, c.Logout(ctx).Success)
	assert.Empty(t, c.Token())

	// The revoked token no longer authenticates; the other session does
	c.SetToken(token)
	assert.True(t, c.CurrentUser(ctx).IsUnauthorized())
	assert.True(t, other.CurrentUser(ctx).Success)
}

func TestUserProfiles(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	ana, anaUser := srv.signUp(t, "ana")
	luis, _ := srv.signUp(t, "luis")

	profile := luis.User(ctx, anaUser.ID)
	require.True(t, profile.Success)
	assert.Equal(t, "ana", profile.Data.Username)

	name := "Ana García"
	updated := ana.UpdateUser(ctx, anaUser.ID, contracts.UpdateUserRequest{FullName: &name})
	require.True(t, updated.Success, "update: %v", updated.Err())
	require.NotNil(t, updated.Data.FullName)
	assert.Equal(t, name, *updated.Data.FullName)

	forbidden := luis.UpdateUser(ctx, anaUser.ID, contracts.UpdateUserRequest{FullName: &name})
	assert.Equal(t, http.StatusForbidden, forbidden.StatusCode())

	assert.Equal(t, http.StatusNotFound, luis.User(ctx, uuid.NewString()).StatusCode())
}

func TestEventMembership(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	ana, _ := srv.signUp(t, "ana")
	luis, _ := srv.signUp(t, "luis")
	marta, _ := srv.signUp(t, "marta")
	anonymous := srv.client()

	public := ana.CreateEvent(ctx, newEvent("Boda de Ana", false))
	require.True(t, public.Success, "create: %v", public.Err())
	assert.Equal(t, 1, public.Data.ParticipantCount)
	assert.True(t, public.Data.IsParticipant)
	assert.Len(t, public.Data.InviteCode, 8)

	req := newEvent("Cena privada", true)
	one := 2
	req.MaxParticipants = &one
	private := ana.CreateEvent(ctx, req)
	require.True(t, private.Success, "create: %v", private.Err())

	// Private events are invisible to outsiders
	assert.Equal(t, http.StatusNotFound, anonymous.Event(ctx, private.Data.ID).StatusCode())
	assert.Equal(t, http.StatusNotFound, luis.Event(ctx, private.Data.ID).StatusCode())
	assert.Equal(t, http.StatusForbidden, luis.JoinEvent(ctx, private.Data.ID).StatusCode())

	listed := anonymous.Events(ctx, contracts.EventFilters{})
	require.True(t, listed.Success)
	assert.Len(t, listed.Data.Data, 1)
	assert.Equal(t, int64(1), listed.Data.Pagination.TotalItems)

	joined := luis.JoinEvent(ctx, public.Data.ID)
	require.True(t, joined.Success, "join: %v", joined.Err())
	assert.Equal(t, 2, joined.Data.Event.ParticipantCount)
	assert.Equal(t, http.StatusConflict, luis.JoinEvent(ctx, public.Data.ID).StatusCode())

	byCode := luis.JoinEventByCode(ctx, private.Data.InviteCode)
	require.True(t, byCode.Success, "join by code: %v", byCode.Err())
	assert.True(t, luis.Event(ctx, private.Data.ID).Success)

	// Capacity of two is reached
	assert.Equal(t, http.StatusConflict, marta.JoinEventByCode(ctx, private.Data.InviteCode).StatusCode())
	check := marta.ValidateInviteCode(ctx, private.Data.InviteCode)
	require.True(t, check.Success)
	assert.True(t, check.Data.Valid)
	require.NotNil(t, check.Data.CanJoin)
	assert.False(t, *check.Data.CanJoin)

	assert.Equal(t, http.StatusNotFound, marta.JoinEventByCode(ctx, "ZZZZZZZZ").StatusCode())

	assert.Equal(t, http.StatusBadRequest, ana.LeaveEvent(ctx, public.Data.ID).StatusCode())
	require.True(t, luis.LeaveEvent(ctx, public.Data.ID).Success)
	assert.Equal(t, http.StatusBadRequest, luis.LeaveEvent(ctx, public.Data.ID).StatusCode())

	assert.Equal(t, http.StatusForbidden, luis.DeleteEvent(ctx, public.Data.ID).StatusCode())
	require.True(t, ana.DeleteEvent(ctx, public.Data.ID).Success)
	assert.Equal(t, http.StatusNotFound, ana.Event(ctx, public.Data.ID).StatusCode())
}

func TestCreateEventRequiresSession(t *testing.T) {
	srv := newTestServer(t)

	env := srv.client().CreateEvent(context.Background(), newEvent("Sin sesión", false))
	assert.True(t, env.IsUnauthorized())
}

func TestCreateEventValidation(t *testing.T) {
	srv := newTestServer(t)
	ana, _ := srv.signUp(t, "ana")

	req := newEvent("", false)
	req.Date = "mañana"
	env := ana.CreateEvent(context.Background(), req)
	require.False(t, env.Success)
	assert.Equal(t, http.StatusBadRequest, env.StatusCode())
	assert.Equal(t, contracts.ErrorKindValidation, env.Error.Kind)
	assert.Contains(t, env.Error.Details, "name")
	assert.Contains(t, env.Error.Details, "date")
}

func TestImagesLikesAndComments(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	ana, _ := srv.signUp(t, "ana")
	luis, _ := srv.signUp(t, "luis")
	marta, _ := srv.signUp(t, "marta")
	anonymous := srv.client()

	event := ana.CreateEvent(ctx, newEvent("Boda de Ana", false))
	require.True(t, event.Success)
	eventID := event.Data.ID

	// Only members upload
	notMember := luis.UploadImage(ctx, contracts.UploadImageRequest{EventID: eventID, Image: testPNG(t)})
	assert.Equal(t, http.StatusForbidden, notMember.StatusCode())

	require.True(t, luis.JoinEvent(ctx, eventID).Success)
	uploaded := luis.UploadImage(ctx, contracts.UploadImageRequest{EventID: eventID, Title: "Primer baile", Image: testPNG(t)})
	require.True(t, uploaded.Success, "upload: %v", uploaded.Err())
	img := uploaded.Data.Image
	require.NotNil(t, img.Width)
	assert.Equal(t, 40, *img.Width)
	assert.Equal(t, 30, *img.Height)
	assert.Contains(t, img.ImageURL, "http://uploads.test/events/"+eventID+"/images/")

	missingFile := luis.UploadImage(ctx, contracts.UploadImageRequest{EventID: eventID})
	assert.Equal(t, http.StatusBadRequest, missingFile.StatusCode())

	// Likes are idempotent
	liked := marta.LikeImage(ctx, img.ID)
	require.True(t, liked.Success, "like: %v", liked.Err())
	assert.Equal(t, contracts.LikeImageResponse{Liked: true, LikeCount: 1}, *liked.Data)
	assert.Equal(t, 1, marta.LikeImage(ctx, img.ID).Data.LikeCount)
	assert.Equal(t, 2, ana.LikeImage(ctx, img.ID).Data.LikeCount)
	assert.True(t, anonymous.LikeImage(ctx, img.ID).IsUnauthorized())

	unliked := ana.UnlikeImage(ctx, img.ID)
	require.True(t, unliked.Success)
	assert.Equal(t, contracts.LikeImageResponse{Liked: false, LikeCount: 1}, *unliked.Data)

	first := marta.CreateComment(ctx, contracts.CreateCommentRequest{ImageID: img.ID, Content: "¡Preciosa!"})
	require.True(t, first.Success, "comment: %v", first.Err())
	second := ana.CreateComment(ctx, contracts.CreateCommentRequest{ImageID: img.ID, Content: "Gracias"})
	require.True(t, second.Success)

	blank := ana.CreateComment(ctx, contracts.CreateCommentRequest{ImageID: img.ID, Content: "   "})
	assert.Equal(t, http.StatusBadRequest, blank.StatusCode())

	listed := anonymous.ImageComments(ctx, img.ID, 0, 0)
	require.True(t, listed.Success)
	require.Len(t, listed.Data.Data, 2)
	assert.Equal(t, first.Data.Comment.ID, listed.Data.Data[0].ID)
	assert.Equal(t, "marta", listed.Data.Data[0].User.Username)

	detail := marta.Image(ctx, img.ID)
	require.True(t, detail.Success)
	assert.True(t, detail.Data.IsLikedByCurrentUser)
	assert.Equal(t, 1, detail.Data.LikeCount)
	assert.Equal(t, 2, detail.Data.CommentCount)
	assert.Len(t, detail.Data.Comments, 2)
	assert.False(t, anonymous.Image(ctx, img.ID).Data.IsLikedByCurrentUser)

	// Comment authors edit; authors and the event creator delete
	content := "¡Preciosa foto!"
	edited := marta.UpdateComment(ctx, first.Data.Comment.ID, contracts.UpdateCommentRequest{Content: content})
	require.True(t, edited.Success)
	assert.Equal(t, content, edited.Data.Content)
	assert.Equal(t, http.StatusForbidden, luis.UpdateComment(ctx, first.Data.Comment.ID, contracts.UpdateCommentRequest{Content: "x"}).StatusCode())
	assert.Equal(t, http.StatusForbidden, luis.DeleteComment(ctx, first.Data.Comment.ID).StatusCode())
	require.True(t, ana.DeleteComment(ctx, first.Data.Comment.ID).Success)

	title := "Baile"
	assert.Equal(t, http.StatusForbidden, marta.UpdateImage(ctx, img.ID, contracts.UpdateImageRequest{Title: &title}).StatusCode())
	retitled := luis.UpdateImage(ctx, img.ID, contracts.UpdateImageRequest{Title: &title})
	require.True(t, retitled.Success)
	assert.Equal(t, title, *retitled.Data.Title)

	gallery := anonymous.EventImages(ctx, eventID, contracts.ImageFilters{})
	require.True(t, gallery.Success)
	require.Len(t, gallery.Data.Data, 1)
	assert.Equal(t, 1, gallery.Data.Data[0].LikeCount)
	assert.Equal(t, 1, gallery.Data.Data[0].CommentCount)

	stats := anonymous.GalleryStats(ctx)
	require.True(t, stats.Success)
	assert.Equal(t, contracts.GalleryStats{TotalEvents: 1, TotalImages: 1, TotalUsers: 3, TotalLikes: 1, TotalComments: 1}, *stats.Data)

	// The event creator may remove any image of the event
	assert.Equal(t, http.StatusForbidden, marta.DeleteImage(ctx, img.ID).StatusCode())
	require.True(t, ana.DeleteImage(ctx, img.ID).Success)
	assert.Equal(t, http.StatusNotFound, anonymous.Image(ctx, img.ID).StatusCode())
}

func TestPrivateImagesStayHidden(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	ana, _ := srv.signUp(t, "ana")
	luis, _ := srv.signUp(t, "luis")
	anonymous := srv.client()

	event := ana.CreateEvent(ctx, newEvent("Cena privada", true))
	require.True(t, event.Success)
	uploaded := ana.UploadImage(ctx, contracts.UploadImageRequest{EventID: event.Data.ID, Image: testPNG(t)})
	require.True(t, uploaded.Success, "upload: %v", uploaded.Err())
	imageID := uploaded.Data.Image.ID

	for name, c := range map[string]*gateway.Client{"anonymous": anonymous, "outsider": luis} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusNotFound, c.Image(ctx, imageID).StatusCode())
			assert.Equal(t, http.StatusNotFound, c.EventImages(ctx, event.Data.ID, contracts.ImageFilters{}).StatusCode())
			assert.Equal(t, http.StatusNotFound, c.ImageComments(ctx, imageID, 0, 0).StatusCode())

			all := c.Images(ctx, contracts.ImageFilters{})
			require.True(t, all.Success)
			assert.Empty(t, all.Data.Data)
		})
	}

	assert.Equal(t, http.StatusNotFound, luis.LikeImage(ctx, imageID).StatusCode())
	assert.Equal(t, http.StatusNotFound, luis.CreateComment(ctx, contracts.CreateCommentRequest{ImageID: imageID, Content: "hola"}).StatusCode())

	mine := ana.Images(ctx, contracts.ImageFilters{})
	require.True(t, mine.Success)
	assert.Len(t, mine.Data.Data, 1)
}

func TestSearch(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	ana, _ := srv.signUp(t, "ana")
	luis, _ := srv.signUp(t, "luis")

	require.True(t, ana.CreateEvent(ctx, newEvent("Boda en la playa", false)).Success)
	require.True(t, ana.CreateEvent(ctx, newEvent("Boda secreta", true)).Success)

	results := luis.Search(ctx, "boda", contracts.SearchAll)
	require.True(t, results.Success, "search: %v", results.Err())
	require.Len(t, results.Data.Events, 1)
	assert.Equal(t, "Boda en la playa", results.Data.Events[0].Name)
	assert.Equal(t, 1, results.Data.Total)

	owner := ana.Search(ctx, "boda", contracts.SearchEvents)
	require.True(t, owner.Success)
	assert.Len(t, owner.Data.Events, 2)

	users := luis.Search(ctx, "an", contracts.SearchUsers)
	require.True(t, users.Success)
	require.Len(t, users.Data.Users, 1)
	assert.Equal(t, "ana", users.Data.Users[0].Username)
	assert.Empty(t, users.Data.Events)

	assert.Equal(t, http.StatusBadRequest, luis.Search(ctx, "", contracts.SearchAll).StatusCode())
	assert.Equal(t, http.StatusBadRequest, luis.Search(ctx, "boda", contracts.SearchType("venues")).StatusCode())
}

func TestGalleryStatsFollowRegistrations(t *testing.T) {
	mr := miniredis.RunT(t)
	srv := newTestServer(t, func(cfg *config.Config) {
		cfg.Redis = config.RedisConfig{Enabled: true, Addr: mr.Addr(), CacheTTL: time.Hour}
	})
	ctx := context.Background()

	alice, _ := srv.signUp(t, "alice")
	stats := alice.GalleryStats(ctx)
	require.True(t, stats.Success)
	assert.EqualValues(t, 1, stats.Data.TotalUsers)

	srv.signUp(t, "bobby")
	stats = alice.GalleryStats(ctx)
	require.True(t, stats.Success)
	assert.EqualValues(t, 2, stats.Data.TotalUsers)
}
