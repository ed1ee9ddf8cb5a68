package gateway

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventgallery/internal/contracts"
	"eventgallery/internal/session"
)

const loginBody = `{"success":true,"data":{"user":{"id":"u1","email":"ana@example.com","username":"ana","fullName":null,"avatarUrl":null,"createdAt":"2024-05-01T10:00:00Z","updatedAt":"2024-05-01T10:00:00Z"},"sessionId":"tok-123"}}`

func TestLoginPersistsSession(t *testing.T) {
	var body contracts.LoginRequest
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		io.WriteString(w, loginBody)
	})

	env := f.client.Login(context.Background(), contracts.LoginRequest{Email: "ana@example.com", Password: "secret123"})

	require.True(t, env.Success)
	assert.Equal(t, "ana@example.com", body.Email)
	assert.Equal(t, "tok-123", f.client.Token())

	sess, ok := f.store.Load()
	require.True(t, ok)
	assert.Equal(t, "tok-123", sess.Token)
	assert.Equal(t, "ana", sess.User.Username)
}

func TestRegisterPersistsSession(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/register", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, loginBody)
	})

	env := f.client.Register(context.Background(), contracts.CreateUserRequest{Email: "ana@example.com", Username: "ana", Password: "secret123"})

	require.True(t, env.Success)
	assert.Equal(t, "tok-123", f.store.Token())
}

func TestFailedLoginPersistsNothing(t *testing.T) {
	f := newFixture(t, reply(http.StatusUnauthorized,
		`{"success":false,"error":{"error":"InvalidCredentials","message":"Email o contraseña incorrectos","statusCode":401}}`))

	env := f.client.Login(context.Background(), contracts.LoginRequest{Email: "bad@x.com", Password: "wrong"})

	require.False(t, env.Success)
	assert.Equal(t, contracts.ErrorKindInvalidCreds, env.Error.Kind)
	assert.Empty(t, f.store.Token())
	assert.Nil(t, f.store.User())
}

func TestLogoutClearsWhateverTheServerSays(t *testing.T) {
	var calls atomic.Int32
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusInternalServerError)
	})
	require.NoError(t, f.store.Save(session.Session{Token: "tok", User: contracts.User{ID: "u1"}}))
	f.client.SetToken("tok")

	env := f.client.Logout(context.Background())

	assert.False(t, env.Success)
	assert.Empty(t, f.client.Token())
	assert.Empty(t, f.store.Token())
	assert.Nil(t, f.store.User())

	// nothing left to revoke
	env = f.client.Logout(context.Background())
	assert.True(t, env.Success)
	assert.Equal(t, int32(1), calls.Load())
}

type captured struct {
	contentType string
	json        map[string]any
	form        url.Values
	files       map[string][]byte
}

func capture(t *testing.T, into *captured, respond string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		into.contentType = r.Header.Get("Content-Type")
		mediaType, _, err := mime.ParseMediaType(into.contentType)
		if !assert.NoError(t, err) {
			return
		}

		if mediaType == "multipart/form-data" {
			if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
				return
			}
			into.form = url.Values(r.MultipartForm.Value)
			into.files = map[string][]byte{}
			for name, headers := range r.MultipartForm.File {
				fh, err := headers[0].Open()
				if !assert.NoError(t, err) {
					return
				}
				data, _ := io.ReadAll(fh)
				fh.Close()
				into.files[name] = data
				assert.Equal(t, "image/png", headers[0].Header.Get("Content-Type"))
			}
		} else {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&into.json))
		}
		io.WriteString(w, respond)
	}
}

func TestCreateEventEncodingFollowsPayload(t *testing.T) {
	private := true
	capacity := 50
	req := contracts.CreateEventRequest{
		Name:            "Boda de Ana",
		Date:            "2025-06-01",
		Location:        "Sevilla",
		Category:        contracts.CategoryWedding,
		IsPrivate:       &private,
		MaxParticipants: &capacity,
	}

	t.Run("json without file", func(t *testing.T) {
		var got captured
		f := newFixture(t, capture(t, &got, `{"success":true,"data":{"id":"e1","name":"Boda de Ana"}}`))

		env := f.client.CreateEvent(context.Background(), req)

		require.True(t, env.Success)
		assert.Equal(t, "application/json", got.contentType)
		assert.Equal(t, "Boda de Ana", got.json["name"])
		assert.Equal(t, true, got.json["isPrivate"])
		assert.NotContains(t, got.json, "coverImage")
	})

	t.Run("multipart with file", func(t *testing.T) {
		var got captured
		f := newFixture(t, capture(t, &got, `{"success":true,"data":{"id":"e1"}}`))

		withCover := req
		withCover.CoverImage = &contracts.File{Name: "cover.png", ContentType: "image/png", Data: []byte("\x89PNG....")}
		env := f.client.CreateEvent(context.Background(), withCover)

		require.True(t, env.Success)
		assert.True(t, strings.HasPrefix(got.contentType, "multipart/form-data; boundary="))
		assert.Equal(t, "Boda de Ana", got.form.Get("name"))
		assert.Equal(t, "true", got.form.Get("isPrivate"))
		assert.Equal(t, "50", got.form.Get("maxParticipants"))
		assert.False(t, got.form.Has("description"), "unset fields are not sent")
		assert.Equal(t, []byte("\x89PNG...."), got.files["coverImage"])
	})
}

func TestUpdateEventEncodingFollowsPayload(t *testing.T) {
	name := "Nuevo nombre"

	var plain captured
	f := newFixture(t, capture(t, &plain, `{"success":true,"data":{"id":"e1"}}`))
	f.client.UpdateEvent(context.Background(), "e1", contracts.UpdateEventRequest{Name: &name})
	assert.Equal(t, "application/json", plain.contentType)
	assert.Equal(t, map[string]any{"name": "Nuevo nombre"}, plain.json)

	var multi captured
	f = newFixture(t, capture(t, &multi, `{"success":true,"data":{"id":"e1"}}`))
	f.client.UpdateEvent(context.Background(), "e1", contracts.UpdateEventRequest{
		Name:       &name,
		CoverImage: &contracts.File{Name: "c.png", ContentType: "image/png", Data: []byte("png")},
	})
	assert.Contains(t, multi.contentType, "multipart/form-data")
	assert.Equal(t, "Nuevo nombre", multi.form.Get("name"))
}

func TestUploadImage(t *testing.T) {
	var got captured
	f := newFixture(t, capture(t, &got, `{"success":true,"data":{"image":{"id":"i1","eventId":"e1"},"message":"ok"}}`))

	env := f.client.UploadImage(context.Background(), contracts.UploadImageRequest{
		EventID: "e1",
		Title:   "Primer baile",
		Image:   &contracts.File{Name: "baile.png", ContentType: "image/png", Data: []byte("png-bytes")},
	})

	require.True(t, env.Success)
	assert.Equal(t, "i1", env.Data.Image.ID)
	assert.Equal(t, "e1", got.form.Get("eventId"))
	assert.Equal(t, "Primer baile", got.form.Get("title"))
	assert.Equal(t, []byte("png-bytes"), got.files["image"])
}

func TestQueryAndPathEncoding(t *testing.T) {
	var seen atomic.Value
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		seen.Store(r.URL.RequestURI())
		io.WriteString(w, `{"success":true,"data":{"data":[],"pagination":{"currentPage":1}}}`)
	})
	ctx := context.Background()

	private := false
	f.client.Events(ctx, contracts.EventFilters{
		PaginationParams: contracts.PaginationParams{Page: 2, Limit: 10},
		Category:         contracts.CategoryMusic,
		IsPrivate:        &private,
	})
	assert.Equal(t, "/api/events?category=music&isPrivate=false&limit=10&page=2", seen.Load())

	f.client.Events(ctx, contracts.EventFilters{})
	assert.Equal(t, "/api/events", seen.Load())

	f.client.ImageComments(ctx, "img 1", 3, 0)
	assert.Equal(t, "/api/images/img%201/comments?page=3", seen.Load())

	f.client.Search(ctx, "boda sevilla", "")
	assert.Equal(t, "/api/search?q=boda+sevilla&type=all", seen.Load())
}

func TestTypedRoutes(t *testing.T) {
	type route struct{ method, path string }
	var last atomic.Value
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		last.Store(route{r.Method, r.URL.Path})
		io.WriteString(w, `{"success":true}`)
	})
	ctx := context.Background()

	cases := []struct {
		call func()
		want route
	}{
		{func() { f.client.CurrentUser(ctx) }, route{"GET", "/api/auth/me"}},
		{func() { f.client.Event(ctx, "e1") }, route{"GET", "/api/events/e1"}},
		{func() { f.client.DeleteEvent(ctx, "e1") }, route{"DELETE", "/api/events/e1"}},
		{func() { f.client.JoinEvent(ctx, "e1") }, route{"POST", "/api/events/e1/join"}},
		{func() { f.client.JoinEventByCode(ctx, "ABCD2345") }, route{"POST", "/api/events/join-by-code"}},
		{func() { f.client.ValidateInviteCode(ctx, "ABCD2345") }, route{"POST", "/api/events/validate-invite"}},
		{func() { f.client.LeaveEvent(ctx, "e1") }, route{"DELETE", "/api/events/e1/leave"}},
		{func() { f.client.EventImages(ctx, "e1", contracts.ImageFilters{}) }, route{"GET", "/api/events/e1/images"}},
		{func() { f.client.EventParticipants(ctx, "e1") }, route{"GET", "/api/events/e1/participants"}},
		{func() { f.client.Images(ctx, contracts.ImageFilters{}) }, route{"GET", "/api/images"}},
		{func() { f.client.Image(ctx, "i1") }, route{"GET", "/api/images/i1"}},
		{func() { f.client.UpdateImage(ctx, "i1", contracts.UpdateImageRequest{}) }, route{"PATCH", "/api/images/i1"}},
		{func() { f.client.DeleteImage(ctx, "i1") }, route{"DELETE", "/api/images/i1"}},
		{func() { f.client.LikeImage(ctx, "i1") }, route{"POST", "/api/images/i1/like"}},
		{func() { f.client.UnlikeImage(ctx, "i1") }, route{"DELETE", "/api/images/i1/unlike"}},
		{func() { f.client.CreateComment(ctx, contracts.CreateCommentRequest{}) }, route{"POST", "/api/comments"}},
		{func() { f.client.UpdateComment(ctx, "c1", contracts.UpdateCommentRequest{}) }, route{"PATCH", "/api/comments/c1"}},
		{func() { f.client.DeleteComment(ctx, "c1") }, route{"DELETE", "/api/comments/c1"}},
		{func() { f.client.GalleryStats(ctx) }, route{"GET", "/api/gallery/stats"}},
		{func() { f.client.Health(ctx) }, route{"GET", "/api/health"}},
		{func() { f.client.User(ctx, "u1") }, route{"GET", "/api/users/u1"}},
		{func() { f.client.UpdateUser(ctx, "u1", contracts.UpdateUserRequest{}) }, route{"PATCH", "/api/users/u1"}},
	}

	for _, tc := range cases {
		tc.call()
		assert.Equal(t, tc.want, last.Load())
	}
}
