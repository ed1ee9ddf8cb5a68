package request

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventgallery/internal/contracts"
	"eventgallery/internal/shared/constants"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func TestParseID(t *testing.T) {
	id := uuid.New()
	c, _ := newContext(httptest.NewRequest(http.MethodGet, "/", nil))
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	got, ok := ParseID(c, "id", constants.MsgEventNotFound)
	assert.True(t, ok)
	assert.Equal(t, id, got)

	c, w := newContext(httptest.NewRequest(http.MethodGet, "/", nil))
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	_, ok = ParseID(c, "id", constants.MsgEventNotFound)
	assert.False(t, ok)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResolvePage(t *testing.T) {
	fields := []string{"date", "name"}

	tests := []struct {
		name string
		raw  contracts.PaginationParams
		want Page
	}{
		{"defaults", contracts.PaginationParams{}, Page{Page: 1, Limit: constants.DefaultLimit, SortBy: "date", Desc: true}},
		{"explicit", contracts.PaginationParams{Page: 3, Limit: 5, SortBy: "name", SortOrder: contracts.SortAsc}, Page{Page: 3, Limit: 5, SortBy: "name"}},
		{"unknown sort falls back", contracts.PaginationParams{SortBy: "password"}, Page{Page: 1, Limit: constants.DefaultLimit, SortBy: "date", Desc: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(httptest.NewRequest(http.MethodGet, "/", nil))
			got, ok := ResolvePage(c, tt.raw, fields, "date")
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	p := Page{Page: 3, Limit: 5}
	assert.Equal(t, 10, p.Offset())
}

func TestResolvePageRejectsBadValues(t *testing.T) {
	for _, raw := range []contracts.PaginationParams{{Page: -1}, {Limit: -2}, {Limit: constants.MaxLimit + 1}} {
		c, w := newContext(httptest.NewRequest(http.MethodGet, "/", nil))
		_, ok := ResolvePage(c, raw, nil, "date")
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), contracts.ErrorKindValidation)
	}
}

func multipartRequest(t *testing.T, fields map[string]string, file []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		part, err := mw.CreateFormFile("image", "photo.png")
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestFormHelpers(t *testing.T) {
	pngHeader := []byte("\x89PNG\r\n\x1a\n0000")
	c, _ := newContext(multipartRequest(t, map[string]string{
		"title":     "Fiesta",
		"isPrivate": "true",
		"max":       "25",
		"bad":       "many",
	}, pngHeader))

	assert.True(t, IsMultipart(c))

	f, err := FormFile(c, "image")
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, "photo.png", f.Name)
	assert.Equal(t, "image/png", f.ContentType)
	assert.Equal(t, pngHeader, f.Data)

	missing, err := FormFile(c, "coverImage")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	require.NotNil(t, FormString(c, "title"))
	assert.Equal(t, "Fiesta", *FormString(c, "title"))
	assert.Nil(t, FormString(c, "description"))

	private, err := FormBool(c, "isPrivate")
	require.NoError(t, err)
	assert.True(t, *private)

	n, err := FormInt(c, "max")
	require.NoError(t, err)
	assert.Equal(t, 25, *n)

	_, err = FormInt(c, "bad")
	assert.Error(t, err)

	absent, err := FormBool(c, "nothing")
	assert.NoError(t, err)
	assert.Nil(t, absent)
}

func TestBindJSON(t *testing.T) {
	c, w := newContext(httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("{")))
	c.Request.Header.Set("Content-Type", "application/json")

	var dst contracts.UpdateCommentRequest
	assert.False(t, BindJSON(c, &dst))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, _ = newContext(httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"content":"hola"}`)))
	c.Request.Header.Set("Content-Type", "application/json")
	assert.True(t, BindJSON(c, &dst))
	assert.Equal(t, "hola", dst.Content)
}
