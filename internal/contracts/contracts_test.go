package contracts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeDecodesBackendError(t *testing.T) {
	body := `{"success":false,"error":{"error":"ValidationError","message":"bad","statusCode":400,"details":{"email":["required","invalid"]}}}`

	var env Envelope[User]
	require.NoError(t, json.Unmarshal([]byte(body), &env))

	assert.False(t, env.Success)
	assert.Nil(t, env.Data)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrorKindValidation, env.Error.Kind)
	assert.Equal(t, []string{"required", "invalid"}, env.Error.Details["email"])
	assert.Equal(t, 400, env.StatusCode())
	assert.EqualError(t, env.Err(), "ValidationError: bad")
}

func TestEnvelopeErrWithoutErrorObject(t *testing.T) {
	env := Envelope[User]{Success: false}
	require.Error(t, env.Err())
	assert.Equal(t, 0, env.StatusCode())
	assert.NoError(t, Ok(User{ID: "u1"}).Err())
}

func TestIsUnauthorized(t *testing.T) {
	assert.True(t, Fail[User](&APIError{Kind: ErrorKindUnauthorized, StatusCode: 401}).IsUnauthorized())
	assert.False(t, Fail[User](&APIError{Kind: ErrorKindHTTP, StatusCode: 500}).IsUnauthorized())
	assert.False(t, Ok(User{}).IsUnauthorized())
}

func TestEventWithStatsFlattensFields(t *testing.T) {
	ev := EventWithStats{
		Event:      Event{ID: "e1", Name: "Boda", Category: CategoryWedding, InviteCode: "ABCD1234"},
		EventStats: EventStats{ParticipantCount: 3, ImageCount: 2, TotalLikes: 7},
	}
	raw, err := json.Marshal(ev)
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(raw, &flat))
	assert.Equal(t, "e1", flat["id"])
	assert.Equal(t, "wedding", flat["category"])
	assert.EqualValues(t, 3, flat["participantCount"])
	assert.EqualValues(t, 7, flat["totalLikes"])
}

func TestEventFiltersValuesOmitUnset(t *testing.T) {
	private := false
	f := EventFilters{
		PaginationParams: PaginationParams{Page: 2, Limit: 10, SortOrder: SortAsc},
		Category:         CategoryMusic,
		IsPrivate:        &private,
		Search:           "rock",
	}

	v := f.Values()
	assert.Equal(t, "2", v.Get("page"))
	assert.Equal(t, "10", v.Get("limit"))
	assert.Equal(t, "asc", v.Get("sortOrder"))
	assert.Equal(t, "music", v.Get("category"))
	assert.Equal(t, "false", v.Get("isPrivate"))
	assert.Equal(t, "rock", v.Get("search"))
	assert.NotContains(t, v, "sortBy")
	assert.NotContains(t, v, "createdById")
	assert.Empty(t, EventFilters{}.Values())
}

func TestImageAndCommentFilters(t *testing.T) {
	iv := ImageFilters{EventID: "e1", UserID: "u1"}.Values()
	assert.Equal(t, "e1", iv.Get("eventId"))
	assert.Equal(t, "u1", iv.Get("userId"))
	assert.Len(t, iv, 2)

	cv := CommentFilters{PaginationParams: PaginationParams{Page: 1}, ImageID: "i1"}.Values()
	assert.Equal(t, "1", cv.Get("page"))
	assert.Equal(t, "i1", cv.Get("imageId"))
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 20, 45)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNextPage)
	assert.True(t, p.HasPreviousPage)

	last := NewPagination(3, 20, 45)
	assert.False(t, last.HasNextPage)

	empty := NewPagination(1, 20, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNextPage)
	assert.False(t, empty.HasPreviousPage)
}

func TestSearchTypeIncludes(t *testing.T) {
	assert.True(t, SearchAll.Includes(SearchUsers))
	assert.True(t, SearchType("").Includes(SearchEvents))
	assert.True(t, SearchImages.Includes(SearchImages))
	assert.False(t, SearchImages.Includes(SearchEvents))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cover.png")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\nrest"), 0o600))

	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cover.png", f.Name)
	assert.Equal(t, "image/png", f.ContentType)
	assert.EqualValues(t, 12, f.Size())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.jpg"))
	assert.Error(t, err)
}
