package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"eventgallery/internal/contracts"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *DiskStore {
	t.Helper()
	s, err := NewDiskStore(t.TempDir(), "http://localhost:8080/uploads/")
	require.NoError(t, err)
	return s
}

func TestKeys(t *testing.T) {
	eventID := uuid.New()
	imageID := uuid.New()

	png := &contracts.File{Name: "Photo.PNG", ContentType: "image/png"}
	assert.Equal(t, "events/"+eventID.String()+"/images/"+imageID.String()+".png", ImageKey(eventID, imageID, png))

	cover := CoverKey(eventID, &contracts.File{Name: "cover", ContentType: "image/jpeg"})
	assert.True(t, strings.HasPrefix(cover, EventPrefix(eventID)+"covers/"))
	assert.NotEqual(t, "", filepath.Ext(cover))

	assert.Equal(t, "events/"+eventID.String()+"/", EventPrefix(eventID))
}

func TestDiskStorePutAndDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	url, err := s.Put(ctx, "events/a/images/b.png", &contracts.File{Name: "b.png", Data: []byte("png")})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/events/a/images/b.png", url)

	data, err := os.ReadFile(filepath.Join(s.Root(), "events", "a", "images", "b.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)

	require.NoError(t, s.Delete(ctx, "events/a/images/b.png"))
	_, err = os.Stat(filepath.Join(s.Root(), "events", "a", "images", "b.png"))
	assert.True(t, os.IsNotExist(err))

	// Deleting a missing file is not an error
	assert.NoError(t, s.Delete(ctx, "events/a/images/b.png"))
}

func TestDiskStoreDeletePrefix(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	f := &contracts.File{Name: "x.png", Data: []byte("x")}

	_, err := s.Put(ctx, "events/one/images/1.png", f)
	require.NoError(t, err)
	_, err = s.Put(ctx, "events/one/covers/2.png", f)
	require.NoError(t, err)
	_, err = s.Put(ctx, "events/two/images/3.png", f)
	require.NoError(t, err)

	require.NoError(t, s.DeletePrefix(ctx, "events/one/"))

	_, err = os.Stat(filepath.Join(s.Root(), "events", "one"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(s.Root(), "events", "two", "images", "3.png"))
	assert.NoError(t, err)
}

func TestDiskStoreRejectsEscapingKeys(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	f := &contracts.File{Name: "x.png", Data: []byte("x")}

	for _, key := range []string{"", "/", "../outside.png", "events/../../outside.png", "events//a.png"} {
		_, err := s.Put(ctx, key, f)
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
	assert.ErrorIs(t, s.DeletePrefix(ctx, "../"), ErrInvalidKey)
}

func TestURLEscapesSegments(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, "http://localhost:8080/uploads/events/a%20b/c%3F.png", s.URL("events/a b/c?.png"))
}

func TestNewDiskStoreRequiresRoot(t *testing.T) {
	_, err := NewDiskStore("", "http://x")
	assert.Error(t, err)
}
