package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventgallery/internal/contracts"
	"eventgallery/internal/shared/config"
	"eventgallery/internal/shared/constants"
	"eventgallery/pkg/cache"
	"eventgallery/pkg/logger"
)

func sampleUser() contracts.User {
	name := "Ana Pérez"
	return contracts.User{ID: "0b7c1b9e-4a57-4d43-9a53-0d0f3c7a1e11", Email: "ana@example.com", Username: "ana", FullName: &name}
}

func storages(t *testing.T) map[string]Storage {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return map[string]Storage{
		"memory": NewMemoryStorage(),
		"file":   NewFileStorage(filepath.Join(t.TempDir(), "nested", "session.json")),
		"redis":  NewRedisStorage(cache.NewService(client, logger.Discard()), "test", 0),
	}
}

func TestTokenRoundTrip(t *testing.T) {
	for name, storage := range storages(t) {
		t.Run(name, func(t *testing.T) {
			store := NewStore(storage, logger.Discard())

			require.NoError(t, store.SetToken("abc"))
			assert.Equal(t, "abc", store.Token())

			require.NoError(t, store.SetUser(sampleUser()))
			require.NotNil(t, store.User())
			assert.Equal(t, sampleUser(), *store.User())

			require.NoError(t, store.ClearSession())
			assert.Empty(t, store.Token())
			assert.Nil(t, store.User())

			// clearing twice is harmless
			require.NoError(t, store.ClearSession())
		})
	}
}

func TestLoadRequiresBothKeys(t *testing.T) {
	store := NewStore(NewMemoryStorage(), logger.Discard())

	_, ok := store.Load()
	assert.False(t, ok)

	require.NoError(t, store.SetToken("abc"))
	_, ok = store.Load()
	assert.False(t, ok, "token without user is not a session")

	require.NoError(t, store.SetUser(sampleUser()))
	sess, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "abc", sess.Token)
	assert.Equal(t, "ana", sess.User.Username)
}

func TestCorruptUserIsAbsence(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Set(constants.STORAGE_KEY_USER, "{not json"))

	store := NewStore(storage, logger.Discard())
	assert.Nil(t, store.User())
}

func TestNilStorageIsNoop(t *testing.T) {
	store := NewStore(nil, logger.Discard())

	require.NoError(t, store.SetToken("abc"))
	require.NoError(t, store.SetUser(sampleUser()))
	assert.Empty(t, store.Token())
	assert.Nil(t, store.User())
	assert.NoError(t, store.ClearSession())
}

type failingStorage struct{ NoopStorage }

func (failingStorage) Get(string) (string, error) { return "", errors.New("disk on fire") }
func (failingStorage) Remove(string) error        { return errors.New("disk on fire") }

func TestStorageErrorsAreSoftOnRead(t *testing.T) {
	store := NewStore(failingStorage{}, logger.Discard())

	assert.Empty(t, store.Token())
	assert.Nil(t, store.User())
	assert.Error(t, store.ClearSession())
}

func TestFileStorageLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	storage := NewFileStorage(path)

	require.NoError(t, storage.Set(constants.STORAGE_KEY_TOKEN, "abc"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// a second instance sees the same data
	value, err := NewFileStorage(path).Get(constants.STORAGE_KEY_TOKEN)
	require.NoError(t, err)
	assert.Equal(t, "abc", value)

	require.NoError(t, storage.Remove(constants.STORAGE_KEY_TOKEN))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "empty session removes the file")

	_, err = storage.Get(constants.STORAGE_KEY_TOKEN)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestFileStorageCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	store := NewStore(NewFileStorage(path), logger.Discard())
	assert.Empty(t, store.Token())

	// the next write replaces the garbage
	require.NoError(t, store.SetToken("abc"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
	assert.Equal(t, "abc", NewStore(NewFileStorage(path), logger.Discard()).Token())

	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))
	require.NoError(t, store.ClearSession())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "clearing a corrupt session removes the file")
}

func TestRedisStorageKeys(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	storage := NewRedisStorage(cache.NewService(client, logger.Discard()), "work", 0)
	require.NoError(t, storage.Set(constants.STORAGE_KEY_TOKEN, "abc"))

	value, err := mr.Get("gallery:session:client:work:auth_token")
	require.NoError(t, err)
	assert.Equal(t, "abc", value)

	_, err = storage.Get(constants.STORAGE_KEY_USER)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestNewStorage(t *testing.T) {
	cfg := config.ClientConfig{SessionFile: filepath.Join(t.TempDir(), "s.json")}

	for kind, want := range map[string]any{
		KindFile:   &FileStorage{},
		KindMemory: &MemoryStorage{},
		KindNone:   NoopStorage{},
	} {
		cfg.SessionStore = kind
		storage, err := NewStorage(cfg, nil)
		require.NoError(t, err, kind)
		assert.IsType(t, want, storage, kind)
	}

	cfg.SessionStore = KindRedis
	_, err := NewStorage(cfg, nil)
	assert.Error(t, err)

	cfg.SessionStore = "cookie"
	_, err = NewStorage(cfg, nil)
	assert.Error(t, err)
}
