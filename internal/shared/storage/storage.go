// Package storage keeps uploaded files (event covers and gallery images)
// under slash-separated keys and serves them from a public base URL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"eventgallery/internal/contracts"

	"github.com/google/uuid"
)

var ErrInvalidKey = errors.New("invalid storage key")

// Store persists uploaded files.
type Store interface {
	// Put writes f under key and returns its public URL.
	Put(ctx context.Context, key string, f *contracts.File) (string, error)
	Delete(ctx context.Context, key string) error
	// DeletePrefix removes every key under prefix.
	DeletePrefix(ctx context.Context, prefix string) error
}

// Key layout, mirroring the bucket folders of the hosted deployment.
func CoverKey(eventID uuid.UUID, f *contracts.File) string {
	return fmt.Sprintf("events/%s/covers/%s%s", eventID, uuid.NewString(), extension(f))
}

func ImageKey(eventID, imageID uuid.UUID, f *contracts.File) string {
	return fmt.Sprintf("events/%s/images/%s%s", eventID, imageID, extension(f))
}

func EventPrefix(eventID uuid.UUID) string {
	return fmt.Sprintf("events/%s/", eventID)
}

func extension(f *contracts.File) string {
	if ext := strings.ToLower(path.Ext(f.Name)); ext != "" {
		return ext
	}
	if exts, err := mime.ExtensionsByType(f.ContentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}

// DiskStore keeps files below a root directory.
type DiskStore struct {
	mu        sync.Mutex
	root      string
	publicURL string
}

func NewDiskStore(root, publicURL string) (*DiskStore, error) {
	if root == "" {
		return nil, fmt.Errorf("upload path is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &DiskStore{
		root:      root,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}, nil
}

func (s *DiskStore) Root() string { return s.root }

func (s *DiskStore) Put(ctx context.Context, key string, f *contracts.File) (string, error) {
	p, err := s.keyToPath(key)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(p, f.Data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return s.URL(key), nil
}

func (s *DiskStore) Delete(ctx context.Context, key string) error {
	p, err := s.keyToPath(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete upload: %w", err)
	}
	return nil
}

func (s *DiskStore) DeletePrefix(ctx context.Context, prefix string) error {
	p, err := s.keyToPath(strings.TrimSuffix(prefix, "/"))
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.RemoveAll(p); err != nil {
		return fmt.Errorf("delete uploads: %w", err)
	}
	return nil
}

// URL returns the public address of key.
func (s *DiskStore) URL(key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.publicURL + "/" + strings.Join(segments, "/")
}

// keyToPath rejects keys that would escape the root.
func (s *DiskStore) keyToPath(key string) (string, error) {
	clean := path.Clean("/" + key)
	if key == "" || clean == "/" || clean != "/"+strings.TrimPrefix(key, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}
