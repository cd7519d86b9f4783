package blobstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore stores objects on the local filesystem and serves them under a
// base URL (the HTTP layer mounts the directory as static files).
type DiskStore struct {
	root    string
	baseURL string
}

// NewDiskStore creates a store rooted at dir, served under baseURL.
func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return &DiskStore{root: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Root returns the storage directory (for static file mounting).
func (s *DiskStore) Root() string { return s.root }

func (s *DiskStore) Upload(ctx context.Context, path string, data []byte) (Ref, error) {
	clean := filepath.Clean("/" + path) // confine to root
	full := filepath.Join(s.root, clean)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create blob subdir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write blob %s: %w", clean, err)
	}
	return Ref(strings.TrimPrefix(clean, "/")), nil
}

func (s *DiskStore) URL(ref Ref) string {
	return s.baseURL + "/" + string(ref)
}

var _ Store = (*DiskStore)(nil)
