package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DiskStore writes images under a media directory on the local
// filesystem. The default backend.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating media directory: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Save(ctx context.Context, filename string, contents io.Reader) (string, error) {
	// Prefix with a fresh UUID so uploads with the same name never clash.
	stored := fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(filename))
	fullPath := filepath.Join(s.dir, stored)

	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("creating image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, contents); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("writing image file: %w", err)
	}

	return filepath.Join("post_images", stored), nil
}
