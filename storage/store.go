package storage

import (
	"context"
	"io"
)

// Store persists uploaded post images and hands back the path the post
// record keeps. Where the bytes actually live (local disk, S3) is the
// backend's business.
type Store interface {
	// Save writes the file contents and returns the stored path.
	Save(ctx context.Context, filename string, contents io.Reader) (string, error)
}
