package storage

import (
	"context"
	"io"
)

// Storage abstracts where uploaded room photos are kept.
type Storage interface {
	// Save writes content to the given relative path, creating parents as needed.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the file at the given relative path for reading.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the file at the given relative path. Missing files are not an error.
	Delete(ctx context.Context, path string) error
}
