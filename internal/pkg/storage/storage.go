package storage

import (
	"context"
	"io"
)

// Storage is the interface for blob storage used by the photo module.
type Storage interface {
	// Save writes content under the given relative path.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the blob at the given relative path.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the blob at the given relative path.
	// Deleting a missing blob is not an error.
	Delete(ctx context.Context, path string) error
}
