package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrNotFound   = errors.New("archive object not found")
	ErrInvalidKey = errors.New("invalid archive key")
)

// ReportArchive stores generated statements under slash-separated keys such
// as "statements/2024-03.json".
type ReportArchive interface {
	// Save writes the object, replacing any previous content
	Save(ctx context.Context, key string, reader io.Reader) error

	// Open returns the object for reading; the caller closes it
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists checks if an object exists and returns its size
	Exists(ctx context.Context, key string) (exists bool, size int64, err error)

	Delete(ctx context.Context, key string) error

	// DownloadURL is the API path that serves the object
	DownloadURL(key string) string
}
