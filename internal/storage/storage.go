package storage

import (
	"context"
	"io"
)

// ObjectStore defines the interface for the durable object bucket holding
// transcoded images.
type ObjectStore interface {
	// Put writes an object under key with an overwrite-on-conflict policy:
	// retrying the same upload produces the same final object.
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Open returns a reader for the stored object plus its content type.
	Open(key string) (io.ReadCloser, string, error)

	// Exists checks whether an object is present under key.
	Exists(key string) (bool, error)

	// PublicURL resolves the publicly addressable URL for key.
	PublicURL(key string) string
}
