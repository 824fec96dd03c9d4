package database

import (
	"errors"

	"github.com/trenddash/image-pipeline/internal/model"
)

// ErrNotFound is returned when no record matches a lookup.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert violates the uniqueness of
// original_url. Callers should treat it as "someone else already cached
// this URL" and re-read the record.
var ErrDuplicate = errors.New("record already exists")

// Database defines the persistence interface for the processed-image cache.
//
// Lookups match the literal original URL string exactly; no normalization
// of query parameters or trailing slashes is performed.
type Database interface {
	// GetProcessedImage returns the cache record for originalURL,
	// or ErrNotFound.
	GetProcessedImage(originalURL string) (*model.ProcessedImage, error)

	// CreateProcessedImage inserts a new cache record. Returns
	// ErrDuplicate if a record for the same original URL already exists.
	CreateProcessedImage(rec *model.ProcessedImage) error

	// ListProcessedImages returns a page of records, newest first,
	// optionally filtered by image type (empty = all), plus the total count.
	ListProcessedImages(imageType string, page, perPage int) ([]*model.ProcessedImage, int, error)

	// Stats aggregates record count and byte totals across the cache.
	Stats() (*model.CacheStats, error)

	Close() error
}
