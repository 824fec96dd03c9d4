package model

import "time"

// ProcessedImage is the cache record mapping a source image URL to the
// public URL of its transcoded copy. At most one record exists per
// original URL; records are created after a successful upload and never
// mutated afterwards.
type ProcessedImage struct {
	OriginalURL   string    `json:"originalUrl"`
	ProcessedURL  string    `json:"processedUrl"`
	ObjectKey     string    `json:"objectKey"`
	Type          string    `json:"type"`
	OriginalSize  int64     `json:"originalSize"`
	ProcessedSize int64     `json:"processedSize"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CacheStats aggregates the processed-image cache.
type CacheStats struct {
	Count          int   `json:"count"`
	OriginalBytes  int64 `json:"originalBytes"`
	ProcessedBytes int64 `json:"processedBytes"`
}
