package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trenddash/image-pipeline/internal/model"
)

// newTestDB opens a private named in-memory database so tests do not
// share state.
func newTestDB(t *testing.T) *SQLiteDB {
	t.Helper()
	dsn := fmt.Sprintf("file:test_%s?mode=memory&cache=shared", uuid.New().String()[:8])
	db, err := NewSQLiteDB(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testRecord(originalURL, imageType string) *model.ProcessedImage {
	return &model.ProcessedImage{
		OriginalURL:   originalURL,
		ProcessedURL:  "http://localhost:8080/cdn/" + imageType + "/1700000000000-aHR0cDov.jpg",
		ObjectKey:     imageType + "/1700000000000-aHR0cDov.jpg",
		Type:          imageType,
		OriginalSize:  204800,
		ProcessedSize: 51200,
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
	}
}

func TestCreateAndGetProcessedImage(t *testing.T) {
	db := newTestDB(t)

	rec := testRecord("https://example.com/avatar.png", "profile")
	require.NoError(t, db.CreateProcessedImage(rec))

	got, err := db.GetProcessedImage(rec.OriginalURL)
	require.NoError(t, err)
	assert.Equal(t, rec.OriginalURL, got.OriginalURL)
	assert.Equal(t, rec.ProcessedURL, got.ProcessedURL)
	assert.Equal(t, rec.ObjectKey, got.ObjectKey)
	assert.Equal(t, rec.Type, got.Type)
	assert.Equal(t, rec.OriginalSize, got.OriginalSize)
	assert.Equal(t, rec.ProcessedSize, got.ProcessedSize)
	assert.Equal(t, rec.CreatedAt, got.CreatedAt.UTC().Truncate(time.Second))
}

func TestGetProcessedImage_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetProcessedImage("https://example.com/never-seen.jpg")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetProcessedImage_ExactMatch(t *testing.T) {
	db := newTestDB(t)

	rec := testRecord("https://example.com/pic.jpg", "thumbnail")
	require.NoError(t, db.CreateProcessedImage(rec))

	// Lookup is literal: cosmetic URL differences miss.
	_, err := db.GetProcessedImage("https://example.com/pic.jpg/")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = db.GetProcessedImage("https://example.com/pic.jpg?utm_source=x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateProcessedImage_Duplicate(t *testing.T) {
	db := newTestDB(t)

	rec := testRecord("https://example.com/dup.jpg", "cover")
	require.NoError(t, db.CreateProcessedImage(rec))

	again := testRecord("https://example.com/dup.jpg", "cover")
	again.ProcessedURL = "http://localhost:8080/cdn/cover/other.jpg"
	err := db.CreateProcessedImage(again)
	assert.ErrorIs(t, err, ErrDuplicate)

	// The first record stays the truth.
	got, err := db.GetProcessedImage(rec.OriginalURL)
	require.NoError(t, err)
	assert.Equal(t, rec.ProcessedURL, got.ProcessedURL)
}

func TestListProcessedImages(t *testing.T) {
	db := newTestDB(t)

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 12; i++ {
		imageType := "thumbnail"
		if i%3 == 0 {
			imageType = "profile"
		}
		rec := testRecord(fmt.Sprintf("https://example.com/img-%03d.jpg", i), imageType)
		rec.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, db.CreateProcessedImage(rec))
	}

	// All types, first page.
	recs, total, err := db.ListProcessedImages("", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	assert.Len(t, recs, 10)

	// Newest first.
	assert.Equal(t, "https://example.com/img-011.jpg", recs[0].OriginalURL)

	// Second page (partial).
	recs, total, err = db.ListProcessedImages("", 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	assert.Len(t, recs, 2)

	// Type filter.
	recs, total, err = db.ListProcessedImages("profile", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	for _, rec := range recs {
		assert.Equal(t, "profile", rec.Type)
	}
}

func TestStats(t *testing.T) {
	db := newTestDB(t)

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Count)
	assert.Equal(t, int64(0), stats.OriginalBytes)

	for i := 0; i < 3; i++ {
		rec := testRecord(fmt.Sprintf("https://example.com/s-%d.jpg", i), "profile")
		require.NoError(t, db.CreateProcessedImage(rec))
	}

	stats, err = db.Stats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, int64(3*204800), stats.OriginalBytes)
	assert.Equal(t, int64(3*51200), stats.ProcessedBytes)
}
