package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/trenddash/image-pipeline/internal/model"
	_ "modernc.org/sqlite"
)

// SQLiteDB implements Database backed by SQLite.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens (or creates) an SQLite database at dsn and runs migrations.
// For in-memory use pass "file::memory:?cache=shared".
func NewSQLiteDB(dsn string) (*SQLiteDB, error) {
	if !strings.Contains(dsn, "?") {
		dsn += "?_journal_mode=WAL&_busy_timeout=5000"
	} else if !strings.Contains(dsn, "_journal_mode") {
		dsn += "&_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

func (s *SQLiteDB) GetProcessedImage(originalURL string) (*model.ProcessedImage, error) {
	row := s.db.QueryRow(`
		SELECT original_url, processed_url, object_key, type, original_size, processed_size, created_at
		FROM processed_images WHERE original_url = ?`,
		originalURL,
	)
	return scanProcessedImage(row)
}

func (s *SQLiteDB) CreateProcessedImage(rec *model.ProcessedImage) error {
	_, err := s.db.Exec(`
		INSERT INTO processed_images (original_url, processed_url, object_key, type, original_size, processed_size, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.OriginalURL, rec.ProcessedURL, rec.ObjectKey, rec.Type,
		rec.OriginalSize, rec.ProcessedSize, rec.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") ||
			strings.Contains(err.Error(), "constraint failed") {
			return fmt.Errorf("%w: %s", ErrDuplicate, rec.OriginalURL)
		}
		return fmt.Errorf("insert processed image: %w", err)
	}
	return nil
}

func (s *SQLiteDB) ListProcessedImages(imageType string, page, perPage int) ([]*model.ProcessedImage, int, error) {
	where := ""
	args := []interface{}{}
	if imageType != "" {
		where = " WHERE type = ?"
		args = append(args, imageType)
	}

	var total int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM processed_images`+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count processed images: %w", err)
	}

	offset := (page - 1) * perPage
	rows, err := s.db.Query(`
		SELECT original_url, processed_url, object_key, type, original_size, processed_size, created_at
		FROM processed_images`+where+`
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`,
		append(args, perPage, offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list processed images: %w", err)
	}
	defer rows.Close()

	var recs []*model.ProcessedImage
	for rows.Next() {
		rec, err := scanProcessedImage(rows)
		if err != nil {
			return nil, 0, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("scan processed images: %w", err)
	}
	return recs, total, nil
}

func (s *SQLiteDB) Stats() (*model.CacheStats, error) {
	var stats model.CacheStats
	err := s.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(original_size), 0), COALESCE(SUM(processed_size), 0)
		FROM processed_images`,
	).Scan(&stats.Count, &stats.OriginalBytes, &stats.ProcessedBytes)
	if err != nil {
		return nil, fmt.Errorf("aggregate stats: %w", err)
	}
	return &stats, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanProcessedImage.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProcessedImage(row scanner) (*model.ProcessedImage, error) {
	var rec model.ProcessedImage
	var createdAt string
	err := row.Scan(&rec.OriginalURL, &rec.ProcessedURL, &rec.ObjectKey, &rec.Type,
		&rec.OriginalSize, &rec.ProcessedSize, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan processed image: %w", err)
	}

	rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	return &rec, nil
}
