package pipeline

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"runtime"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"github.com/trenddash/image-pipeline/internal/database"
	"github.com/trenddash/image-pipeline/internal/imageproc"
	"github.com/trenddash/image-pipeline/internal/model"
	"github.com/trenddash/image-pipeline/internal/storage"
)

// SourceFetcher downloads the original image bytes from a remote URL.
type SourceFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Result describes one completed (or cache-served) processing request.
type Result struct {
	ProcessedURL  string
	ObjectKey     string
	OriginalSize  int64
	ProcessedSize int64
	Cached        bool
}

// Service coordinates the cache-check/fetch/transcode/upload/record
// sequence. Concurrent calls for distinct URLs run fully in parallel;
// calls for the same URL are collapsed so at most one fetch/transcode/
// upload happens per source URL at a time.
type Service struct {
	db      database.Database
	bucket  storage.ObjectStore
	fetcher SourceFetcher
	logger  *slog.Logger

	flight singleflight.Group
	sem    *semaphore.Weighted
}

// New creates a Service. Transcoding is CPU-bound and internally limited
// to one in-flight transcode per available core.
func New(db database.Database, bucket storage.ObjectStore, fetcher SourceFetcher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		db:      db,
		bucket:  bucket,
		fetcher: fetcher,
		logger:  logger,
		sem:     semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0))),
	}
}

// EnsureProcessed returns the public URL of the transcoded copy of
// sourceURL under the policy for imageType, processing and storing it on
// first sight. Repeated calls for a cached URL perform no network or CPU
// work. The lookup matches the literal URL string exactly.
func (s *Service) EnsureProcessed(ctx context.Context, sourceURL, imageType string) (*Result, error) {
	profile, ok := imageproc.ProfileFor(imageType)
	if !ok {
		return nil, &Error{Kind: KindInvalidType, Err: fmt.Errorf("unknown image type %q", imageType)}
	}
	if sourceURL == "" {
		return nil, &Error{Kind: KindInvalidType, Err: errors.New("empty source URL")}
	}

	if rec, err := s.db.GetProcessedImage(sourceURL); err == nil {
		return resultFromRecord(rec), nil
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, &Error{Kind: KindInternal, Err: err}
	}

	// Collapse concurrent requests for the same URL onto one processing
	// pass; all waiters share its outcome.
	v, err, _ := s.flight.Do(sourceURL, func() (interface{}, error) {
		return s.process(ctx, sourceURL, profile)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

// process runs the miss path. The cache record is written only after a
// successful upload, so a failure never leaves a mapping to a missing
// object.
func (s *Service) process(ctx context.Context, sourceURL string, profile imageproc.Profile) (*Result, error) {
	// A waiter that lost an earlier flight lands here after the winner
	// finished; re-check before doing any work.
	if rec, err := s.db.GetProcessedImage(sourceURL); err == nil {
		return resultFromRecord(rec), nil
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, &Error{Kind: KindInternal, Err: err}
	}

	raw, err := s.fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return nil, &Error{Kind: classifyFetch(err), Err: err}
	}
	originalSize := int64(len(raw))

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, &Error{Kind: classifyCtx(err), Err: err, OriginalSize: originalSize}
	}
	encoded, err := imageproc.Transcode(raw, profile)
	s.sem.Release(1)
	if err != nil {
		kind := KindEncode
		if errors.Is(err, imageproc.ErrDecode) {
			kind = KindDecode
		}
		return nil, &Error{Kind: kind, Err: err, OriginalSize: originalSize}
	}
	processedSize := int64(len(encoded))

	key := objectKey(profile.Type, sourceURL)
	if err := s.bucket.Put(ctx, key, encoded, "image/jpeg"); err != nil {
		kind := KindStore
		if classifyCtx(err) == KindTimeout {
			kind = KindTimeout
		}
		return nil, &Error{Kind: kind, Err: err, OriginalSize: originalSize, ProcessedSize: processedSize}
	}
	processedURL := s.bucket.PublicURL(key)

	rec := &model.ProcessedImage{
		OriginalURL:   sourceURL,
		ProcessedURL:  processedURL,
		ObjectKey:     key,
		Type:          profile.Type,
		OriginalSize:  originalSize,
		ProcessedSize: processedSize,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.db.CreateProcessedImage(rec); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			// A concurrent processor won the insert; its record is the
			// truth and our upload is an orphaned but harmless object.
			winner, rerr := s.db.GetProcessedImage(sourceURL)
			if rerr == nil {
				return resultFromRecord(winner), nil
			}
			err = rerr
		}
		return nil, &Error{Kind: KindInternal, Err: err, OriginalSize: originalSize, ProcessedSize: processedSize}
	}

	s.logger.Info("processed image",
		"url", sourceURL,
		"type", profile.Type,
		"key", key,
		"original_size", originalSize,
		"processed_size", processedSize,
	)

	return &Result{
		ProcessedURL:  processedURL,
		ObjectKey:     key,
		OriginalSize:  originalSize,
		ProcessedSize: processedSize,
	}, nil
}

func resultFromRecord(rec *model.ProcessedImage) *Result {
	return &Result{
		ProcessedURL:  rec.ProcessedURL,
		ObjectKey:     rec.ObjectKey,
		OriginalSize:  rec.OriginalSize,
		ProcessedSize: rec.ProcessedSize,
		Cached:        true,
	}
}

// objectKey builds a unique per-processing-event key:
// {type}/{unixMillis}-{hash}.jpg. The hash is the first 8 base64
// characters of the URL bytes; it keeps keys short, not content-addressed.
func objectKey(imageType, sourceURL string) string {
	hash := base64.RawURLEncoding.EncodeToString([]byte(sourceURL))
	if len(hash) > 8 {
		hash = hash[:8]
	}
	return fmt.Sprintf("%s/%d-%s.jpg", imageType, time.Now().UnixMilli(), hash)
}

// classifyFetch maps a Fetch error to its kind: deadline → timeout,
// refused download → fetch, everything else → network.
func classifyFetch(err error) ErrorKind {
	if k := classifyCtx(err); k == KindTimeout {
		return k
	}
	if errors.Is(err, storage.ErrBadStatus) || errors.Is(err, storage.ErrTooLarge) {
		return KindFetch
	}
	return KindNetwork
}

func classifyCtx(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return KindTimeout
	}
	return KindInternal
}
