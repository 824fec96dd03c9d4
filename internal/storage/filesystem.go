package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Compile-time check that FileBucket implements ObjectStore.
var _ ObjectStore = (*FileBucket)(nil)

// FileBucket implements ObjectStore on the local filesystem. Objects are
// stored at <basePath>/<key> and exposed publicly under <baseURL>/cdn/<key>.
type FileBucket struct {
	basePath string
	baseURL  string
}

// NewFileBucket creates a FileBucket rooted at basePath whose public URLs
// are built from baseURL.
func NewFileBucket(basePath, baseURL string) *FileBucket {
	return &FileBucket{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// objectPath maps a key to its on-disk path, rejecting keys that would
// escape the bucket root.
func (b *FileBucket) objectPath(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid object key: %q", key)
	}
	return filepath.Join(b.basePath, filepath.FromSlash(key)), nil
}

// Put writes data to disk using atomic write (temp file + rename). Renaming
// over an existing object replaces it, so retried uploads are safe.
func (b *FileBucket) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dst, err := b.objectPath(key)
	if err != nil {
		return err
	}

	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "object-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	// Clean up the temp file on any error path.
	defer func() {
		if tmpPath != "" {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", dst, err)
	}

	// Rename succeeded; prevent deferred cleanup from removing the object.
	tmpPath = ""

	return nil
}

// Open opens the stored object and returns a reader plus its content type
// (derived from the key extension).
func (b *FileBucket) Open(key string) (io.ReadCloser, string, error) {
	p, err := b.objectPath(key)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("object not found: %s", key)
		}
		return nil, "", fmt.Errorf("opening object %s: %w", key, err)
	}
	return f, contentTypeForKey(key), nil
}

// Exists checks whether an object file exists under key.
func (b *FileBucket) Exists(key string) (bool, error) {
	p, err := b.objectPath(key)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(p)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("checking object %s: %w", key, err)
}

// PublicURL resolves the public address of an object.
func (b *FileBucket) PublicURL(key string) string {
	return b.baseURL + "/cdn/" + key
}

// contentTypeForKey maps a key extension to its MIME type.
func contentTypeForKey(key string) string {
	switch path.Ext(key) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
