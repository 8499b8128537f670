// Package upload copies export bundles to and from object storage.
package upload

//go:generate mockgen -source=filesystem.go -destination=../mock/upload_mock.go -package=mock

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ObjectURLScheme prefixes bundle locations in a bucket: s3://bucket/key.
const ObjectURLScheme = "s3://"

var (
	// ErrInvalidObjectURL is returned for s3:// locations without a bucket
	// or key.
	ErrInvalidObjectURL = errors.New("invalid object url")

	// ErrObjectNotFound is returned when the requested key does not exist.
	ErrObjectNotFound = errors.New("object not found")

	// ErrBucketRequired is returned when an S3 filesystem is built without a
	// bucket.
	ErrBucketRequired = errors.New("bucket is required")
)

// Filesystem stores bundles under flat keys.
type Filesystem interface {
	// Write streams r to key. size may be zero when unknown.
	Write(ctx context.Context, key string, r io.Reader, size int64) error

	// Open returns the content stored under key.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// URL renders the location of key for humans and for a later Open.
	URL(key string) string
}

// SourceOpener opens a bundle by location: a local path or an object URL.
type SourceOpener interface {
	Open(ctx context.Context, source string) (io.ReadCloser, error)
}

// IsObjectURL reports whether source points into a bucket.
func IsObjectURL(source string) bool {
	return strings.HasPrefix(source, ObjectURLScheme)
}

// ParseObjectURL splits s3://bucket/some/key into its bucket and key.
func ParseObjectURL(source string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(source, ObjectURLScheme)
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidObjectURL, source)
	}

	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidObjectURL, source)
	}

	return bucket, key, nil
}

// UploadFile copies the local file at path into fs, keyed by its base name,
// and returns the resulting URL.
func UploadFile(ctx context.Context, fs Filesystem, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("error opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("error reading %s: %w", path, err)
	}

	key := filepath.Base(path)
	if err = fs.Write(ctx, key, f, info.Size()); err != nil {
		return "", fmt.Errorf("error uploading %s: %w", path, err)
	}

	return fs.URL(key), nil
}
