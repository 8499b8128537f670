package upload

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FilesystemLocal keeps bundles in a directory, for example a volume shared
// with the PostgreSQL host.
type FilesystemLocal struct {
	basePath string
}

// NewFilesystemLocal creates a local filesystem rooted at basePath.
func NewFilesystemLocal(basePath string) *FilesystemLocal {
	return &FilesystemLocal{
		basePath: basePath,
	}
}

// Write streams r to a file at key relative to the base path.
func (l *FilesystemLocal) Write(_ context.Context, key string, r io.Reader, _ int64) error {
	fullPath := filepath.Join(l.basePath, filepath.Clean("/"+key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return err
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err = io.Copy(file, r); err != nil {
		return err
	}
	return file.Close()
}

// Open opens the file at key.
func (l *FilesystemLocal) Open(_ context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(l.basePath, filepath.Clean("/"+key)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Join(ErrObjectNotFound, err)
	}
	return f, err
}

// URL returns the file path of key.
func (l *FilesystemLocal) URL(key string) string {
	return filepath.Join(l.basePath, filepath.Clean("/"+key))
}
