package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/google/renameio/v2"

	"github.com/mapa3/distribucion-app/models"
)

const (
	fileNamePrefix = "sqlite_export_"
	fileNameLayout = "20060102_150405"
	fileNameSuffix = ".json"
	bundleIndent   = "  "
	bundleFileMode = 0o644
)

// FileName returns the bundle file name for an export started at t, using
// t's own location: sqlite_export_YYYYMMDD_HHMMSS.json.
func FileName(t time.Time) string {
	return fileNamePrefix + t.Format(fileNameLayout) + fileNameSuffix
}

// WriteBundle writes bundle to path as indented JSON with non-ASCII and
// HTML characters kept verbatim. The file appears under its final name only
// once it is complete. An existing file is left untouched and
// [ErrOutputExists] is returned.
func WriteBundle(path string, bundle *models.Bundle) (err error) {
	if _, err = os.Lstat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrOutputExists, path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error checking %s: %w", path, err)
	}

	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(bundleFileMode))
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	defer func() {
		if cleanupErr := pending.Cleanup(); cleanupErr != nil && err == nil {
			err = fmt.Errorf("error cleaning up %s: %w", path, cleanupErr)
		}
	}()

	if err = encodeBundle(pending, bundle); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}

	if err = pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("error saving %s: %w", path, err)
	}

	return nil
}

func encodeBundle(w io.Writer, bundle *models.Bundle) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", bundleIndent)
	return enc.Encode(bundle)
}

// ReadBundle decodes a bundle written by [WriteBundle]. Table and column
// order are preserved and numbers are kept as json.Number.
func ReadBundle(r io.Reader) (*models.Bundle, error) {
	bundle := models.NewBundle()
	if err := json.NewDecoder(r).Decode(bundle); err != nil {
		return nil, fmt.Errorf("error decoding bundle: %w", err)
	}
	return bundle, nil
}

// ReadBundleFile opens path and decodes it with [ReadBundle].
func ReadBundleFile(path string) (*models.Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadBundle(f)
}
