package upload

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mapa3/distribucion-app/internal/config"
)

// Opener opens a bundle source that is either a local path or an s3://
// object URL.
type Opener struct {
	newBucket func(ctx context.Context, bucket string) (Filesystem, error)
}

// NewOpener returns an Opener that reaches buckets with the credentials,
// region and endpoint of cfg. The bucket always comes from the URL.
func NewOpener(cfg config.Upload) *Opener {
	return &Opener{
		newBucket: func(ctx context.Context, bucket string) (Filesystem, error) {
			c := cfg
			c.Bucket = bucket
			return NewFilesystemS3(ctx, c)
		},
	}
}

// Open implements [SourceOpener].
func (o *Opener) Open(ctx context.Context, source string) (io.ReadCloser, error) {
	if !IsObjectURL(source) {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("error opening %s: %w", source, err)
		}
		return f, nil
	}

	bucket, key, err := ParseObjectURL(source)
	if err != nil {
		return nil, err
	}

	fs, err := o.newBucket(ctx, bucket)
	if err != nil {
		return nil, err
	}

	return fs.Open(ctx, key)
}
