package filestorage

import (
	"context"
	"errors"
	"io"
)

// ErrInvalidObjectPath is returned for empty paths or paths escaping the bucket
var ErrInvalidObjectPath = errors.New("invalid object path")

// BlobStorage stores opaque objects in named buckets
type BlobStorage interface {
	// Upload writes the object, replacing any existing one at the same path
	Upload(ctx context.Context, bucket, objectPath string, content io.Reader) error

	// Remove deletes the objects; missing objects are ignored
	Remove(ctx context.Context, bucket string, objectPaths ...string) error

	// PublicURL returns the URL the object is served from
	PublicURL(bucket, objectPath string) string
}
