package storage

import (
	"context"
	"io"
)

// Store persists an uploaded image and returns the URL to record in the
// image_url column. Disk returns a relative /uploads path; object storage
// returns an absolute URL.
type Store interface {
	Save(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error)
}
