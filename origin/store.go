package origin

import (
	"context"
	"errors"
	"io"
	"net/url"
	"time"
)

var (
	ErrNotFound  = errors.New("object not found")
	ErrForbidden = errors.New("access to object denied")
)

// Object is a file fetched from an origin store.
type Object struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
	ETag          string
	LastModified  time.Time
}

// Store is the backing file store fronted by the edge.
type Store interface {
	// Get fetches the object at key. Keys are percent-encoded uri paths
	// with a leading slash, as produced by the viewer-request handler.
	Get(ctx context.Context, key string) (*Object, error)
}

// decodeKey unescapes a uri path into an object name. Malformed
// escapes cannot name an object.
func decodeKey(key string) (string, error) {
	name, err := url.PathUnescape(key)
	if err != nil {
		return "", ErrNotFound
	}

	return name, nil
}
