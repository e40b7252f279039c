package storage

import (
	"context"
	"io"
)

// MediaStore persists uploaded media and hands back a durable URL.
// Remove is best-effort cleanup of superseded files; callers log
// failures and move on.
type MediaStore interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error)
	Remove(ctx context.Context, url string) error
}
