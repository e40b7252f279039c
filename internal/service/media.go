package service

import (
	"context"
	"fmt"
	"log"
	"path"

	"github.com/clipstream/backend/internal/storage"
	"github.com/google/uuid"
)

// uploadMedia stores an upload under a unique key derived from the
// prefix and the original file extension.
func uploadMedia(ctx context.Context, media storage.MediaStore, prefix string, up *Upload) (string, error) {
	ext := path.Ext(up.Filename)
	key := fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), ext)
	url, err := media.Upload(ctx, key, up.ContentType, up.Reader)
	if err != nil {
		return "", fmt.Errorf("upload media: %w", err)
	}
	return url, nil
}

// removeMedia is best-effort cleanup of a superseded file. Failures are
// logged and otherwise ignored.
func removeMedia(ctx context.Context, media storage.MediaStore, url string) {
	if url == "" {
		return
	}
	if err := media.Remove(ctx, url); err != nil {
		log.Printf("WARN [service.removeMedia] failed to remove %s: %v", url, err)
	}
}
