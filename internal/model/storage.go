package model

import (
	"context"
	"io"
)

// Storage stores user-uploaded objects (avatar images).
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}
