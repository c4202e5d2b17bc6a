package domain

import (
	"context"
	"io"
	"time"
)

// Export describes an uploaded transaction export
type Export struct {
	Key       string
	URL       string
	Rows      int
	ExpiresAt time.Time
}

// ObjectStorage stores export files and hands out temporary download links
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data io.Reader, contentType string, size int64) (string, error)
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
