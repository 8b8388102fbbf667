package domain

import (
	"context"
	"time"
)

// MediaFile holds metadata about an uploaded image (avatar or post cover).
type MediaFile struct {
	ID          int64
	StorageKey  string // Key used to retrieve bytes from FileStore
	Filename    string // Original upload filename
	ContentType string
	Size        int64
	UploadedBy  string // User ID of the uploader
	CreatedAt   time.Time
}

// MediaRepository handles image metadata persistence.
type MediaRepository interface {
	Create(ctx context.Context, file *MediaFile) error
	GetByKey(ctx context.Context, key string) (*MediaFile, error)
	Delete(ctx context.Context, key string) error
}

// FileStore abstracts raw file byte storage.
// The initial implementation stores BLOBs in SQLite; this interface
// allows swapping to filesystem, S3, or another backend later.
type FileStore interface {
	Save(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
