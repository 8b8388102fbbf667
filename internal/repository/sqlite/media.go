package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jhalloran/inkwell/internal/domain"
)

// MediaRepository implements domain.MediaRepository using SQLite.
type MediaRepository struct {
	db *sql.DB
}

// NewMediaRepository creates a new SQLite-backed MediaRepository.
func NewMediaRepository(db *DB) *MediaRepository {
	return &MediaRepository{db: db.SqlDB}
}

func (r *MediaRepository) Create(ctx context.Context, file *domain.MediaFile) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO media_files (storage_key, filename, content_type, size, uploaded_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		file.StorageKey, file.Filename, file.ContentType, file.Size, file.UploadedBy, now,
	)
	if err != nil {
		return fmt.Errorf("insert media file: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	file.ID = id
	file.CreatedAt = now
	return nil
}

func (r *MediaRepository) GetByKey(ctx context.Context, key string) (*domain.MediaFile, error) {
	f := &domain.MediaFile{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, storage_key, filename, content_type, size, uploaded_by, created_at
		 FROM media_files WHERE storage_key = ?`, key,
	).Scan(&f.ID, &f.StorageKey, &f.Filename, &f.ContentType, &f.Size, &f.UploadedBy, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query media file: %w", err)
	}
	return f, nil
}

func (r *MediaRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM media_files WHERE storage_key = ?", key)
	if err != nil {
		return fmt.Errorf("delete media file: %w", err)
	}
	return nil
}
