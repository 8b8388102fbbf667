package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/jhalloran/inkwell/internal/domain"
)

// maxUploadSize caps uploaded images at 5MB.
const maxUploadSize = 5 * 1024 * 1024

// allowedImageTypes are the MIME types accepted for avatars and post
// cover images.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// MediaService orchestrates image uploads, retrieval, and deletion.
// Uploads yield a durable URL served by the media handler.
type MediaService struct {
	media domain.MediaRepository
	files domain.FileStore
}

// NewMediaService creates a new MediaService.
func NewMediaService(media domain.MediaRepository, files domain.FileStore) *MediaService {
	return &MediaService{media: media, files: files}
}

// Upload validates and stores an image, returning its metadata and the
// durable URL it will be served from.
func (s *MediaService) Upload(ctx context.Context, userID, filename, contentType string, data []byte) (*domain.MediaFile, string, error) {
	if !allowedImageTypes[contentType] {
		return nil, "", fmt.Errorf("%w: only JPEG, PNG, GIF, and WebP images are accepted", domain.ErrInvalidInput)
	}

	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty file", domain.ErrInvalidInput)
	}
	if len(data) > maxUploadSize {
		return nil, "", fmt.Errorf("%w: image exceeds 5MB limit", domain.ErrInvalidInput)
	}

	key, err := generateStorageKey()
	if err != nil {
		return nil, "", fmt.Errorf("generate storage key: %w", err)
	}

	if err := s.files.Save(ctx, key, data); err != nil {
		return nil, "", fmt.Errorf("save file: %w", err)
	}

	file := &domain.MediaFile{
		StorageKey:  key,
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		UploadedBy:  userID,
	}
	if err := s.media.Create(ctx, file); err != nil {
		// Best-effort cleanup of the stored file.
		s.files.Delete(ctx, key)
		return nil, "", fmt.Errorf("create media record: %w", err)
	}

	return file, URLForKey(key), nil
}

// GetFile returns the image bytes and content type for a storage key.
// Covers and avatars are publicly viewable, so there is no ownership check.
func (s *MediaService) GetFile(ctx context.Context, key string) ([]byte, string, error) {
	file, err := s.media.GetByKey(ctx, key)
	if err != nil {
		return nil, "", err
	}

	data, err := s.files.Get(ctx, key)
	if err != nil {
		return nil, "", fmt.Errorf("get file: %w", err)
	}
	return data, file.ContentType, nil
}

// Delete removes an image and its stored bytes.
func (s *MediaService) Delete(ctx context.Context, key string) error {
	if _, err := s.media.GetByKey(ctx, key); err != nil {
		return err
	}

	// Delete stored bytes first, then metadata.
	if err := s.files.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	if err := s.media.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete media record: %w", err)
	}
	return nil
}

// URLForKey returns the public URL an uploaded file is served from.
func URLForKey(key string) string {
	return "/media/" + key
}

func generateStorageKey() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
