package storage

import (
	"context"
	"path"

	"zeus/zeus/utils/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ObjectStore keeps an object and hands back a URL for it.
type ObjectStore interface {
	PutImage(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Uploader compresses user images and stores them. Without an object store
// the compressed image is returned inline as a data URL.
type Uploader struct {
	store ObjectStore
}

func NewUploader(store ObjectStore) *Uploader {
	return &Uploader{store: store}
}

func (u *Uploader) UploadImage(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	defer logging.LogDuration(ctx, "upload_image")()

	jpg, err := CompressImage(data)
	if err != nil {
		return "", err
	}
	logging.AppLogger.Debug("image compressed",
		zap.String("filename", filename),
		zap.String("content_type", contentType),
		zap.Int("in_bytes", len(data)),
		zap.Int("out_bytes", len(jpg)),
	)
	return u.StoreJPEG(ctx, jpg)
}

// StoreJPEG stores bytes that are already compressed, without re-encoding.
func (u *Uploader) StoreJPEG(ctx context.Context, jpg []byte) (string, error) {
	if u.store == nil {
		return DataURL("image/jpeg", jpg), nil
	}
	key := path.Join("uploads", uuid.New().String()+".jpg")
	return u.store.PutImage(ctx, key, "image/jpeg", jpg)
}
