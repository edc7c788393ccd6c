package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pawtrail/backend/internal/storage"
)

// PhotoUpload is a validated photo payload ready for storage.
type PhotoUpload struct {
	Data        []byte
	ContentType string
}

// PhotoService is the only component that stores or releases pet photo
// binaries. Replacement ordering (store new, swap the pet's pointer,
// release old) is driven by PetService; this type supplies the two halves.
type PhotoService struct {
	store  storage.PhotoStore
	logger *zap.SugaredLogger
}

func NewPhotoService(store storage.PhotoStore, logger *zap.SugaredLogger) *PhotoService {
	return &PhotoService{store: store, logger: logger}
}

// Attach stores the binary and returns the opaque key to record on the
// pet. A storage failure here aborts the surrounding mutation.
func (s *PhotoService) Attach(ctx context.Context, upload PhotoUpload) (string, error) {
	key := fmt.Sprintf("pets/%s%s", uuid.New().String(), extensionFor(upload.ContentType))
	if err := s.store.Put(ctx, key, upload.Data, upload.ContentType); err != nil {
		return "", err
	}
	return key, nil
}

// Release deletes the binary best-effort. By the time Release runs the pet
// row no longer points at the key, so a failure only leaks a file; it is
// logged and swallowed.
func (s *PhotoService) Release(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Warnw("failed to release pet photo", "key", key, "error", err)
	}
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	default:
		return ".jpg"
	}
}
