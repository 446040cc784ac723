package upload

import (
	"context"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/packsource/backend/internal/domain/shared"
	"github.com/packsource/backend/internal/infrastructure/storage"
	"go.uber.org/zap"
)

// UploadKind scopes uploaded images to their use
type UploadKind string

const (
	UploadKindAvatar  UploadKind = "avatar"
	UploadKindProduct UploadKind = "product"
)

// IsValid reports whether the kind is a known upload scope
func (k UploadKind) IsValid() bool {
	return k == UploadKindAvatar || k == UploadKindProduct
}

// UploadResult is the stored image location
type UploadResult struct {
	URL string `json:"url"`
}

// UploadService validates and stores uploaded images
type UploadService struct {
	storage  storage.ObjectStorage
	fallback storage.ObjectStorage
	maxSize  int64
	logger   *zap.Logger
}

// NewUploadService creates a new UploadService
func NewUploadService(objectStorage storage.ObjectStorage, maxSize int64, logger *zap.Logger) *UploadService {
	return &UploadService{
		storage:  objectStorage,
		fallback: storage.NewDataURLStorage(),
		maxSize:  maxSize,
		logger:   logger,
	}
}

// StoreImage validates and stores an uploaded image, returning the URL
// clients embed. Only image content is accepted.
func (s *UploadService) StoreImage(ctx context.Context, kind UploadKind, filename, contentType string, data []byte) (*UploadResult, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Upload type must be avatar or product")
	}
	if len(data) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Upload is empty")
	}
	if int64(len(data)) > s.maxSize {
		return nil, shared.NewDomainError("PAYLOAD_TOO_LARGE", "Image exceeds the upload size limit")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Only image uploads are accepted")
	}

	ext := strings.ToLower(path.Ext(filename))
	key := string(kind) + "/" + uuid.New().String() + ext

	// A failed object-store put degrades to an inline data URL instead
	// of failing the upload.
	url, err := s.storage.Store(ctx, key, data, contentType)
	if err != nil {
		s.logger.Warn("Object storage put failed, inlining as data URL",
			zap.String("key", key),
			zap.Error(err))
		url, err = s.fallback.Store(ctx, key, data, contentType)
		if err != nil {
			return nil, err
		}
	}

	s.logger.Info("Image stored",
		zap.String("key", key),
		zap.String("content_type", contentType),
		zap.Int("size", len(data)))

	return &UploadResult{URL: url}, nil
}
