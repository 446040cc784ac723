package storage

import (
	"context"
	"encoding/base64"
	"errors"
)

// DataURLStorage is the fallback backend used when no object storage is
// configured. It inlines the blob as a base64 data URL so uploads keep
// working in development and single-node deployments.
type DataURLStorage struct{}

// NewDataURLStorage creates a new DataURLStorage
func NewDataURLStorage() *DataURLStorage {
	return &DataURLStorage{}
}

// Ensure DataURLStorage implements ObjectStorage
var _ ObjectStorage = (*DataURLStorage)(nil)

// Store encodes the blob as a data URL. The key is unused since nothing
// is persisted.
func (s *DataURLStorage) Store(_ context.Context, key string, data []byte, contentType string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	if len(data) == 0 {
		return "", errors.New("data is required")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
