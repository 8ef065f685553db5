// Package storage provides a domain-agnostic interface for S3-compatible object storage.
// The quotation module uses it for customer document uploads.
package storage

import (
	"context"
	"time"
)

// PresignedURL contains the URL and metadata for a presigned upload/download operation.
type PresignedURL struct {
	URL       string    `json:"url"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Service defines the interface for object storage operations.
// This interface is designed to be domain-agnostic and can be used by any module.
type Service interface {
	// GenerateUploadURL creates a presigned URL for uploading a file.
	// The folder parameter defines the path prefix (e.g., "{session}/{service}").
	// Returns the presigned URL, the full file key, and expiration time.
	GenerateUploadURL(ctx context.Context, bucket, folder, fileName, contentType string, sizeBytes int64) (*PresignedURL, error)

	// GenerateDownloadURL creates a presigned URL for downloading a file.
	GenerateDownloadURL(ctx context.Context, bucket, fileKey string) (*PresignedURL, error)

	// EnsureBucketExists creates the bucket if it doesn't exist.
	EnsureBucketExists(ctx context.Context, bucket string) error
}

// Config defines the configuration interface for storage.
type Config interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	IsMinIOEnabled() bool
}
