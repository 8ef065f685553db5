package storage

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	// PresignedURLTTL is the default expiration time for presigned URLs (15 minutes).
	PresignedURLTTL = 15 * time.Minute
)

// MinIOService implements Service using MinIO.
type MinIOService struct {
	client      *minio.Client
	maxFileSize int64
}

// NewMinIOService creates a new MinIO storage service.
func NewMinIOService(cfg Config) (*MinIOService, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, fmt.Errorf("MinIO is not configured")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &MinIOService{
		client:      client,
		maxFileSize: cfg.GetMinIOMaxFileSize(),
	}, nil
}

// EnsureBucketExists creates the bucket if it doesn't exist.
func (s *MinIOService) EnsureBucketExists(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}

	return nil
}

// GenerateUploadURL creates a presigned URL for uploading a file.
func (s *MinIOService) GenerateUploadURL(ctx context.Context, bucket, folder, fileName, contentType string, sizeBytes int64) (*PresignedURL, error) {
	if err := s.ValidateContentType(contentType); err != nil {
		return nil, err
	}
	if err := s.ValidateFileSize(sizeBytes); err != nil {
		return nil, err
	}

	// Unique file key with a UUID suffix to prevent overwrites
	ext := path.Ext(fileName)
	baseName := strings.TrimSuffix(fileName, ext)
	uniqueFileName := fmt.Sprintf("%s_%s%s", baseName, uuid.New().String()[:8], ext)
	fileKey := filepath.ToSlash(filepath.Join(folder, uniqueFileName))

	expiresAt := time.Now().Add(PresignedURLTTL)
	presignedURL, err := s.client.PresignedPutObject(ctx, bucket, fileKey, PresignedURLTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned upload URL: %w", err)
	}

	return &PresignedURL{
		URL:       presignedURL.String(),
		FileKey:   fileKey,
		ExpiresAt: expiresAt,
	}, nil
}

// GenerateDownloadURL creates a presigned URL for downloading a file.
func (s *MinIOService) GenerateDownloadURL(ctx context.Context, bucket, fileKey string) (*PresignedURL, error) {
	expiresAt := time.Now().Add(PresignedURLTTL)

	reqParams := make(url.Values)

	presignedURL, err := s.client.PresignedGetObject(ctx, bucket, fileKey, PresignedURLTTL, reqParams)
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned download URL: %w", err)
	}

	return &PresignedURL{
		URL:       presignedURL.String(),
		FileKey:   fileKey,
		ExpiresAt: expiresAt,
	}, nil
}

var _ Service = (*MinIOService)(nil)
