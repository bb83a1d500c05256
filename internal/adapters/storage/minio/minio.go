package minio

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"subpipe/internal/config"
	"subpipe/internal/core/port"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const checksumMetadataKey = "Checksum-Sha256"

// Adapter is an adapter for minio
type Adapter struct {
	client *minio.Client
	config config.MinioConfig
	logger *slog.Logger
}

var _ port.ObjectStorage = (*Adapter)(nil)

// NewAdapter returns Adapter
func NewAdapter(ctx context.Context, cfg config.MinioConfig, logger *slog.Logger) (*Adapter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &Adapter{client: client, config: cfg, logger: logger}, nil
}

// PresignUpload generates a presigned PUT URL. The checksum headers make the
// store reject bytes that do not match the declared fingerprint. The checksum
// is the hex digest used everywhere else; the integrity header wants the
// base64 form of the raw digest, the metadata header keeps the hex.
func (a *Adapter) PresignUpload(ctx context.Context, key string, checksumSHA256 string) (string, map[string]string, *time.Time, error) {
	requestHeaders := make(http.Header)
	if checksumSHA256 != "" {
		digest, err := hex.DecodeString(checksumSHA256)
		if err != nil {
			return "", nil, nil, fmt.Errorf("invalid sha256 checksum %q: %w", checksumSHA256, err)
		}
		requestHeaders.Set("x-amz-checksum-sha256", base64.StdEncoding.EncodeToString(digest))
		requestHeaders.Set("x-amz-sdk-checksum-algorithm", "SHA256")
		requestHeaders.Set("x-amz-meta-checksum-sha256", checksumSHA256)
	}

	presignedURL, err := a.client.PresignHeader(ctx, http.MethodPut, a.config.BucketName, key, a.config.UploadURLDuration, nil, requestHeaders)
	if err != nil {
		return "", nil, nil, fmt.Errorf("failed to generate pre-signed URL: %w", err)
	}

	expiresAt := time.Now().Add(a.config.UploadURLDuration)

	return presignedURL.String(), headerToMap(requestHeaders), &expiresAt, nil
}

// PresignDownload generates a presigned GET URL
func (a *Adapter) PresignDownload(ctx context.Context, key string) (string, *time.Time, error) {
	presignedURL, err := a.client.PresignedGetObject(ctx, a.config.BucketName, key, a.config.DownloadDuration, nil)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate presigned download URL: %w", err)
	}

	expiresAt := time.Now().Add(a.config.DownloadDuration)

	return presignedURL.String(), &expiresAt, nil
}

// Upload streams an object into the bucket
func (a *Adapter) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, a.config.TransferTimeout)
	defer cancel()

	_, err := a.client.PutObject(ctx, a.config.BucketName, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

// Download retrieves an object; the caller owns the reader
func (a *Adapter) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	object, err := a.client.GetObject(ctx, a.config.BucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	return object, nil
}

// Stat retrieves object info
func (a *Adapter) Stat(ctx context.Context, key string) (*port.ObjectInfo, error) {
	info, err := a.client.StatObject(ctx, a.config.BucketName, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object info: %w", err)
	}

	return &port.ObjectInfo{
		Size:           info.Size,
		ChecksumSHA256: info.UserMetadata[checksumMetadataKey],
		ContentType:    info.ContentType,
	}, nil
}

// Delete removes an object from storage
func (a *Adapter) Delete(ctx context.Context, key string) error {
	err := a.client.RemoveObject(ctx, a.config.BucketName, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	a.logger.Info("object deleted",
		slog.String("key", key),
		slog.String("bucket", a.config.BucketName))

	return nil
}

// Exists reports whether an object is present
func (a *Adapter) Exists(ctx context.Context, key string) (bool, error) {
	_, err := a.client.StatObject(ctx, a.config.BucketName, key, minio.StatObjectOptions{})
	if err != nil {
		var response minio.ErrorResponse
		if errors.As(err, &response) && response.Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat object: %w", err)
	}
	return true, nil
}

func headerToMap(headers http.Header) map[string]string {
	result := make(map[string]string)
	for key, values := range headers {
		if len(values) > 0 {
			result[key] = values[0]
		}
	}
	return result
}
