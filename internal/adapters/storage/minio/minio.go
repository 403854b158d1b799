package minio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/shacoof/kitchen48-sub000/internal/config"
	"github.com/shacoof/kitchen48-sub000/internal/core/port"
)

// Adapter is an adapter for minio
type Adapter struct {
	client *minio.Client
	core   *minio.Core
	config config.MinioConfig
	logger *slog.Logger
}

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

	core := minio.Core{Client: client}
	return &Adapter{client: client, config: cfg, core: &core, logger: logger}, nil
}

// PresignUpload generates a one-time presigned URL for a single-shot upload
func (a *Adapter) PresignUpload(ctx context.Context, key string, contentType string, size int64) (string, map[string]string, *time.Time, error) {

	requestHeaders := make(http.Header)
	requestHeaders.Set("Content-Type", contentType)
	requestHeaders.Set("Content-Length", fmt.Sprintf("%d", size))

	presignedURL, err := a.client.PresignHeader(ctx, http.MethodPut, a.config.BucketName, key, a.config.SimplePresignedDuration, nil, requestHeaders)
	if err != nil {
		return "", nil, nil, fmt.Errorf("failed to generate pre-signed URL: %w", err)
	}

	expiresAt := time.Now().Add(a.config.SimplePresignedDuration)

	return presignedURL.String(), a.headerToMap(requestHeaders), &expiresAt, nil
}

// InitMultipartUpload inits a multipart upload
func (a *Adapter) InitMultipartUpload(ctx context.Context, key string, contentType string) (string, error) {

	opts := minio.PutObjectOptions{
		ContentType: contentType,
	}
	uploadID, err := a.core.NewMultipartUpload(ctx, a.config.BucketName, key, opts)
	if err != nil {
		return "", fmt.Errorf("failed to init multipart upload: %w", err)
	}
	return uploadID, nil
}

// PutPart stores one part of a multipart upload
func (a *Adapter) PutPart(ctx context.Context, key string, uploadID string, partNumber int, body io.Reader, size int64) error {
	_, err := a.core.PutObjectPart(ctx, a.config.BucketName, key, uploadID, partNumber, body, size, minio.PutObjectPartOptions{})
	if err != nil {
		return fmt.Errorf("failed to put part %d: %w", partNumber, err)
	}
	return nil
}

// CompleteMultipartUpload assembles all uploaded parts into the final object.
// Part ETags are recovered from the store itself, so callers do not need to
// track them.
func (a *Adapter) CompleteMultipartUpload(ctx context.Context, key string, uploadID string) error {

	var completeParts []minio.CompletePart
	marker := 0
	for {
		result, err := a.core.ListObjectParts(ctx, a.config.BucketName, key, uploadID, marker, 1000)
		if err != nil {
			return fmt.Errorf("failed to list parts: %w", err)
		}
		for _, part := range result.ObjectParts {
			completeParts = append(completeParts, minio.CompletePart{
				PartNumber: part.PartNumber,
				ETag:       strings.Trim(part.ETag, "\""),
			})
		}
		if !result.IsTruncated {
			break
		}
		marker = result.NextPartNumberMarker
	}

	opts := minio.PutObjectOptions{
		SendContentMd5: false,
	}

	_, err := a.core.CompleteMultipartUpload(ctx, a.config.BucketName, key, uploadID, completeParts, opts)
	if err != nil {
		return fmt.Errorf("failed to complete multipart upload: %w", err)
	}

	return nil
}

// AbortMultipartUpload discards a multipart upload and its parts
func (a *Adapter) AbortMultipartUpload(ctx context.Context, key string, uploadID string) error {
	err := a.core.AbortMultipartUpload(ctx, a.config.BucketName, key, uploadID)
	if err != nil {
		return fmt.Errorf("failed to abort multipart upload: %w", err)
	}

	a.logger.Info("multipart upload aborted",
		slog.String("key", key),
		slog.String("uploadID", uploadID))

	return nil
}

// PutObject stores an object in one call, used for derived files such as thumbnails
func (a *Adapter) PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	_, err := a.client.PutObject(ctx, a.config.BucketName, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}
	return nil
}

// GetObject retrieves an object
func (a *Adapter) GetObject(ctx context.Context, key string) (io.ReadCloser, error) {
	object, err := a.client.GetObject(ctx, a.config.BucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	return object, nil
}

// GetHeaderBytes reads the first n bytes of an object, used for content sniffing
func (a *Adapter) GetHeaderBytes(ctx context.Context, key string, n int64) ([]byte, error) {
	opts := minio.GetObjectOptions{}
	err := opts.SetRange(0, n-1)
	if err != nil {
		return nil, fmt.Errorf("failed to set range: %w", err)
	}

	object, err := a.client.GetObject(ctx, a.config.BucketName, key, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get partial object: %w", err)
	}
	defer object.Close()

	buffer := make([]byte, n)
	numRead, err := object.Read(buffer)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read header bytes: %w", err)
	}

	return buffer[:numRead], nil
}

// ObjectInfo retrieves object metadata
func (a *Adapter) ObjectInfo(ctx context.Context, key string) (*port.ObjectInfo, error) {
	info, err := a.client.StatObject(ctx, a.config.BucketName, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object info: %w", err)
	}
	return &port.ObjectInfo{
		Size:        info.Size,
		ContentType: info.ContentType,
		ETag:        strings.Trim(info.ETag, "\""),
	}, nil
}

// DeleteObject deletes an object from storage
func (a *Adapter) DeleteObject(ctx context.Context, key string) error {
	err := a.client.RemoveObject(ctx, a.config.BucketName, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	a.logger.Info("object deleted",
		slog.String("key", key),
		slog.String("bucket", a.config.BucketName))

	return nil
}

func (a *Adapter) headerToMap(headers http.Header) map[string]string {
	result := make(map[string]string)
	for key, values := range headers {
		if len(values) > 0 {
			result[key] = values[0]
		}
	}
	return result
}
