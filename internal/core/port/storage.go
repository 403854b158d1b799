package port

import (
	"context"
	"io"
	"time"
)

// ObjectInfo describes a stored object
type ObjectInfo struct {
	Size        int64
	ContentType string
	ETag        string
}

// ObjectStorage is an interface to define provider storage interactions
type ObjectStorage interface {
	PresignUpload(ctx context.Context, key string, contentType string, size int64) (string, map[string]string, *time.Time, error)
	InitMultipartUpload(ctx context.Context, key string, contentType string) (string, error)
	PutPart(ctx context.Context, key string, uploadID string, partNumber int, body io.Reader, size int64) error
	CompleteMultipartUpload(ctx context.Context, key string, uploadID string) error
	AbortMultipartUpload(ctx context.Context, key string, uploadID string) error
	PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	GetObject(ctx context.Context, key string) (io.ReadCloser, error)
	GetHeaderBytes(ctx context.Context, key string, n int64) ([]byte, error)
	ObjectInfo(ctx context.Context, key string) (*ObjectInfo, error)
	DeleteObject(ctx context.Context, key string) error
}
