package port

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
)

// UploadRequest carries everything a caller declares when asking for an
// upload target
type UploadRequest struct {
	Context            domain.UploadContext
	EntityID           *uuid.UUID
	OriginalName       string
	ContentType        string
	SizeBytes          int64
	MaxDurationSeconds *int
	UploadedBy         *uuid.UUID
}

// UploadTicket is the one-time upload target issued for a request
type UploadTicket struct {
	AssetID         uuid.UUID
	UploadURL       string
	ProviderAssetID string
	Headers         map[string]string
	ExpiresAt       *time.Time
	ChunkSize       int64
}

// MediaService is an interface to define the media pipeline's server surface
type MediaService interface {
	RequestImageUpload(ctx context.Context, req UploadRequest) (*UploadTicket, error)
	RequestVideoUpload(ctx context.Context, req UploadRequest) (*UploadTicket, error)
	TransferOffset(ctx context.Context, assetID uuid.UUID) (int64, error)
	AppendChunk(ctx context.Context, assetID uuid.UUID, offset int64, length int64, chunk io.Reader) (int64, bool, error)
	ConfirmImage(ctx context.Context, assetID uuid.UUID) (*domain.MediaAsset, error)
	PollAsset(ctx context.Context, assetID uuid.UUID) (*domain.MediaAsset, error)
	GetAsset(ctx context.Context, assetID uuid.UUID) (*domain.MediaAsset, error)
	DeleteAsset(ctx context.Context, assetID uuid.UUID) error
	FinalizeExpiredSessions(ctx context.Context, now time.Time) error
}
