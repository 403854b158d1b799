package port

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
)

// AssetRepository is an interface to define media asset record interactions.
// Status-changing methods enforce the monotonic lifecycle with guarded
// updates and return domain.ErrAssetStateConflict when the asset is already
// terminal.
type AssetRepository interface {
	Create(ctx context.Context, asset domain.MediaAsset) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.MediaAsset, error)
	MarkProcessing(ctx context.Context, id uuid.UUID) error
	MarkReady(ctx context.Context, id uuid.UUID, completion domain.AssetCompletion) error
	MarkError(ctx context.Context, id uuid.UUID, message string) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindStalePending(ctx context.Context, olderThan time.Time) ([]domain.MediaAsset, error)
}

// UploadSessionRepository is an interface to interact with resumable upload
// session records
type UploadSessionRepository interface {
	Create(ctx context.Context, session domain.UploadSession) error
	FindOpenByAssetID(ctx context.Context, assetID uuid.UUID) (*domain.UploadSession, error)
	Advance(ctx context.Context, id uuid.UUID, bytesReceived int64, nextPart int) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.UploadSessionStatus) error
	FindAllExpired(ctx context.Context, now time.Time) ([]domain.UploadSession, error)
}

// UnitOfWork is a pattern that allows to run transactions across different repositories
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(uow UnitOfWork) error) error
	AssetRepo() AssetRepository
	UploadSessionRepo() UploadSessionRepository
}
