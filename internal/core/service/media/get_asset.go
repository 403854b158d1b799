package media

import (
	"context"

	"github.com/google/uuid"
	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
)

// GetAsset fetches an asset by id
func (m *mediaService) GetAsset(ctx context.Context, assetID uuid.UUID) (*domain.MediaAsset, error) {
	return m.uow.AssetRepo().FindByID(ctx, assetID)
}

// PollAsset returns the asset's current state. The retry cadence belongs
// entirely to the caller; this is a plain read.
func (m *mediaService) PollAsset(ctx context.Context, assetID uuid.UUID) (*domain.MediaAsset, error) {
	return m.uow.AssetRepo().FindByID(ctx, assetID)
}
