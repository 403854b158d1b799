package media

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
)

// DeleteAsset removes an asset record and its stored objects. An open
// resumable session is aborted first. Deletion is administrative; the
// pipeline itself never deletes assets.
func (m *mediaService) DeleteAsset(ctx context.Context, assetID uuid.UUID) error {

	asset, err := m.uow.AssetRepo().FindByID(ctx, assetID)
	if err != nil {
		return err
	}

	session, err := m.uow.UploadSessionRepo().FindOpenByAssetID(ctx, assetID)
	if err == nil {
		if abortErr := m.storage.AbortMultipartUpload(ctx, asset.ProviderAssetID, session.ProviderUploadID); abortErr != nil {
			m.logger.Error("failed to abort multipart upload", "assetID", assetID, "error", abortErr)
		}
		if statusErr := m.uow.UploadSessionRepo().UpdateStatus(ctx, session.ID, domain.UploadSessionStatusAborted); statusErr != nil {
			return statusErr
		}
	} else if !errors.Is(err, domain.ErrSessionNotFound) && !errors.Is(err, domain.ErrSessionClosed) {
		// a closed session has no multipart upload left to abort
		return err
	}

	if err := m.storage.DeleteObject(ctx, asset.ProviderAssetID); err != nil {
		m.logger.Error("failed to delete stored object", "assetID", assetID, "error", err)
	}
	if asset.ThumbnailURL != "" {
		if err := m.storage.DeleteObject(ctx, thumbnailKey(asset.Type, assetID)); err != nil {
			m.logger.Error("failed to delete thumbnail object", "assetID", assetID, "error", err)
		}
	}

	return m.uow.AssetRepo().Delete(ctx, assetID)
}
