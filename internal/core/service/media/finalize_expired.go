package media

import (
	"context"
	"errors"
	"time"

	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
)

// FinalizeExpiredSessions sweeps resumable sessions past their expiry:
// the provider multipart upload is aborted and the orphaned asset is
// marked error. Assets stuck in pending longer than the session TTL
// (images whose transfer never finished) are marked error as well.
func (m *mediaService) FinalizeExpiredSessions(ctx context.Context, now time.Time) error {

	sessions, err := m.uow.UploadSessionRepo().FindAllExpired(ctx, now)
	if err != nil {
		return err
	}

	for _, session := range sessions {
		asset, err := m.uow.AssetRepo().FindByID(ctx, session.AssetID)
		if err != nil {
			m.logger.Error("expired session without asset", "sessionID", session.ID, "error", err)
			continue
		}

		if err := m.storage.AbortMultipartUpload(ctx, asset.ProviderAssetID, session.ProviderUploadID); err != nil {
			m.logger.Error("failed to abort expired multipart upload", "sessionID", session.ID, "error", err)
		}
		if err := m.uow.UploadSessionRepo().UpdateStatus(ctx, session.ID, domain.UploadSessionStatusAborted); err != nil {
			m.logger.Error("failed to abort expired session", "sessionID", session.ID, "error", err)
			continue
		}
		if err := m.uow.AssetRepo().MarkError(ctx, session.AssetID, "upload session expired"); err != nil && !errors.Is(err, domain.ErrAssetStateConflict) {
			m.logger.Error("failed to mark expired asset", "assetID", session.AssetID, "error", err)
		}

		m.logger.Info("expired upload session finalized", "sessionID", session.ID, "assetID", session.AssetID)
	}

	stale, err := m.uow.AssetRepo().FindStalePending(ctx, now.Add(-m.uploadCfg.SessionTTL))
	if err != nil {
		return err
	}

	for _, asset := range stale {
		if asset.Type != domain.MediaTypeImage {
			continue
		}
		if err := m.uow.AssetRepo().MarkError(ctx, asset.ID, "upload never completed"); err != nil && !errors.Is(err, domain.ErrAssetStateConflict) {
			m.logger.Error("failed to mark stale asset", "assetID", asset.ID, "error", err)
		}
	}

	return nil
}
