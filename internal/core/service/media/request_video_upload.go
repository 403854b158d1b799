package media

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
	"github.com/shacoof/kitchen48-sub000/internal/core/port"
)

// RequestVideoUpload issues a resumable upload target for a video. The
// target is this service's own content endpoint; underneath it a provider
// multipart upload and an upload session row are created, all inside one
// transaction with the pending asset record.
func (m *mediaService) RequestVideoUpload(ctx context.Context, req port.UploadRequest) (*port.UploadTicket, error) {

	if !req.Context.ValidFor(domain.MediaTypeVideo) {
		return nil, fmt.Errorf("%w: %q is not a valid video context", domain.ErrInvalidContext, req.Context)
	}

	if req.SizeBytes <= 0 {
		return nil, domain.ErrFileSizeEmpty
	}
	if req.SizeBytes > m.uploadCfg.VideoMaxSize {
		return nil, domain.ErrFileSizeTooBig
	}

	mimeType, err := m.validateMediaFile(req.OriginalName, req.ContentType, domain.MediaTypeVideo)
	if err != nil {
		return nil, err
	}

	assetID := uuid.New()
	key := storageKey(domain.MediaTypeVideo, assetID)
	expiresAt := time.Now().Add(m.uploadCfg.SessionTTL)

	txErr := m.uow.Execute(ctx, func(uow port.UnitOfWork) error {

		createErr := uow.AssetRepo().Create(ctx, domain.MediaAsset{
			ID:              assetID,
			Type:            domain.MediaTypeVideo,
			Context:         req.Context,
			EntityID:        req.EntityID,
			ProviderAssetID: key,
			Status:          domain.AssetStatusPending,
			OriginalName:    req.OriginalName,
			MimeType:        mimeType,
			FileSize:        req.SizeBytes,
			UploadedBy:      req.UploadedBy,
		})
		if createErr != nil {
			return createErr
		}

		uploadID, initErr := m.storage.InitMultipartUpload(ctx, key, mimeType)
		if initErr != nil {
			return initErr
		}

		return uow.UploadSessionRepo().Create(ctx, domain.UploadSession{
			ID:               uuid.New(),
			AssetID:          assetID,
			ProviderUploadID: uploadID,
			PartSize:         m.uploadCfg.ChunkSize,
			TotalSize:        req.SizeBytes,
			Status:           domain.UploadSessionStatusOpen,
			ExpiresAt:        expiresAt,
		})
	})

	if txErr != nil {
		return nil, fmt.Errorf("could not issue video upload target: %w", txErr)
	}

	return &port.UploadTicket{
		AssetID:         assetID,
		UploadURL:       m.contentURL(assetID),
		ProviderAssetID: key,
		Headers:         map[string]string{"Content-Type": "application/octet-stream"},
		ExpiresAt:       &expiresAt,
		ChunkSize:       m.uploadCfg.ChunkSize,
	}, nil
}
