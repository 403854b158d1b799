package media

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
	"github.com/shacoof/kitchen48-sub000/internal/core/port"
)

// RequestImageUpload issues a one-time upload target for an image. The
// pending asset record and the presigned target are created inside one
// transaction, so a presign failure leaves no record behind.
func (m *mediaService) RequestImageUpload(ctx context.Context, req port.UploadRequest) (*port.UploadTicket, error) {

	if !req.Context.ValidFor(domain.MediaTypeImage) {
		return nil, fmt.Errorf("%w: %q is not a valid image context", domain.ErrInvalidContext, req.Context)
	}

	if req.SizeBytes <= 0 {
		return nil, domain.ErrFileSizeEmpty
	}
	if req.SizeBytes > m.uploadCfg.ImageMaxSize {
		return nil, domain.ErrFileSizeTooBig
	}

	mimeType, err := m.validateMediaFile(req.OriginalName, req.ContentType, domain.MediaTypeImage)
	if err != nil {
		return nil, err
	}

	assetID := uuid.New()
	key := storageKey(domain.MediaTypeImage, assetID)

	var uploadURL string
	var headers map[string]string
	var expiresAt *time.Time

	txErr := m.uow.Execute(ctx, func(uow port.UnitOfWork) error {

		createErr := uow.AssetRepo().Create(ctx, domain.MediaAsset{
			ID:              assetID,
			Type:            domain.MediaTypeImage,
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

		var storeErr error
		uploadURL, headers, expiresAt, storeErr = m.storage.PresignUpload(ctx, key, mimeType, req.SizeBytes)
		if storeErr != nil {
			return storeErr
		}

		return nil
	})

	if txErr != nil {
		return nil, fmt.Errorf("could not issue image upload target: %w", txErr)
	}

	return &port.UploadTicket{
		AssetID:         assetID,
		UploadURL:       uploadURL,
		ProviderAssetID: key,
		Headers:         headers,
		ExpiresAt:       expiresAt,
	}, nil
}
