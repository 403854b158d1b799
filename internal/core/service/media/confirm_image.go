package media

import (
	"bytes"
	"context"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
)

// ConfirmImage finalizes an image asset after its transfer completed: the
// stored object is verified, a thumbnail is derived next to it, and the
// asset becomes ready with its served URLs. Any rejection marks the asset
// error, which is terminal; the caller must start a fresh upload.
func (m *mediaService) ConfirmImage(ctx context.Context, assetID uuid.UUID) (*domain.MediaAsset, error) {

	asset, err := m.uow.AssetRepo().FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	if asset.Type != domain.MediaTypeImage {
		return nil, fmt.Errorf("%w: confirm applies to images only", domain.ErrInvalidFileType)
	}

	// terminal assets are returned as-is, never reprocessed
	if asset.Status.Terminal() {
		return asset, nil
	}
	if asset.Status != domain.AssetStatusPending {
		return nil, domain.ErrAssetStateConflict
	}

	key := asset.ProviderAssetID

	info, err := m.storage.ObjectInfo(ctx, key)
	if err != nil {
		return m.reject(ctx, assetID, nil, "uploaded file not found in storage")
	}
	if info.Size != asset.FileSize {
		return m.reject(ctx, assetID, domain.ErrSizeMismatch, fmt.Sprintf("stored %d, declared %d", info.Size, asset.FileSize))
	}

	header, err := m.storage.GetHeaderBytes(ctx, key, 512)
	if err != nil {
		return nil, fmt.Errorf("could not read object header: %w", err)
	}
	if !sniffIsImage(header) {
		return m.reject(ctx, assetID, nil, "uploaded content is not an image")
	}

	object, err := m.storage.GetObject(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("could not read object: %w", err)
	}
	defer object.Close()

	img, err := imaging.Decode(object, imaging.AutoOrientation(true))
	if err != nil {
		return m.reject(ctx, assetID, nil, "corrupt or unsupported image content")
	}

	dim := m.mediaCfg.ThumbnailDim
	thumb := imaging.Fit(img, dim, dim, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG); err != nil {
		return nil, fmt.Errorf("could not encode thumbnail: %w", err)
	}

	thumbKey := thumbnailKey(domain.MediaTypeImage, assetID)
	if err := m.storage.PutObject(ctx, thumbKey, &buf, int64(buf.Len()), "image/jpeg"); err != nil {
		return nil, fmt.Errorf("could not store thumbnail: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	completion := domain.AssetCompletion{
		URL:          m.cdnURL(key),
		ThumbnailURL: m.cdnURL(thumbKey),
		Width:        &width,
		Height:       &height,
	}
	if err := m.uow.AssetRepo().MarkReady(ctx, assetID, completion); err != nil {
		return nil, err
	}

	m.logger.Info("image confirmed", "assetID", assetID, "width", width, "height", height)

	return m.uow.AssetRepo().FindByID(ctx, assetID)
}

// reject marks the asset error with the given diagnostic and surfaces the
// rejection to the caller, wrapped around cause when one names the failure
func (m *mediaService) reject(ctx context.Context, assetID uuid.UUID, cause error, detail string) (*domain.MediaAsset, error) {
	message := detail
	if cause != nil {
		message = fmt.Sprintf("%s: %s", cause, detail)
	}
	if err := m.uow.AssetRepo().MarkError(ctx, assetID, message); err != nil {
		return nil, err
	}
	if cause != nil {
		return nil, fmt.Errorf("%w: %w: %s", domain.ErrAssetRejected, cause, detail)
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrAssetRejected, detail)
}
