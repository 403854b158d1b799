package media

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
)

// TransferOffset returns the byte offset the open session for assetID
// expects next. Resuming clients probe this after a network failure.
func (m *mediaService) TransferOffset(ctx context.Context, assetID uuid.UUID) (int64, error) {
	session, err := m.uow.UploadSessionRepo().FindOpenByAssetID(ctx, assetID)
	if err != nil {
		return 0, err
	}
	return session.BytesReceived, nil
}

// AppendChunk ingests one chunk of a resumable video transfer. Chunks are
// strictly sequential: the offset must equal the session's current one.
// The final chunk completes the provider multipart upload and closes the
// session; the returned bool reports that completion.
func (m *mediaService) AppendChunk(ctx context.Context, assetID uuid.UUID, offset int64, length int64, chunk io.Reader) (int64, bool, error) {

	session, err := m.uow.UploadSessionRepo().FindOpenByAssetID(ctx, assetID)
	if err != nil {
		return 0, false, err
	}

	if length <= 0 {
		return session.BytesReceived, false, domain.ErrFileSizeEmpty
	}
	if offset != session.BytesReceived {
		return session.BytesReceived, false, fmt.Errorf("%w: got %d, expected %d", domain.ErrOffsetMismatch, offset, session.BytesReceived)
	}
	if offset+length > session.TotalSize {
		return session.BytesReceived, false, domain.ErrChunkOverrun
	}

	asset, err := m.uow.AssetRepo().FindByID(ctx, assetID)
	if err != nil {
		return session.BytesReceived, false, err
	}

	key := asset.ProviderAssetID
	if err := m.storage.PutPart(ctx, key, session.ProviderUploadID, session.NextPart, chunk, length); err != nil {
		return session.BytesReceived, false, err
	}

	received := offset + length
	if err := m.uow.UploadSessionRepo().Advance(ctx, session.ID, received, session.NextPart+1); err != nil {
		return session.BytesReceived, false, err
	}

	if received < session.TotalSize {
		return received, false, nil
	}

	if err := m.storage.CompleteMultipartUpload(ctx, key, session.ProviderUploadID); err != nil {
		return received, false, err
	}
	if err := m.uow.UploadSessionRepo().UpdateStatus(ctx, session.ID, domain.UploadSessionStatusCompleted); err != nil {
		return received, false, err
	}

	m.logger.Info("video transfer completed", "assetID", assetID, "bytes", received)

	return received, true, nil
}
