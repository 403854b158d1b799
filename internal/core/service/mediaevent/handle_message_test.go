package mediaevent_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/shacoof/kitchen48-sub000/internal/adapters/repository"
	"github.com/shacoof/kitchen48-sub000/internal/adapters/storage"
	"github.com/shacoof/kitchen48-sub000/internal/config"
	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
	"github.com/shacoof/kitchen48-sub000/internal/core/port"
	"github.com/shacoof/kitchen48-sub000/internal/core/service/mediaevent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testNATSCfg = config.NATSConfig{
	StorageSubject:   "media.storage.events",
	TranscodeSubject: "media.transcode.results",
}

var testMediaCfg = config.MediaConfig{
	CDNBaseURL:   "https://cdn.kitchen48.example",
	ThumbnailDim: 320,
}

func newTestHandler(uow *repository.MockUnitOfWork) port.MessageService {
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return mediaevent.NewMediaEventService(uow, storage.NewMockStorage(), testMediaCfg, testNATSCfg, discardLogger)
}

func multipartCompleteEvent(key string) []byte {
	payload := fmt.Sprintf(`{
		"EventName": "s3:ObjectCreated:CompleteMultipartUpload",
		"Key": %q,
		"Records": [{
			"eventName": "s3:ObjectCreated:CompleteMultipartUpload",
			"s3": {
				"bucket": {"name": "kitchen48"},
				"object": {"key": %q, "size": 1024, "eTag": "abc"}
			},
			"eventTime": "2026-01-01T00:00:00Z"
		}]
	}`, key, key)
	return []byte(payload)
}

func TestHandleMessage_StorageEvent_MultipartCompleteMarksProcessing(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	handler := newTestHandler(mockUow)

	assetID := uuid.New()

	mockUow.GetAssetRepoMock().
		On("MarkProcessing", ctx, assetID).
		Return(nil)

	// Act
	err := handler.HandleMessage(ctx, testNATSCfg.StorageSubject, multipartCompleteEvent("video/"+assetID.String()))

	// Assert
	assert.NoError(t, err)
	mockUow.GetAssetRepoMock().AssertExpectations(t)
}

func TestHandleMessage_StorageEvent_DuplicateDeliveryIsAcked(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	handler := newTestHandler(mockUow)

	assetID := uuid.New()

	mockUow.GetAssetRepoMock().
		On("MarkProcessing", ctx, assetID).
		Return(domain.ErrAssetStateConflict)

	// Act
	err := handler.HandleMessage(ctx, testNATSCfg.StorageSubject, multipartCompleteEvent("video/"+assetID.String()))

	// Assert
	assert.NoError(t, err)
}

func TestHandleMessage_StorageEvent_ThumbnailPutIgnored(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	handler := newTestHandler(mockUow)

	// Act
	err := handler.HandleMessage(ctx, testNATSCfg.StorageSubject, multipartCompleteEvent("image/"+uuid.NewString()+"_thumb.jpg"))

	// Assert
	assert.NoError(t, err)
	mockUow.GetAssetRepoMock().AssertNotCalled(t, "MarkProcessing", mock.Anything, mock.Anything)
}

func TestHandleMessage_StorageEvent_BadPayload(t *testing.T) {
	// Arrange
	ctx := context.Background()
	handler := newTestHandler(repository.NewMockUnitOfWork())

	// Act
	err := handler.HandleMessage(ctx, testNATSCfg.StorageSubject, []byte("{not json"))

	// Assert
	assert.Error(t, err)
}

func TestHandleMessage_TranscodeResult_Ready(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	handler := newTestHandler(mockUow)

	assetID := uuid.New()
	duration := 34.5
	width, height := 1920, 1080

	asset := &domain.MediaAsset{
		ID:              assetID,
		Type:            domain.MediaTypeVideo,
		ProviderAssetID: "video/" + assetID.String(),
		Status:          domain.AssetStatusProcessing,
	}

	result := domain.TranscodeResult{
		AssetID:         assetID,
		Status:          domain.TranscodeStatusReady,
		DurationSeconds: &duration,
		Width:           &width,
		Height:          &height,
		RenditionKey:    "video/" + assetID.String() + "/720p.mp4",
		ThumbnailKey:    "video/" + assetID.String() + "_thumb.jpg",
	}
	data, _ := json.Marshal(result)

	mockUow.GetAssetRepoMock().
		On("FindByID", ctx, assetID).
		Return(asset, nil)
	mockUow.GetAssetRepoMock().
		On("MarkReady", ctx, assetID, mock.MatchedBy(func(c domain.AssetCompletion) bool {
			return c.URL == testMediaCfg.CDNBaseURL+"/"+result.RenditionKey &&
				c.ThumbnailURL == testMediaCfg.CDNBaseURL+"/"+result.ThumbnailKey &&
				c.DurationSeconds != nil && *c.DurationSeconds == duration &&
				c.Width != nil && *c.Width == 1920
		})).
		Return(nil)

	// Act
	err := handler.HandleMessage(ctx, testNATSCfg.TranscodeSubject, data)

	// Assert
	assert.NoError(t, err)
	mockUow.GetAssetRepoMock().AssertExpectations(t)
}

func TestHandleMessage_TranscodeResult_Failed(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	handler := newTestHandler(mockUow)

	assetID := uuid.New()
	data, _ := json.Marshal(domain.TranscodeResult{
		AssetID: assetID,
		Status:  domain.TranscodeStatusFailed,
		Error:   "unsupported codec",
	})

	mockUow.GetAssetRepoMock().
		On("MarkError", ctx, assetID, "unsupported codec").
		Return(nil)

	// Act
	err := handler.HandleMessage(ctx, testNATSCfg.TranscodeSubject, data)

	// Assert
	assert.NoError(t, err)
	mockUow.GetAssetRepoMock().AssertExpectations(t)
}

func TestHandleMessage_UnknownSubject(t *testing.T) {
	// Arrange
	ctx := context.Background()
	handler := newTestHandler(repository.NewMockUnitOfWork())

	// Act
	err := handler.HandleMessage(ctx, "media.unrelated", []byte("{}"))

	// Assert
	assert.Error(t, err)
}
