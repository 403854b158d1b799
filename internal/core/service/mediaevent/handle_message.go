package mediaevent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
)

const eventMultipartComplete = "s3:ObjectCreated:CompleteMultipartUpload"

// HandleMessage dispatches a broker message on its subject.
func (m *mediaEventService) HandleMessage(ctx context.Context, subject string, data []byte) error {
	switch subject {
	case m.natsCfg.StorageSubject:
		return m.handleStorageEvent(ctx, data)
	case m.natsCfg.TranscodeSubject:
		return m.handleTranscodeResult(ctx, data)
	default:
		return fmt.Errorf("unexpected subject %q", subject)
	}
}

// handleStorageEvent reacts to bucket notifications. A completed multipart
// upload means a video finished its transfer; the asset moves to processing
// and waits for the transcoder. Other object events carry no state change.
func (m *mediaEventService) handleStorageEvent(ctx context.Context, data []byte) error {
	var event domain.StorageEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("could not unmarshal storage event: %w", err)
	}
	if len(event.Records) == 0 {
		return errors.New("no records in storage event")
	}

	record := event.Records[0]

	decodedKey, err := url.QueryUnescape(record.S3.Object.Key)
	if err != nil {
		return err
	}

	if record.EventName != eventMultipartComplete {
		m.logger.Debug("ignoring storage event", "eventName", record.EventName, "key", decodedKey)
		return nil
	}
	if strings.HasSuffix(decodedKey, "_thumb.jpg") {
		return nil
	}

	assetID, err := assetIDFromKey(decodedKey)
	if err != nil {
		return err
	}

	m.logger.Info("video transfer landed in storage", "key", decodedKey, "assetID", assetID)

	if err := m.uow.AssetRepo().MarkProcessing(ctx, assetID); err != nil {
		// a duplicate delivery after the asset already advanced is not
		// an error worth redelivering
		if errors.Is(err, domain.ErrAssetStateConflict) {
			m.logger.Warn("asset already past pending", "assetID", assetID)
			return nil
		}
		return err
	}
	return nil
}

// handleTranscodeResult applies the transcoder's terminal verdict to the
// asset.
func (m *mediaEventService) handleTranscodeResult(ctx context.Context, data []byte) error {
	var result domain.TranscodeResult
	if err := json.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("could not unmarshal transcode result: %w", err)
	}
	if result.AssetID == uuid.Nil {
		return errors.New("transcode result without asset id")
	}

	switch result.Status {
	case domain.TranscodeStatusFailed:
		message := result.Error
		if message == "" {
			message = "transcoding failed"
		}
		if err := m.uow.AssetRepo().MarkError(ctx, result.AssetID, message); err != nil {
			if errors.Is(err, domain.ErrAssetStateConflict) {
				m.logger.Warn("asset already terminal", "assetID", result.AssetID)
				return nil
			}
			return err
		}
		m.logger.Info("asset marked error after transcoding", "assetID", result.AssetID, "error", message)
		return nil

	case domain.TranscodeStatusReady:
		asset, err := m.uow.AssetRepo().FindByID(ctx, result.AssetID)
		if err != nil {
			return err
		}

		renditionKey := result.RenditionKey
		if renditionKey == "" {
			renditionKey = asset.ProviderAssetID
		}

		completion := domain.AssetCompletion{
			URL:             m.cdnURL(renditionKey),
			DurationSeconds: result.DurationSeconds,
			Width:           result.Width,
			Height:          result.Height,
		}
		if result.ThumbnailKey != "" {
			completion.ThumbnailURL = m.cdnURL(result.ThumbnailKey)
		}

		if err := m.uow.AssetRepo().MarkReady(ctx, result.AssetID, completion); err != nil {
			if errors.Is(err, domain.ErrAssetStateConflict) {
				m.logger.Warn("asset already terminal", "assetID", result.AssetID)
				return nil
			}
			return err
		}
		m.logger.Info("asset ready", "assetID", result.AssetID)
		return nil

	default:
		return fmt.Errorf("unexpected transcode status %q", result.Status)
	}
}

func (m *mediaEventService) cdnURL(key string) string {
	return fmt.Sprintf("%s/%s", strings.TrimSuffix(m.mediaCfg.CDNBaseURL, "/"), key)
}

// assetIDFromKey recovers the asset id from a storage key of the form
// "<type>/<uuid>"
func assetIDFromKey(key string) (uuid.UUID, error) {
	trimmed := key
	if index := strings.LastIndex(key, "/"); index != -1 {
		trimmed = key[index+1:]
	}
	id, err := uuid.Parse(trimmed)
	if err != nil {
		return uuid.Nil, fmt.Errorf("storage key %q does not carry an asset id: %w", key, err)
	}
	return id, nil
}
