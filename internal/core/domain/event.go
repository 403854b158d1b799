package domain

import "github.com/google/uuid"

// StorageEvent represents a MinIO bucket notification
type StorageEvent struct {
	EventName string `json:"EventName"`
	Key       string `json:"Key"`
	Records   []struct {
		EventName string `json:"eventName"`
		S3        struct {
			Bucket struct {
				Name string `json:"name"`
			} `json:"bucket"`
			Object struct {
				Key  string `json:"key"`
				Size int64  `json:"size"`
				ETag string `json:"eTag"`
			} `json:"object"`
		} `json:"s3"`
		EventTime string `json:"eventTime"`
	} `json:"Records"`
}

// TranscodeStatus is the terminal outcome a transcoder reports for an asset
type TranscodeStatus string

const (
	TranscodeStatusReady  TranscodeStatus = "ready"
	TranscodeStatusFailed TranscodeStatus = "failed"
)

// TranscodeResult is the message the external transcoder publishes once a
// video asset reaches a terminal processing state
type TranscodeResult struct {
	AssetID         uuid.UUID       `json:"assetId"`
	Status          TranscodeStatus `json:"status"`
	Error           string          `json:"error,omitempty"`
	DurationSeconds *float64        `json:"durationSeconds,omitempty"`
	Width           *int            `json:"width,omitempty"`
	Height          *int            `json:"height,omitempty"`
	RenditionKey    string          `json:"renditionKey,omitempty"`
	ThumbnailKey    string          `json:"thumbnailKey,omitempty"`
}
