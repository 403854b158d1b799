package domain

import (
	"time"

	"github.com/google/uuid"
)

// MediaType represents the kind of media an asset holds
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// AssetStatus represents the lifecycle status of a media asset
type AssetStatus string

const (
	AssetStatusPending    AssetStatus = "pending"
	AssetStatusProcessing AssetStatus = "processing"
	AssetStatusReady      AssetStatus = "ready"
	AssetStatusError      AssetStatus = "error"
)

// Terminal reports whether the status is final. A terminal asset never
// changes status again; a superseded upload mints a new asset instead.
func (s AssetStatus) Terminal() bool {
	return s == AssetStatusReady || s == AssetStatusError
}

// CanTransition reports whether moving from s to next is a legal
// status transition. Transitions are monotonic: pending may become
// processing, ready or error; processing may become ready or error.
func (s AssetStatus) CanTransition(next AssetStatus) bool {
	switch s {
	case AssetStatusPending:
		return next == AssetStatusProcessing || next == AssetStatusReady || next == AssetStatusError
	case AssetStatusProcessing:
		return next == AssetStatusReady || next == AssetStatusError
	default:
		return false
	}
}

// UploadContext identifies where in the application an upload originates
type UploadContext string

const (
	UploadContextRecipe  UploadContext = "recipe"
	UploadContextStep    UploadContext = "step"
	UploadContextProfile UploadContext = "profile"
)

// ValidFor reports whether the context is allowed for the given media type.
// Profile uploads are image-only.
func (c UploadContext) ValidFor(mediaType MediaType) bool {
	switch c {
	case UploadContextRecipe, UploadContextStep:
		return true
	case UploadContextProfile:
		return mediaType == MediaTypeImage
	default:
		return false
	}
}

// AssetCompletion carries the fields set when an asset becomes ready
type AssetCompletion struct {
	URL             string
	ThumbnailURL    string
	DurationSeconds *float64
	Width           *int
	Height          *int
}

// MediaAsset represents one uploaded media file and its processing outcome
type MediaAsset struct {
	ID              uuid.UUID
	Type            MediaType
	Context         UploadContext
	EntityID        *uuid.UUID
	ProviderAssetID string
	Status          AssetStatus
	URL             string
	ThumbnailURL    string
	OriginalName    string
	MimeType        string
	FileSize        int64
	DurationSeconds *float64
	Width           *int
	Height          *int
	ErrorMessage    string
	UploadedBy      *uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
