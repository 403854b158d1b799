package uploader

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// UploadInput carries what a caller declares when asking for an upload
// target
type UploadInput struct {
	Context            string     `json:"context"`
	EntityID           *uuid.UUID `json:"entity_id,omitempty"`
	FileName           string     `json:"filename"`
	ContentType        string     `json:"content_type"`
	SizeBytes          int64      `json:"size_bytes"`
	MaxDurationSeconds *int       `json:"max_duration_seconds,omitempty"`
}

// Ticket is the one-time upload target the broker issued. Retrying a
// request mints a new asset; a ticket is never reused across assets.
type Ticket struct {
	AssetID         uuid.UUID         `json:"asset_id"`
	UploadURL       string            `json:"upload_url"`
	ProviderAssetID string            `json:"provider_asset_id"`
	Headers         map[string]string `json:"headers"`
	ExpiresAt       *time.Time        `json:"expires_at"`
	ChunkSize       int64             `json:"chunk_size,omitempty"`
}

// RequestImageUpload asks the server for a direct-to-storage image upload
// target.
func (c *Client) RequestImageUpload(ctx context.Context, input UploadInput) (*Ticket, error) {
	var ticket Ticket
	if err := c.doJSON(ctx, http.MethodPost, c.url("/api/v1/media/upload/image"), input, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// RequestVideoUpload asks the server for a resumable video upload target.
// The returned ticket carries the chunk size the transfer must use.
func (c *Client) RequestVideoUpload(ctx context.Context, input UploadInput) (*Ticket, error) {
	var ticket Ticket
	if err := c.doJSON(ctx, http.MethodPost, c.url("/api/v1/media/upload/video"), input, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}
