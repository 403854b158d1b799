package media

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
)

// V1AssetResponse is the wire shape of a media asset
type V1AssetResponse struct {
	AssetID         uuid.UUID  `json:"asset_id"`
	Type            string     `json:"type"`
	Context         string     `json:"context"`
	EntityID        *uuid.UUID `json:"entity_id,omitempty"`
	Status          string     `json:"status"`
	URL             string     `json:"url,omitempty"`
	ThumbnailURL    string     `json:"thumbnail_url,omitempty"`
	OriginalName    string     `json:"original_name"`
	MimeType        string     `json:"mime_type"`
	FileSize        int64      `json:"file_size"`
	DurationSeconds *float64   `json:"duration_seconds,omitempty"`
	Width           *int       `json:"width,omitempty"`
	Height          *int       `json:"height,omitempty"`
	ErrorMessage    string     `json:"error_message,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func assetResponse(asset *domain.MediaAsset) V1AssetResponse {
	return V1AssetResponse{
		AssetID:         asset.ID,
		Type:            string(asset.Type),
		Context:         string(asset.Context),
		EntityID:        asset.EntityID,
		Status:          string(asset.Status),
		URL:             asset.URL,
		ThumbnailURL:    asset.ThumbnailURL,
		OriginalName:    asset.OriginalName,
		MimeType:        asset.MimeType,
		FileSize:        asset.FileSize,
		DurationSeconds: asset.DurationSeconds,
		Width:           asset.Width,
		Height:          asset.Height,
		ErrorMessage:    asset.ErrorMessage,
		CreatedAt:       asset.CreatedAt,
		UpdatedAt:       asset.UpdatedAt,
	}
}

// assetIDParam parses the assetID url parameter, writing the error response
// itself when the id is missing or malformed
func assetIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "assetID")
	if raw == "" {
		http.Error(w, "asset id is required", http.StatusBadRequest)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}
