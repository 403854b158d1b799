package media

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
	"github.com/shacoof/kitchen48-sub000/internal/core/port"
)

// V1UploadRequest is the request to obtain an upload target
type V1UploadRequest struct {
	Context            string     `json:"context"`
	EntityID           *uuid.UUID `json:"entity_id,omitempty"`
	FileName           string     `json:"filename"`
	ContentType        string     `json:"content_type"`
	SizeBytes          int64      `json:"size_bytes"`
	MaxDurationSeconds *int       `json:"max_duration_seconds,omitempty"`
}

// V1UploadResponse is the issued upload target
type V1UploadResponse struct {
	AssetID         uuid.UUID         `json:"asset_id"`
	UploadURL       string            `json:"upload_url"`
	ProviderAssetID string            `json:"provider_asset_id"`
	Headers         map[string]string `json:"headers"`
	ExpiresAt       *time.Time        `json:"expires_at"`
	ChunkSize       int64             `json:"chunk_size,omitempty"`
}

func (h *HandlerV1) RequestImageUploadV1(w http.ResponseWriter, r *http.Request) {

	var req V1UploadRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		h.logger.Error("error decoding image upload request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Context == "" || req.FileName == "" || req.ContentType == "" || req.SizeBytes == 0 {
		http.Error(w, "missing param", http.StatusBadRequest)
		return
	}

	ticket, requestErr := h.mediaService.RequestImageUpload(r.Context(), port.UploadRequest{
		Context:      domain.UploadContext(req.Context),
		EntityID:     req.EntityID,
		OriginalName: req.FileName,
		ContentType:  req.ContentType,
		SizeBytes:    req.SizeBytes,
	})
	switch {
	case errors.Is(requestErr, domain.ErrInvalidContext),
		errors.Is(requestErr, domain.ErrInvalidFileType),
		errors.Is(requestErr, domain.ErrFileSizeTooBig),
		errors.Is(requestErr, domain.ErrFileSizeEmpty):
		h.logger.Error("invalid image upload request", "error", requestErr)
		http.Error(w, requestErr.Error(), http.StatusBadRequest)
		return
	case requestErr != nil:
		h.logger.Error("error issuing image upload target", "error", requestErr)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	default:
		resp := V1UploadResponse{
			AssetID:         ticket.AssetID,
			UploadURL:       ticket.UploadURL,
			ProviderAssetID: ticket.ProviderAssetID,
			Headers:         ticket.Headers,
			ExpiresAt:       ticket.ExpiresAt,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}
