package media

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
	"github.com/shacoof/kitchen48-sub000/internal/core/port"
)

func (h *HandlerV1) RequestVideoUploadV1(w http.ResponseWriter, r *http.Request) {

	var req V1UploadRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		h.logger.Error("error decoding video upload request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Context == "" || req.FileName == "" || req.ContentType == "" || req.SizeBytes == 0 {
		http.Error(w, "missing param", http.StatusBadRequest)
		return
	}

	ticket, requestErr := h.mediaService.RequestVideoUpload(r.Context(), port.UploadRequest{
		Context:            domain.UploadContext(req.Context),
		EntityID:           req.EntityID,
		OriginalName:       req.FileName,
		ContentType:        req.ContentType,
		SizeBytes:          req.SizeBytes,
		MaxDurationSeconds: req.MaxDurationSeconds,
	})
	switch {
	case errors.Is(requestErr, domain.ErrInvalidContext),
		errors.Is(requestErr, domain.ErrInvalidFileType),
		errors.Is(requestErr, domain.ErrFileSizeTooBig),
		errors.Is(requestErr, domain.ErrFileSizeEmpty):
		h.logger.Error("invalid video upload request", "error", requestErr)
		http.Error(w, requestErr.Error(), http.StatusBadRequest)
		return
	case requestErr != nil:
		h.logger.Error("error issuing video upload target", "error", requestErr)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	default:
		resp := V1UploadResponse{
			AssetID:         ticket.AssetID,
			UploadURL:       ticket.UploadURL,
			ProviderAssetID: ticket.ProviderAssetID,
			Headers:         ticket.Headers,
			ExpiresAt:       ticket.ExpiresAt,
			ChunkSize:       ticket.ChunkSize,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}
