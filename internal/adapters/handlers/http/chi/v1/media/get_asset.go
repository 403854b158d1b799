package media

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
)

// GetAssetV1 returns the asset record
func (h *HandlerV1) GetAssetV1(w http.ResponseWriter, r *http.Request) {
	h.respondWithAsset(w, r, h.mediaService.GetAsset)
}

// PollAssetV1 returns the asset record for status polling. It is the same
// read as GetAssetV1 on a dedicated route so polling traffic stands out
// in request logs.
func (h *HandlerV1) PollAssetV1(w http.ResponseWriter, r *http.Request) {
	h.respondWithAsset(w, r, h.mediaService.PollAsset)
}

func (h *HandlerV1) respondWithAsset(w http.ResponseWriter, r *http.Request, read func(ctx context.Context, id uuid.UUID) (*domain.MediaAsset, error)) {
	assetID, ok := assetIDParam(w, r)
	if !ok {
		return
	}

	asset, err := read(r.Context(), assetID)
	switch {
	case errors.Is(err, domain.ErrAssetNotFound):
		http.Error(w, "asset not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("error reading asset", "assetID", assetID, "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(assetResponse(asset)); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}
