package media

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
)

// ConfirmImageV1 finalizes an image upload after the client finished its
// transfer to the presigned target.
func (h *HandlerV1) ConfirmImageV1(w http.ResponseWriter, r *http.Request) {
	assetID, ok := assetIDParam(w, r)
	if !ok {
		return
	}

	asset, err := h.mediaService.ConfirmImage(r.Context(), assetID)
	switch {
	case errors.Is(err, domain.ErrAssetNotFound):
		http.Error(w, "asset not found", http.StatusNotFound)
		return
	case errors.Is(err, domain.ErrInvalidFileType):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, domain.ErrAssetRejected):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	case errors.Is(err, domain.ErrAssetStateConflict):
		http.Error(w, "asset is not confirmable in its current state", http.StatusConflict)
		return
	case err != nil:
		h.logger.Error("error confirming image", "assetID", assetID, "error", err)
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
