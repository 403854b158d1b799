package media

import (
	"errors"
	"net/http"

	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
)

// DeleteAssetV1 removes an asset and its stored objects
func (h *HandlerV1) DeleteAssetV1(w http.ResponseWriter, r *http.Request) {
	assetID, ok := assetIDParam(w, r)
	if !ok {
		return
	}

	err := h.mediaService.DeleteAsset(r.Context(), assetID)
	switch {
	case errors.Is(err, domain.ErrAssetNotFound):
		http.Error(w, "asset not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("error deleting asset", "assetID", assetID, "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		w.WriteHeader(http.StatusNoContent)
		return
	}
}
