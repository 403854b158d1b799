package media

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
)

// V1ChunkResponse reports the server side state of a resumable transfer
// after a chunk lands
type V1ChunkResponse struct {
	Received  int64 `json:"received"`
	Completed bool  `json:"completed"`
}

// TransferOffsetV1 answers a resume probe with the byte offset the open
// session expects next, carried in the Upload-Offset header.
func (h *HandlerV1) TransferOffsetV1(w http.ResponseWriter, r *http.Request) {
	assetID, ok := assetIDParam(w, r)
	if !ok {
		return
	}

	offset, err := h.mediaService.TransferOffset(r.Context(), assetID)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		http.Error(w, "no open upload session", http.StatusNotFound)
		return
	case errors.Is(err, domain.ErrSessionClosed):
		http.Error(w, "upload session already closed", http.StatusGone)
		return
	case err != nil:
		h.logger.Error("error probing transfer offset", "assetID", assetID, "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		w.Header().Set("Upload-Offset", strconv.FormatInt(offset, 10))
		w.WriteHeader(http.StatusOK)
		return
	}
}

// AppendChunkV1 ingests one chunk of a resumable transfer. The chunk's
// position is declared in a Content-Range header of the form
// "bytes <start>-<end>/<total>".
func (h *HandlerV1) AppendChunkV1(w http.ResponseWriter, r *http.Request) {
	assetID, ok := assetIDParam(w, r)
	if !ok {
		return
	}

	start, end, _, err := parseContentRange(r.Header.Get("Content-Range"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	length := end - start + 1

	received, completed, appendErr := h.mediaService.AppendChunk(r.Context(), assetID, start, length, http.MaxBytesReader(w, r.Body, length))
	switch {
	case errors.Is(appendErr, domain.ErrSessionNotFound):
		http.Error(w, "no open upload session", http.StatusNotFound)
		return
	case errors.Is(appendErr, domain.ErrSessionClosed):
		http.Error(w, "upload session already closed", http.StatusGone)
		return
	case errors.Is(appendErr, domain.ErrOffsetMismatch):
		w.Header().Set("Upload-Offset", strconv.FormatInt(received, 10))
		http.Error(w, appendErr.Error(), http.StatusConflict)
		return
	case errors.Is(appendErr, domain.ErrChunkOverrun), errors.Is(appendErr, domain.ErrFileSizeEmpty):
		http.Error(w, appendErr.Error(), http.StatusBadRequest)
		return
	case appendErr != nil:
		h.logger.Error("error ingesting chunk", "assetID", assetID, "error", appendErr)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		resp := V1ChunkResponse{
			Received:  received,
			Completed: completed,
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Upload-Offset", strconv.FormatInt(received, 10))
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}

// parseContentRange parses "bytes <start>-<end>/<total>"
func parseContentRange(header string) (start, end, total int64, err error) {
	if header == "" {
		return 0, 0, 0, errors.New("Content-Range header is required")
	}
	n, scanErr := fmt.Sscanf(header, "bytes %d-%d/%d", &start, &end, &total)
	if scanErr != nil || n != 3 {
		return 0, 0, 0, fmt.Errorf("malformed Content-Range %q", header)
	}
	if start < 0 || end < start || total < end+1 {
		return 0, 0, 0, fmt.Errorf("inconsistent Content-Range %q", header)
	}
	return start, end, total, nil
}
