package media

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/shacoof/kitchen48-sub000/internal/core/port"
)

// HandlerV1 is the handler for v1 media routes
type HandlerV1 struct {
	mediaService port.MediaService
	logger       *slog.Logger
}

// NewMediaHandlerV1 creates HandlerV1
func NewMediaHandlerV1(service port.MediaService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		mediaService: service,
		logger:       logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/upload/image", h.RequestImageUploadV1)
	router.Post("/upload/video", h.RequestVideoUploadV1)
	router.Head("/{assetID}/content", h.TransferOffsetV1)
	router.Post("/{assetID}/content", h.AppendChunkV1)
	router.Post("/{assetID}/confirm", h.ConfirmImageV1)
	router.Post("/{assetID}/poll", h.PollAssetV1)
	router.Get("/{assetID}", h.GetAssetV1)
	router.Delete("/{assetID}", h.DeleteAssetV1)

	return router
}
