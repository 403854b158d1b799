package media_test

import (
	"io"
	"log/slog"
	"time"

	"github.com/shacoof/kitchen48-sub000/internal/adapters/repository"
	"github.com/shacoof/kitchen48-sub000/internal/adapters/storage"
	"github.com/shacoof/kitchen48-sub000/internal/config"
	"github.com/shacoof/kitchen48-sub000/internal/core/port"
	"github.com/shacoof/kitchen48-sub000/internal/core/service/media"
)

var defaultUploadCfg = config.UploadConfig{
	ImageMaxSize: 10 * 1024 * 1024,
	VideoMaxSize: 500 * 1024 * 1024,
	ChunkSize:    8 * 1024 * 1024,
	SessionTTL:   30 * time.Minute,
}

var defaultMediaCfg = config.MediaConfig{
	CDNBaseURL:   "https://cdn.kitchen48.example",
	ThumbnailDim: 320,
}

func newTestService(uow *repository.MockUnitOfWork, store *storage.MockStorage) port.MediaService {
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return media.NewMediaService(uow, store, defaultUploadCfg, defaultMediaCfg, "http://localhost:8080", discardLogger)
}
