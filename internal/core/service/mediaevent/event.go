package mediaevent

import (
	"log/slog"

	"github.com/shacoof/kitchen48-sub000/internal/config"
	"github.com/shacoof/kitchen48-sub000/internal/core/port"
)

type mediaEventService struct {
	uow      port.UnitOfWork
	storage  port.ObjectStorage
	mediaCfg config.MediaConfig
	natsCfg  config.NATSConfig
	logger   *slog.Logger
}

// NewMediaEventService creates the handler for broker messages: bucket
// notifications from the storage provider and terminal results from the
// transcoder.
func NewMediaEventService(uow port.UnitOfWork, storage port.ObjectStorage, mediaCfg config.MediaConfig, natsCfg config.NATSConfig, logger *slog.Logger) port.MessageService {
	return &mediaEventService{
		uow:      uow,
		storage:  storage,
		mediaCfg: mediaCfg,
		natsCfg:  natsCfg,
		logger:   logger,
	}
}
