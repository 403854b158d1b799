package media

import (
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/shacoof/kitchen48-sub000/internal/config"
	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
	"github.com/shacoof/kitchen48-sub000/internal/core/port"
)

type mediaService struct {
	uow       port.UnitOfWork
	storage   port.ObjectStorage
	uploadCfg config.UploadConfig
	mediaCfg  config.MediaConfig
	baseURL   string
	logger    *slog.Logger
}

// NewMediaService creates a new media service. baseURL is the externally
// reachable base of this service, used to build resumable upload targets.
func NewMediaService(uow port.UnitOfWork, storage port.ObjectStorage, uploadCfg config.UploadConfig, mediaCfg config.MediaConfig, baseURL string, logger *slog.Logger) port.MediaService {
	return &mediaService{
		uow:       uow,
		storage:   storage,
		uploadCfg: uploadCfg,
		mediaCfg:  mediaCfg,
		baseURL:   strings.TrimRight(baseURL, "/"),
		logger:    logger,
	}
}

// AllowedImageMimeTypes is a whitelist of supported image MIME types and
// their extensions. Deterministic: does NOT rely on OS mime databases.
var AllowedImageMimeTypes = map[string][]string{
	"image/jpeg": {".jpg", ".jpeg"},
	"image/png":  {".png"},
	"image/webp": {".webp"},
	"image/gif":  {".gif"},
}

// AllowedVideoMimeTypes is the matching whitelist for video uploads
var AllowedVideoMimeTypes = map[string][]string{
	"video/mp4":        {".mp4"},
	"video/webm":       {".webm"},
	"video/quicktime":  {".mov"},
	"video/x-matroska": {".mkv"},
}

func (m *mediaService) validateMediaFile(filename, contentType string, mediaType domain.MediaType) (string, error) {

	mimeType := extractMimeType(contentType)
	if mimeType == "" {
		return "", fmt.Errorf("%w: invalid content type %q", domain.ErrInvalidFileType, contentType)
	}

	allowed := AllowedImageMimeTypes
	if mediaType == domain.MediaTypeVideo {
		allowed = AllowedVideoMimeTypes
	}

	allowedExts, ok := allowed[mimeType]
	if !ok {
		return "", fmt.Errorf("%w: unsupported MIME type %q for %s upload", domain.ErrInvalidFileType, mimeType, mediaType)
	}

	if err := validateExtension(filename, allowedExts); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidFileType, err)
	}

	return mimeType, nil
}

func validateExtension(filename string, allowedExts []string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return fmt.Errorf("no file extension found")
	}

	for _, allowed := range allowedExts {
		if ext == allowed {
			return nil
		}
	}

	return fmt.Errorf("extension %s is not allowed (expected one of: %v)", ext, allowedExts)
}

func extractMimeType(contentType string) string {
	mimeType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mimeType
}

func storageKey(mediaType domain.MediaType, id uuid.UUID) string {
	return fmt.Sprintf("%s/%s", mediaType, id.String())
}

func thumbnailKey(mediaType domain.MediaType, id uuid.UUID) string {
	return fmt.Sprintf("%s/%s_thumb.jpg", mediaType, id.String())
}

func (m *mediaService) cdnURL(key string) string {
	return strings.TrimRight(m.mediaCfg.CDNBaseURL, "/") + "/" + key
}

func (m *mediaService) contentURL(assetID uuid.UUID) string {
	return fmt.Sprintf("%s/api/v1/media/%s/content", m.baseURL, assetID)
}

func sniffIsImage(header []byte) bool {
	return strings.HasPrefix(http.DetectContentType(header), "image/")
}
