package domain

import (
	"time"

	"github.com/google/uuid"
)

// UploadSessionStatus represents the status of a resumable upload session
type UploadSessionStatus string

const (
	UploadSessionStatusOpen      UploadSessionStatus = "open"
	UploadSessionStatusCompleted UploadSessionStatus = "completed"
	UploadSessionStatusAborted   UploadSessionStatus = "aborted"
)

// UploadSession represents the server-side state of one resumable video
// transfer. Chunks are accepted strictly in order: a chunk is valid only
// when its offset equals BytesReceived.
type UploadSession struct {
	ID               uuid.UUID
	AssetID          uuid.UUID
	ProviderUploadID string
	PartSize         int64
	TotalSize        int64
	BytesReceived    int64
	NextPart         int
	Status           UploadSessionStatus
	ExpiresAt        time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Remaining returns how many bytes the session still expects
func (s UploadSession) Remaining() int64 {
	return s.TotalSize - s.BytesReceived
}
