package media

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
	"github.com/shacoof/kitchen48-sub000/internal/core/port"
	"github.com/stretchr/testify/mock"
)

// MockMediaService is a mock implementation of port.MediaService
type MockMediaService struct {
	mock.Mock
}

// NewMockMediaService creates a new MockMediaService
func NewMockMediaService() *MockMediaService {
	return &MockMediaService{}
}

func (m *MockMediaService) RequestImageUpload(ctx context.Context, req port.UploadRequest) (*port.UploadTicket, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(*port.UploadTicket), args.Error(1)
}

func (m *MockMediaService) RequestVideoUpload(ctx context.Context, req port.UploadRequest) (*port.UploadTicket, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(*port.UploadTicket), args.Error(1)
}

func (m *MockMediaService) TransferOffset(ctx context.Context, assetID uuid.UUID) (int64, error) {
	args := m.Called(ctx, assetID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMediaService) AppendChunk(ctx context.Context, assetID uuid.UUID, offset int64, length int64, chunk io.Reader) (int64, bool, error) {
	args := m.Called(ctx, assetID, offset, length, chunk)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockMediaService) ConfirmImage(ctx context.Context, assetID uuid.UUID) (*domain.MediaAsset, error) {
	args := m.Called(ctx, assetID)
	return args.Get(0).(*domain.MediaAsset), args.Error(1)
}

func (m *MockMediaService) PollAsset(ctx context.Context, assetID uuid.UUID) (*domain.MediaAsset, error) {
	args := m.Called(ctx, assetID)
	return args.Get(0).(*domain.MediaAsset), args.Error(1)
}

func (m *MockMediaService) GetAsset(ctx context.Context, assetID uuid.UUID) (*domain.MediaAsset, error) {
	args := m.Called(ctx, assetID)
	return args.Get(0).(*domain.MediaAsset), args.Error(1)
}

func (m *MockMediaService) DeleteAsset(ctx context.Context, assetID uuid.UUID) error {
	args := m.Called(ctx, assetID)
	return args.Error(0)
}

func (m *MockMediaService) FinalizeExpiredSessions(ctx context.Context, now time.Time) error {
	args := m.Called(ctx, now)
	return args.Error(0)
}
