package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
	"github.com/shacoof/kitchen48-sub000/internal/core/port"
	"github.com/stretchr/testify/mock"
)

type MockAssetRepository struct {
	mock.Mock
}

func NewMockAssetRepository() *MockAssetRepository {
	return &MockAssetRepository{}
}

func (m *MockAssetRepository) Create(ctx context.Context, asset domain.MediaAsset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.MediaAsset, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.MediaAsset), args.Error(1)
}

func (m *MockAssetRepository) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssetRepository) MarkReady(ctx context.Context, id uuid.UUID, completion domain.AssetCompletion) error {
	args := m.Called(ctx, id, completion)
	return args.Error(0)
}

func (m *MockAssetRepository) MarkError(ctx context.Context, id uuid.UUID, message string) error {
	args := m.Called(ctx, id, message)
	return args.Error(0)
}

func (m *MockAssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssetRepository) FindStalePending(ctx context.Context, olderThan time.Time) ([]domain.MediaAsset, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).([]domain.MediaAsset), args.Error(1)
}

type MockUploadSessionRepository struct {
	mock.Mock
}

func NewMockUploadSessionRepository() *MockUploadSessionRepository {
	return &MockUploadSessionRepository{}
}

func (m *MockUploadSessionRepository) Create(ctx context.Context, session domain.UploadSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockUploadSessionRepository) FindOpenByAssetID(ctx context.Context, assetID uuid.UUID) (*domain.UploadSession, error) {
	args := m.Called(ctx, assetID)
	return args.Get(0).(*domain.UploadSession), args.Error(1)
}

func (m *MockUploadSessionRepository) Advance(ctx context.Context, id uuid.UUID, bytesReceived int64, nextPart int) error {
	args := m.Called(ctx, id, bytesReceived, nextPart)
	return args.Error(0)
}

func (m *MockUploadSessionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.UploadSessionStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockUploadSessionRepository) FindAllExpired(ctx context.Context, now time.Time) ([]domain.UploadSession, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.UploadSession), args.Error(1)
}

type MockUnitOfWork struct {
	mock.Mock
	assetRepo         *MockAssetRepository
	uploadSessionRepo *MockUploadSessionRepository
}

func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		assetRepo:         &MockAssetRepository{},
		uploadSessionRepo: &MockUploadSessionRepository{},
	}
}

func (m *MockUnitOfWork) AssetRepo() port.AssetRepository {
	return m.assetRepo
}

func (m *MockUnitOfWork) UploadSessionRepo() port.UploadSessionRepository {
	return m.uploadSessionRepo
}

func (m *MockUnitOfWork) Execute(ctx context.Context, fn func(uow port.UnitOfWork) error) error {
	args := m.Called(ctx, fn)

	if err := fn(m); err != nil {
		return err
	}

	return args.Error(0)
}

func (m *MockUnitOfWork) GetAssetRepoMock() *MockAssetRepository {
	return m.assetRepo
}

func (m *MockUnitOfWork) GetUploadSessionRepoMock() *MockUploadSessionRepository {
	return m.uploadSessionRepo
}
