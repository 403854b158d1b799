package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shacoof/kitchen48-sub000/internal/adapters/repository/postgres"
	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
	"github.com/shacoof/kitchen48-sub000/internal/core/port"
	"github.com/stretchr/testify/require"
)

func TestSqlUnitOfWork(t *testing.T) {
	dbConnection, cleanup, truncate := postgres.NewTestDB(t)
	defer cleanup()
	ctx := context.Background()

	uow := postgres.NewUnitOfWork(dbConnection)
	assetRepo := postgres.NewSqlAssetRepository(dbConnection)

	t.Run("Execute - Commits on success", func(t *testing.T) {
		truncate()
		asset := newPendingAsset(domain.MediaTypeVideo)

		err := uow.Execute(ctx, func(uow port.UnitOfWork) error {
			if err := uow.AssetRepo().Create(ctx, asset); err != nil {
				return err
			}
			return uow.UploadSessionRepo().Create(ctx, domain.UploadSession{
				ID:               uuid.New(),
				AssetID:          asset.ID,
				ProviderUploadID: "upload-1",
				PartSize:         1024,
				TotalSize:        4096,
				Status:           domain.UploadSessionStatusOpen,
				ExpiresAt:        time.Now().Add(time.Hour),
			})
		})

		require.NoError(t, err)
		saved, err := assetRepo.FindByID(ctx, asset.ID)
		require.NoError(t, err)
		require.Equal(t, asset.ID, saved.ID)
	})

	t.Run("Execute - Rolls back everything on failure", func(t *testing.T) {
		truncate()
		asset := newPendingAsset(domain.MediaTypeImage)
		boom := errors.New("presign failed")

		err := uow.Execute(ctx, func(uow port.UnitOfWork) error {
			if err := uow.AssetRepo().Create(ctx, asset); err != nil {
				return err
			}
			return boom
		})

		require.ErrorIs(t, err, boom)
		_, findErr := assetRepo.FindByID(ctx, asset.ID)
		require.ErrorIs(t, findErr, domain.ErrAssetNotFound)
	})
}
