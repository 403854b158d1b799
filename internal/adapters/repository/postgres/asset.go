package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
	"github.com/shacoof/kitchen48-sub000/internal/core/port"
)

type sqlAssetRepository struct {
	db SQLQuerier
}

// NewSqlAssetRepository creates sqlAssetRepository that implements port.AssetRepository
func NewSqlAssetRepository(db SQLQuerier) port.AssetRepository {
	return &sqlAssetRepository{
		db: db,
	}
}

const assetColumns = `id, type, context, entity_id, provider_asset_id, status, url, thumbnail_url,
       original_name, mime_type, file_size, duration_seconds, width, height,
       error_message, uploaded_by, created_at, updated_at`

// Create creates a new media asset record
func (s *sqlAssetRepository) Create(ctx context.Context, asset domain.MediaAsset) error {
	query := `INSERT INTO media_asset (id, type, context, entity_id, provider_asset_id, status,
                                       original_name, mime_type, file_size, uploaded_by)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := s.db.ExecContext(ctx, query,
		asset.ID,
		asset.Type,
		asset.Context,
		asset.EntityID,
		asset.ProviderAssetID,
		asset.Status,
		asset.OriginalName,
		asset.MimeType,
		asset.FileSize,
		asset.UploadedBy,
	)
	if err != nil {
		return fmt.Errorf("error inserting media asset: %w", err)
	}
	return nil
}

// FindByID finds an asset by id
func (s *sqlAssetRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.MediaAsset, error) {
	query := `SELECT ` + assetColumns + ` FROM media_asset WHERE id = $1`

	row := s.db.QueryRowContext(ctx, query, id)
	asset, err := scanAsset(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}
	return asset, nil
}

// MarkProcessing moves a pending asset into processing. The status guard in
// the WHERE clause enforces the monotonic lifecycle.
func (s *sqlAssetRepository) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE media_asset
              SET status = 'processing', updated_at = now()
              WHERE id = $1 AND status = 'pending'`

	return s.guardedUpdate(ctx, id, query, id)
}

// MarkReady finalizes an asset with its served URLs and media metadata
func (s *sqlAssetRepository) MarkReady(ctx context.Context, id uuid.UUID, completion domain.AssetCompletion) error {
	query := `UPDATE media_asset
              SET status = 'ready', url = $2, thumbnail_url = $3, duration_seconds = $4,
                  width = $5, height = $6, updated_at = now()
              WHERE id = $1 AND status IN ('pending', 'processing')`

	return s.guardedUpdate(ctx, id, query,
		id,
		completion.URL,
		completion.ThumbnailURL,
		completion.DurationSeconds,
		completion.Width,
		completion.Height,
	)
}

// MarkError records a terminal failure with the provider's diagnostic message
func (s *sqlAssetRepository) MarkError(ctx context.Context, id uuid.UUID, message string) error {
	query := `UPDATE media_asset
              SET status = 'error', error_message = $2, updated_at = now()
              WHERE id = $1 AND status IN ('pending', 'processing')`

	return s.guardedUpdate(ctx, id, query, id, message)
}

// Delete removes the asset record
func (s *sqlAssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM media_asset WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting media asset: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrAssetNotFound
	}
	return nil
}

// FindStalePending finds assets stuck in pending since before olderThan
func (s *sqlAssetRepository) FindStalePending(ctx context.Context, olderThan time.Time) ([]domain.MediaAsset, error) {
	query := `SELECT ` + assetColumns + `
              FROM media_asset
              WHERE status = 'pending' AND updated_at < $1`

	rows, err := s.db.QueryContext(ctx, query, olderThan)
	if err != nil {
		return nil, fmt.Errorf("error querying stale assets: %w", err)
	}
	defer rows.Close()

	var assets []domain.MediaAsset
	for rows.Next() {
		asset, err := scanAsset(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("error scanning media asset: %w", err)
		}
		assets = append(assets, *asset)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assets: %w", err)
	}

	return assets, nil
}

// guardedUpdate runs a status-guarded UPDATE and distinguishes a missing row
// from a row the lifecycle forbids touching
func (s *sqlAssetRepository) guardedUpdate(ctx context.Context, id uuid.UUID, query string, args ...any) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error updating media asset: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if _, findErr := s.FindByID(ctx, id); findErr != nil {
			return findErr
		}
		return domain.ErrAssetStateConflict
	}

	return nil
}

func scanAsset(scan func(dest ...any) error) (*domain.MediaAsset, error) {
	var a domain.MediaAsset
	var entityID, uploadedBy uuid.NullUUID
	var duration sql.NullFloat64
	var width, height sql.NullInt64

	err := scan(
		&a.ID,
		&a.Type,
		&a.Context,
		&entityID,
		&a.ProviderAssetID,
		&a.Status,
		&a.URL,
		&a.ThumbnailURL,
		&a.OriginalName,
		&a.MimeType,
		&a.FileSize,
		&duration,
		&width,
		&height,
		&a.ErrorMessage,
		&uploadedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if entityID.Valid {
		a.EntityID = &entityID.UUID
	}
	if uploadedBy.Valid {
		a.UploadedBy = &uploadedBy.UUID
	}
	if duration.Valid {
		a.DurationSeconds = &duration.Float64
	}
	if width.Valid {
		w := int(width.Int64)
		a.Width = &w
	}
	if height.Valid {
		h := int(height.Int64)
		a.Height = &h
	}

	return &a, nil
}
