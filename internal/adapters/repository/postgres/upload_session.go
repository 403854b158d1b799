package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
	"github.com/shacoof/kitchen48-sub000/internal/core/port"
)

type sqlUploadSessionRepository struct {
	db SQLQuerier
}

// NewSQLUploadSessionRepository creates a new sqlUploadSessionRepository
func NewSQLUploadSessionRepository(db SQLQuerier) port.UploadSessionRepository {
	return &sqlUploadSessionRepository{db: db}
}

const sessionColumns = `id, asset_id, provider_upload_id, part_size, total_size, bytes_received,
       next_part, status, expires_at, created_at, updated_at`

// Create creates an upload session
func (s *sqlUploadSessionRepository) Create(ctx context.Context, session domain.UploadSession) error {
	query := `
		INSERT INTO upload_session (
			id, asset_id, provider_upload_id, part_size, total_size, status, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(
		ctx,
		query,
		session.ID,
		session.AssetID,
		session.ProviderUploadID,
		session.PartSize,
		session.TotalSize,
		session.Status,
		session.ExpiresAt,
	)
	if err != nil {
		return err
	}
	return nil
}

// FindOpenByAssetID finds the open session for an asset. A session that
// exists but has completed or been aborted surfaces as ErrSessionClosed,
// distinct from an asset that never had one.
func (s *sqlUploadSessionRepository) FindOpenByAssetID(ctx context.Context, assetID uuid.UUID) (*domain.UploadSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM upload_session
		WHERE asset_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	var row dbUploadSession
	err := s.db.QueryRowContext(ctx, query, assetID).Scan(
		&row.ID,
		&row.AssetID,
		&row.ProviderUploadID,
		&row.PartSize,
		&row.TotalSize,
		&row.BytesReceived,
		&row.NextPart,
		&row.Status,
		&row.ExpiresAt,
		&row.CreatedAt,
		&row.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	session := row.ToDomain()
	if session.Status != domain.UploadSessionStatusOpen {
		return nil, domain.ErrSessionClosed
	}

	return session, nil
}

// Advance records an accepted chunk, moving the session's offset forward.
// Only open sessions advance.
func (s *sqlUploadSessionRepository) Advance(ctx context.Context, id uuid.UUID, bytesReceived int64, nextPart int) error {
	query := `UPDATE upload_session
              SET bytes_received = $1, next_part = $2, updated_at = now()
              WHERE id = $3 AND status = 'open'`

	result, err := s.db.ExecContext(ctx, query, bytesReceived, nextPart, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return domain.ErrSessionNotFound
	}

	return nil
}

// UpdateStatus updates session status
func (s *sqlUploadSessionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.UploadSessionStatus) error {
	query := `UPDATE upload_session SET status = $1, updated_at = now() WHERE id = $2`

	result, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return domain.ErrSessionNotFound
	}

	return nil
}

// FindAllExpired finds open sessions past their expiry
func (s *sqlUploadSessionRepository) FindAllExpired(ctx context.Context, now time.Time) ([]domain.UploadSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM upload_session
		WHERE status = 'open' AND expires_at < $1`

	rows, err := s.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.UploadSession
	for rows.Next() {
		var row dbUploadSession
		if err := rows.Scan(
			&row.ID,
			&row.AssetID,
			&row.ProviderUploadID,
			&row.PartSize,
			&row.TotalSize,
			&row.BytesReceived,
			&row.NextPart,
			&row.Status,
			&row.ExpiresAt,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, *row.ToDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// dbUploadSession represents an upload session row
type dbUploadSession struct {
	ID               uuid.UUID `db:"id"`
	AssetID          uuid.UUID `db:"asset_id"`
	ProviderUploadID string    `db:"provider_upload_id"`
	PartSize         int64     `db:"part_size"`
	TotalSize        int64     `db:"total_size"`
	BytesReceived    int64     `db:"bytes_received"`
	NextPart         int       `db:"next_part"`
	Status           string    `db:"status"`
	ExpiresAt        time.Time `db:"expires_at"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// ToDomain converts to domain.UploadSession
func (r *dbUploadSession) ToDomain() *domain.UploadSession {
	return &domain.UploadSession{
		ID:               r.ID,
		AssetID:          r.AssetID,
		ProviderUploadID: r.ProviderUploadID,
		PartSize:         r.PartSize,
		TotalSize:        r.TotalSize,
		BytesReceived:    r.BytesReceived,
		NextPart:         r.NextPart,
		Status:           domain.UploadSessionStatus(r.Status),
		ExpiresAt:        r.ExpiresAt,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}
