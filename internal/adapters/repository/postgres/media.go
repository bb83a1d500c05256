package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"subpipe/internal/core/domain"
	"subpipe/internal/core/port"

	"github.com/google/uuid"
)

type sqlMediaRepository struct {
	db SQLQuerier
}

// NewSQLMediaRepository creates sqlMediaRepository that implements port.MediaRepository
func NewSQLMediaRepository(db SQLQuerier) port.MediaRepository {
	return &sqlMediaRepository{
		db: db,
	}
}

// Create creates a new media entry
func (s *sqlMediaRepository) Create(ctx context.Context, media domain.MediaRecord) error {
	query := `INSERT INTO media (id, name, mime_type, size_bytes, storage_key, checksum, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.ExecContext(ctx, query,
		media.ID, media.Name, media.MimeType, media.SizeBytes,
		media.StorageKey, media.Checksum, media.Status, media.CreatedAt, media.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting media: %w", err)
	}
	return nil
}

// FindByID finds by id, excluding soft deleted rows
func (s *sqlMediaRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.MediaRecord, error) {
	query := `SELECT id, name, mime_type, size_bytes, storage_key, checksum, status, created_at, updated_at, deleted_at
              FROM media
              WHERE id = $1 AND deleted_at IS NULL`

	var dbMedia dbMediaRecord
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&dbMedia.ID,
		&dbMedia.Name,
		&dbMedia.MimeType,
		&dbMedia.SizeBytes,
		&dbMedia.StorageKey,
		&dbMedia.Checksum,
		&dbMedia.Status,
		&dbMedia.CreatedAt,
		&dbMedia.UpdatedAt,
		&dbMedia.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMediaNotFound
		}
		return nil, err
	}

	return dbMedia.ToDomain(), nil
}

// List returns the most recent media entries
func (s *sqlMediaRepository) List(ctx context.Context, limit int) ([]domain.MediaRecord, error) {
	query := `SELECT id, name, mime_type, size_bytes, storage_key, checksum, status, created_at, updated_at, deleted_at
              FROM media
              WHERE deleted_at IS NULL
              ORDER BY created_at DESC
              LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying media: %w", err)
	}
	defer rows.Close()

	records := make([]domain.MediaRecord, 0, limit)
	for rows.Next() {
		var dbMedia dbMediaRecord
		err := rows.Scan(
			&dbMedia.ID,
			&dbMedia.Name,
			&dbMedia.MimeType,
			&dbMedia.SizeBytes,
			&dbMedia.StorageKey,
			&dbMedia.Checksum,
			&dbMedia.Status,
			&dbMedia.CreatedAt,
			&dbMedia.UpdatedAt,
			&dbMedia.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning media: %w", err)
		}
		records = append(records, *dbMedia.ToDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating media: %w", err)
	}

	return records, nil
}

// UpdateStatus updates status
func (s *sqlMediaRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MediaStatus) error {
	query := `UPDATE media
              SET status = $1, updated_at = now()
              WHERE id = $2 AND deleted_at IS NULL`

	result, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("error updating media: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrMediaNotFound
	}

	return nil
}

// Delete soft deletes
func (s *sqlMediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE media SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting media: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrMediaNotFound
	}
	return nil
}

// dbMediaRecord represents a media row
type dbMediaRecord struct {
	ID         uuid.UUID      `db:"id"`
	Name       string         `db:"name"`
	MimeType   string         `db:"mime_type"`
	SizeBytes  int64          `db:"size_bytes"`
	StorageKey string         `db:"storage_key"`
	Checksum   sql.NullString `db:"checksum"`
	Status     string         `db:"status"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
	DeletedAt  *time.Time     `db:"deleted_at"`
}

// ToDomain converts to domain.MediaRecord
func (m *dbMediaRecord) ToDomain() *domain.MediaRecord {
	record := &domain.MediaRecord{
		ID:         m.ID,
		Name:       m.Name,
		MimeType:   m.MimeType,
		SizeBytes:  m.SizeBytes,
		StorageKey: m.StorageKey,
		Status:     domain.MediaStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
		DeletedAt:  m.DeletedAt,
	}
	if m.Checksum.Valid {
		record.Checksum = m.Checksum.String
	}
	return record
}
