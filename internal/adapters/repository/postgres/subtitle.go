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

type sqlSubtitleRepository struct {
	db SQLQuerier
}

// NewSQLSubtitleRepository creates sqlSubtitleRepository that implements port.SubtitleRepository
func NewSQLSubtitleRepository(db SQLQuerier) port.SubtitleRepository {
	return &sqlSubtitleRepository{
		db: db,
	}
}

// Create creates a new subtitle entry
func (s *sqlSubtitleRepository) Create(ctx context.Context, subtitle domain.SubtitleRecord) error {
	query := `INSERT INTO subtitles (id, media_id, language, format, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		subtitle.ID, subtitle.MediaID, subtitle.Language, subtitle.Format,
		subtitle.Status, subtitle.CreatedAt, subtitle.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting subtitle: %w", err)
	}
	return nil
}

// FindByID finds by id
func (s *sqlSubtitleRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.SubtitleRecord, error) {
	query := `SELECT id, media_id, language, format, storage_key, status, fail_reason, generated_at, created_at, updated_at
              FROM subtitles
              WHERE id = $1`

	var dbSubtitle dbSubtitleRecord
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&dbSubtitle.ID,
		&dbSubtitle.MediaID,
		&dbSubtitle.Language,
		&dbSubtitle.Format,
		&dbSubtitle.StorageKey,
		&dbSubtitle.Status,
		&dbSubtitle.FailReason,
		&dbSubtitle.GeneratedAt,
		&dbSubtitle.CreatedAt,
		&dbSubtitle.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSubtitleNotFound
		}
		return nil, err
	}

	return dbSubtitle.ToDomain(), nil
}

// FindByMediaID lists every subtitle of a media item
func (s *sqlSubtitleRepository) FindByMediaID(ctx context.Context, mediaID uuid.UUID) ([]domain.SubtitleRecord, error) {
	query := `SELECT id, media_id, language, format, storage_key, status, fail_reason, generated_at, created_at, updated_at
              FROM subtitles
              WHERE media_id = $1
              ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, mediaID)
	if err != nil {
		return nil, fmt.Errorf("error querying subtitles: %w", err)
	}
	defer rows.Close()

	var records []domain.SubtitleRecord
	for rows.Next() {
		var dbSubtitle dbSubtitleRecord
		err := rows.Scan(
			&dbSubtitle.ID,
			&dbSubtitle.MediaID,
			&dbSubtitle.Language,
			&dbSubtitle.Format,
			&dbSubtitle.StorageKey,
			&dbSubtitle.Status,
			&dbSubtitle.FailReason,
			&dbSubtitle.GeneratedAt,
			&dbSubtitle.CreatedAt,
			&dbSubtitle.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning subtitle: %w", err)
		}
		records = append(records, *dbSubtitle.ToDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subtitles: %w", err)
	}

	return records, nil
}

// UpdateStatus updates status and fail reason
func (s *sqlSubtitleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SubtitleStatus, failReason string) error {
	query := `UPDATE subtitles
              SET status = $1, fail_reason = $2, updated_at = now()
              WHERE id = $3`

	result, err := s.db.ExecContext(ctx, query, status, nullString(failReason), id)
	if err != nil {
		return fmt.Errorf("error updating subtitle: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrSubtitleNotFound
	}

	return nil
}

// MarkCompleted settles a subtitle with its artifact location
func (s *sqlSubtitleRepository) MarkCompleted(ctx context.Context, id uuid.UUID, storageKey string, generatedAt time.Time) error {
	query := `UPDATE subtitles
              SET status = $1, storage_key = $2, generated_at = $3, fail_reason = NULL, updated_at = now()
              WHERE id = $4`

	result, err := s.db.ExecContext(ctx, query, domain.SubtitleStatusCompleted, storageKey, generatedAt, id)
	if err != nil {
		return fmt.Errorf("error completing subtitle: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrSubtitleNotFound
	}

	return nil
}

// Delete removes a subtitle entry
func (s *sqlSubtitleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM subtitles WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting subtitle: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrSubtitleNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// dbSubtitleRecord represents a subtitle row
type dbSubtitleRecord struct {
	ID          uuid.UUID      `db:"id"`
	MediaID     uuid.UUID      `db:"media_id"`
	Language    string         `db:"language"`
	Format      string         `db:"format"`
	StorageKey  sql.NullString `db:"storage_key"`
	Status      string         `db:"status"`
	FailReason  sql.NullString `db:"fail_reason"`
	GeneratedAt *time.Time     `db:"generated_at"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// ToDomain converts to domain.SubtitleRecord
func (r *dbSubtitleRecord) ToDomain() *domain.SubtitleRecord {
	record := &domain.SubtitleRecord{
		ID:          r.ID,
		MediaID:     r.MediaID,
		Language:    r.Language,
		Format:      domain.SubtitleFormat(r.Format),
		Status:      domain.SubtitleStatus(r.Status),
		GeneratedAt: r.GeneratedAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.StorageKey.Valid {
		record.StorageKey = r.StorageKey.String
	}
	if r.FailReason.Valid {
		record.FailReason = r.FailReason.String
	}
	return record
}
