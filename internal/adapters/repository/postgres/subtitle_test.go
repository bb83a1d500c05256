package postgres_test

import (
	"context"
	"testing"
	"time"

	"subpipe/internal/adapters/repository/postgres"
	"subpipe/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newSubtitleRecord(mediaID uuid.UUID) domain.SubtitleRecord {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return domain.SubtitleRecord{
		ID:        uuid.New(),
		MediaID:   mediaID,
		Language:  "en",
		Format:    domain.SubtitleFormatSRT,
		Status:    domain.SubtitleStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSQLSubtitleRepository(t *testing.T) {
	dbConnection, cleanup, truncate := postgres.NewTestDB(t)
	defer cleanup()
	ctx := context.Background()
	repo := postgres.NewSQLSubtitleRepository(dbConnection)
	mediaRepo := postgres.NewSQLMediaRepository(dbConnection)

	createMedia := func(t *testing.T) uuid.UUID {
		t.Helper()
		media := newMediaRecord()
		require.NoError(t, mediaRepo.Create(ctx, media))
		return media.ID
	}

	t.Run("Create - Success", func(t *testing.T) {
		// Arrange
		truncate()
		subtitle := newSubtitleRecord(createMedia(t))

		// Act
		err := repo.Create(ctx, subtitle)

		// Assert
		require.NoError(t, err)
		found, err := repo.FindByID(ctx, subtitle.ID)
		require.NoError(t, err)
		require.Equal(t, subtitle.ID, found.ID)
		require.Equal(t, subtitle.MediaID, found.MediaID)
		require.Equal(t, domain.SubtitleStatusPending, found.Status)
		require.Empty(t, found.StorageKey)
		require.Nil(t, found.GeneratedAt)
	})

	t.Run("FindByID - Not Found", func(t *testing.T) {
		// Arrange
		truncate()

		// Act
		_, err := repo.FindByID(ctx, uuid.New())

		// Assert
		require.ErrorIs(t, err, domain.ErrSubtitleNotFound)
	})

	t.Run("FindByMediaID - Oldest First", func(t *testing.T) {
		// Arrange
		truncate()
		mediaID := createMedia(t)
		first := newSubtitleRecord(mediaID)
		second := newSubtitleRecord(mediaID)
		second.Language = "de"
		second.CreatedAt = second.CreatedAt.Add(time.Minute)
		other := newSubtitleRecord(createMedia(t))
		require.NoError(t, repo.Create(ctx, first))
		require.NoError(t, repo.Create(ctx, second))
		require.NoError(t, repo.Create(ctx, other))

		// Act
		records, err := repo.FindByMediaID(ctx, mediaID)

		// Assert
		require.NoError(t, err)
		require.Len(t, records, 2)
		require.Equal(t, first.ID, records[0].ID)
		require.Equal(t, second.ID, records[1].ID)
	})

	t.Run("UpdateStatus - Stores Fail Reason", func(t *testing.T) {
		// Arrange
		truncate()
		subtitle := newSubtitleRecord(createMedia(t))
		require.NoError(t, repo.Create(ctx, subtitle))

		// Act
		err := repo.UpdateStatus(ctx, subtitle.ID, domain.SubtitleStatusFailed, "transcribe: upstream timeout")

		// Assert
		require.NoError(t, err)
		found, err := repo.FindByID(ctx, subtitle.ID)
		require.NoError(t, err)
		require.Equal(t, domain.SubtitleStatusFailed, found.Status)
		require.Equal(t, "transcribe: upstream timeout", found.FailReason)
	})

	t.Run("UpdateStatus - Not Found", func(t *testing.T) {
		// Arrange
		truncate()

		// Act
		err := repo.UpdateStatus(ctx, uuid.New(), domain.SubtitleStatusProcessing, "")

		// Assert
		require.ErrorIs(t, err, domain.ErrSubtitleNotFound)
	})

	t.Run("MarkCompleted - Sets Artifact And Clears Fail Reason", func(t *testing.T) {
		// Arrange
		truncate()
		subtitle := newSubtitleRecord(createMedia(t))
		require.NoError(t, repo.Create(ctx, subtitle))
		require.NoError(t, repo.UpdateStatus(ctx, subtitle.ID, domain.SubtitleStatusFailed, "transient"))
		generatedAt := time.Now().UTC().Truncate(time.Millisecond)

		// Act
		err := repo.MarkCompleted(ctx, subtitle.ID, "subtitles/"+subtitle.ID.String()+".srt", generatedAt)

		// Assert
		require.NoError(t, err)
		found, err := repo.FindByID(ctx, subtitle.ID)
		require.NoError(t, err)
		require.Equal(t, domain.SubtitleStatusCompleted, found.Status)
		require.Equal(t, "subtitles/"+subtitle.ID.String()+".srt", found.StorageKey)
		require.Empty(t, found.FailReason)
		require.NotNil(t, found.GeneratedAt)
		require.WithinDuration(t, generatedAt, *found.GeneratedAt, time.Second)
	})

	t.Run("Delete - Success", func(t *testing.T) {
		// Arrange
		truncate()
		subtitle := newSubtitleRecord(createMedia(t))
		require.NoError(t, repo.Create(ctx, subtitle))

		// Act
		err := repo.Delete(ctx, subtitle.ID)

		// Assert
		require.NoError(t, err)
		_, err = repo.FindByID(ctx, subtitle.ID)
		require.ErrorIs(t, err, domain.ErrSubtitleNotFound)
	})
}
