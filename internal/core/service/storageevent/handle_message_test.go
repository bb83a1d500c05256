package storageevent_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"subpipe/internal/adapters/repository"
	"subpipe/internal/adapters/storage"
	"subpipe/internal/core/domain"
	"subpipe/internal/core/port"
	"subpipe/internal/core/service/media"
	"subpipe/internal/core/service/storageevent"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	handler port.MessageService
	repo    *repository.MockMediaRepository
	storage *storage.MockStorage
	service *media.MockMediaService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:    repository.NewMockMediaRepository(),
		storage: storage.NewMockStorage(),
		service: media.NewMockMediaService(),
	}
	f.handler = storageevent.NewStorageEventService(
		f.storage, f.repo, f.service, slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return f
}

func notification(key string) []byte {
	return []byte(fmt.Sprintf(`{
		"EventName": "s3:ObjectCreated:Put",
		"Records": [{
			"eventName": "s3:ObjectCreated:Put",
			"s3": {"bucket": {"name": "subpipe"}, "object": {"key": %q, "size": 1024}}
		}]
	}`, key))
}

func TestHandleMessage_FinalizesMatchingUpload(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture(t)
	mediaID := uuid.New()
	record := &domain.MediaRecord{
		ID: mediaID, StorageKey: "media/" + mediaID.String(),
		SizeBytes: 1024, Checksum: "abc", Status: domain.MediaStatusInitialized,
	}

	f.repo.On("FindByID", mock.Anything, mediaID).Return(record, nil)
	f.storage.On("Stat", mock.Anything, record.StorageKey).
		Return(&port.ObjectInfo{Size: 1024, ChecksumSHA256: "abc"}, nil)
	f.service.On("FinalizeUpload", mock.Anything, *record, nil).Return(nil)

	// Act
	err := f.handler.HandleMessage(ctx, notification(record.StorageKey))

	// Assert
	require.NoError(t, err)
	f.service.AssertExpectations(t)
}

func TestHandleMessage_SizeMismatchFailsTheUpload(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture(t)
	mediaID := uuid.New()
	record := &domain.MediaRecord{
		ID: mediaID, StorageKey: "media/" + mediaID.String(), SizeBytes: 1024,
	}

	f.repo.On("FindByID", mock.Anything, mediaID).Return(record, nil)
	f.storage.On("Stat", mock.Anything, record.StorageKey).
		Return(&port.ObjectInfo{Size: 999}, nil)
	f.service.On("FinalizeUpload", mock.Anything, *record,
		mock.MatchedBy(func(err error) bool { return errors.Is(err, domain.ErrSizeMismatch) })).Return(nil)

	// Act
	err := f.handler.HandleMessage(ctx, notification(record.StorageKey))

	// Assert
	assert.ErrorIs(t, err, domain.ErrSizeMismatch)
	f.service.AssertExpectations(t)
}

func TestHandleMessage_IgnoresNonMediaKeys(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture(t)

	// Act
	err := f.handler.HandleMessage(ctx, notification("audio/"+uuid.NewString()+".wav"))

	// Assert
	require.NoError(t, err)
	f.repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	f.service.AssertNotCalled(t, "FinalizeUpload", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleMessage_MalformedPayload(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture(t)

	// Act
	err := f.handler.HandleMessage(ctx, []byte("{not json"))

	// Assert
	assert.Error(t, err)
}
