package media

import (
	"context"

	"subpipe/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockMediaService struct {
	mock.Mock
}

func NewMockMediaService() *MockMediaService {
	return &MockMediaService{}
}

func (m *MockMediaService) RequestUpload(ctx context.Context, name, mimeType string, sizeBytes int64, checksumSHA256 string) (*domain.UploadTicket, error) {
	args := m.Called(ctx, name, mimeType, sizeBytes, checksumSHA256)
	return args.Get(0).(*domain.UploadTicket), args.Error(1)
}

func (m *MockMediaService) GetMediaByID(ctx context.Context, id uuid.UUID, mode domain.CacheMode) (*domain.MediaRecord, error) {
	args := m.Called(ctx, id, mode)
	return args.Get(0).(*domain.MediaRecord), args.Error(1)
}

func (m *MockMediaService) ListMedia(ctx context.Context, limit int, mode domain.CacheMode) ([]domain.MediaRecord, error) {
	args := m.Called(ctx, limit, mode)
	return args.Get(0).([]domain.MediaRecord), args.Error(1)
}

func (m *MockMediaService) DeleteMedia(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMediaService) FinalizeUpload(ctx context.Context, media domain.MediaRecord, uploadErr error) error {
	args := m.Called(ctx, media, uploadErr)
	return args.Error(0)
}

func (m *MockMediaService) LookupFingerprint(ctx context.Context, fingerprint string) (*domain.DedupRecord, error) {
	args := m.Called(ctx, fingerprint)
	return args.Get(0).(*domain.DedupRecord), args.Error(1)
}

func (m *MockMediaService) RecordFingerprint(ctx context.Context, fingerprint string, mediaID uuid.UUID) error {
	args := m.Called(ctx, fingerprint, mediaID)
	return args.Error(0)
}
