package subtitle

import (
	"context"

	"subpipe/internal/core/domain"
	"subpipe/internal/core/port"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockSubtitleService struct {
	mock.Mock
}

func NewMockSubtitleService() *MockSubtitleService {
	return &MockSubtitleService{}
}

func (m *MockSubtitleService) GetSubtitleByID(ctx context.Context, id uuid.UUID, mode domain.CacheMode) (*domain.SubtitleRecord, *string, error) {
	args := m.Called(ctx, id, mode)
	var url *string
	if args.Get(1) != nil {
		url = args.Get(1).(*string)
	}
	return args.Get(0).(*domain.SubtitleRecord), url, args.Error(2)
}

func (m *MockSubtitleService) ListSubtitlesByMedia(ctx context.Context, mediaID uuid.UUID, mode domain.CacheMode) ([]domain.SubtitleRecord, error) {
	args := m.Called(ctx, mediaID, mode)
	return args.Get(0).([]domain.SubtitleRecord), args.Error(1)
}

func (m *MockSubtitleService) EnqueueGenerate(ctx context.Context, mediaID uuid.UUID, language string, format domain.SubtitleFormat) (*port.GenerateRequest, error) {
	args := m.Called(ctx, mediaID, language, format)
	return args.Get(0).(*port.GenerateRequest), args.Error(1)
}

func (m *MockSubtitleService) GetJobStatus(ctx context.Context, jobID uuid.UUID) (*domain.Job, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).(*domain.Job), args.Error(1)
}
