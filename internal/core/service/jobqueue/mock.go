package jobqueue

import (
	"context"

	"subpipe/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockJobQueue struct {
	mock.Mock
}

func NewMockJobQueue() *MockJobQueue {
	return &MockJobQueue{}
}

func (m *MockJobQueue) Enqueue(ctx context.Context, payload domain.GenerateSubtitlesPayload) (uuid.UUID, error) {
	args := m.Called(ctx, payload)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockJobQueue) Status(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Job), args.Error(1)
}
