package dedup

import (
	"context"

	"subpipe/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockDedupStore struct {
	mock.Mock
}

func NewMockDedupStore() *MockDedupStore {
	return &MockDedupStore{}
}

func (m *MockDedupStore) Store(ctx context.Context, record domain.DedupRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockDedupStore) Get(ctx context.Context, fingerprint string) (*domain.DedupRecord, error) {
	args := m.Called(ctx, fingerprint)
	return args.Get(0).(*domain.DedupRecord), args.Error(1)
}

func (m *MockDedupStore) UpdateSubtitleID(ctx context.Context, fingerprint string, subtitleID uuid.UUID) error {
	args := m.Called(ctx, fingerprint, subtitleID)
	return args.Error(0)
}

func (m *MockDedupStore) Delete(ctx context.Context, fingerprint string) error {
	args := m.Called(ctx, fingerprint)
	return args.Error(0)
}

func (m *MockDedupStore) Sweep(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
