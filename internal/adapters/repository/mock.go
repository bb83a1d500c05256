package repository

import (
	"context"
	"time"

	"subpipe/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockMediaRepository struct {
	mock.Mock
}

func NewMockMediaRepository() *MockMediaRepository {
	return &MockMediaRepository{}
}

func (m *MockMediaRepository) Create(ctx context.Context, media domain.MediaRecord) error {
	args := m.Called(ctx, media)
	return args.Error(0)
}

func (m *MockMediaRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.MediaRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.MediaRecord), args.Error(1)
}

func (m *MockMediaRepository) List(ctx context.Context, limit int) ([]domain.MediaRecord, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.MediaRecord), args.Error(1)
}

func (m *MockMediaRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MediaStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockMediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSubtitleRepository struct {
	mock.Mock
}

func NewMockSubtitleRepository() *MockSubtitleRepository {
	return &MockSubtitleRepository{}
}

func (m *MockSubtitleRepository) Create(ctx context.Context, subtitle domain.SubtitleRecord) error {
	args := m.Called(ctx, subtitle)
	return args.Error(0)
}

func (m *MockSubtitleRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.SubtitleRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.SubtitleRecord), args.Error(1)
}

func (m *MockSubtitleRepository) FindByMediaID(ctx context.Context, mediaID uuid.UUID) ([]domain.SubtitleRecord, error) {
	args := m.Called(ctx, mediaID)
	return args.Get(0).([]domain.SubtitleRecord), args.Error(1)
}

func (m *MockSubtitleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SubtitleStatus, failReason string) error {
	args := m.Called(ctx, id, status, failReason)
	return args.Error(0)
}

func (m *MockSubtitleRepository) MarkCompleted(ctx context.Context, id uuid.UUID, storageKey string, generatedAt time.Time) error {
	args := m.Called(ctx, id, storageKey, generatedAt)
	return args.Error(0)
}

func (m *MockSubtitleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
