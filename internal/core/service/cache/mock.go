package cache

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockMetadataCache struct {
	mock.Mock
}

func NewMockMetadataCache() *MockMetadataCache {
	return &MockMetadataCache{}
}

func (m *MockMetadataCache) GetJSON(ctx context.Context, key string, out any) error {
	args := m.Called(ctx, key, out)
	return args.Error(0)
}

func (m *MockMetadataCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockMetadataCache) Delete(ctx context.Context, keys ...string) error {
	callArgs := make([]any, 0, len(keys)+1)
	callArgs = append(callArgs, ctx)
	for _, key := range keys {
		callArgs = append(callArgs, key)
	}
	args := m.Called(callArgs...)
	return args.Error(0)
}

func (m *MockMetadataCache) DeletePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}
