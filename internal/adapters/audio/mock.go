package audio

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockExtractor struct {
	mock.Mock
}

func NewMockExtractor() *MockExtractor {
	return &MockExtractor{}
}

func (m *MockExtractor) Extract(ctx context.Context, videoPath string, outDir string) (string, error) {
	args := m.Called(ctx, videoPath, outDir)
	return args.String(0), args.Error(1)
}
