package transcriber

import (
	"context"

	"subpipe/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockTranscriber struct {
	mock.Mock
}

func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{}
}

func (m *MockTranscriber) Transcribe(ctx context.Context, audioPath string, language string) ([]domain.TranscriptSegment, error) {
	args := m.Called(ctx, audioPath, language)
	return args.Get(0).([]domain.TranscriptSegment), args.Error(1)
}
