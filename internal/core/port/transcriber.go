package port

import (
	"context"

	"subpipe/internal/core/domain"
)

// Transcriber is an interface to define the transcription collaborator. The
// call is a black box with its own retry behaviour; the pipeline treats it as
// a single stage.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string, language string) ([]domain.TranscriptSegment, error)
}

// AudioExtractor is an interface to define audio extraction from a video file
type AudioExtractor interface {
	Extract(ctx context.Context, videoPath string, outDir string) (string, error)
}
