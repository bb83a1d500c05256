package pipeline_test

import (
	"testing"
	"time"

	"subpipe/internal/core/domain"
	"subpipe/internal/core/service/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func segments() []domain.TranscriptSegment {
	return []domain.TranscriptSegment{
		{Start: 0, End: 2*time.Second + 500*time.Millisecond, Text: "Hello there."},
		{Start: 2*time.Second + 500*time.Millisecond, End: time.Hour + 5*time.Second, Text: "Still talking. "},
	}
}

func TestRender_SRT(t *testing.T) {
	// Act
	out, err := pipeline.Render(segments(), domain.SubtitleFormatSRT)

	// Assert
	require.NoError(t, err)
	assert.Equal(t,
		"1\n00:00:00,000 --> 00:00:02,500\nHello there.\n\n"+
			"2\n00:00:02,500 --> 01:00:05,000\nStill talking.\n\n",
		string(out))
}

func TestRender_VTT(t *testing.T) {
	// Act
	out, err := pipeline.Render(segments(), domain.SubtitleFormatVTT)

	// Assert
	require.NoError(t, err)
	assert.Equal(t,
		"WEBVTT\n\n"+
			"00:00:00.000 --> 00:00:02.500\nHello there.\n\n"+
			"00:00:02.500 --> 01:00:05.000\nStill talking.\n\n",
		string(out))
}

func TestRender_UnknownFormat(t *testing.T) {
	// Act
	_, err := pipeline.Render(segments(), domain.SubtitleFormat("ass"))

	// Assert
	assert.Error(t, err)
}
