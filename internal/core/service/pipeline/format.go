package pipeline

import (
	"fmt"
	"strings"
	"time"

	"subpipe/internal/core/domain"
)

// Render serializes transcript segments into the requested subtitle container.
func Render(segments []domain.TranscriptSegment, format domain.SubtitleFormat) ([]byte, error) {
	switch format {
	case domain.SubtitleFormatSRT:
		return renderSRT(segments), nil
	case domain.SubtitleFormatVTT:
		return renderVTT(segments), nil
	default:
		return nil, fmt.Errorf("unsupported subtitle format: %q", format)
	}
}

func renderSRT(segments []domain.TranscriptSegment) []byte {
	var b strings.Builder
	for i, segment := range segments {
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", srtTimestamp(segment.Start), srtTimestamp(segment.End))
		b.WriteString(strings.TrimSpace(segment.Text))
		b.WriteString("\n\n")
	}
	return []byte(b.String())
}

func renderVTT(segments []domain.TranscriptSegment) []byte {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for _, segment := range segments {
		fmt.Fprintf(&b, "%s --> %s\n", vttTimestamp(segment.Start), vttTimestamp(segment.End))
		b.WriteString(strings.TrimSpace(segment.Text))
		b.WriteString("\n\n")
	}
	return []byte(b.String())
}

func srtTimestamp(d time.Duration) string {
	h, m, s, ms := splitTimestamp(d)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

func vttTimestamp(d time.Duration) string {
	h, m, s, ms := splitTimestamp(d)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

func splitTimestamp(d time.Duration) (h, m, s, ms int) {
	if d < 0 {
		d = 0
	}
	h = int(d / time.Hour)
	d -= time.Duration(h) * time.Hour
	m = int(d / time.Minute)
	d -= time.Duration(m) * time.Minute
	s = int(d / time.Second)
	d -= time.Duration(s) * time.Second
	ms = int(d / time.Millisecond)
	return h, m, s, ms
}
